// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package prompt turns article parameters into the single instruction the
// text model receives, plus the sampling options that go with it.
package prompt

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"autoblog/internal/ai"
	"autoblog/internal/models"
)

// Sentinels shared between the prompt and the response handling.
const (
	WidgetToken  = "[[PRODUCT_WIDGET_HERE]]"
	ImagePrefix  = "[[IMAGE_PROMPT: "
	ImageSuffix  = "]]"
	TitleStart   = "<!--TITLE_START-->"
	TitleEnd     = "<!--TITLE_END-->"
	ContentStart = "<!--CONTENT_START-->"
	ContentEnd   = "<!--CONTENT_END-->"
)

// DefaultOptions are the sampling options sent with every article request.
var DefaultOptions = ai.Options{Temperature: 0.3, TopK: 30, TopP: 0.8}

//go:embed templates/article.tmpl
var articleTemplate string

// Request is a built prompt ready for the text provider.
type Request struct {
	Text    string
	Options ai.Options
}

// Builder renders article prompts. It is safe for concurrent use.
type Builder struct {
	tmpl    *template.Template
	options ai.Options
}

// New parses the embedded article template.
func New() (*Builder, error) {
	tmpl, err := template.New("article").Option("missingkey=error").Parse(articleTemplate)
	if err != nil {
		return nil, fmt.Errorf("prompt: parse template: %w", err)
	}
	return &Builder{tmpl: tmpl, options: DefaultOptions}, nil
}

// MustNew is like New but panics on a template error. The template is
// embedded, so failure means a broken build.
func MustNew() *Builder {
	b, err := New()
	if err != nil {
		panic(err)
	}
	return b
}

type templateData struct {
	Lang         Language
	Style        Style
	Rules        []Rule
	Params       models.ArticleParameters
	HasWidget    bool
	TitleStart   string
	TitleEnd     string
	ContentStart string
	ContentEnd   string
}

// Build renders the prompt for p. hasWidget adds the widget placement
// instruction; without it the token is never mentioned.
func (b *Builder) Build(p models.ArticleParameters, hasWidget bool) (Request, error) {
	style := ResolveStyle(p.VisualStyle)
	data := templateData{
		Lang:         LanguageFor(p.Location),
		Style:        style,
		Rules:        style.Resolved(p.TextColor, p.BackgroundColor),
		Params:       p,
		HasWidget:    hasWidget,
		TitleStart:   TitleStart,
		TitleEnd:     TitleEnd,
		ContentStart: ContentStart,
		ContentEnd:   ContentEnd,
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, data); err != nil {
		return Request{}, fmt.Errorf("prompt: render: %w", err)
	}
	return Request{Text: buf.String(), Options: b.options}, nil
}
