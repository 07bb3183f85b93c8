// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "strings"

// ArticleParameters are the user inputs that drive one article generation.
// The pipeline only reads them; edits happen between generation requests.
type ArticleParameters struct {
	Topic           string `json:"topic"`
	Location        string `json:"location"`
	Tone            string `json:"tone"`
	ContentStyle    string `json:"content_style"`
	Keyword         string `json:"keyword"`
	VisualStyle     string `json:"visual_style"`
	TextColor       string `json:"text_color"`
	BackgroundColor string `json:"background_color"`

	// WidgetFragment is the pre-rendered product widget saved in a prior
	// editing step. Empty means no widget is held.
	WidgetFragment string `json:"widget_fragment,omitempty"`
}

// DefaultArticleParameters returns the values a fresh workspace starts with.
func DefaultArticleParameters() ArticleParameters {
	return ArticleParameters{
		Location:        "Indonesia",
		Tone:            "Informative",
		ContentStyle:    "Listicle",
		VisualStyle:     "AsriStyle",
		TextColor:       "#334155",
		BackgroundColor: "#ffffff",
	}
}

// HasWidget reports whether a non-blank widget fragment is attached.
func (p ArticleParameters) HasWidget() bool {
	return strings.TrimSpace(p.WidgetFragment) != ""
}

// GeneratedContent is the result of one generation request. Title is plain
// text; HTMLBody is a self-contained fragment without an outer document.
type GeneratedContent struct {
	Title    string `json:"title"`
	HTMLBody string `json:"html_body"`
}
