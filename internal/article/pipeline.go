// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package article runs one article generation: prompt, text model, response
// parsing, inline images and the product widget.
package article

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"autoblog/internal/ai"
	"autoblog/internal/models"
	"autoblog/internal/prompt"
)

var (
	// ErrEmptyTopic is returned before any upstream call when the topic is blank.
	ErrEmptyTopic = errors.New("article: topic is required")
	// ErrMissingCollaborator is returned by NewPipeline for a nil dependency.
	ErrMissingCollaborator = errors.New("article: missing collaborator")
	// ErrGeneration wraps every failure of the text model.
	ErrGeneration = errors.New("article: text generation failed")
)

// TextGenerator produces raw text for a prompt. ai.Registry satisfies it.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts ai.Options) (string, error)
}

// Pipeline wires the prompt builder and the model clients together. One
// Pipeline serves the whole process; each Generate call is independent.
type Pipeline struct {
	prompts *prompt.Builder
	text    TextGenerator
	images  ai.ImageGenerator
}

// NewPipeline returns a Pipeline, or ErrMissingCollaborator if any
// dependency is nil.
func NewPipeline(prompts *prompt.Builder, text TextGenerator, images ai.ImageGenerator) (*Pipeline, error) {
	switch {
	case prompts == nil:
		return nil, fmt.Errorf("%w: prompt builder", ErrMissingCollaborator)
	case text == nil:
		return nil, fmt.Errorf("%w: text generator", ErrMissingCollaborator)
	case images == nil:
		return nil, fmt.Errorf("%w: image generator", ErrMissingCollaborator)
	}
	return &Pipeline{prompts: prompts, text: text, images: images}, nil
}

// Generate produces one article. Only an empty topic, a prompt error or a
// text model failure abort the request; image failures and malformed
// responses degrade the output instead.
func (p *Pipeline) Generate(ctx context.Context, params models.ArticleParameters) (models.GeneratedContent, error) {
	if strings.TrimSpace(params.Topic) == "" {
		return models.GeneratedContent{}, ErrEmptyTopic
	}

	hasWidget := params.HasWidget()
	req, err := p.prompts.Build(params, hasWidget)
	if err != nil {
		return models.GeneratedContent{}, err
	}

	start := time.Now()
	raw, err := p.text.Generate(ctx, req.Text, req.Options)
	if err != nil {
		return models.GeneratedContent{}, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	slog.Debug("article text generated", "topic", params.Topic, "chars", len(raw), "took", time.Since(start))

	content := Parse(raw)
	if n := len(Placeholders(content.HTMLBody)); n > 0 {
		content.HTMLBody = ResolveImages(ctx, content.HTMLBody, p.images)
		slog.Debug("article images resolved", "placeholders", n)
	}
	content.HTMLBody = dropExtraWidgetTokens(content.HTMLBody, hasWidget)
	content.HTMLBody = InjectFragment(content.HTMLBody, params.WidgetFragment, hasWidget)

	return content, nil
}
