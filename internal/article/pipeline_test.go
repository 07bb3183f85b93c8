// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package article

import (
	"context"
	"errors"
	"strings"
	"testing"

	"autoblog/internal/ai"
	"autoblog/internal/models"
	"autoblog/internal/prompt"
)

type fakeText struct {
	response string
	err      error
	calls    int
	prompt   string
	opts     ai.Options
}

func (f *fakeText) Generate(_ context.Context, p string, opts ai.Options) (string, error) {
	f.calls++
	f.prompt = p
	f.opts = opts
	return f.response, f.err
}

func newTestPipeline(t *testing.T, text TextGenerator, images ai.ImageGenerator) *Pipeline {
	t.Helper()
	p, err := NewPipeline(prompt.MustNew(), text, images)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	return p
}

func TestNewPipelineMissingCollaborator(t *testing.T) {
	b := prompt.MustNew()
	text := &fakeText{}
	images := &fakeImages{}

	cases := []struct {
		name  string
		build  func() (*Pipeline, error)
	}{
		{"prompts", func() (*Pipeline, error) { return NewPipeline(nil, text, images) }},
		{"text", func() (*Pipeline, error) { return NewPipeline(b, nil, images) }},
		{"images", func() (*Pipeline, error) { return NewPipeline(b, text, nil) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.build(); !errors.Is(err, ErrMissingCollaborator) {
				t.Errorf("got %v, want ErrMissingCollaborator", err)
			}
		})
	}
}

func TestGenerateEmptyTopic(t *testing.T) {
	text := &fakeText{}
	p := newTestPipeline(t, text, &fakeImages{})

	for _, topic := range []string{"", "   \n"} {
		params := models.DefaultArticleParameters()
		params.Topic = topic
		if _, err := p.Generate(context.Background(), params); !errors.Is(err, ErrEmptyTopic) {
			t.Errorf("topic %q: got %v, want ErrEmptyTopic", topic, err)
		}
	}
	if text.calls != 0 {
		t.Errorf("text service called %d times for an empty topic", text.calls)
	}
}

func TestGenerateTextFailureIsFatal(t *testing.T) {
	upstream := &ai.APIError{Provider: "gemini", StatusCode: 503, Body: "overloaded"}
	images := &fakeImages{}
	p := newTestPipeline(t, &fakeText{err: upstream}, images)

	params := models.DefaultArticleParameters()
	params.Topic = "Beekeeping basics"

	got, err := p.Generate(context.Background(), params)
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("got %v, want ErrGeneration", err)
	}
	var apiErr *ai.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 503 {
		t.Errorf("upstream error not preserved: %v", err)
	}
	if got != (models.GeneratedContent{}) {
		t.Errorf("partial result returned: %+v", got)
	}
	if len(images.calls) != 0 {
		t.Error("no image work should start after a text failure")
	}
}

func TestGenerateFullPath(t *testing.T) {
	raw := "Sure!\n<!--TITLE_START-->Beekeeping Basics<!--TITLE_END-->\n<!--CONTENT_START-->\n```html\n" +
		"<div><p>intro</p>[[IMAGE_PROMPT: a jar of honey]]<h2>Gear</h2><p>suit</p>" +
		"[[PRODUCT_WIDGET_HERE]][[IMAGE_PROMPT: a hive]]<p>end</p></div>\n```\n<!--CONTENT_END-->"
	text := &fakeText{response: raw}
	images := &fakeImages{ok: map[string]bool{"a jar of honey": true}}
	p := newTestPipeline(t, text, images)

	params := models.DefaultArticleParameters()
	params.Topic = "Beekeeping basics"
	params.Location = "United States"
	params.WidgetFragment = `<section id="w">W</section>`

	got, err := p.Generate(context.Background(), params)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if got.Title != "Beekeeping Basics" {
		t.Errorf("Title: got %q", got.Title)
	}
	want := "<div><p>intro</p>" + ImageTag([]byte("img:a jar of honey"), "") +
		`<h2>Gear</h2><p>suit</p><section id="w">W</section><p>end</p></div>`
	if got.HTMLBody != want {
		t.Errorf("HTMLBody:\ngot  %q\nwant %q", got.HTMLBody, want)
	}

	if !strings.Contains(text.prompt, prompt.WidgetToken) {
		t.Error("prompt should ask for the widget token when a widget is held")
	}
	if text.opts != prompt.DefaultOptions {
		t.Errorf("options: got %+v", text.opts)
	}
}

func TestGenerateMalformedResponseDegrades(t *testing.T) {
	p := newTestPipeline(t, &fakeText{response: "<h2>Tips</h2><p>x</p><!-- stray -->"}, &fakeImages{})

	params := models.DefaultArticleParameters()
	params.Topic = "Bees"
	params.WidgetFragment = "<aside>W</aside>"

	got, err := p.Generate(context.Background(), params)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got.Title != UntitledTitle {
		t.Errorf("Title: got %q", got.Title)
	}
	if got.HTMLBody != "<h2>Tips</h2><p>x</p><aside>W</aside>" {
		t.Errorf("HTMLBody: got %q", got.HTMLBody)
	}
}

func TestGenerateWithoutWidget(t *testing.T) {
	text := &fakeText{response: "<!--CONTENT_START--><p>a</p>[[PRODUCT_WIDGET_HERE]]<!--CONTENT_END-->"}
	p := newTestPipeline(t, text, &fakeImages{})

	params := models.DefaultArticleParameters()
	params.Topic = "Bees"
	params.WidgetFragment = "  "

	got, err := p.Generate(context.Background(), params)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if strings.Contains(text.prompt, prompt.WidgetToken) {
		t.Error("prompt mentions the widget token without a widget")
	}
	if got.HTMLBody != "<p>a</p>" {
		t.Errorf("stray token should be dropped, got %q", got.HTMLBody)
	}
}

func TestGenerateRepeatedWidgetToken(t *testing.T) {
	text := &fakeText{response: "<!--CONTENT_START-->a [[PRODUCT_WIDGET_HERE]] b [[PRODUCT_WIDGET_HERE]]<!--CONTENT_END-->"}
	p := newTestPipeline(t, text, &fakeImages{})

	params := models.DefaultArticleParameters()
	params.Topic = "Bees"
	params.WidgetFragment = "W"

	got, err := p.Generate(context.Background(), params)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got.HTMLBody != "a W b " {
		t.Errorf("HTMLBody: got %q, want %q", got.HTMLBody, "a W b ")
	}
	if strings.Contains(got.HTMLBody, prompt.WidgetToken) {
		t.Error("widget token left in the article")
	}
}
