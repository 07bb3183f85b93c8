// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package prompt

import (
	"strings"
	"testing"

	"autoblog/internal/models"
)

func build(t *testing.T, p models.ArticleParameters, hasWidget bool) Request {
	t.Helper()
	req, err := MustNew().Build(p, hasWidget)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return req
}

func TestBuildDefaultLanguageAndStyle(t *testing.T) {
	p := models.DefaultArticleParameters()
	p.Topic = "Beekeeping basics"
	p.Location = "United States"
	p.VisualStyle = "Neon Cyberpunk"

	req := build(t, p, false)

	for _, want := range []string{
		"TARGET LANGUAGE: English.",
		english.Directive,
		"STYLE: MINIMALIST MODERN",
		`Topic: "Beekeeping basics"`,
		"Write the article now in English.",
	} {
		if !strings.Contains(req.Text, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(req.Text, indonesian.Directive) {
		t.Error("default branch must not carry the Indonesian directive")
	}
}

func TestBuildLocalLanguage(t *testing.T) {
	for _, loc := range []string{"Indonesia", "Jakarta", "Bali", "Surabaya", "East Java, INDONESIA"} {
		t.Run(loc, func(t *testing.T) {
			p := models.DefaultArticleParameters()
			p.Topic = "Budidaya lebah"
			p.Location = loc

			req := build(t, p, false)
			if !strings.Contains(req.Text, indonesian.Directive) {
				t.Error("missing Indonesian directive")
			}
			if !strings.Contains(req.Text, "BAHASA TARGET: Bahasa Indonesia (Indonesian).") {
				t.Error("missing Indonesian target language line")
			}
			if strings.Contains(req.Text, english.InlineCSS) {
				t.Error("instructional text should be localized")
			}
		})
	}
}

func TestIsLocalLanguage(t *testing.T) {
	tests := []struct {
		location string
		want     bool
	}{
		{"Indonesia", true},
		{"Jakarta", true},
		{"jakarta", false},
		{"Republic of Indonesia", true},
		{"indonesian highlands", true},
		{"United States", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsLocalLanguage(tt.location); got != tt.want {
			t.Errorf("IsLocalLanguage(%q) = %v, want %v", tt.location, got, tt.want)
		}
	}
}

func TestResolveStyle(t *testing.T) {
	for _, name := range StyleNames() {
		if got := ResolveStyle(name).Name; got != name {
			t.Errorf("ResolveStyle(%q) = %q", name, got)
		}
	}
	for _, unknown := range []string{"", "minimalist", "Brutalist"} {
		if got := ResolveStyle(unknown).Name; got != DefaultStyle {
			t.Errorf("ResolveStyle(%q) = %q, want %q", unknown, got, DefaultStyle)
		}
	}
}

func TestStyleUsesCallerColors(t *testing.T) {
	for _, name := range StyleNames() {
		rules := ResolveStyle(name).Resolved("#101010", "#fafafa")
		var container string
		var takeaway bool
		for _, r := range rules {
			if strings.Contains(r.CSS, "{text}") || strings.Contains(r.CSS, "{background}") {
				t.Errorf("%s: unresolved token in %q", name, r.CSS)
			}
			switch r.Kind {
			case RuleContainer:
				container = r.CSS
			case RuleKeyTakeaway:
				takeaway = true
			}
		}
		if !strings.Contains(container, "color: #101010;") || !strings.Contains(container, "background-color: #fafafa;") {
			t.Errorf("%s: container rule %q lacks caller colors", name, container)
		}
		if !takeaway {
			t.Errorf("%s: no key takeaway rule", name)
		}
	}
}

func TestBuildWidgetBranch(t *testing.T) {
	p := models.DefaultArticleParameters()
	p.Topic = "Madu"

	with := build(t, p, true)
	if strings.Count(with.Text, WidgetToken) != 1 {
		t.Errorf("widget token should appear once in the instruction, got %d", strings.Count(with.Text, WidgetToken))
	}
	if !strings.Contains(with.Text, indonesian.WidgetHeading) {
		t.Error("missing widget heading")
	}

	without := build(t, p, false)
	if strings.Contains(without.Text, WidgetToken) || strings.Contains(without.Text, indonesian.WidgetHeading) {
		t.Error("widget instruction must be omitted when no widget is held")
	}
}

func TestBuildOutputContract(t *testing.T) {
	p := models.DefaultArticleParameters()
	p.Topic = "Beekeeping basics"
	p.Location = "Canada"

	req := build(t, p, false)

	for _, s := range []string{TitleStart, TitleEnd, ContentStart, ContentEnd} {
		if strings.Count(req.Text, s) != 1 {
			t.Errorf("sentinel %q should appear exactly once", s)
		}
	}
	if !strings.Contains(req.Text, "exactly TWO (2) placeholders") {
		t.Error("missing two-placeholder instruction")
	}
	if !strings.Contains(req.Text, ImagePrefix+"<detailed_english_description>"+ImageSuffix) {
		t.Error("missing placeholder format")
	}
	if strings.Index(req.Text, TitleStart) > strings.Index(req.Text, ContentStart) {
		t.Error("title section must precede content section")
	}
}

func TestBuildOptions(t *testing.T) {
	req := build(t, models.ArticleParameters{Topic: "x"}, false)
	if req.Options.Temperature != 0.3 || req.Options.TopK != 30 || req.Options.TopP != 0.8 {
		t.Errorf("options: got %+v", req.Options)
	}
	if req.Options.JSON {
		t.Error("article requests are not JSON mode")
	}
}

func TestBuildTopicIsData(t *testing.T) {
	req := build(t, models.ArticleParameters{Topic: "{{.Secret}} & <b>"}, false)
	if !strings.Contains(req.Text, `"{{.Secret}} & <b>"`) {
		t.Error("topic should be rendered verbatim")
	}
}
