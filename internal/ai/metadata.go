// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// ProductMetadata is the suggested card copy for one product.
type ProductMetadata struct {
	Description string `json:"description"`
	CTALabel    string `json:"cta_label"`
}

// DefaultProductMetadata is returned whenever suggestion fails.
var DefaultProductMetadata = ProductMetadata{
	Description: "A popular pick worth checking out. Tap to see the details and latest price.",
	CTALabel:    "RECOMMENDED",
}

const (
	maxMetadataDescription = 160
	maxMetadataLabel       = 24
)

// MetadataGenerator suggests a short description and badge label for a
// product title. It never fails: errors degrade to DefaultProductMetadata.
type MetadataGenerator struct {
	provider Provider
}

// NewMetadataGenerator creates a generator backed by provider.
func NewMetadataGenerator(provider Provider) *MetadataGenerator {
	return &MetadataGenerator{provider: provider}
}

// Generate returns suggested copy for title.
func (g *MetadataGenerator) Generate(ctx context.Context, title string) ProductMetadata {
	title = strings.TrimSpace(title)
	if title == "" || g.provider == nil {
		return DefaultProductMetadata
	}

	raw, err := g.provider.Generate(ctx, metadataPrompt(title), Options{Temperature: 0.7, JSON: true})
	if err != nil {
		slog.Warn("product metadata generation failed", "title", title, "error", err)
		return DefaultProductMetadata
	}

	meta, err := parseMetadata(raw)
	if err != nil {
		slog.Warn("product metadata unparsable", "title", title, "error", err)
		return DefaultProductMetadata
	}
	return meta
}

func metadataPrompt(title string) string {
	return fmt.Sprintf(`You write copy for affiliate product cards embedded in blog posts.
Product title: %q

Return ONLY a JSON object with exactly these keys:
{"description": "...", "cta_label": "..."}

Rules:
- "description": one persuasive sentence, at most 100 characters, in the same language as the product title.
- "cta_label": a short uppercase badge of one or two words (e.g. "BEST SELLER", "PROMO").
- No markdown, no code fences, no extra keys.`, title)
}

// parseMetadata extracts the JSON object from raw and fills blank fields
// from DefaultProductMetadata.
func parseMetadata(raw string) (ProductMetadata, error) {
	obj := extractJSONObject(raw)
	if obj == "" {
		return ProductMetadata{}, fmt.Errorf("ai: no JSON object in metadata response")
	}

	var meta ProductMetadata
	if err := json.Unmarshal([]byte(obj), &meta); err != nil {
		return ProductMetadata{}, fmt.Errorf("ai: metadata unmarshal: %w", err)
	}

	meta.Description = truncateRunes(strings.TrimSpace(meta.Description), maxMetadataDescription)
	meta.CTALabel = truncateRunes(strings.ToUpper(strings.TrimSpace(meta.CTALabel)), maxMetadataLabel)
	if meta.Description == "" {
		meta.Description = DefaultProductMetadata.Description
	}
	if meta.CTALabel == "" {
		meta.CTALabel = DefaultProductMetadata.CTALabel
	}
	return meta, nil
}

// extractJSONObject returns the outermost {...} span of s, ignoring any
// code fences or chatter around it.
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n]))
}
