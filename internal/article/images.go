// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package article

import (
	"context"
	"encoding/base64"
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"autoblog/internal/ai"
	"autoblog/internal/prompt"
)

const imageStyle = "width: 100%; height: auto; border-radius: 8px; margin: 20px 0; display: block; box-shadow: 0 4px 6px -1px rgba(0, 0, 0, 0.1);"

var placeholderPattern = regexp.MustCompile(regexp.QuoteMeta(prompt.ImagePrefix) + `(.*?)` + regexp.QuoteMeta(prompt.ImageSuffix))

// Placeholders returns the descriptions of every image placeholder in body,
// in document order. Repeated descriptions are listed once per occurrence.
func Placeholders(body string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(body, -1)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m[1]
	}
	return out
}

// ResolveImages replaces every image placeholder in body with an inline
// <img> tag, or removes it when its image could not be produced. Requests
// run concurrently and are not cancelled when ctx is; each occurrence is
// rendered on its own, even when two placeholders share a description.
func ResolveImages(ctx context.Context, body string, images ai.ImageGenerator) string {
	spans := placeholderPattern.FindAllStringSubmatchIndex(body, -1)
	if len(spans) == 0 {
		return body
	}

	ctx = context.WithoutCancel(ctx)
	tags := make([]string, len(spans))

	var g errgroup.Group
	for i, span := range spans {
		i := i
		description := body[span[2]:span[3]]
		g.Go(func() error {
			tags[i] = renderImage(ctx, images, description)
			return nil
		})
	}
	_ = g.Wait()

	var b strings.Builder
	b.Grow(len(body))
	last := 0
	for i, span := range spans {
		b.WriteString(body[last:span[0]])
		b.WriteString(tags[i])
		last = span[1]
	}
	b.WriteString(body[last:])
	return b.String()
}

func renderImage(ctx context.Context, images ai.ImageGenerator, description string) string {
	if images == nil {
		return ""
	}
	data, mime, err := images.GenerateImage(ctx, description)
	if err != nil {
		slog.Warn("image generation failed", "description", description, "error", err)
		return ""
	}
	if len(data) == 0 {
		slog.Warn("image generation returned no data", "description", description)
		return ""
	}
	return ImageTag(data, mime)
}

// ImageTag embeds data as a self-contained <img> element.
func ImageTag(data []byte, mime string) string {
	if mime == "" {
		mime = "image/png"
	}
	return `<img src="data:` + mime + `;base64,` + base64.StdEncoding.EncodeToString(data) +
		`" alt="Generated Image" style="` + imageStyle + `" />`
}
