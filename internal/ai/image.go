// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultImageStyle is prepended to every image description so generated
// pictures share one candid, natural look.
const DefaultImageStyle = "captured with iPhone 16 Pro, candid photography, natural lighting, " +
	"imperfect realistic texture, no studio setup, " +
	"if subject is female then she must be wearing modern muslim syari hijab, modest clothing,"

// ImageGenerator creates an image from a text prompt. It returns the raw
// bytes and the MIME type (e.g., "image/png").
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, string, error)
}

// ImageService decorates an ImageGenerator with the house style preamble and
// a token-bucket limit on outgoing requests.
type ImageService struct {
	next    ImageGenerator
	style   string
	limiter *rate.Limiter
}

// NewImageService wraps next. perMinute <= 0 disables the limit; an empty
// style disables the preamble.
func NewImageService(next ImageGenerator, style string, perMinute int) *ImageService {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	return &ImageService{
		next:    next,
		style:   strings.TrimSpace(style),
		limiter: rate.NewLimiter(limit, 2),
	}
}

// GenerateImage waits for a request slot, then renders the styled prompt.
func (s *ImageService) GenerateImage(ctx context.Context, description string) ([]byte, string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, "", err
	}
	return s.next.GenerateImage(ctx, s.Prompt(description))
}

// Prompt returns the full prompt sent for description.
func (s *ImageService) Prompt(description string) string {
	description = strings.TrimSpace(description)
	if s.style == "" {
		return description
	}
	return s.style + "\n" + description
}
