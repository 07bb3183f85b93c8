// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Publication records one successful post to an external blog.
type Publication struct {
	ID          uuid.UUID `json:"id"`
	BlogID      string    `json:"blog_id"`
	PostID      string    `json:"post_id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Labels      []string  `json:"labels"`
	IsDraft     bool      `json:"is_draft"`
	PublishedAt time.Time `json:"published_at"`
}
