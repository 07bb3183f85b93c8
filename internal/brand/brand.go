// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package brand maps a destination URL to the marketplace or social network
// it points at, yielding the accent color and labels used by product cards.
package brand

import (
	"net/url"
	"strings"
)

// Theme is the presentation tuple derived from a destination URL.
// It is recomputed on every render and never persisted.
type Theme struct {
	AccentColor string `json:"accent_color"`
	BadgeLabel  string `json:"badge_label"`
	CTAText     string `json:"cta_text"`
}

// Default is the neutral theme for unknown or unparsable URLs.
var Default = Theme{
	AccentColor: "#64748b",
	BadgeLabel:  "RECOMMENDED",
	CTAText:     "View Details",
}

type rule struct {
	match string
	theme Theme
}

// rules is checked in order; the first hostname substring match wins.
var rules = []rule{
	{"shopee", Theme{AccentColor: "#ee4d2d", BadgeLabel: "SHOPEE", CTAText: "Buka Shopee"}},
	{"tokopedia", Theme{AccentColor: "#42b549", BadgeLabel: "TOKOPEDIA", CTAText: "Buka Tokopedia"}},
	{"tiktok", Theme{AccentColor: "#000000", BadgeLabel: "TIKTOK", CTAText: "Buka TikTok"}},
	{"youtube", Theme{AccentColor: "#ff0000", BadgeLabel: "VIDEO", CTAText: "Tonton Sekarang"}},
	{"instagram", Theme{AccentColor: "#d62976", BadgeLabel: "INSTAGRAM", CTAText: "Buka Instagram"}},
	{"whatsapp", Theme{AccentColor: "#25D366", BadgeLabel: "WHATSAPP", CTAText: "Chat Sekarang"}},
}

// Classify returns the theme for rawURL. It never fails: anything without a
// parsable hostname gets Default.
func Classify(rawURL string) Theme {
	host := hostname(rawURL)
	if host == "" {
		return Default
	}
	for _, r := range rules {
		if strings.Contains(host, r.match) {
			return r.theme
		}
	}
	return Default
}

// hostname extracts the lower-cased host, or "" when there is none.
func hostname(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
