// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package brand

import "testing"

func TestClassifyKnownDomains(t *testing.T) {
	tests := []struct {
		url       string
		wantBadge string
		wantColor string
	}{
		{"https://shopee.co.id/item/1", "SHOPEE", "#ee4d2d"},
		{"https://www.tokopedia.com/shop/p", "TOKOPEDIA", "#42b549"},
		{"https://vt.tiktok.com/abc", "TIKTOK", "#000000"},
		{"https://www.youtube.com/watch?v=1", "VIDEO", "#ff0000"},
		{"https://instagram.com/p/x", "INSTAGRAM", "#d62976"},
		{"https://wa.whatsapp.com/send", "WHATSAPP", "#25D366"},
		{"HTTPS://SHOPEE.SG/Item", "SHOPEE", "#ee4d2d"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got := Classify(tt.url)
			if got.BadgeLabel != tt.wantBadge {
				t.Errorf("BadgeLabel: got %q, want %q", got.BadgeLabel, tt.wantBadge)
			}
			if got.AccentColor != tt.wantColor {
				t.Errorf("AccentColor: got %q, want %q", got.AccentColor, tt.wantColor)
			}
			if got.CTAText == "" {
				t.Error("CTAText is empty")
			}
		})
	}
}

// TestClassifyFirstMatchWins checks table order when a host matches
// more than one entry.
func TestClassifyFirstMatchWins(t *testing.T) {
	got := Classify("https://shopee-on-youtube.example.com/")
	if got.BadgeLabel != "SHOPEE" {
		t.Errorf("got %q, want SHOPEE", got.BadgeLabel)
	}
}

// TestClassifyTotal verifies that garbage input falls back to the default
// theme and never panics.
func TestClassifyTotal(t *testing.T) {
	inputs := []string{
		"",
		"not a url",
		"shopee.co.id/item/1", // no scheme, no hostname
		"://",
		"http://[::1",
		"%zz",
		"javascript:alert(1)",
		"https://example.com/shopee",
		"mailto:someone@example.com",
		"\x00\x01",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			got := Classify(in)
			if got != Default {
				t.Errorf("Classify(%q) = %+v, want Default", in, got)
			}
		})
	}
}

func TestDefaultTheme(t *testing.T) {
	if Default.AccentColor != "#64748b" {
		t.Errorf("AccentColor: got %q", Default.AccentColor)
	}
	if Default.BadgeLabel != "RECOMMENDED" {
		t.Errorf("BadgeLabel: got %q", Default.BadgeLabel)
	}
	if Default.CTAText != "View Details" {
		t.Errorf("CTAText: got %q", Default.CTAText)
	}
}
