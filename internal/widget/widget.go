// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package widget compiles product records into a self-contained HTML+CSS
// fragment (the "smart embed") that can be pasted into any blog post.
// Compilation is pure string synthesis: no network calls, no shared state.
package widget

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"autoblog/internal/brand"
	"autoblog/internal/models"
)

const (
	// BeginMarker and EndMarker wrap every compiled fragment so it can be
	// located and removed later.
	BeginMarker = "<!-- SMART EMBED -->"
	EndMarker   = "<!-- END EMBED -->"

	// namespacePrefix starts every generated CSS class namespace.
	namespacePrefix = "smart-embed-"

	// mobileBreakpoint is the max-width under which the compact rules apply.
	mobileBreakpoint = "480px"

	fallbackTitle       = "Product Title"
	fallbackDescription = "Product description..."
)

// Orientation controls how image and content are arranged inside a card.
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// Options are the caller-chosen layout settings for one compilation.
type Options struct {
	Orientation Orientation `json:"orientation"`
	Columns     int         `json:"columns"`
}

// DefaultOptions is a single column of vertical cards.
var DefaultOptions = Options{Orientation: Vertical, Columns: 1}

// Normalize maps unknown orientations to Vertical and clamps Columns to >= 1.
func (o Options) Normalize() Options {
	if o.Orientation != Horizontal {
		o.Orientation = Vertical
	}
	if o.Columns < 1 {
		o.Columns = 1
	}
	return o
}

// Compiler renders product widgets. The zero value is ready to use and
// draws a fresh random namespace for every call.
type Compiler struct {
	// Namespace returns the CSS class namespace for one run. Nil means a
	// random token.
	Namespace func() string
}

// NewNamespace returns a fresh, collision-resistant class namespace.
func NewNamespace() string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return namespacePrefix + token[:12]
}

// Compile renders records as one fragment: a <style> block followed by the
// card grid, wrapped in BeginMarker/EndMarker.
func (c Compiler) Compile(records []models.ProductRecord, opts Options) string {
	opts = opts.Normalize()

	ns := NewNamespace()
	if c.Namespace != nil {
		ns = c.Namespace()
	}

	var b strings.Builder
	b.WriteString(BeginMarker)
	writeStyle(&b, ns, opts, len(records))
	fmt.Fprintf(&b, `<div class="%s-container">`, ns)
	for _, rec := range records {
		writeCard(&b, ns, rec)
	}
	b.WriteString(`</div>`)
	b.WriteString(EndMarker)
	return b.String()
}

// gridColumns picks the grid template: one column for a single item or when
// the caller forces it, otherwise an auto-fitting multi-column grid.
func gridColumns(opts Options, n int) string {
	if n <= 1 || opts.Columns <= 1 {
		return "1fr"
	}
	return "repeat(auto-fit, minmax(280px, 1fr))"
}

func writeStyle(b *strings.Builder, ns string, opts Options, n int) {
	direction := "column"
	imageWidth := "100%"
	imageRatio := "1.91/1"
	if opts.Orientation == Horizontal {
		direction = "row"
		imageWidth = "160px"
		imageRatio = "1/1"
	}

	b.WriteString("<style>")
	fmt.Fprintf(b, ".%s-container{display:grid;grid-template-columns:%s;gap:20px;margin:30px 0;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,sans-serif}", ns, gridColumns(opts, n))
	fmt.Fprintf(b, ".%s-card{display:flex;flex-direction:%s;background:#ffffff;border:1px solid #e2e8f0;border-radius:12px;overflow:hidden;text-decoration:none;color:inherit;box-shadow:0 4px 6px -1px rgba(0,0,0,0.1);transition:transform 0.2s ease,box-shadow 0.2s ease}", ns, direction)
	fmt.Fprintf(b, ".%s-card:hover{transform:translateY(-3px);box-shadow:0 10px 15px -3px rgba(0,0,0,0.1)}", ns)
	fmt.Fprintf(b, ".%s-image-box{position:relative;width:%s;min-width:%s;aspect-ratio:%s;background:#f1f5f9}", ns, imageWidth, imageWidth, imageRatio)
	fmt.Fprintf(b, ".%s-img{width:100%%;height:100%%;object-fit:cover;display:block}", ns)
	fmt.Fprintf(b, ".%s-content{padding:16px;display:flex;flex-direction:column;justify-content:space-between;flex:1}", ns)
	fmt.Fprintf(b, ".%s-text-wrap{width:100%%;margin-bottom:8px}", ns)
	fmt.Fprintf(b, ".%s-tag{position:absolute;bottom:0;left:0;width:100%%;color:white;font-size:10px;font-weight:700;padding:4px 0;text-align:center;text-transform:uppercase;letter-spacing:0.5px;z-index:2}", ns)
	fmt.Fprintf(b, ".%s-title{margin:0 0 6px 0;font-size:16px;font-weight:700;color:#1e293b;line-height:1.4}", ns)
	fmt.Fprintf(b, ".%s-desc{margin:0;font-size:13px;color:#64748b;line-height:1.5;display:-webkit-box;-webkit-line-clamp:2;-webkit-box-orient:vertical;overflow:hidden}", ns)
	fmt.Fprintf(b, ".%s-btn{display:inline-block;margin-left:auto;font-size:12px;font-weight:700;text-transform:uppercase;text-decoration:none;transition:opacity 0.2s;margin-top:auto}", ns)
	fmt.Fprintf(b, ".%s-btn:hover{opacity:0.7;text-decoration:underline}", ns)
	fmt.Fprintf(b, "@media(max-width:%s){%s}", mobileBreakpoint, mobileRules(ns, opts.Orientation))
	b.WriteString("</style>")
}

// mobileRules narrows images and type under the breakpoint. Horizontal cards
// keep the side-by-side layout with a smaller square image; vertical cards
// stay stacked at full width.
func mobileRules(ns string, o Orientation) string {
	if o == Horizontal {
		return fmt.Sprintf(".%[1]s-card{flex-direction:row !important;align-items:stretch;min-height:100px}"+
			".%[1]s-image-box{width:110px !important;min-width:110px !important;aspect-ratio:1/1 !important;height:auto !important}"+
			".%[1]s-content{padding:10px 12px !important}"+
			".%[1]s-title{font-size:14px !important;margin-bottom:4px !important;line-height:1.3 !important}"+
			".%[1]s-desc{font-size:11px !important;-webkit-line-clamp:2 !important;line-height:1.4 !important;margin-bottom:6px !important}"+
			".%[1]s-btn{font-size:11px !important}", ns)
	}
	return fmt.Sprintf(".%[1]s-card{flex-direction:column !important}"+
		".%[1]s-image-box{width:100%% !important;aspect-ratio:1.91/1 !important}"+
		".%[1]s-title{font-size:15px !important}", ns)
}

func writeCard(b *strings.Builder, ns string, rec models.ProductRecord) {
	theme := brand.Classify(rec.DestinationURL)

	label := strings.TrimSpace(rec.CTALabel)
	if label == "" {
		label = theme.BadgeLabel
	}
	title := strings.TrimSpace(rec.Title)
	if title == "" {
		title = fallbackTitle
	}
	desc := strings.TrimSpace(rec.Description)
	if desc == "" {
		desc = fallbackDescription
	}

	href := safeURL(rec.DestinationURL, false)
	if href == "" {
		href = "#"
	}

	fmt.Fprintf(b, `<a href="%s" target="_blank" rel="noopener noreferrer" class="%s-card">`, html.EscapeString(href), ns)
	fmt.Fprintf(b, `<div class="%s-image-box">`, ns)
	if src := safeURL(rec.ImageURL, true); src != "" {
		fmt.Fprintf(b, `<img src="%s" alt="%s" class="%s-img"/>`, html.EscapeString(src), html.EscapeString(title), ns)
	}
	fmt.Fprintf(b, `<div class="%s-tag" style="background-color:%s">%s</div>`, ns, theme.AccentColor, html.EscapeString(label))
	b.WriteString(`</div>`)
	fmt.Fprintf(b, `<div class="%s-content"><div class="%s-text-wrap">`, ns, ns)
	fmt.Fprintf(b, `<h3 class="%s-title">%s</h3>`, ns, html.EscapeString(title))
	fmt.Fprintf(b, `<p class="%s-desc">%s</p>`, ns, html.EscapeString(desc))
	b.WriteString(`</div>`)
	fmt.Fprintf(b, `<div class="%s-btn" style="color:%s">%s &rarr;</div>`, ns, theme.AccentColor, html.EscapeString(theme.CTAText))
	b.WriteString(`</div></a>`)
}

// safeURL keeps http(s) URLs (and inline image data when allowImageData is
// set) and drops everything else, such as javascript: links.
func safeURL(raw string, allowImageData bool) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if allowImageData && strings.HasPrefix(strings.ToLower(raw), "data:image/") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return raw
	}
	return ""
}
