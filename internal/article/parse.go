// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package article

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"autoblog/internal/models"
	"autoblog/internal/prompt"
)

// UntitledTitle is used when the response carries no usable title.
const UntitledTitle = "Untitled Article"

var (
	titlePattern   = sentinelPattern(prompt.TitleStart, prompt.TitleEnd)
	contentPattern = sentinelPattern(prompt.ContentStart, prompt.ContentEnd)
	commentPattern = regexp.MustCompile(`<!--.*?-->`)

	fenceOpenHTML = regexp.MustCompile("(?i)^```html")
	fenceOpen     = regexp.MustCompile("^```")
	fenceClose    = regexp.MustCompile("```$")

	titlePolicy = bluemonday.StrictPolicy()
)

// sentinelPattern matches the shortest span between start and end, across
// newlines.
func sentinelPattern(start, end string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)` + regexp.QuoteMeta(start) + `(.*?)` + regexp.QuoteMeta(end))
}

// Parse splits a raw model response into a plain-text title and an HTML
// body. It never fails: a missing title pair yields UntitledTitle and a
// missing content pair yields the raw text with comment markers removed.
func Parse(raw string) models.GeneratedContent {
	title := UntitledTitle
	if m := titlePattern.FindStringSubmatch(raw); m != nil {
		title = plainTitle(m[1])
	}

	var body string
	if m := contentPattern.FindStringSubmatch(raw); m != nil {
		body = strings.TrimSpace(m[1])
	} else {
		body = strings.TrimSpace(commentPattern.ReplaceAllString(raw, ""))
	}

	return models.GeneratedContent{Title: title, HTMLBody: stripFences(body)}
}

// stripFences removes a code fence the model wrapped the body in.
func stripFences(body string) string {
	body = fenceOpenHTML.ReplaceAllLiteralString(body, "")
	body = fenceOpen.ReplaceAllLiteralString(body, "")
	body = fenceClose.ReplaceAllLiteralString(body, "")
	return strings.TrimSpace(body)
}

// plainTitle drops any markup the model put in the title.
func plainTitle(s string) string {
	s = strings.TrimSpace(html.UnescapeString(titlePolicy.Sanitize(s)))
	if s == "" {
		return UntitledTitle
	}
	return s
}
