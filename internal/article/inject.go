// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package article

import (
	"regexp"
	"strings"

	"autoblog/internal/prompt"
)

// headingParagraph matches a closing h2/h3 and the first closing paragraph
// after it.
var headingParagraph = regexp.MustCompile(`(?is)</h[23]>.*?</p>`)

// InjectFragment embeds fragment into body at most once. The first widget
// token is replaced when present; otherwise the fragment goes right after
// the first heading/paragraph pair, or at the end of the body.
func InjectFragment(body, fragment string, hasWidget bool) string {
	if !hasWidget {
		return body
	}

	if strings.Contains(body, prompt.WidgetToken) {
		return strings.Replace(body, prompt.WidgetToken, fragment, 1)
	}

	if loc := headingParagraph.FindStringIndex(body); loc != nil {
		return body[:loc[1]] + fragment + body[loc[1]:]
	}

	return body + fragment
}

// dropExtraWidgetTokens removes every widget token after the first one, or
// all of them when keepFirst is false. It runs before InjectFragment so the
// fragment itself is never rewritten.
func dropExtraWidgetTokens(body string, keepFirst bool) string {
	i := strings.Index(body, prompt.WidgetToken)
	if i < 0 {
		return body
	}
	if !keepFirst {
		return strings.ReplaceAll(body, prompt.WidgetToken, "")
	}
	end := i + len(prompt.WidgetToken)
	return body[:end] + strings.ReplaceAll(body[end:], prompt.WidgetToken, "")
}
