package handlers

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"autoblog/internal/models"
)

// Validation limits for user-supplied fields.
const (
	maxTopicLen      = 500
	maxShortFieldLen = 100
	maxColorLen      = 32
	maxFieldLen      = 2_000
	maxPostTitleLen  = 300
	maxPostBodyLen   = 5_000_000
	maxLabels        = 20
	maxLabelLen      = 100
	maxColumns       = 4
)

// validateParams checks article parameters. The topic may be empty here:
// it is only required when generating.
func validateParams(p models.ArticleParameters) string {
	if utf8.RuneCountInString(p.Topic) > maxTopicLen {
		return fmt.Sprintf("Topic is too long (max %d characters).", maxTopicLen)
	}
	short := []struct {
		label, value string
	}{
		{"Location", p.Location},
		{"Tone", p.Tone},
		{"Content style", p.ContentStyle},
		{"Keyword", p.Keyword},
		{"Visual style", p.VisualStyle},
	}
	for _, f := range short {
		if utf8.RuneCountInString(f.value) > maxShortFieldLen {
			return fmt.Sprintf("%s is too long (max %d characters).", f.label, maxShortFieldLen)
		}
	}
	if len(p.TextColor) > maxColorLen || len(p.BackgroundColor) > maxColorLen {
		return "Color values are too long."
	}
	return ""
}

// validateFieldValue checks one product field edit.
func validateFieldValue(field models.ProductField, value string) string {
	if utf8.RuneCountInString(value) > maxFieldLen {
		return fmt.Sprintf("%s is too long (max %d characters).", field, maxFieldLen)
	}
	if field == models.FieldDestinationURL && value != "" {
		u, err := url.Parse(strings.TrimSpace(value))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "Destination URL must be an absolute http(s) link."
		}
	}
	return ""
}

// validatePost checks a publish request.
func validatePost(title, content string, labels []string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxPostTitleLen {
		return fmt.Sprintf("Title is too long (max %d characters).", maxPostTitleLen)
	}
	if strings.TrimSpace(content) == "" {
		return "Content is required."
	}
	if len(content) > maxPostBodyLen {
		return "Content is too large."
	}
	if len(labels) > maxLabels {
		return fmt.Sprintf("Too many labels (max %d).", maxLabels)
	}
	for _, l := range labels {
		if utf8.RuneCountInString(l) > maxLabelLen {
			return fmt.Sprintf("Label is too long (max %d characters).", maxLabelLen)
		}
	}
	return ""
}

// validateColumns bounds the widget column count.
func validateColumns(n int) string {
	if n > maxColumns {
		return fmt.Sprintf("At most %d columns are supported.", maxColumns)
	}
	return ""
}

// cleanLabels trims labels and drops empty ones.
func cleanLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
