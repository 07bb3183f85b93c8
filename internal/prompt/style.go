// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package prompt

import "strings"

// RuleKind identifies which part of the article a CSS rule targets.
type RuleKind int

const (
	RuleContainer RuleKind = iota
	RuleHeaders
	RuleParagraphs
	RuleQuote
	RuleHighlight
	RuleKeyTakeaway
)

// Rule is one CSS directive block handed to the model.
type Rule struct {
	Kind RuleKind
	CSS  string
}

// Style is one entry of the visual style table. CSS may reference the
// caller's colors through the {text} and {background} tokens.
type Style struct {
	Name    string
	Heading string
	Rules   []Rule
}

// DefaultStyle is the entry unknown visual style names resolve to.
const DefaultStyle = "Minimalist"

var styles = map[string]Style{
	"AsriStyle": {
		Name:    "AsriStyle",
		Heading: "ASRI STYLE (CUSTOM)",
		Rules: []Rule{
			{RuleContainer, "color: {text}; background-color: {background}; padding: 20px; border-radius: 8px;"},
			{RuleHeaders, "color: #1e293b; font-family: sans-serif; font-weight: 700; margin-top: 30px;"},
			{RuleParagraphs, "line-height: 1.7; margin-bottom: 15px;"},
			{RuleQuote, "font-style: italic; color: #64748b; border-left: none; padding: 10px 0; display: block; margin: 20px 0;"},
			{RuleHighlight, "background-color: #f0f9ff; border-left: 5px solid #60a5fa; padding: 15px 20px; margin: 25px 0; border-radius: 0 8px 8px 0;"},
			{RuleKeyTakeaway, "background-color: #fffbeb; border: 1px dashed #fbbf24; padding: 20px; border-radius: 8px; margin-top: 40px; text-align: center;"},
		},
	},
	"Corporate": {
		Name:    "Corporate",
		Heading: "CORPORATE PROFESSIONAL",
		Rules: []Rule{
			{RuleContainer, "color: {text}; background-color: {background};"},
			{RuleHeaders, "color: #1e3a8a;"},
			{RuleParagraphs, "color: {text}; font-family: 'Arial', sans-serif;"},
			{RuleKeyTakeaway, "background-color: #eff6ff; border-left: 4px solid #2563eb;"},
		},
	},
	"Warm": {
		Name:    "Warm",
		Heading: "WARM EDITORIAL",
		Rules: []Rule{
			{RuleContainer, "color: {text}; background-color: {background};"},
			{RuleHeaders, "color: #78350f; font-family: 'Georgia', serif;"},
			{RuleParagraphs, "color: {text}; font-family: 'Georgia', serif;"},
			{RuleKeyTakeaway, "background-color: #fffbeb; border: 1px dashed #d97706; border-radius: 8px;"},
		},
	},
	"Vibrant": {
		Name:    "Vibrant",
		Heading: "VIBRANT & BOLD",
		Rules: []Rule{
			{RuleContainer, "color: {text}; background-color: {background};"},
			{RuleHeaders, "color: #dc2626; text-transform: uppercase; letter-spacing: 0.05em;"},
			{RuleParagraphs, "color: {text}; font-weight: 400;"},
			{RuleKeyTakeaway, "background-color: #fff1f2; border: 2px solid #e11d48;"},
		},
	},
	"Minimalist": {
		Name:    "Minimalist",
		Heading: "MINIMALIST MODERN",
		Rules: []Rule{
			{RuleContainer, "color: {text}; background-color: {background};"},
			{RuleHeaders, "color: #111827;"},
			{RuleParagraphs, "color: {text}; line-height: 1.8;"},
			{RuleKeyTakeaway, "background-color: #f9fafb; border: 1px solid #e5e7eb;"},
		},
	},
}

// ResolveStyle returns the table entry for name, or the Minimalist entry
// when name is not in the table. Matching is exact.
func ResolveStyle(name string) Style {
	if s, ok := styles[name]; ok {
		return s
	}
	return styles[DefaultStyle]
}

// StyleNames lists the table keys in display order.
func StyleNames() []string {
	return []string{"AsriStyle", "Corporate", "Warm", "Vibrant", "Minimalist"}
}

// Resolved returns the style's rules with color tokens substituted.
func (s Style) Resolved(textColor, backgroundColor string) []Rule {
	r := strings.NewReplacer("{text}", textColor, "{background}", backgroundColor)
	out := make([]Rule, len(s.Rules))
	for i, rule := range s.Rules {
		out[i] = Rule{Kind: rule.Kind, CSS: r.Replace(rule.CSS)}
	}
	return out
}
