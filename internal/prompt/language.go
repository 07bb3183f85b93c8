// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package prompt

import "strings"

// Language holds every piece of instructional text the article template
// embeds, so a single switch changes the whole prompt.
type Language struct {
	Name           string
	Directive      string
	Role           string
	Task           string
	ConfigHeading  string
	TargetLabel    string
	VisualLabel    string
	VisualNote     string
	InputHeading   string
	TopicLabel     string
	KeywordLabel   string
	LocationLabel  string
	ToneLabel      string
	StyleLabel     string
	StylingHeading string
	InlineCSS      string
	RuleLabels     map[RuleKind]string
	WidgetHeading  string
	WidgetRules    []string
	ImageHeading   string
	ImageRules     []string
	OutputHeading  string
	OutputIntro    string
	TitleHint      string
	ContentHint    string
	ExecuteHeading string
	ExecutePrefix  string
}

var english = Language{
	Name:           "English",
	Directive:      "Write this article entirely in fluent, professional English.",
	Role:           "Role: You are a Senior SEO Content Scientist and Front-End Engineer.",
	Task:           "Task: Generate a high-quality blog post compatible with Blogger/Blogspot.",
	ConfigHeading:  "CRITICAL CONFIGURATION:",
	TargetLabel:    "TARGET LANGUAGE",
	VisualLabel:    "VISUAL STYLE",
	VisualNote:     "Strictly adhere to the CSS rules below",
	InputHeading:   "INPUT PARAMETERS:",
	TopicLabel:     "Topic",
	KeywordLabel:   "Keyword",
	LocationLabel:  "Location Context",
	ToneLabel:      "Tone",
	StyleLabel:     "Content Style",
	StylingHeading: "STYLING RULES (INLINE CSS MANDATORY):",
	InlineCSS:      "You must inject inline 'style=\"...\"' attributes into every HTML tag.",
	RuleLabels: map[RuleKind]string{
		RuleContainer:   "Container/Wrapper",
		RuleHeaders:     "Headers (h2, h3)",
		RuleParagraphs:  "Paragraphs",
		RuleQuote:       "Quote / Intermezzo",
		RuleHighlight:   "Highlight / Sub-point",
		RuleKeyTakeaway: "Key Takeaway / Conclusion Box",
	},
	WidgetHeading: "PRODUCT WIDGET PLACEMENT:",
	WidgetRules: []string{
		"A product widget will be embedded into this article.",
		"You MUST write the exact token " + WidgetToken + " exactly ONCE in the HTML body.",
		"Place it on its own line after the introduction and before the conclusion.",
		"Do not describe, wrap, or style the token.",
	},
	ImageHeading: "IMAGE PLACEHOLDER PROTOCOL:",
	ImageRules: []string{
		"DO NOT generate <img> tags with URLs.",
		"Instead, generate exactly TWO (2) placeholders where images should be.",
		"FORMAT: " + ImagePrefix + "<detailed_english_description>" + ImageSuffix,
		"If the prompt describes a woman, explicitly add \"Muslim woman wearing Syari Hijab\".",
	},
	OutputHeading:  "OUTPUT STRUCTURE (STRICT FORMATTING):",
	OutputIntro:    "You MUST return the response in two distinct parts using the following separators:",
	TitleHint:      "Write the catchy SEO Title here, plain text no HTML tags",
	ContentHint:    "Write the HTML Body here. DO NOT include <html>, <head>, or <body> tags. Wrap in a main <div> with container styles.",
	ExecuteHeading: "EXECUTE:",
	ExecutePrefix:  "Write the article now in",
}

var indonesian = Language{
	Name:           "Bahasa Indonesia (Indonesian)",
	Directive:      "Wajib menulis ARTIKEL INI SEPENUHNYA DALAM BAHASA INDONESIA yang baku dan natural.",
	Role:           "Peran: Anda adalah Senior SEO Content Scientist sekaligus Front-End Engineer.",
	Task:           "Tugas: Buat artikel blog berkualitas tinggi yang kompatibel dengan Blogger/Blogspot.",
	ConfigHeading:  "KONFIGURASI PENTING:",
	TargetLabel:    "BAHASA TARGET",
	VisualLabel:    "GAYA VISUAL",
	VisualNote:     "Patuhi aturan CSS di bawah ini dengan ketat",
	InputHeading:   "PARAMETER MASUKAN:",
	TopicLabel:     "Topik",
	KeywordLabel:   "Kata Kunci",
	LocationLabel:  "Konteks Lokasi",
	ToneLabel:      "Nada",
	StyleLabel:     "Gaya Konten",
	StylingHeading: "ATURAN GAYA (CSS INLINE WAJIB):",
	InlineCSS:      "Anda wajib menyisipkan atribut 'style=\"...\"' inline pada setiap tag HTML.",
	RuleLabels: map[RuleKind]string{
		RuleContainer:   "Kontainer/Pembungkus",
		RuleHeaders:     "Judul (h2, h3)",
		RuleParagraphs:  "Paragraf",
		RuleQuote:       "Kutipan / Intermezo",
		RuleHighlight:   "Sorotan / Sub-poin",
		RuleKeyTakeaway: "Kotak Poin Penting / Kesimpulan",
	},
	WidgetHeading: "PENEMPATAN WIDGET PRODUK:",
	WidgetRules: []string{
		"Sebuah widget produk akan disisipkan ke dalam artikel ini.",
		"Anda WAJIB menulis token " + WidgetToken + " persis SATU KALI di dalam body HTML.",
		"Letakkan di barisnya sendiri setelah pendahuluan dan sebelum kesimpulan.",
		"Jangan menjelaskan, membungkus, atau memberi gaya pada token tersebut.",
	},
	ImageHeading: "PROTOKOL PLACEHOLDER GAMBAR:",
	ImageRules: []string{
		"JANGAN membuat tag <img> dengan URL.",
		"Sebagai gantinya, buat tepat DUA (2) placeholder di posisi gambar.",
		"FORMAT: " + ImagePrefix + "<detailed_english_description>" + ImageSuffix + " (deskripsi tetap dalam bahasa Inggris)",
		"Jika deskripsi menggambarkan perempuan, tambahkan secara eksplisit \"Muslim woman wearing Syari Hijab\".",
	},
	OutputHeading:  "STRUKTUR OUTPUT (FORMAT KETAT):",
	OutputIntro:    "Anda WAJIB mengembalikan respons dalam dua bagian terpisah menggunakan pemisah berikut:",
	TitleHint:      "Tulis Judul SEO yang menarik di sini, teks biasa tanpa tag HTML",
	ContentHint:    "Tulis Body HTML di sini. JANGAN sertakan tag <html>, <head>, atau <body>. Bungkus dengan satu <div> utama berisi gaya kontainer.",
	ExecuteHeading: "EKSEKUSI:",
	ExecutePrefix:  "Tulis artikelnya sekarang dalam",
}

// localMarkers are exact location values that select the local language.
var localMarkers = []string{"Indonesia", "Jakarta", "Bali", "Surabaya"}

// IsLocalLanguage reports whether location selects the Indonesian branch:
// an exact marker match, or any location containing "indonesia".
func IsLocalLanguage(location string) bool {
	for _, m := range localMarkers {
		if location == m {
			return true
		}
	}
	return strings.Contains(strings.ToLower(location), "indonesia")
}

// LanguageFor returns the language pack selected by location.
func LanguageFor(location string) Language {
	if IsLocalLanguage(location) {
		return indonesian
	}
	return english
}
