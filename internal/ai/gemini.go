// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	geminiDefaultBaseURL    = "https://generativelanguage.googleapis.com"
	GeminiDefaultModel      = "gemini-2.5-flash"
	GeminiDefaultImageModel = "gemini-2.5-flash-image"

	// imageAspectRatio is a landscape frame suited to blog headers.
	imageAspectRatio = "16:9"
)

// Gemini talks to the Google Gemini REST API
// (POST /v1beta/models/{model}:generateContent) for both text and images.
type Gemini struct {
	config      ProviderConfig
	client      *http.Client
	imageClient *http.Client
}

// NewGemini creates a Gemini client. The API key is required.
func NewGemini(cfg ProviderConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini", ErrMissingAPIKey)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = geminiDefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = GeminiDefaultModel
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = GeminiDefaultImageModel
	}
	return &Gemini{
		config:      cfg,
		client:      &http.Client{Timeout: 90 * time.Second},
		imageClient: &http.Client{Timeout: 120 * time.Second},
	}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) endpoint(model string) string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.config.BaseURL, model)
}

func (g *Gemini) headers() map[string]string {
	return map[string]string{"x-goog-api-key": g.config.APIKey}
}

// Generate sends prompt to the text model with the given sampling options.
func (g *Gemini) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	body := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfigFrom(opts),
	}

	respBody, err := postJSON(ctx, g.client, "gemini", g.endpoint(g.config.Model), g.headers(), body)
	if err != nil {
		return "", err
	}

	var result geminiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("gemini unmarshal: %w", err)
	}
	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("gemini: no candidates returned")
	}

	// Long answers may be split across several text parts.
	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		text += part.Text
	}
	if text == "" {
		return "", fmt.Errorf("gemini: no text in response")
	}
	return text, nil
}

// GenerateImage renders prompt with the image model at a 16:9 aspect ratio
// and returns the decoded bytes and their MIME type.
func (g *Gemini) GenerateImage(ctx context.Context, prompt string) ([]byte, string, error) {
	body := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: &geminiGenerationConfig{
			ResponseModalities: []string{"IMAGE", "TEXT"},
			ImageConfig:        &geminiImageConfig{AspectRatio: imageAspectRatio},
		},
	}

	respBody, err := postJSON(ctx, g.imageClient, "gemini image", g.endpoint(g.config.ImageModel), g.headers(), body)
	if err != nil {
		return nil, "", err
	}

	var result geminiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, "", fmt.Errorf("gemini image unmarshal: %w", err)
	}

	for _, c := range result.Candidates {
		for _, part := range c.Content.Parts {
			if part.InlineData == nil || part.InlineData.Data == "" {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return nil, "", fmt.Errorf("gemini image decode base64: %w", err)
			}
			mime := part.InlineData.MimeType
			if mime == "" {
				mime = "image/png"
			}
			return data, mime, nil
		}
	}
	return nil, "", fmt.Errorf("gemini image: no image data in response")
}

func geminiGenerationConfigFrom(opts Options) *geminiGenerationConfig {
	cfg := &geminiGenerationConfig{
		TopK:            opts.TopK,
		TopP:            opts.TopP,
		MaxOutputTokens: opts.MaxTokens,
	}
	if opts.Temperature > 0 {
		t := opts.Temperature
		cfg.Temperature = &t
	}
	if opts.JSON {
		cfg.ResponseMIMEType = "application/json"
	}
	return cfg
}

// --- Gemini API types ---

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiImageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature        *float64           `json:"temperature,omitempty"`
	TopK               int                `json:"topK,omitempty"`
	TopP               float64            `json:"topP,omitempty"`
	MaxOutputTokens    int                `json:"maxOutputTokens,omitempty"`
	ResponseMIMEType   string             `json:"responseMimeType,omitempty"`
	ResponseModalities []string           `json:"responseModalities,omitempty"`
	ImageConfig        *geminiImageConfig `json:"imageConfig,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}
