// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai wraps the external generative services used by the article
// pipeline: text generation (Gemini, OpenAI, Claude), image generation
// (Gemini), and product metadata suggestions. Each provider speaks its own
// REST dialect over net/http; the Registry selects the active text provider.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
)

// ErrMissingAPIKey is returned when a provider is requested without credentials.
var ErrMissingAPIKey = errors.New("ai: missing API key")

// Options are sampling settings passed through to the provider. Zero values
// leave the provider default in place.
type Options struct {
	Temperature float64
	TopK        int
	TopP        float64
	MaxTokens   int
	// JSON asks the provider for a single JSON object as the response.
	JSON bool
}

// Provider generates text from a single prompt.
type Provider interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)

	// Name returns the provider identifier (e.g., "openai", "gemini").
	Name() string
}

// ProviderConfig holds the credentials and settings for a single provider.
type ProviderConfig struct {
	APIKey     string
	Model      string
	ImageModel string
	BaseURL    string
}

// APIError is a non-200 answer from a provider endpoint.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}

// postJSON sends body as JSON and returns the raw response body of a 200 answer.
func postJSON(ctx context.Context, client *http.Client, provider, url string, headers map[string]string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%s marshal: %w", provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", provider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s http: %w", provider, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s read body: %w", provider, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Provider: provider, StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return respBody, nil
}

// Registry holds the configured text providers and selects the active one.
// All methods are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	active    string
}

// NewRegistry creates a provider for every config with a non-empty API key.
// It fails with ErrMissingAPIKey when the active provider has no key, so a
// misconfigured process stops before serving any request.
func NewRegistry(active string, configs map[string]ProviderConfig) (*Registry, error) {
	r := &Registry{
		providers: make(map[string]Provider),
		active:    active,
	}

	for name, cfg := range configs {
		if cfg.APIKey == "" {
			continue
		}
		switch name {
		case "openai":
			r.Register(name, newOpenAI(cfg))
		case "gemini":
			g, err := NewGemini(cfg)
			if err != nil {
				return nil, err
			}
			r.Register(name, g)
		case "claude":
			r.Register(name, newClaude(cfg))
		default:
			return nil, fmt.Errorf("ai: unknown provider %q", name)
		}
	}

	if !r.HasProvider(active) {
		return nil, fmt.Errorf("%w for active provider %q", ErrMissingAPIKey, active)
	}
	return r, nil
}

// Generate calls the active provider.
func (r *Registry) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	p, err := r.Active()
	if err != nil {
		return "", err
	}
	return p.Generate(ctx, prompt, opts)
}

// Name reports the active provider, so a Registry can stand in for a Provider.
func (r *Registry) Name() string {
	return r.ActiveName()
}

// Active returns the currently active provider.
func (r *Registry) Active() (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[r.active]
	if !ok {
		return nil, fmt.Errorf("ai: no provider configured for %q", r.active)
	}
	return p, nil
}

// SetActive switches the active provider at runtime.
func (r *Registry) SetActive(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[name]; !ok {
		return fmt.Errorf("ai: provider %q is not available (no API key?)", name)
	}
	r.active = name
	return nil
}

// ActiveName returns the name of the currently active provider.
func (r *Registry) ActiveName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.active
}

// Available returns the sorted names of all configured providers.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds or replaces a provider.
func (r *Registry) Register(name string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = p
}

// HasProvider checks whether a named provider is configured.
func (r *Registry) HasProvider(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.providers[name]
	return ok
}
