// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON HTTP handlers for autoblog. Handlers
// receive their collaborators through the API struct as small interfaces so
// tests can swap in fakes.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"autoblog/internal/ai"
	"autoblog/internal/blogger"
	"autoblog/internal/linkpreview"
	"autoblog/internal/models"
	"autoblog/internal/session"
)

// maxBodyBytes caps JSON request bodies. Widget fragments with inline
// images can be large, so this is generous.
const maxBodyBytes = 8 << 20

// Workspaces persists per-browser editing state. session.Store satisfies it.
type Workspaces interface {
	Resolve(w http.ResponseWriter, r *http.Request) (string, error)
	Get(ctx context.Context, id string) (*session.Workspace, error)
	Save(ctx context.Context, id string, ws *session.Workspace) error
	Lock(ctx context.Context, id string) (func(), error)
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// ArticleGenerator produces one article. article.Pipeline satisfies it.
type ArticleGenerator interface {
	Generate(ctx context.Context, params models.ArticleParameters) (models.GeneratedContent, error)
}

// Publisher posts to the user's blogs. blogger.Client satisfies it.
type Publisher interface {
	ListBlogs(ctx context.Context, token string) ([]blogger.Blog, error)
	Publish(ctx context.Context, token, blogID string, post blogger.Post) (*blogger.PostResult, error)
}

// PreviewFetcher reads OpenGraph metadata. linkpreview.Fetcher satisfies it.
type PreviewFetcher interface {
	Fetch(ctx context.Context, rawURL string) (linkpreview.Preview, error)
	Refresh(ctx context.Context, rawURL string) (linkpreview.Preview, error)
}

// PreviewCache is the shared link-preview cache. cache.PreviewCache
// satisfies it.
type PreviewCache interface {
	InvalidateAll(ctx context.Context)
}

// MetadataSuggester proposes card copy. ai.MetadataGenerator satisfies it.
type MetadataSuggester interface {
	Generate(ctx context.Context, title string) ai.ProductMetadata
}

// PublicationLog records and lists publications. store.PublicationStore
// satisfies it.
type PublicationLog interface {
	Create(ctx context.Context, p *models.Publication) error
	Recent(ctx context.Context, limit int) ([]models.Publication, error)
}

// Providers exposes the text provider registry. ai.Registry satisfies it.
type Providers interface {
	Available() []string
	ActiveName() string
	SetActive(name string) error
}

// Deps bundles the collaborators of the API handlers.
type Deps struct {
	Workspaces   Workspaces
	Articles     ArticleGenerator
	Publisher    Publisher
	Previews     PreviewFetcher
	PreviewCache PreviewCache
	Metadata     MetadataSuggester
	Publications PublicationLog
	Providers    Providers
}

// API groups all HTTP handlers and their dependencies.
type API struct {
	workspaces   Workspaces
	articles     ArticleGenerator
	publisher    Publisher
	previews     PreviewFetcher
	previewCache PreviewCache
	metadata     MetadataSuggester
	publications PublicationLog
	providers    Providers
}

// NewAPI creates the handler group.
func NewAPI(d Deps) *API {
	return &API{
		workspaces:   d.Workspaces,
		articles:     d.Articles,
		publisher:    d.Publisher,
		previews:     d.Previews,
		previewCache: d.PreviewCache,
		metadata:     d.Metadata,
		publications: d.Publications,
		providers:    d.Providers,
	}
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// writeError sends {"error": msg}. msg must be safe to show to the user.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON reads the request body into dst. An empty body leaves dst
// untouched when allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}
