// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"autoblog/internal/blogger"
	"autoblog/internal/models"
	"autoblog/internal/store"
)

// bearerToken extracts the Blogger OAuth token from the Authorization
// header. It is passed through to Google and never stored.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// ListBlogs returns the blogs the token's owner can post to.
func (a *API) ListBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := a.publisher.ListBlogs(r.Context(), bearerToken(r))
	if err != nil {
		writeBloggerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blogs)
}

// publishRequest is the body of a publish call.
type publishRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Labels  []string `json:"labels"`
	IsDraft bool     `json:"is_draft"`
}

// PublishPost posts an article to a blog and records the publication.
// A failure to record is logged; the post itself already exists.
func (a *API) PublishPost(w http.ResponseWriter, r *http.Request) {
	blogID := chi.URLParam(r, "blogID")
	if blogID == "" {
		writeError(w, http.StatusBadRequest, "Blog id is required.")
		return
	}

	var req publishRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	labels := cleanLabels(req.Labels)
	if msg := validatePost(req.Title, req.Content, labels); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	post := blogger.Post{
		Title:   strings.TrimSpace(req.Title),
		Content: req.Content,
		Labels:  labels,
		IsDraft: req.IsDraft,
	}
	result, err := a.publisher.Publish(r.Context(), bearerToken(r), blogID, post)
	if err != nil {
		writeBloggerError(w, err)
		return
	}

	pub := &models.Publication{
		ID:          uuid.New(),
		BlogID:      blogID,
		PostID:      result.ID,
		URL:         result.URL,
		Title:       result.Title,
		Labels:      labels,
		IsDraft:     req.IsDraft,
		PublishedAt: time.Now().UTC(),
	}
	if pub.Title == "" {
		pub.Title = post.Title
	}
	a.recordPublication(r.Context(), pub)

	slog.Info("post published", "blog_id", blogID, "post_id", result.ID, "draft", req.IsDraft)
	writeJSON(w, http.StatusCreated, result)
}

// recordPublication writes the publication log entry, ignoring client
// disconnects.
func (a *API) recordPublication(parent context.Context, p *models.Publication) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), 5*time.Second)
	defer cancel()
	if err := a.publications.Create(ctx, p); err != nil {
		slog.Warn("record publication failed", "post_id", p.PostID, "error", err)
	}
}

// ListPublications returns the most recent publications, newest first.
func (a *API) ListPublications(w http.ResponseWriter, r *http.Request) {
	limit := store.DefaultRecentLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 100.")
			return
		}
		limit = n
	}

	pubs, err := a.publications.Recent(r.Context(), limit)
	if err != nil {
		slog.Error("list publications failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not load publications.")
		return
	}
	writeJSON(w, http.StatusOK, pubs)
}

// writeBloggerError maps Blogger client errors to responses. Auth failures
// keep their status so the frontend can prompt for a new login.
func writeBloggerError(w http.ResponseWriter, err error) {
	if errors.Is(err, blogger.ErrMissingToken) {
		writeError(w, http.StatusUnauthorized, "Sign in with Google to use Blogger.")
		return
	}
	var apiErr *blogger.APIError
	if errors.As(err, &apiErr) {
		status := http.StatusBadGateway
		if apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden {
			status = apiErr.StatusCode
		}
		writeError(w, status, apiErr.Message)
		return
	}
	slog.Error("blogger request failed", "error", err)
	writeError(w, http.StatusBadGateway, "Could not reach Blogger.")
}
