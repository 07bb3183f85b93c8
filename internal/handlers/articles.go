// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"autoblog/internal/article"
	"autoblog/internal/models"
	"autoblog/internal/session"
)

// generateRequest optionally overrides the workspace parameters.
type generateRequest struct {
	Params *models.ArticleParameters `json:"params"`
}

// GenerateArticle runs the generation pipeline for the caller's workspace.
// Only one generation per workspace may run at a time; a second request
// gets 409 while the first is in flight.
func (a *API) GenerateArticle(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Params != nil {
		if msg := validateParams(*req.Params); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
	}

	id, ws, ok := a.loadWorkspace(w, r)
	if !ok {
		return
	}

	unlock, err := a.workspaces.Lock(r.Context(), id)
	if errors.Is(err, session.ErrBusy) {
		writeError(w, http.StatusConflict, "An article is already being generated. Please wait for it to finish.")
		return
	}
	if err != nil {
		slog.Error("lock workspace failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not start generation.")
		return
	}
	defer unlock()

	params := ws.Params
	if req.Params != nil {
		params = *req.Params
		params.WidgetFragment = ws.Params.WidgetFragment
		ws.Params = params
		if !a.saveWorkspace(w, r, id, ws) {
			return
		}
	}

	start := time.Now()
	content, err := a.articles.Generate(r.Context(), params)
	switch {
	case errors.Is(err, article.ErrEmptyTopic):
		writeError(w, http.StatusBadRequest, "Please enter a topic.")
		return
	case errors.Is(err, article.ErrGeneration):
		slog.Error("article generation failed", "error", err)
		writeError(w, http.StatusBadGateway, "The writing model did not respond. Please try again.")
		return
	case err != nil:
		slog.Error("article generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Article generation failed.")
		return
	}

	slog.Info("article generated",
		"topic", params.Topic,
		"widget", params.HasWidget(),
		"duration", time.Since(start).String(),
	)
	writeJSON(w, http.StatusOK, content)
}
