// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"autoblog/internal/brand"
	"autoblog/internal/models"
	"autoblog/internal/prompt"
	"autoblog/internal/widget"
)

// Brand classifies a destination URL. Unknown hosts get the default theme.
func (a *API) Brand(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, brand.Classify(r.URL.Query().Get("url")))
}

// compileRequest is a stateless widget compile.
type compileRequest struct {
	Products []models.ProductRecord `json:"products"`
	Options  widget.Options         `json:"options"`
}

// CompileWidget renders a fragment without touching the workspace.
func (a *API) CompileWidget(w http.ResponseWriter, r *http.Request) {
	var req compileRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if msg := validateColumns(req.Options.Columns); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	for _, rec := range req.Products {
		for _, f := range models.ProductFields {
			v, _ := rec.Get(f)
			if msg := validateFieldValue(f, v); msg != "" {
				writeError(w, http.StatusBadRequest, msg)
				return
			}
		}
	}
	writeJSON(w, http.StatusOK, widgetResponse{HTML: widget.Compiler{}.Compile(req.Products, req.Options)})
}

// Styles lists the visual style names the prompt builder knows.
func (a *API) Styles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"styles":  prompt.StyleNames(),
		"default": prompt.DefaultStyle,
	})
}

// providerState describes the text provider registry.
type providerState struct {
	Active    string   `json:"active"`
	Available []string `json:"available"`
}

// ListProviders reports which text providers are configured.
func (a *API) ListProviders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, providerState{
		Active:    a.providers.ActiveName(),
		Available: a.providers.Available(),
	})
}

// SetProvider switches the active text provider for the whole process.
func (a *API) SetProvider(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := a.providers.SetActive(req.Name); err != nil {
		writeError(w, http.StatusBadRequest, "That provider is not configured.")
		return
	}
	a.ListProviders(w, r)
}

// ClearPreviews empties the link-preview cache so every page is fetched
// again on next use.
func (a *API) ClearPreviews(w http.ResponseWriter, r *http.Request) {
	a.previewCache.InvalidateAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
