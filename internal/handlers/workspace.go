// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"autoblog/internal/linkpreview"
	"autoblog/internal/models"
	"autoblog/internal/session"
	"autoblog/internal/widget"
)

// --- Workspace (widget editor) endpoints ---
//
// Every handler here loads the caller's workspace, applies one edit and
// saves it back. Concurrent edits from the same browser are last-write-wins.

// loadWorkspace resolves the workspace cookie and loads its state. It writes
// the error response itself and returns ok=false on failure.
func (a *API) loadWorkspace(w http.ResponseWriter, r *http.Request) (string, *session.Workspace, bool) {
	id, err := a.workspaces.Resolve(w, r)
	if err != nil {
		slog.Error("resolve workspace failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not start a workspace.")
		return "", nil, false
	}
	ws, err := a.workspaces.Get(r.Context(), id)
	if err != nil {
		slog.Error("load workspace failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not load your workspace.")
		return "", nil, false
	}
	return id, ws, true
}

// saveWorkspace stores ws and writes the error response on failure.
func (a *API) saveWorkspace(w http.ResponseWriter, r *http.Request, id string, ws *session.Workspace) bool {
	if err := a.workspaces.Save(r.Context(), id, ws); err != nil {
		slog.Error("save workspace failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not save your workspace.")
		return false
	}
	return true
}

// productID parses the {id} URL parameter.
func productID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product id.")
		return uuid.Nil, false
	}
	return id, true
}

// GetWorkspace returns the caller's full workspace.
func (a *API) GetWorkspace(w http.ResponseWriter, r *http.Request) {
	_, ws, ok := a.loadWorkspace(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ws)
}

// DeleteWorkspace discards the workspace and its cookie.
func (a *API) DeleteWorkspace(w http.ResponseWriter, r *http.Request) {
	if err := a.workspaces.Destroy(r.Context(), w, r); err != nil {
		slog.Error("destroy workspace failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not reset your workspace.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateParams replaces the article parameters. The saved widget fragment
// is owned by the widget endpoints and is kept as is.
func (a *API) UpdateParams(w http.ResponseWriter, r *http.Request) {
	var params models.ArticleParameters
	if err := decodeJSON(w, r, &params, false); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if msg := validateParams(params); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	id, ws, ok := a.loadWorkspace(w, r)
	if !ok {
		return
	}
	params.WidgetFragment = ws.Params.WidgetFragment
	ws.Params = params
	if !a.saveWorkspace(w, r, id, ws) {
		return
	}
	writeJSON(w, http.StatusOK, ws.Params)
}

// UpdateLayout sets the widget orientation and column count.
func (a *API) UpdateLayout(w http.ResponseWriter, r *http.Request) {
	var opts widget.Options
	if err := decodeJSON(w, r, &opts, false); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if msg := validateColumns(opts.Columns); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	id, ws, ok := a.loadWorkspace(w, r)
	if !ok {
		return
	}
	ws.Widget.Options = opts.Normalize()
	if !a.saveWorkspace(w, r, id, ws) {
		return
	}
	writeJSON(w, http.StatusOK, ws.Widget.Options)
}

// productInput is the editable part of a product record on creation.
type productInput struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	ImageURL       string `json:"image_url"`
	DestinationURL string `json:"destination_url"`
	CTALabel       string `json:"cta_label"`
	SiteName       string `json:"site_name"`
	Kind           string `json:"kind"`
}

// AddProduct appends a record. The body is optional; an empty body adds
// a blank card.
func (a *API) AddProduct(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if err := decodeJSON(w, r, &in, true); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	rec := models.ProductRecord{
		Title:          in.Title,
		Description:    in.Description,
		ImageURL:       in.ImageURL,
		DestinationURL: in.DestinationURL,
		CTALabel:       in.CTALabel,
		SiteName:       in.SiteName,
		Kind:           in.Kind,
	}
	for _, f := range models.ProductFields {
		v, _ := rec.Get(f)
		if msg := validateFieldValue(f, v); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
	}

	id, ws, ok := a.loadWorkspace(w, r)
	if !ok {
		return
	}
	rec = ws.Widget.Add(rec)
	if !a.saveWorkspace(w, r, id, ws) {
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// fieldUpdate sets one product field.
type fieldUpdate struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// UpdateProduct sets a single field of one record.
func (a *API) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	pid, ok := productID(w, r)
	if !ok {
		return
	}
	var in fieldUpdate
	if err := decodeJSON(w, r, &in, false); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	field, err := models.ParseProductField(in.Field)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown product field.")
		return
	}
	if msg := validateFieldValue(field, in.Value); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	id, ws, ok := a.loadWorkspace(w, r)
	if !ok {
		return
	}
	rec, err := ws.Widget.Update(pid, field, in.Value)
	if err != nil {
		writeDraftError(w, err)
		return
	}
	if !a.saveWorkspace(w, r, id, ws) {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// RemoveProduct deletes one record. Removing the only record clears it.
func (a *API) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	pid, ok := productID(w, r)
	if !ok {
		return
	}
	id, ws, ok := a.loadWorkspace(w, r)
	if !ok {
		return
	}
	if err := ws.Widget.Remove(pid); err != nil {
		writeDraftError(w, err)
		return
	}
	if !a.saveWorkspace(w, r, id, ws) {
		return
	}
	writeJSON(w, http.StatusOK, ws.Widget)
}

// AutofillProduct asks the metadata model for a description and CTA label
// based on the record title. Model failures fall back to default copy.
func (a *API) AutofillProduct(w http.ResponseWriter, r *http.Request) {
	pid, ok := productID(w, r)
	if !ok {
		return
	}
	id, ws, ok := a.loadWorkspace(w, r)
	if !ok {
		return
	}
	rec, err := ws.Widget.Find(pid)
	if err != nil {
		writeDraftError(w, err)
		return
	}
	if strings.TrimSpace(rec.Title) == "" {
		writeError(w, http.StatusBadRequest, "Add a product title first.")
		return
	}

	meta := a.metadata.Generate(r.Context(), rec.Title)
	rec.Description = meta.Description
	rec.CTALabel = meta.CTALabel
	out := *rec

	if !a.saveWorkspace(w, r, id, ws) {
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// previewInput optionally replaces the destination URL before fetching.
// Refresh skips the cached preview.
type previewInput struct {
	URL     string `json:"url"`
	Refresh bool   `json:"refresh"`
}

// PreviewProduct fills a record from its destination page's OpenGraph tags.
// A failed fetch keeps the record unchanged apart from the URL.
func (a *API) PreviewProduct(w http.ResponseWriter, r *http.Request) {
	pid, ok := productID(w, r)
	if !ok {
		return
	}
	var in previewInput
	if err := decodeJSON(w, r, &in, true); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if in.URL != "" {
		if msg := validateFieldValue(models.FieldDestinationURL, in.URL); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
	}

	id, ws, ok := a.loadWorkspace(w, r)
	if !ok {
		return
	}
	rec, err := ws.Widget.Find(pid)
	if err != nil {
		writeDraftError(w, err)
		return
	}
	if in.URL != "" {
		rec.DestinationURL = strings.TrimSpace(in.URL)
	}

	fetch := a.previews.Fetch
	if in.Refresh {
		fetch = a.previews.Refresh
	}
	preview, err := fetch(r.Context(), rec.DestinationURL)
	switch {
	case errors.Is(err, linkpreview.ErrUnsupportedURL):
		writeError(w, http.StatusBadRequest, "Set an http(s) destination URL first.")
		return
	case errors.Is(err, linkpreview.ErrBlockedAddress):
		writeError(w, http.StatusBadRequest, "The destination URL must point to a public website.")
		return
	case err != nil:
		slog.Warn("link preview failed", "url", rec.DestinationURL, "error", err)
	default:
		preview.Apply(rec)
	}
	out := *rec

	if !a.saveWorkspace(w, r, id, ws) {
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// widgetResponse carries a compiled fragment.
type widgetResponse struct {
	HTML string `json:"html"`
}

// SaveWidget compiles the draft and stores the fragment on the article
// parameters, replacing any earlier one.
func (a *API) SaveWidget(w http.ResponseWriter, r *http.Request) {
	id, ws, ok := a.loadWorkspace(w, r)
	if !ok {
		return
	}
	html := widget.Compiler{}.Compile(ws.Widget.Products, ws.Widget.Options)
	ws.Params.WidgetFragment = html
	if !a.saveWorkspace(w, r, id, ws) {
		return
	}
	writeJSON(w, http.StatusOK, widgetResponse{HTML: html})
}

// ClearWidget drops the saved fragment. The draft records are kept.
func (a *API) ClearWidget(w http.ResponseWriter, r *http.Request) {
	id, ws, ok := a.loadWorkspace(w, r)
	if !ok {
		return
	}
	ws.Params.WidgetFragment = ""
	if !a.saveWorkspace(w, r, id, ws) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeDraftError maps widget draft errors to responses.
func writeDraftError(w http.ResponseWriter, err error) {
	if errors.Is(err, widget.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "Product not found.")
		return
	}
	if errors.Is(err, models.ErrUnknownField) {
		writeError(w, http.StatusBadRequest, "Unknown product field.")
		return
	}
	slog.Error("widget draft edit failed", "error", err)
	writeError(w, http.StatusInternalServerError, "Could not update the product.")
}
