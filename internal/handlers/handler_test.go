// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides in-memory fakes for every collaborator and a
// router mirroring the production route table.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"autoblog/internal/ai"
	"autoblog/internal/blogger"
	"autoblog/internal/linkpreview"
	"autoblog/internal/models"
	"autoblog/internal/session"
)

const testWorkspaceID = "ws-test"

// fakeWorkspaces stores workspaces as JSON so unsaved edits never leak.
type fakeWorkspaces struct {
	mu        sync.Mutex
	data      map[string][]byte
	busy      bool
	saveErr   error
	destroyed bool
}

func newFakeWorkspaces() *fakeWorkspaces {
	return &fakeWorkspaces{data: make(map[string][]byte)}
}

func (f *fakeWorkspaces) Resolve(w http.ResponseWriter, r *http.Request) (string, error) {
	return testWorkspaceID, nil
}

func (f *fakeWorkspaces) Get(_ context.Context, id string) (*session.Workspace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ws := session.NewWorkspace()
	if raw, ok := f.data[id]; ok {
		if err := json.Unmarshal(raw, ws); err != nil {
			return nil, err
		}
	}
	return ws, nil
}

func (f *fakeWorkspaces) Save(_ context.Context, id string, ws *session.Workspace) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	raw, err := json.Marshal(ws)
	if err != nil {
		return err
	}
	f.data[id] = raw
	return nil
}

func (f *fakeWorkspaces) Lock(_ context.Context, _ string) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busy {
		return nil, session.ErrBusy
	}
	f.busy = true
	return func() {
		f.mu.Lock()
		f.busy = false
		f.mu.Unlock()
	}, nil
}

func (f *fakeWorkspaces) Destroy(_ context.Context, _ http.ResponseWriter, _ *http.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, testWorkspaceID)
	f.destroyed = true
	return nil
}

// stored returns the persisted workspace.
func (f *fakeWorkspaces) stored(t *testing.T) *session.Workspace {
	t.Helper()
	ws, err := f.Get(context.Background(), testWorkspaceID)
	if err != nil {
		t.Fatalf("loading stored workspace: %v", err)
	}
	return ws
}

// put seeds the persisted workspace.
func (f *fakeWorkspaces) put(t *testing.T, ws *session.Workspace) {
	t.Helper()
	if err := f.Save(context.Background(), testWorkspaceID, ws); err != nil {
		t.Fatalf("seeding workspace: %v", err)
	}
}

type fakeArticles struct {
	content    models.GeneratedContent
	err        error
	lastParams models.ArticleParameters
	calls      int
}

func (f *fakeArticles) Generate(_ context.Context, params models.ArticleParameters) (models.GeneratedContent, error) {
	f.calls++
	f.lastParams = params
	return f.content, f.err
}

type fakePublisher struct {
	blogs     []blogger.Blog
	result    *blogger.PostResult
	err       error
	lastToken string
	lastBlog  string
	lastPost  blogger.Post
}

func (f *fakePublisher) ListBlogs(_ context.Context, token string) ([]blogger.Blog, error) {
	f.lastToken = token
	if token == "" {
		return nil, blogger.ErrMissingToken
	}
	return f.blogs, f.err
}

func (f *fakePublisher) Publish(_ context.Context, token, blogID string, post blogger.Post) (*blogger.PostResult, error) {
	f.lastToken = token
	f.lastBlog = blogID
	f.lastPost = post
	if token == "" {
		return nil, blogger.ErrMissingToken
	}
	return f.result, f.err
}

type fakePreviews struct {
	preview   linkpreview.Preview
	err       error
	lastURL   string
	refreshed bool
	cleared   bool
}

func (f *fakePreviews) Fetch(_ context.Context, rawURL string) (linkpreview.Preview, error) {
	f.lastURL = rawURL
	return f.preview, f.err
}

func (f *fakePreviews) Refresh(ctx context.Context, rawURL string) (linkpreview.Preview, error) {
	f.refreshed = true
	return f.Fetch(ctx, rawURL)
}

func (f *fakePreviews) InvalidateAll(_ context.Context) {
	f.cleared = true
}

type fakeMetadata struct {
	meta      ai.ProductMetadata
	lastTitle string
}

func (f *fakeMetadata) Generate(_ context.Context, title string) ai.ProductMetadata {
	f.lastTitle = title
	return f.meta
}

type fakePublications struct {
	mu        sync.Mutex
	created   []models.Publication
	createErr error
	recent    []models.Publication
	lastLimit int
}

func (f *fakePublications) Create(_ context.Context, p *models.Publication) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, *p)
	return nil
}

func (f *fakePublications) Recent(_ context.Context, limit int) ([]models.Publication, error) {
	f.lastLimit = limit
	return f.recent, nil
}

type fakeProviders struct {
	active    string
	available []string
}

func (f *fakeProviders) Available() []string { sort.Strings(f.available); return f.available }
func (f *fakeProviders) ActiveName() string  { return f.active }
func (f *fakeProviders) SetActive(name string) error {
	for _, n := range f.available {
		if n == name {
			f.active = name
			return nil
		}
	}
	return errors.New("not available")
}

// testEnv holds the fakes behind one API.
type testEnv struct {
	workspaces   *fakeWorkspaces
	articles     *fakeArticles
	publisher    *fakePublisher
	previews     *fakePreviews
	metadata     *fakeMetadata
	publications *fakePublications
	providers    *fakeProviders
	router       chi.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		workspaces:   newFakeWorkspaces(),
		articles:     &fakeArticles{},
		publisher:    &fakePublisher{},
		previews:     &fakePreviews{},
		metadata:     &fakeMetadata{meta: ai.DefaultProductMetadata},
		publications: &fakePublications{},
		providers:    &fakeProviders{active: "gemini", available: []string{"gemini", "claude"}},
	}
	api := NewAPI(Deps{
		Workspaces:   env.workspaces,
		Articles:     env.articles,
		Publisher:    env.publisher,
		Previews:     env.previews,
		PreviewCache: env.previews,
		Metadata:     env.metadata,
		Publications: env.publications,
		Providers:    env.providers,
	})

	r := chi.NewRouter()
	r.Get("/api/brands", api.Brand)
	r.Get("/api/styles", api.Styles)
	r.Get("/api/providers", api.ListProviders)
	r.Put("/api/providers", api.SetProvider)
	r.Post("/api/widgets/compile", api.CompileWidget)
	r.Delete("/api/previews", api.ClearPreviews)
	r.Route("/api/workspace", func(r chi.Router) {
		r.Get("/", api.GetWorkspace)
		r.Delete("/", api.DeleteWorkspace)
		r.Put("/params", api.UpdateParams)
		r.Put("/layout", api.UpdateLayout)
		r.Post("/products", api.AddProduct)
		r.Patch("/products/{id}", api.UpdateProduct)
		r.Delete("/products/{id}", api.RemoveProduct)
		r.Post("/products/{id}/autofill", api.AutofillProduct)
		r.Post("/products/{id}/preview", api.PreviewProduct)
		r.Post("/widget", api.SaveWidget)
		r.Delete("/widget", api.ClearWidget)
	})
	r.Post("/api/articles", api.GenerateArticle)
	r.Get("/api/blogger/blogs", api.ListBlogs)
	r.Post("/api/blogger/blogs/{blogID}/posts", api.PublishPost)
	r.Get("/api/publications", api.ListPublications)
	env.router = r
	return env
}

// do sends a request with an optional JSON body through the router.
func (env *testEnv) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	return rr
}

// decode unmarshals a response body.
func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decoding %q: %v", rr.Body.String(), err)
	}
	return v
}

// errorMessage returns the "error" field of a failed response.
func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[errorResponse](t, rr).Error
}
