// Package session keeps each browser's editing workspace in Valkey. A
// workspace is identified by a cookie and stored as JSON with a sliding TTL.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"autoblog/internal/models"
	"autoblog/internal/widget"
)

const (
	// CookieName is the name of the workspace cookie sent to the browser.
	CookieName = "ab_workspace"

	// DefaultTTL is how long an untouched workspace lives in Valkey.
	DefaultTTL = 24 * time.Hour

	// DefaultLockTTL bounds how long a generation can hold the workspace.
	DefaultLockTTL = 5 * time.Minute

	keyPrefix  = "workspace:"
	lockPrefix = "workspace-lock:"

	// idLength is the byte length of the random workspace ID (32 bytes = 64 hex chars).
	idLength = 32
)

// ErrBusy is returned by Lock while another generation holds the workspace.
var ErrBusy = errors.New("session: workspace is busy")

// Workspace is the per-browser state between requests: the article
// parameters (including the saved widget fragment) and the widget draft.
type Workspace struct {
	Params    models.ArticleParameters `json:"params"`
	Widget    widget.Draft             `json:"widget"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// NewWorkspace returns the state a first-time visitor starts with.
func NewWorkspace() *Workspace {
	return &Workspace{
		Params: models.DefaultArticleParameters(),
		Widget: widget.NewDraft(),
	}
}

// unlockScript deletes the lock only if it still holds our token, so an
// expired lock taken over by another request is left alone.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Store manages workspace lifecycle in Valkey.
type Store struct {
	client  *redis.Client
	ttl     time.Duration
	lockTTL time.Duration
	secure  bool
}

// NewStore creates a workspace store backed by the given Valkey client.
// secure marks the cookie Secure for deployments behind TLS.
func NewStore(client *redis.Client, secure bool) *Store {
	return &Store{
		client:  client,
		ttl:     DefaultTTL,
		lockTTL: DefaultLockTTL,
		secure:  secure,
	}
}

// Resolve returns the workspace id carried by the request cookie, or
// issues a new id and sets the cookie on w.
func (s *Store) Resolve(w http.ResponseWriter, r *http.Request) (string, error) {
	if cookie, err := r.Cookie(CookieName); err == nil && validID(cookie.Value) {
		return cookie.Value, nil
	}

	id, err := generateID()
	if err != nil {
		return "", fmt.Errorf("session resolve: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl.Seconds()),
	})
	return id, nil
}

// Get loads the workspace for id. An unknown or expired id yields a fresh
// workspace rather than an error.
func (s *Store) Get(ctx context.Context, id string) (*Workspace, error) {
	payload, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err == redis.Nil {
		return NewWorkspace(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	ws := NewWorkspace()
	if err := json.Unmarshal(payload, ws); err != nil {
		return nil, fmt.Errorf("session unmarshal: %w", err)
	}
	if len(ws.Widget.Products) == 0 {
		ws.Widget = widget.NewDraft()
	}
	return ws, nil
}

// Save stores ws under id and resets the TTL.
func (s *Store) Save(ctx context.Context, id string, ws *Workspace) error {
	ws.UpdatedAt = time.Now().UTC()

	payload, err := json.Marshal(ws)
	if err != nil {
		return fmt.Errorf("session marshal: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+id, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

// Lock marks the workspace as having a generation in flight. The returned
// function releases it; the lock also expires on its own after lockTTL.
func (s *Store) Lock(ctx context.Context, id string) (func(), error) {
	token, err := generateID()
	if err != nil {
		return nil, fmt.Errorf("session lock: %w", err)
	}

	ok, err := s.client.SetNX(ctx, lockPrefix+id, token, s.lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("session lock: %w", err)
	}
	if !ok {
		return nil, ErrBusy
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		unlockScript.Run(ctx, s.client, []string{lockPrefix + id}, token)
	}, nil
}

// Destroy removes the workspace from Valkey and clears the cookie.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil // No cookie, nothing to destroy
	}

	if err := s.client.Del(ctx, keyPrefix+cookie.Value).Err(); err != nil {
		return fmt.Errorf("session destroy: %w", err)
	}

	// Expire the cookie immediately.
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	return nil
}

// generateID creates a cryptographically random identifier.
func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func validID(s string) bool {
	if len(s) != idLength*2 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
