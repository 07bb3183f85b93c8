// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// APIKeyHeader carries the shared API token.
const APIKeyHeader = "X-API-Key"

// RequireAPIToken rejects requests whose X-API-Key does not match the
// bcrypt hash. An empty hash disables the check (development only; config
// refuses it in production).
func RequireAPIToken(hash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if hash == "" {
			slog.Warn("API token check disabled: API_TOKEN_HASH is empty")
			return next
		}
		h := []byte(hash)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(APIKeyHeader)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "API token required")
				return
			}
			if err := bcrypt.CompareHashAndPassword(h, []byte(token)); err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid API token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
