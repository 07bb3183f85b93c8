// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"autoblog/internal/models"
)

// DefaultRecentLimit caps Recent when the caller passes a non-positive limit.
const DefaultRecentLimit = 20

// PublicationStore records posts published to Blogger.
type PublicationStore struct {
	db *sql.DB
}

// NewPublicationStore creates a new PublicationStore with the given database connection.
func NewPublicationStore(db *sql.DB) *PublicationStore {
	return &PublicationStore{db: db}
}

// Create inserts p, assigning its ID and PublishedAt when unset.
func (s *PublicationStore) Create(ctx context.Context, p *models.Publication) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.PublishedAt.IsZero() {
		p.PublishedAt = time.Now().UTC()
	}
	if p.Labels == nil {
		p.Labels = []string{}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO publications (id, blog_id, post_id, url, title, labels, is_draft, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, p.ID, p.BlogID, p.PostID, p.URL, p.Title, p.Labels, p.IsDraft, p.PublishedAt)
	if err != nil {
		return fmt.Errorf("create publication: %w", err)
	}
	return nil
}

// Recent returns the newest publications first.
func (s *PublicationStore) Recent(ctx context.Context, limit int) ([]models.Publication, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, blog_id, post_id, url, title, labels, is_draft, published_at
		FROM publications
		ORDER BY published_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list publications: %w", err)
	}
	defer rows.Close()

	// text[] needs pgx's scanner under database/sql.
	types := pgtype.NewMap()
	items := []models.Publication{}
	for rows.Next() {
		var p models.Publication
		if err := rows.Scan(
			&p.ID, &p.BlogID, &p.PostID, &p.URL, &p.Title,
			types.SQLScanner(&p.Labels), &p.IsDraft, &p.PublishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan publication: %w", err)
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
