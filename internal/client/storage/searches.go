package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/dishcovery/dishcovery/internal/dbx"
	"github.com/google/uuid"
)

// SearchRepository records the queries the user has searched for, backing
// the "recent searches" view shown when the search box is empty.
type SearchRepository struct {
	db dbx.DBTX
}

func NewSearchRepository(db dbx.DBTX) *SearchRepository {
	return &SearchRepository{db: db}
}

// Record stores a search query. Re-searching an existing query bumps its
// timestamp so it moves back to the top of the recent list.
func (r *SearchRepository) Record(ctx context.Context, query string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO recent_searches (id, query, created_at) VALUES (?, ?, ?)
		ON CONFLICT(query) DO UPDATE SET created_at = excluded.created_at
	`, uuid.NewString(), query, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to record search %q: %w", query, err)
	}
	return nil
}

// Recent returns up to limit queries, most recent first.
func (r *SearchRepository) Recent(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT query FROM recent_searches ORDER BY created_at DESC, query LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent searches: %w", err)
	}
	defer rows.Close()

	var queries []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, fmt.Errorf("failed to scan search row: %w", err)
		}
		queries = append(queries, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate search rows: %w", err)
	}

	return queries, nil
}

// Clear wipes the search history.
func (r *SearchRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM recent_searches`)
	if err != nil {
		return fmt.Errorf("failed to clear recent searches: %w", err)
	}
	return nil
}
