package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"terptickets/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentStore creates a PostgreSQL-backed DocumentStore. Records are
// stored as JSONB rows keyed by collection; the creation timestamp is
// assigned by the database at insert time.
func NewDocumentStore(db *sqlx.DB) port.DocumentStore {
	return &documentRepo{db: db}
}

func (r *documentRepo) Insert(ctx context.Context, collection string, record any) (string, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("documentRepo.Insert marshal: %w", err)
	}

	// created_at is left to the column default so the store, not the
	// caller, owns the creation timestamp.
	id := uuid.New()
	query := `INSERT INTO documents (id, collection, body) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, id, collection, body); err != nil {
		return "", fmt.Errorf("documentRepo.Insert: %w", err)
	}
	return id.String(), nil
}
