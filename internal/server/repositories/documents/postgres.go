// Package documents stores owner-scoped JSON documents in PostgreSQL jsonb
// columns.
package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/favfood/internal/common"
	"github.com/dmitrijs2005/favfood/internal/dbx"
	"github.com/dmitrijs2005/favfood/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, collection, id string) (*models.Document, error) {
	query := `
		SELECT owner_id, body, blobs, version, updated_at
		FROM documents
		WHERE collection = $1 AND id = $2
	`
	doc := &models.Document{Collection: collection, ID: id}
	var body, blobs []byte
	err := r.db.QueryRowContext(ctx, query, collection, id).
		Scan(&doc.OwnerID, &body, &blobs, &doc.Version, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	doc.Body = json.RawMessage(body)
	if len(blobs) > 0 {
		if err := json.Unmarshal(blobs, &doc.Blobs); err != nil {
			return nil, fmt.Errorf("decode blobs: %w", err)
		}
	}
	return doc, nil
}

// Upsert relies on the conflict clause filtering on owner_id: when the row
// belongs to another user nothing is returned.
func (r *PostgresRepository) Upsert(ctx context.Context, doc *models.Document) error {
	query := `
		INSERT INTO documents (collection, id, owner_id, body, blobs)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (collection, id)
		DO UPDATE SET
			body = EXCLUDED.body,
			blobs = EXCLUDED.blobs,
			version = documents.version + 1,
			updated_at = now()
			WHERE documents.owner_id = EXCLUDED.owner_id
		RETURNING version, updated_at
	`
	blobs := doc.Blobs
	if blobs == nil {
		blobs = map[string]string{}
	}
	blobsJSON, err := json.Marshal(blobs)
	if err != nil {
		return fmt.Errorf("encode blobs: %w", err)
	}
	body := doc.Body
	if len(body) == 0 {
		body = json.RawMessage(`{}`)
	}

	err = r.db.QueryRowContext(ctx, query, doc.Collection, doc.ID, doc.OwnerID, string(body), string(blobsJSON)).
		Scan(&doc.Version, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorForbidden
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
