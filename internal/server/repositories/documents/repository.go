package documents

import (
	"context"

	"github.com/dmitrijs2005/favfood/internal/server/models"
)

type Repository interface {
	// Get returns common.ErrorNotFound when (collection, id) is absent.
	Get(ctx context.Context, collection, id string) (*models.Document, error)

	// Upsert creates the document or replaces Body and Blobs of an existing
	// one owned by doc.OwnerID, bumping its version. A document owned by
	// someone else is left untouched and common.ErrorForbidden is returned.
	Upsert(ctx context.Context, doc *models.Document) error
}
