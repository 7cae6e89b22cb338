package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/favfood/internal/common"
	"github.com/dmitrijs2005/favfood/internal/logging"
	"github.com/dmitrijs2005/favfood/internal/server/blobstore"
	"github.com/dmitrijs2005/favfood/internal/server/cache"
	"github.com/dmitrijs2005/favfood/internal/server/config"
	"github.com/dmitrijs2005/favfood/internal/server/models"
	"github.com/dmitrijs2005/favfood/internal/server/repositories/repomanager"
)

// DocumentService reads and writes owner-scoped JSON documents.
//
// Reads go cache -> database -> blob store; writes go blob store ->
// database -> cache. Cache and blob-cleanup failures are logged, never
// returned: the database is the source of truth.
type DocumentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       cache.DocumentCache
	blobs       blobstore.Store
	blobFields  []string
	logger      logging.Logger
}

// NewDocumentService wires the service. c may be cache.Nop{}; a nil blobs
// store keeps every field inline.
func NewDocumentService(db *sql.DB, m repomanager.RepositoryManager, c cache.DocumentCache, blobs blobstore.Store, cfg *config.Config, l logging.Logger) *DocumentService {
	if c == nil {
		c = cache.Nop{}
	}
	return &DocumentService{
		db:          db,
		repomanager: m,
		cache:       c,
		blobs:       blobs,
		blobFields:  cfg.BlobFields,
		logger:      l.With("module", "documents"),
	}
}

// Read returns the body of (collection, id). Documents owned by someone else
// are reported as common.ErrorNotFound.
func (s *DocumentService) Read(ctx context.Context, ownerID, collection, id string) (json.RawMessage, error) {
	if err := checkAddress(collection, id); err != nil {
		return nil, err
	}

	if doc, ok, err := s.cache.Get(ctx, collection, id); err != nil {
		s.logger.Warn(ctx, "cache read failed", "collection", collection, "id", id, "error", err)
	} else if ok {
		if doc.OwnerID != ownerID {
			return nil, common.ErrorNotFound
		}
		return doc.Body, nil
	}

	doc, err := s.repomanager.Documents(s.db).Get(ctx, collection, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error reading document: %w", err)
	}
	if doc.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}

	body, err := s.hydrate(ctx, doc)
	if err != nil {
		return nil, err
	}
	doc.Body = body

	if err := s.cache.Set(ctx, doc); err != nil {
		s.logger.Warn(ctx, "cache write failed", "collection", collection, "id", id, "error", err)
	}
	return body, nil
}

// Write replaces (collection, id) with body, creating it when absent.
// body must be a JSON object and pass the collection's schema, if any.
// Overwriting another owner's document yields common.ErrorForbidden.
func (s *DocumentService) Write(ctx context.Context, ownerID, collection, id string, body json.RawMessage) error {
	if err := checkAddress(collection, id); err != nil {
		return err
	}

	fields, err := decodeObject(body)
	if err != nil {
		return err
	}
	if err := validateSchema(collection, body); err != nil {
		return err
	}

	repo := s.repomanager.Documents(s.db)

	var oldBlobs map[string]string
	existing, err := repo.Get(ctx, collection, id)
	switch {
	case err == nil:
		if existing.OwnerID != ownerID {
			return common.ErrorForbidden
		}
		oldBlobs = existing.Blobs
	case errors.Is(err, common.ErrorNotFound):
	default:
		return fmt.Errorf("error reading document: %w", err)
	}

	newBlobs, err := s.offload(ctx, collection, id, fields)
	if err != nil {
		return err
	}

	stored, err := json.Marshal(fields)
	if err != nil {
		s.dropBlobs(ctx, newBlobs)
		return fmt.Errorf("encode document: %w", err)
	}

	doc := &models.Document{Collection: collection, ID: id, OwnerID: ownerID, Body: stored, Blobs: newBlobs}
	if err := repo.Upsert(ctx, doc); err != nil {
		s.dropBlobs(ctx, newBlobs)
		if errors.Is(err, common.ErrorForbidden) {
			return common.ErrorForbidden
		}
		return fmt.Errorf("error writing document: %w", err)
	}

	s.dropBlobs(ctx, oldBlobs)

	doc.Body = body
	if err := s.cache.Set(ctx, doc); err != nil {
		s.logger.Warn(ctx, "cache write failed", "collection", collection, "id", id, "error", err)
		if err := s.cache.Delete(ctx, collection, id); err != nil {
			s.logger.Error(ctx, "cache invalidation failed", "collection", collection, "id", id, "error", err)
		}
	}
	return nil
}

// offload moves data-URI string fields listed in blobFields to the blob
// store, removing them from fields. Returns field -> object key.
func (s *DocumentService) offload(ctx context.Context, collection, id string, fields map[string]json.RawMessage) (map[string]string, error) {
	if s.blobs == nil {
		return nil, nil
	}

	out := map[string]string{}
	for _, name := range s.blobFields {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			continue
		}
		data, contentType, err := blobstore.ParseDataURI(value)
		if err != nil {
			continue
		}

		key := blobstore.Key(collection, id, name)
		if err := s.blobs.Put(ctx, key, data, contentType); err != nil {
			s.dropBlobs(ctx, out)
			return nil, fmt.Errorf("error storing %s: %w", name, err)
		}
		out[name] = key
		delete(fields, name)
	}
	return out, nil
}

// hydrate puts offloaded fields back into the stored body as data URIs.
func (s *DocumentService) hydrate(ctx context.Context, doc *models.Document) (json.RawMessage, error) {
	if len(doc.Blobs) == 0 {
		return doc.Body, nil
	}
	if s.blobs == nil {
		s.logger.Warn(ctx, "document references blobs but no blob store is configured", "collection", doc.Collection, "id", doc.ID)
		return doc.Body, nil
	}

	fields, err := decodeObject(doc.Body)
	if err != nil {
		return nil, fmt.Errorf("stored document is corrupt: %w", err)
	}
	for name, key := range doc.Blobs {
		data, contentType, err := s.blobs.Get(ctx, key)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				s.logger.Warn(ctx, "blob missing", "key", key)
				continue
			}
			return nil, fmt.Errorf("error loading %s: %w", name, err)
		}
		encoded, err := json.Marshal(blobstore.FormatDataURI(data, contentType))
		if err != nil {
			return nil, err
		}
		fields[name] = encoded
	}
	return json.Marshal(fields)
}

func (s *DocumentService) dropBlobs(ctx context.Context, blobs map[string]string) {
	if s.blobs == nil {
		return
	}
	for _, key := range blobs {
		if err := s.blobs.Delete(ctx, key); err != nil {
			s.logger.Warn(ctx, "blob cleanup failed", "key", key, "error", err)
		}
	}
}

func checkAddress(collection, id string) error {
	if collection == "" || id == "" {
		return fmt.Errorf("%w: collection and id are required", common.ErrorValidation)
	}
	return nil
}

func decodeObject(body json.RawMessage) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, fmt.Errorf("%w: body must be a JSON object", common.ErrorValidation)
	}
	return fields, nil
}
