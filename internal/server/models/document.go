package models

import (
	"encoding/json"
	"time"
)

// Document is a JSON object addressed by (Collection, ID) and owned by one
// user. Blobs maps an offloaded top-level field of Body to its object
// storage key; the field itself is absent from the stored Body.
type Document struct {
	Collection string
	ID         string
	OwnerID    string
	Body       json.RawMessage
	Blobs      map[string]string
	Version    int64
	UpdatedAt  time.Time
}
