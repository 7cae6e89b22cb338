// Package models defines the client-side data the CLI works with.
package models

import (
	"encoding/json"
	"fmt"
)

// Profile is the favorite-food profile stored in the "usuarios" collection
// under the owner's user id. It is always written as a whole.
type Profile struct {
	FirstName    string `json:"nombre"`
	LastName     string `json:"apellido"`
	FavoriteFood string `json:"comidaFavorita"`
	// Photo is a data URI (data:image/jpeg;base64,...) or empty.
	Photo string `json:"foto,omitempty"`
}

// Complete reports whether the three mandatory fields are non-empty.
func (p Profile) Complete() bool {
	return p.FirstName != "" && p.LastName != "" && p.FavoriteFood != ""
}

func (p Profile) Marshal() (json.RawMessage, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}
	return b, nil
}

// UnmarshalProfile decodes a stored profile document. Unknown keys are
// ignored and missing keys stay empty.
func UnmarshalProfile(body []byte) (*Profile, error) {
	var p Profile
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return &p, nil
}
