package services

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/favfood/internal/common"
	"github.com/dmitrijs2005/favfood/internal/validation"
)

// profileDocument is the shape enforced on the profile collection. The
// three text keys must be present; empty strings are allowed.
type profileDocument struct {
	Nombre         *string `json:"nombre" validate:"required"`
	Apellido       *string `json:"apellido" validate:"required"`
	ComidaFavorita *string `json:"comidaFavorita" validate:"required"`
	Foto           *string `json:"foto,omitempty"`
}

// schemas maps a collection to a decoder of its expected shape.
var schemas = map[string]func() any{
	common.ProfileCollection: func() any { return &profileDocument{} },
}

// validateSchema checks body against the collection's schema, if one is
// registered.
func validateSchema(collection string, body json.RawMessage) error {
	newDoc, ok := schemas[collection]
	if !ok {
		return nil
	}
	doc := newDoc()
	if err := json.Unmarshal(body, doc); err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrorValidation, collection, err)
	}
	if err := validation.Default().Struct(doc); err != nil {
		return validationError(err)
	}
	return nil
}
