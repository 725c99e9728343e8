package catalog

import "errors"

// SchemaName is the key the catalog schema is registered under
const SchemaName = "catalog.schema.json"

// Sentinel errors for catalog loading
var (
	ErrInvalidConfig   = errors.New("invalid catalog configuration")
	ErrDuplicateID     = errors.New("duplicate catalog id")
	ErrInvalidTemplate = errors.New("invalid catalog template")
)
