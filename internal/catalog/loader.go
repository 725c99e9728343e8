package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/osse101/FishBot_Go/internal/validation"
)

//go:embed data/catalog.json
var defaultCatalog []byte

//go:embed data/catalog.schema.json
var catalogSchema []byte

// Loader parses and validates catalog documents
type Loader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a Loader with the catalog schema registered
func NewLoader() (*Loader, error) {
	v := validation.NewSchemaValidator()
	if err := v.Register(SchemaName, catalogSchema); err != nil {
		return nil, fmt.Errorf("register catalog schema: %w", err)
	}
	return &Loader{schemaValidator: v}, nil
}

// LoadDefault builds the catalog shipped with the binary
func (l *Loader) LoadDefault() (*Catalog, error) {
	return l.Parse(defaultCatalog)
}

// LoadFile builds a catalog from a JSON file on disk
func (l *Loader) LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return l.Parse(data)
}

// Load uses path when set and the embedded catalog otherwise
func (l *Loader) Load(path string) (*Catalog, error) {
	if path == "" {
		return l.LoadDefault()
	}
	return l.LoadFile(path)
}

// Parse validates data against the schema then indexes it
func (l *Loader) Parse(data []byte) (*Catalog, error) {
	if err := l.schemaValidator.ValidateBytes(data, SchemaName); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return New(doc)
}

// MustDefault loads the embedded catalog and panics on failure. For tests and tooling.
func MustDefault() *Catalog {
	l, err := NewLoader()
	if err != nil {
		panic(err)
	}
	c, err := l.LoadDefault()
	if err != nil {
		panic(err)
	}
	return c
}
