package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/FishBot_Go/internal/catalog"
)

// LoadCatalog validates and indexes the static game catalog. An empty path
// selects the catalog embedded in the binary.
func LoadCatalog(path string) (*catalog.Catalog, error) {
	loader, err := catalog.NewLoader()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgLoadCatalog, err)
	}
	cat, err := loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgLoadCatalog, err)
	}

	source := path
	if source == "" {
		source = "embedded"
	}
	slog.Info(LogMsgCatalogLoaded, "source", source)
	return cat, nil
}
