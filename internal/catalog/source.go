package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/shinji-kodama/countrylist/internal/model"
)

//go:embed data/countries.jsonc
var embeddedDataset []byte

// Decode parses a JSON or JSONC array of country records.
func Decode(data []byte) ([]model.Country, error) {
	// Strip // and /* */ comments and trailing commas so hand-maintained
	// catalog files can be annotated.
	clean := jsonc.ToJSON(data)

	var countries []model.Country
	if err := json.Unmarshal(clean, &countries); err != nil {
		return nil, fmt.Errorf("failed to parse country data: %w", err)
	}
	return countries, nil
}

// EmbeddedSource serves the dataset compiled into the binary.
type EmbeddedSource struct{}

// Load decodes the bundled dataset.
func (EmbeddedSource) Load(ctx context.Context) ([]model.Country, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Decode(embeddedDataset)
}

// FileSource reads a catalog from a local JSON or JSONC file.
type FileSource struct {
	Path string
}

// Load reads and decodes the file at s.Path.
func (s FileSource) Load(ctx context.Context) ([]model.Country, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Clean(s.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	countries, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return countries, nil
}
