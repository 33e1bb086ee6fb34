// Package fallback provides the built-in demo catalog shown whenever the
// remote service returns nothing usable.
package fallback

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/laserstudio/storefront/internal/core/domain"
)

//go:embed catalog.yaml
var embedded []byte

// Data is the built-in catalog. PortfolioSeed lists portfolio category keys
// that are always offered as filters.
type Data struct {
	Categories    []domain.Category      `yaml:"categories"`
	Products      []domain.Product       `yaml:"products"`
	Portfolio     []domain.PortfolioItem `yaml:"portfolio"`
	PortfolioSeed []string               `yaml:"portfolio_seed"`
}

// Default returns the embedded catalog.
func Default() Data {
	d, err := Parse(embedded)
	if err != nil {
		panic(fmt.Sprintf("fallback: embedded catalog: %v", err))
	}
	return d
}

// Load reads a catalog from path, or returns the embedded one when path is
// empty.
func Load(path string) (Data, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("fallback: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a YAML catalog and checks its invariants.
func Parse(raw []byte) (Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return Data{}, fmt.Errorf("fallback: decode: %w", err)
	}
	seen := make(map[string]struct{}, len(d.Products))
	for _, p := range d.Products {
		if p.ID == "" {
			return Data{}, fmt.Errorf("fallback: product without id")
		}
		if _, dup := seen[p.ID]; dup {
			return Data{}, fmt.Errorf("fallback: duplicate product id %q", p.ID)
		}
		if p.Price < 0 {
			return Data{}, fmt.Errorf("fallback: product %q has negative price", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return d, nil
}
