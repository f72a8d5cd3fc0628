// Package catalog provides the fixed list of foods the pumpkin can ask for.
// The built-in table is generated from food_raw.txt by cmd/foodgen; a catalog
// can also be loaded at startup from a YAML file or a raw "<emoji> <name>" list.
package catalog

//go:generate go run ../../cmd/foodgen -in food_raw.txt -out table.go

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"chosenoffset.com/hungrypumpkin/internal/catalog/foodlist"
)

// ErrEmpty is returned when a catalog source holds no usable entries.
var ErrEmpty = foodlist.ErrEmpty

// Food is one catalog entry.
type Food = foodlist.Food

// Rand is the subset of a random source the catalog draws with.
type Rand interface {
	Intn(n int) int
}

// Catalog is an ordered, immutable list of foods.
type Catalog struct {
	items []Food
}

// New creates a catalog from items.
func New(items []Food) (*Catalog, error) {
	if len(items) == 0 {
		return nil, ErrEmpty
	}
	return &Catalog{items: append([]Food(nil), items...)}, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{items: table}
}

// Len returns the number of foods.
func (c *Catalog) Len() int {
	return len(c.items)
}

// At returns the i-th food.
func (c *Catalog) At(i int) Food {
	return c.items[i]
}

// Items returns a copy of all foods.
func (c *Catalog) Items() []Food {
	return append([]Food(nil), c.items...)
}

// Random draws a food uniformly.
func (c *Catalog) Random(r Rand) Food {
	return c.items[r.Intn(len(c.items))]
}

// Distinct returns the number of different symbols in the catalog.
func (c *Catalog) Distinct() int {
	seen := make(map[rune]bool, len(c.items))
	for _, f := range c.items {
		seen[f.Symbol] = true
	}
	return len(seen)
}

// ParseRaw reads "<emoji> <name>" lines; see foodlist.Parse.
func ParseRaw(r io.Reader) ([]Food, error) {
	return foodlist.Parse(r)
}

// fileEntry is one food in a YAML catalog file.
type fileEntry struct {
	Symbol string `yaml:"symbol"`
	Name   string `yaml:"name"`
}

type fileCatalog struct {
	Foods []fileEntry `yaml:"foods"`
}

// ParseYAML reads a catalog of the form
//
//	foods:
//	  - symbol: "🍎"
//	    name: red apple
func ParseYAML(data []byte) ([]Food, error) {
	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	foods := make([]Food, 0, len(fc.Foods))
	for i, e := range fc.Foods {
		symbol, _ := utf8.DecodeRuneInString(e.Symbol)
		if symbol == utf8.RuneError || strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("catalog entry %d: symbol and name are required", i)
		}
		foods = append(foods, Food{Symbol: symbol, Name: strings.TrimSpace(e.Name)})
	}
	return foods, nil
}

// Load reads a catalog file. ".yaml" and ".yml" files are parsed as YAML,
// anything else as a raw food list.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var foods []Food
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		foods, err = ParseYAML(data)
	default:
		foods, err = ParseRaw(strings.NewReader(string(data)))
	}
	if err != nil {
		return nil, err
	}
	return New(foods)
}
