// Package catalog holds the static boss and shop definitions.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Boss is a battle opponent
type Boss struct {
	Key        string `yaml:"key" json:"key" validate:"required,lowercase,excludesall=0x20"`
	Name       string `yaml:"name" json:"name" validate:"required"`
	Difficulty string `yaml:"difficulty" json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Health     int    `yaml:"health" json:"health" validate:"gt=0"` // display only
	Reward     int    `yaml:"reward" json:"reward" validate:"gt=0"`
}

// Item is a shop entry
type Item struct {
	Key   string `yaml:"key" json:"key" validate:"required,lowercase,excludesall=0x20"`
	Name  string `yaml:"name" json:"name" validate:"required"`
	Price int    `yaml:"price" json:"price" validate:"gt=0"`
}

type catalogFile struct {
	Bosses []Boss `yaml:"bosses" validate:"required,min=1,dive"`
	Items  []Item `yaml:"items" validate:"required,min=1,dive"`
}

// Catalog is read-only after construction and safe for concurrent use.
type Catalog struct {
	bosses    map[string]Boss
	items     map[string]Item
	bossOrder []Boss
	itemOrder []Item
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog from a YAML file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := validator.New().Struct(f); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return New(f.Bosses, f.Items)
}

// New builds a catalog from explicit definitions. Keys must be unique per kind.
func New(bosses []Boss, items []Item) (*Catalog, error) {
	c := &Catalog{
		bosses: make(map[string]Boss, len(bosses)),
		items:  make(map[string]Item, len(items)),
	}
	for _, b := range bosses {
		if _, dup := c.bosses[b.Key]; dup {
			return nil, fmt.Errorf("duplicate boss key %q", b.Key)
		}
		c.bosses[b.Key] = b
		c.bossOrder = append(c.bossOrder, b)
	}
	for _, it := range items {
		if _, dup := c.items[it.Key]; dup {
			return nil, fmt.Errorf("duplicate item key %q", it.Key)
		}
		c.items[it.Key] = it
		c.itemOrder = append(c.itemOrder, it)
	}

	sort.SliceStable(c.bossOrder, func(i, j int) bool { return c.bossOrder[i].Reward < c.bossOrder[j].Reward })
	sort.SliceStable(c.itemOrder, func(i, j int) bool { return c.itemOrder[i].Price < c.itemOrder[j].Price })
	return c, nil
}

// Boss looks up a boss by key, case-insensitively
func (c *Catalog) Boss(key string) (Boss, bool) {
	b, ok := c.bosses[normalizeKey(key)]
	return b, ok
}

// Item looks up a shop item by key, case-insensitively
func (c *Catalog) Item(key string) (Item, bool) {
	it, ok := c.items[normalizeKey(key)]
	return it, ok
}

// Bosses lists bosses by ascending reward.
func (c *Catalog) Bosses() []Boss {
	out := make([]Boss, len(c.bossOrder))
	copy(out, c.bossOrder)
	return out
}

// Items lists shop items by ascending price.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.itemOrder))
	copy(out, c.itemOrder)
	return out
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
