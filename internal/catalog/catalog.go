// Package catalog holds the fixed table of launchable bodies.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/san-kum/projsim/internal/dynamo"
	"gopkg.in/yaml.v3"
)

//go:embed projectiles.yaml
var defaultTable []byte

// Spec describes one body type. Color and Emoji are for presentation only.
type Spec struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	dynamo.Body `yaml:",inline"`
	Color       string `yaml:"color" json:"color,omitempty"`
	Emoji       string `yaml:"emoji" json:"emoji,omitempty"`
}

// Catalog is immutable after construction and safe for concurrent readers.
type Catalog struct {
	order []string
	specs map[string]Spec
}

type table struct {
	Projectiles []Spec `yaml:"projectiles"`
}

// Parse builds a catalog from a YAML table. Ids must be unique and every
// spec must validate.
func Parse(data []byte) (*Catalog, error) {
	var t table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(t.Projectiles) == 0 {
		return nil, fmt.Errorf("parse catalog: no projectiles defined")
	}

	c := &Catalog{
		order: make([]string, 0, len(t.Projectiles)),
		specs: make(map[string]Spec, len(t.Projectiles)),
	}
	for _, s := range t.Projectiles {
		if s.ID == "" {
			return nil, fmt.Errorf("parse catalog: projectile without id")
		}
		if _, dup := c.specs[s.ID]; dup {
			return nil, fmt.Errorf("parse catalog: duplicate id %q", s.ID)
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("parse catalog: %s: %w", s.ID, err)
		}
		c.order = append(c.order, s.ID)
		c.specs[s.ID] = s
	}
	return c, nil
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Parse(defaultTable)
})

// Default returns the built-in catalog. It is parsed once per process.
func Default() *Catalog {
	c, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded table is invalid: %v", err))
	}
	return c
}

func (c *Catalog) Lookup(id string) (Spec, error) {
	s, ok := c.specs[id]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q (available: %v)", dynamo.ErrUnknownProjectile, id, c.order)
	}
	return s, nil
}

// IDs returns the ids in declaration order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.order))
	copy(ids, c.order)
	return ids
}

func (c *Catalog) Specs() []Spec {
	specs := make([]Spec, 0, len(c.order))
	for _, id := range c.order {
		specs = append(specs, c.specs[id])
	}
	return specs
}

// Lookup resolves id against the default catalog.
func Lookup(id string) (Spec, error) {
	return Default().Lookup(id)
}
