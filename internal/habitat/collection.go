package habitat

import (
	"encoding/json"
	"fmt"
)

type slot struct {
	basis    Basis
	unlocked bool
}

// Collection holds the basis of every unlocked habitat.
// It is a plain value: assigning or passing a Collection copies all of its
// slots, so two collections never share state.
type Collection struct {
	slots [KindCount]slot
}

// NewCollection builds a collection from a kind->basis map
func NewCollection(m map[Kind]Basis) Collection {
	var c Collection
	for k, b := range m {
		c.Set(k, b)
	}
	return c
}

// Get returns the basis for k and whether the habitat is unlocked
func (c Collection) Get(k Kind) (Basis, bool) {
	if !k.Valid() {
		return Basis{}, false
	}
	s := c.slots[k]
	return s.basis, s.unlocked
}

// Has reports whether k is unlocked
func (c Collection) Has(k Kind) bool {
	_, ok := c.Get(k)
	return ok
}

// Set unlocks k (if needed) and stores its basis. Invalid kinds are ignored.
func (c *Collection) Set(k Kind, b Basis) {
	if !k.Valid() {
		return
	}
	c.slots[k] = slot{basis: b, unlocked: true}
}

// Kinds returns the unlocked habitats in enumeration order
func (c Collection) Kinds() []Kind {
	kinds := make([]Kind, 0, KindCount)
	for _, k := range All {
		if c.slots[k].unlocked {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Len returns the number of unlocked habitats
func (c Collection) Len() int {
	n := 0
	for _, s := range c.slots {
		if s.unlocked {
			n++
		}
	}
	return n
}

// Map returns the collection as a fresh map
func (c Collection) Map() map[Kind]Basis {
	m := make(map[Kind]Basis, KindCount)
	for _, k := range c.Kinds() {
		m[k] = c.slots[k].basis
	}
	return m
}

// Validate checks every unlocked habitat's basis
func (c Collection) Validate() error {
	for _, k := range c.Kinds() {
		if err := c.slots[k].basis.Validate(); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
	}
	return nil
}

func (c Collection) MarshalJSON() ([]byte, error) {
	m := make(map[string]Basis, KindCount)
	for _, k := range c.Kinds() {
		m[k.String()] = c.slots[k].basis
	}
	return json.Marshal(m)
}

func (c *Collection) UnmarshalJSON(data []byte) error {
	var m map[string]Basis
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	var out Collection
	for key, b := range m {
		k, err := ParseKind(key)
		if err != nil {
			return err
		}
		out.Set(k, b)
	}
	*c = out
	return nil
}
