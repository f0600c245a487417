// Package catalog - Known subscription tools and their cheaper alternatives.
// A Catalog is immutable once built; lookups hand out copies.
package catalog

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"subscription-audit/core/types"
	"subscription-audit/internal/errors"
)

// Catalog is the read-only pricing table
type Catalog struct {
	entries map[string]*types.CatalogEntry
	keys    []string
}

// New builds a catalog from entries. Keys are normalised to lowercase and
// must be unique; every entry must pass DefaultValidationRules.
func New(entries []types.CatalogEntry) (*Catalog, error) {
	c := &Catalog{
		entries: make(map[string]*types.CatalogEntry, len(entries)),
	}

	var problems []string
	for _, e := range entries {
		entry := e
		entry.Key = NormalizeKey(e.Key)
		entry.Alternatives = slices.Clone(e.Alternatives)

		if _, dup := c.entries[entry.Key]; dup {
			problems = append(problems, fmt.Sprintf("%s: duplicate tool", entry.Key))
			continue
		}
		for _, rule := range DefaultValidationRules() {
			if err := rule(&entry); err != nil {
				problems = append(problems, fmt.Sprintf("%s: %v", entry.Key, err))
			}
		}
		c.entries[entry.Key] = &entry
		c.keys = append(c.keys, entry.Key)
	}

	if len(problems) > 0 {
		return nil, errors.Newf(errors.TypeCatalog, "catalog has %d validation errors: %s",
			len(problems), strings.Join(problems, "; "))
	}

	sort.Strings(c.keys)
	return c, nil
}

// NormalizeKey maps a tool name to its catalog key
func NormalizeKey(name string) string {
	return strings.ToLower(name)
}

// Lookup finds the entry for a subscription name, ignoring case.
// The name must otherwise match exactly.
func (c *Catalog) Lookup(name string) (types.CatalogEntry, bool) {
	entry, ok := c.entries[NormalizeKey(name)]
	if !ok {
		return types.CatalogEntry{}, false
	}
	out := *entry
	out.Alternatives = slices.Clone(entry.Alternatives)
	return out, true
}

// Keys returns the sorted catalog keys
func (c *Catalog) Keys() []string {
	return slices.Clone(c.keys)
}

// Entries returns copies of all entries sorted by key
func (c *Catalog) Entries() []types.CatalogEntry {
	out := make([]types.CatalogEntry, 0, len(c.keys))
	for _, k := range c.keys {
		e, _ := c.Lookup(k)
		out = append(out, e)
	}
	return out
}

// Len returns the number of tools
func (c *Catalog) Len() int {
	return len(c.keys)
}

var builtin = sync.OnceValues(func() (*Catalog, error) {
	return ParseHCL(builtinHCL, "catalog.hcl")
})

// Builtin returns the embedded catalog, parsed once per process
func Builtin() (*Catalog, error) {
	return builtin()
}
