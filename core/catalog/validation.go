// Package catalog - Catalog validation
package catalog

import (
	"fmt"
	"strings"

	"subscription-audit/core/types"
)

// ValidationRule is a catalog validation rule
type ValidationRule func(*types.CatalogEntry) error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateKey,
		validateCurrencies,
		validateNonNegativeCosts,
		validateAlternativeNames,
	}
}

func validateKey(e *types.CatalogEntry) error {
	if strings.TrimSpace(e.Key) == "" {
		return fmt.Errorf("tool key must not be empty")
	}
	return nil
}

func validateCurrencies(e *types.CatalogEntry) error {
	if !e.Currency.Valid() {
		return fmt.Errorf("unsupported currency %q", e.Currency)
	}
	for _, alt := range e.Alternatives {
		if !alt.Currency.Valid() {
			return fmt.Errorf("alternative %q: unsupported currency %q", alt.Name, alt.Currency)
		}
	}
	return nil
}

func validateNonNegativeCosts(e *types.CatalogEntry) error {
	if e.BaseCost.IsNegative() {
		return fmt.Errorf("cost must not be negative, got %s", e.BaseCost)
	}
	for _, alt := range e.Alternatives {
		if alt.Cost.IsNegative() {
			return fmt.Errorf("alternative %q: cost must not be negative, got %s", alt.Name, alt.Cost)
		}
	}
	return nil
}

func validateAlternativeNames(e *types.CatalogEntry) error {
	for i, alt := range e.Alternatives {
		if strings.TrimSpace(alt.Name) == "" {
			return fmt.Errorf("alternative #%d has no name", i+1)
		}
	}
	return nil
}
