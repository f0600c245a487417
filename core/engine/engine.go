// Package engine selects the best cheaper alternative for each subscription.
// CLI and HTTP front ends are thin wrappers around this engine.
package engine

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"subscription-audit/core/catalog"
	"subscription-audit/core/pricing"
	"subscription-audit/core/types"
	"subscription-audit/internal/logging"
)

// Engine recommends alternatives from an immutable catalog.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	catalog   *catalog.Catalog
	converter *pricing.Converter
}

// New creates an engine
func New(cat *catalog.Catalog, converter *pricing.Converter) *Engine {
	if converter == nil {
		converter = pricing.NewConverter()
	}
	return &Engine{
		catalog:   cat,
		converter: converter,
	}
}

// Recommend returns the alternative with the largest USD-equivalent saving
// for sub. The subscription is assumed to be billed in the catalog entry's
// currency. Only strictly positive savings count, and an equal saving never
// displaces an earlier alternative, so catalog order breaks ties.
func (e *Engine) Recommend(sub types.Subscription) types.Recommendation {
	rec := types.Recommendation{
		Subscription: sub,
		SavingsUSD:   decimal.Zero,
	}

	entry, ok := e.catalog.Lookup(sub.Name)
	if !ok {
		logging.Debug("no catalog entry", zap.String("subscription", sub.Name))
		return rec
	}

	currentUSD := e.converter.ToUSD(sub.MonthlyCost, entry.Currency)

	var best *types.Alternative
	bestSavings := decimal.Zero
	for i := range entry.Alternatives {
		alt := entry.Alternatives[i]
		savings := currentUSD.Sub(e.converter.ToUSD(alt.Cost, alt.Currency))
		if savings.GreaterThan(bestSavings) {
			best = &alt
			bestSavings = savings
		}
	}

	if best == nil {
		logging.Debug("no cheaper alternative",
			zap.String("subscription", sub.Name),
			zap.String("current_usd", currentUSD.String()))
		return rec
	}

	rec.Alternative = best
	rec.SavingsUSD = bestSavings
	return rec
}

// RecommendAll maps Recommend over subs, preserving order
func (e *Engine) RecommendAll(subs []types.Subscription) []types.Recommendation {
	out := make([]types.Recommendation, 0, len(subs))
	for _, sub := range subs {
		out = append(out, e.Recommend(sub))
	}
	return out
}

// Catalog returns the catalog the engine reads from
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Converter returns the engine's currency converter
func (e *Engine) Converter() *pricing.Converter {
	return e.converter
}
