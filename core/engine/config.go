package engine

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"subscription-audit/core/catalog"
	"subscription-audit/core/pricing"
	"subscription-audit/internal/config"
	"subscription-audit/internal/errors"
	"subscription-audit/internal/logging"
)

// FromConfig builds an engine from configuration: the external catalog when
// catalog.path is set, otherwise the built-in one, and the configured rate.
func FromConfig(cfg *config.Config) (*Engine, error) {
	var (
		cat *catalog.Catalog
		err error
	)
	if cfg.Catalog.Path != "" {
		cat, err = catalog.LoadFile(cfg.Catalog.Path)
	} else {
		cat, err = catalog.Builtin()
	}
	if err != nil {
		return nil, err
	}

	converter, err := pricing.NewConverterWithRate(decimal.NewFromFloat(cfg.Currency.GBPToUSD))
	if err != nil {
		return nil, errors.Config("invalid currency rate", err)
	}

	logging.Debug("engine ready",
		zap.Int("catalog_tools", cat.Len()),
		zap.String("gbp_to_usd", converter.GBPToUSD().String()))

	return New(cat, converter), nil
}
