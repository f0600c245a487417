package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subscription-audit/core/catalog"
	"subscription-audit/core/pricing"
	"subscription-audit/core/types"
)

func builtinEngine(t *testing.T) *Engine {
	t.Helper()
	cat, err := catalog.Builtin()
	require.NoError(t, err)
	return New(cat, pricing.NewConverter())
}

func sub(name, cost string) types.Subscription {
	return types.Subscription{Name: name, MonthlyCost: decimal.RequireFromString(cost)}
}

func TestRecommend_PicksLargestSavingAcrossCurrencies(t *testing.T) {
	rec := builtinEngine(t).Recommend(sub("Zoom", "15.99"))

	require.True(t, rec.HasAlternative())
	assert.Equal(t, "Microsoft Teams", rec.Alternative.Name)
	assert.Equal(t, types.CurrencyGBP, rec.Alternative.Currency)
	assert.Equal(t, "4.90", rec.Alternative.Cost.StringFixed(2))
	// 15.99 - 4.90*1.2 = 10.11 beats Google Meet's 15.99 - 6.00 = 9.99
	assert.Equal(t, "10.11", rec.SavingsUSD.StringFixed(2))
}

func TestRecommend_TieKeepsFirstAlternative(t *testing.T) {
	rec := builtinEngine(t).Recommend(sub("Notion", "12"))

	require.True(t, rec.HasAlternative())
	assert.Equal(t, "Focalboard", rec.Alternative.Name)
	assert.Equal(t, "12.00", rec.SavingsUSD.StringFixed(2))
}

func TestRecommend_TieBreakFollowsCatalogOrder(t *testing.T) {
	cat, err := catalog.New([]types.CatalogEntry{{
		Key:      "tool",
		BaseCost: decimal.NewFromInt(10),
		Currency: types.CurrencyUSD,
		Alternatives: []types.Alternative{
			{Name: "Dearer", Cost: decimal.NewFromInt(8), Currency: types.CurrencyUSD},
			{Name: "First", Cost: decimal.NewFromInt(5), Currency: types.CurrencyUSD},
			{Name: "Second", Cost: decimal.NewFromInt(5), Currency: types.CurrencyUSD},
		},
	}})
	require.NoError(t, err)

	rec := New(cat, nil).Recommend(sub("Tool", "10"))
	require.True(t, rec.HasAlternative())
	assert.Equal(t, "First", rec.Alternative.Name)
	assert.True(t, rec.SavingsUSD.Equal(decimal.NewFromInt(5)))
}

func TestRecommend_UnknownTool(t *testing.T) {
	rec := builtinEngine(t).Recommend(sub("UnknownTool", "50"))

	assert.False(t, rec.HasAlternative())
	assert.True(t, rec.SavingsUSD.IsZero())
	assert.Equal(t, "UnknownTool", rec.Subscription.Name)
}

func TestRecommend_NoCheaperAlternative(t *testing.T) {
	eng := builtinEngine(t)

	// 4.90 GBP = 5.88 USD, Google Meet is 6.00 USD
	rec := eng.Recommend(sub("Microsoft Teams", "4.90"))
	assert.False(t, rec.HasAlternative())
	assert.True(t, rec.SavingsUSD.IsZero())

	// paying less than every alternative
	rec = eng.Recommend(sub("Zoom", "5"))
	assert.False(t, rec.HasAlternative())
}

func TestRecommend_EqualCostIsNotASaving(t *testing.T) {
	rec := builtinEngine(t).Recommend(sub("Zoom", "5.88"))
	assert.False(t, rec.HasAlternative())
}

func TestRecommend_CaseInsensitive(t *testing.T) {
	eng := builtinEngine(t)

	upper := eng.Recommend(sub("ZOOM", "15.99"))
	lower := eng.Recommend(sub("zoom", "15.99"))

	require.True(t, upper.HasAlternative())
	require.True(t, lower.HasAlternative())
	assert.Equal(t, *upper.Alternative, *lower.Alternative)
	assert.True(t, upper.SavingsUSD.Equal(lower.SavingsUSD))
}

func TestRecommend_SubscriptionBilledInEntryCurrency(t *testing.T) {
	// xero is priced in GBP: 33 GBP = 39.60 USD; Wave Pro is 16 USD
	rec := builtinEngine(t).Recommend(sub("Xero", "33"))

	require.True(t, rec.HasAlternative())
	assert.Equal(t, "Wave Pro", rec.Alternative.Name)
	assert.Equal(t, "23.60", rec.SavingsUSD.StringFixed(2))
}

func TestRecommend_RateOverride(t *testing.T) {
	cat, err := catalog.Builtin()
	require.NoError(t, err)
	conv, err := pricing.NewConverterWithRate(decimal.RequireFromString("2"))
	require.NoError(t, err)

	// at 2 USD/GBP Teams costs 9.80, so Google Meet wins for Zoom
	rec := New(cat, conv).Recommend(sub("Zoom", "15.99"))
	require.True(t, rec.HasAlternative())
	assert.Equal(t, "Google Meet", rec.Alternative.Name)
	assert.Equal(t, "9.99", rec.SavingsUSD.StringFixed(2))
}

func TestRecommend_ChosenAlternativeIsCheaper(t *testing.T) {
	eng := builtinEngine(t)
	conv := eng.Converter()

	for _, key := range eng.Catalog().Keys() {
		entry, _ := eng.Catalog().Lookup(key)
		for _, cost := range []string{"0", "1", "5.5", "15.99", "100"} {
			rec := eng.Recommend(sub(key, cost))
			if !rec.HasAlternative() {
				assert.True(t, rec.SavingsUSD.IsZero())
				continue
			}
			current := conv.ToUSD(decimal.RequireFromString(cost), entry.Currency)
			alt := conv.ToUSD(rec.Alternative.Cost, rec.Alternative.Currency)
			assert.True(t, alt.LessThan(current), "%s at %s", key, cost)
			assert.True(t, rec.SavingsUSD.Equal(current.Sub(alt)), "%s at %s", key, cost)
		}
	}
}

func TestRecommendAll_PreservesOrder(t *testing.T) {
	recs := builtinEngine(t).RecommendAll([]types.Subscription{
		sub("Notion", "12"),
		sub("UnknownTool", "50"),
		sub("Zoom", "15.99"),
	})

	require.Len(t, recs, 3)
	assert.Equal(t, "Notion", recs[0].Subscription.Name)
	assert.Equal(t, "UnknownTool", recs[1].Subscription.Name)
	assert.Equal(t, "Zoom", recs[2].Subscription.Name)
}

func TestRecommend_Pure(t *testing.T) {
	eng := builtinEngine(t)
	first := eng.Recommend(sub("Slack", "8.75"))
	second := eng.Recommend(sub("Slack", "8.75"))

	require.True(t, first.HasAlternative())
	assert.Equal(t, "Pumble Pro", first.Alternative.Name)
	assert.Equal(t, first.Alternative.Name, second.Alternative.Name)
	assert.True(t, first.SavingsUSD.Equal(second.SavingsUSD))
}
