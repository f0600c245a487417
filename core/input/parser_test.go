package input

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subscription-audit/internal/errors"
)

func TestParse_Valid(t *testing.T) {
	result := Parse("Zoom=15.99, Notion=12")

	require.Len(t, result.Subscriptions, 2)
	assert.Empty(t, result.Issues)

	assert.Equal(t, "Zoom", result.Subscriptions[0].Name)
	assert.True(t, result.Subscriptions[0].MonthlyCost.Equal(decimal.RequireFromString("15.99")))
	assert.Equal(t, "Notion", result.Subscriptions[1].Name)
	assert.True(t, result.Subscriptions[1].MonthlyCost.Equal(decimal.NewFromInt(12)))
}

func TestParse_Whitespace(t *testing.T) {
	result := Parse("  Adobe Creative Cloud =  69.99 ,Slack= 8.75  ")

	require.Len(t, result.Subscriptions, 2)
	assert.Equal(t, "Adobe Creative Cloud", result.Subscriptions[0].Name)
	assert.Equal(t, "69.99", result.Subscriptions[0].MonthlyCost.String())
	assert.Equal(t, "Slack", result.Subscriptions[1].Name)
}

func TestParse_MalformedItem(t *testing.T) {
	result := Parse("BadItem, Zoom=15.99")

	require.Len(t, result.Subscriptions, 1)
	assert.Equal(t, "Zoom", result.Subscriptions[0].Name)

	require.Len(t, result.Issues, 1)
	assert.Equal(t, errors.TypeMalformedItem, result.Issues[0].Type)
	assert.Equal(t, "BadItem", result.Issues[0].Segment)
	assert.Equal(t, "Skipping malformed item: BadItem", result.Issues[0].String())
}

func TestParse_InvalidCost(t *testing.T) {
	result := Parse("Zoom=cheap, Notion=12")

	require.Len(t, result.Subscriptions, 1)
	assert.Equal(t, "Notion", result.Subscriptions[0].Name)

	require.Len(t, result.Issues, 1)
	assert.Equal(t, errors.TypeInvalidCost, result.Issues[0].Type)
	assert.Equal(t, "Invalid cost for Zoom: cheap", result.Issues[0].Message)
	assert.True(t, errors.IsType(result.Issues[0].Err(), errors.TypeInvalidCost))
}

func TestParse_OutOfRangeCost(t *testing.T) {
	for _, cost := range []string{"1e999999999", "1e-999999999", "0e999999999", "2000000000", "-2e9", "1.000000000000000000001"} {
		result := Parse("Zoom=" + cost + ", Notion=12")

		require.Len(t, result.Subscriptions, 1, cost)
		require.Len(t, result.Issues, 1, cost)
		assert.Equal(t, errors.TypeInvalidCost, result.Issues[0].Type, cost)
		assert.Equal(t, "Invalid cost for Zoom: "+cost, result.Issues[0].Message)
	}
}

func TestParse_InRangeCost(t *testing.T) {
	result := Parse("A=1e3, B=1000000000, C=12.50, D=-3, E=0.000001")

	require.Len(t, result.Subscriptions, 5)
	assert.Empty(t, result.Issues)
	assert.True(t, result.Subscriptions[0].MonthlyCost.Equal(decimal.NewFromInt(1000)))
}

func TestParse_SplitsOnFirstEquals(t *testing.T) {
	result := Parse("A=1=2")

	assert.Empty(t, result.Subscriptions)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, errors.TypeInvalidCost, result.Issues[0].Type)
	assert.Equal(t, "Invalid cost for A: 1=2", result.Issues[0].Message)
}

func TestParse_EmptySegmentsSkippedSilently(t *testing.T) {
	result := Parse(",, Zoom=15.99 ,,")

	assert.Len(t, result.Subscriptions, 1)
	assert.Empty(t, result.Issues)
}

func TestParse_EmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   ", ","} {
		result := Parse(raw)
		assert.Empty(t, result.Subscriptions, "input %q", raw)
		assert.Empty(t, result.Issues, "input %q", raw)
	}
}

func TestParse_AllMalformed(t *testing.T) {
	result := Parse("one, two=x, three")

	assert.Empty(t, result.Subscriptions)
	assert.Len(t, result.Issues, 3)
}

func TestParse_DuplicatesKeepOrder(t *testing.T) {
	result := Parse("Zoom=15.99, Slack=8.75, Zoom=10")

	require.Len(t, result.Subscriptions, 3)
	names := []string{result.Subscriptions[0].Name, result.Subscriptions[1].Name, result.Subscriptions[2].Name}
	assert.Equal(t, []string{"Zoom", "Slack", "Zoom"}, names)
}

func TestParse_CountMatchesValidSegments(t *testing.T) {
	raw := "A=1, B, C=2.5, D=x, E=0"
	result := Parse(raw)

	// 5 segments, 2 malformed
	assert.Len(t, result.Subscriptions, 3)
	assert.Len(t, result.Issues, 2)
}

func TestParse_Idempotent(t *testing.T) {
	raw := "Zoom=15.99, BadItem, Notion=12, Figma=abc"
	assert.Equal(t, Parse(raw), Parse(raw))
}
