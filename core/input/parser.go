// Package input parses the subscription list supplied by the user.
//
// The accepted form is a comma-separated list of Name=cost pairs, for example
// "Zoom=15.99, Notion=12". Names cannot contain ',' or '='. Bad segments are
// reported as issues and skipped; parsing itself never fails.
package input

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"subscription-audit/core/types"
	"subscription-audit/internal/errors"
)

const (
	itemSeparator = ","
	costSeparator = "="

	// maxCostScale bounds the decimal exponent of a cost in both directions
	maxCostScale = 20
)

// maxCost is the largest monthly cost accepted, in either sign
var maxCost = decimal.New(1, 9)

// Issue describes a skipped input segment
type Issue struct {
	// Segment is the trimmed input segment
	Segment string `json:"segment"`

	// Type is MALFORMED_ITEM or INVALID_COST
	Type errors.Type `json:"type"`

	// Message is the human-readable diagnostic
	Message string `json:"message"`
}

// String returns the diagnostic line
func (i Issue) String() string {
	return i.Message
}

// Err converts the issue into a typed error
func (i Issue) Err() error {
	return errors.New(i.Type, i.Message).WithContext("segment", i.Segment)
}

// ParseResult holds the parsed subscriptions in input order and the skipped segments
type ParseResult struct {
	Subscriptions []types.Subscription `json:"subscriptions"`
	Issues        []Issue              `json:"issues,omitempty"`
}

// Parse converts raw into subscriptions
func Parse(raw string) *ParseResult {
	result := &ParseResult{
		Subscriptions: make([]types.Subscription, 0),
	}

	for _, segment := range strings.Split(raw, itemSeparator) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		name, costText, ok := strings.Cut(segment, costSeparator)
		if !ok {
			result.Issues = append(result.Issues, Issue{
				Segment: segment,
				Type:    errors.TypeMalformedItem,
				Message: fmt.Sprintf("Skipping malformed item: %s", segment),
			})
			continue
		}

		name = strings.TrimSpace(name)
		cost, err := parseCost(costText)
		if err != nil {
			result.Issues = append(result.Issues, Issue{
				Segment: segment,
				Type:    errors.TypeInvalidCost,
				Message: fmt.Sprintf("Invalid cost for %s: %s", name, costText),
			})
			continue
		}

		result.Subscriptions = append(result.Subscriptions, types.Subscription{
			Name:        name,
			MonthlyCost: cost,
		})
	}

	return result
}

// parseCost parses a cost and rejects values whose exponent or magnitude
// would make later arithmetic and formatting expand to arbitrary size.
// The exponent is checked first since comparing magnitudes rescales.
func parseCost(text string) (decimal.Decimal, error) {
	cost, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Decimal{}, err
	}
	if exp := cost.Exponent(); exp < -maxCostScale || exp > maxCostScale {
		return decimal.Decimal{}, fmt.Errorf("cost exponent %d out of range", exp)
	}
	if cost.Abs().GreaterThan(maxCost) {
		return decimal.Decimal{}, fmt.Errorf("cost exceeds %s", maxCost)
	}
	return cost, nil
}
