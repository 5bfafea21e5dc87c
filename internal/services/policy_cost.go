package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PolicyType is the legal-policy tier.
type PolicyType string

const (
	PolicyKanun     PolicyType = "kanun"     // premium
	PolicyElemental PolicyType = "elemental" // basic
)

// PercentageThreshold is the rent from which cost is a flat percentage.
var PercentageThreshold = decimal.NewFromInt(60000)

// DefaultPolicyDiscount is the percent discount used when none is given.
const DefaultPolicyDiscount = 35.0

var policyPercentage = map[PolicyType]decimal.Decimal{
	PolicyKanun:     decimal.RequireFromString("0.30"),
	PolicyElemental: decimal.RequireFromString("0.20"),
}

// PolicyBracket covers integer rents Min..Max inclusive.
type PolicyBracket struct {
	Min  int64
	Max  int64
	Cost decimal.Decimal
}

func bracket(min, max int64, cost int64) PolicyBracket {
	return PolicyBracket{Min: min, Max: max, Cost: decimal.NewFromInt(cost)}
}

// Ascending, contiguous, non-overlapping up to 59999.
var policyBrackets = map[PolicyType][]PolicyBracket{
	PolicyElemental: {
		bracket(0, 5999, 1150),
		bracket(6000, 7999, 1450),
		bracket(8000, 9999, 1750),
		bracket(10000, 11999, 2050),
		bracket(12000, 13999, 2350),
		bracket(14000, 15999, 2650),
		bracket(16000, 17999, 2950),
		bracket(18000, 19999, 3250),
		bracket(20000, 24999, 3850),
		bracket(25000, 29999, 4500),
		bracket(30000, 34999, 5400),
		bracket(35000, 39999, 6300),
		bracket(40000, 44999, 7500),
		bracket(45000, 49999, 8700),
		bracket(50000, 54999, 10200),
		bracket(55000, 59999, 12000),
	},
	PolicyKanun: {
		bracket(0, 5999, 1650),
		bracket(6000, 7999, 2050),
		bracket(8000, 9999, 2450),
		bracket(10000, 11999, 2850),
		bracket(12000, 13999, 3250),
		bracket(14000, 15999, 3650),
		bracket(16000, 17999, 4050),
		bracket(18000, 19999, 4450),
		bracket(20000, 24999, 5250),
		bracket(25000, 29999, 6200),
		bracket(30000, 34999, 7300),
		bracket(35000, 39999, 8400),
		bracket(40000, 44999, 9800),
		bracket(45000, 49999, 11200),
		bracket(50000, 54999, 13000),
		bracket(55000, 59999, 15000),
	},
}

// ParsePolicyType accepts "" as elemental.
func ParsePolicyType(s string) (PolicyType, error) {
	switch PolicyType(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyElemental:
		return PolicyElemental, nil
	case PolicyKanun:
		return PolicyKanun, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPolicyType, s)
}

// PolicyBrackets returns a copy of the tier's table.
func PolicyBrackets(t PolicyType) []PolicyBracket {
	src := policyBrackets[t]
	out := make([]PolicyBracket, len(src))
	copy(out, src)
	return out
}

// CalculatePolicyCost returns the policy price for a monthly rent. Below
// 60000 it is the bracket's fixed cost; from 60000 on, a flat percentage.
// The two rules are not continuous at the threshold for every tier.
func CalculatePolicyCost(rent decimal.Decimal, t PolicyType) (decimal.Decimal, error) {
	if !rent.IsPositive() {
		return decimal.Zero, ErrInvalidRent
	}
	if t == "" {
		t = PolicyElemental
	}
	brackets, ok := policyBrackets[t]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPolicyType, t)
	}

	if rent.GreaterThanOrEqual(PercentageThreshold) {
		return rent.Mul(policyPercentage[t]).Round(2), nil
	}

	whole := rent.Floor().IntPart()
	for _, b := range brackets {
		if whole >= b.Min && whole <= b.Max {
			return b.Cost.Round(2), nil
		}
	}
	// unreachable with contiguous brackets
	return brackets[0].Cost.Round(2), nil
}

// CalculateDiscountedPolicyCost applies a percent discount to the base cost.
func CalculateDiscountedPolicyCost(rent decimal.Decimal, t PolicyType, discountPercent decimal.Decimal) (decimal.Decimal, error) {
	if discountPercent.IsNegative() || discountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Zero, ErrInvalidDiscount
	}
	base, err := CalculatePolicyCost(rent, t)
	if err != nil {
		return decimal.Zero, err
	}
	factor := decimal.NewFromInt(1).Sub(discountPercent.Div(decimal.NewFromInt(100)))
	return base.Mul(factor).Round(2), nil
}

// PolicyQuote is the calculator's answer for one rent and tier.
type PolicyQuote struct {
	Rent            decimal.Decimal `json:"rent"`
	Type            PolicyType      `json:"type"`
	Cost            decimal.Decimal `json:"cost"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	DiscountedCost  decimal.Decimal `json:"discountedCost"`
	PercentageRule  bool            `json:"percentageRule"`
}

func QuotePolicy(rent decimal.Decimal, t PolicyType, discountPercent decimal.Decimal) (*PolicyQuote, error) {
	cost, err := CalculatePolicyCost(rent, t)
	if err != nil {
		return nil, err
	}
	discounted, err := CalculateDiscountedPolicyCost(rent, t, discountPercent)
	if err != nil {
		return nil, err
	}
	return &PolicyQuote{
		Rent:            rent,
		Type:            t,
		Cost:            cost,
		DiscountPercent: discountPercent,
		DiscountedCost:  discounted,
		PercentageRule:  rent.GreaterThanOrEqual(PercentageThreshold),
	}, nil
}
