package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalculatePolicyCostBoundaries(t *testing.T) {
	cases := []struct {
		rent string
		typ  PolicyType
		want string
	}{
		{"3000", PolicyElemental, "1150"},
		{"1", PolicyElemental, "1150"},
		{"5999", PolicyElemental, "1150"},
		{"5999.50", PolicyElemental, "1150"},
		{"6000", PolicyElemental, "1450"},
		{"59999", PolicyElemental, "12000"},
		{"60000", PolicyElemental, "12000"},
		{"100000", PolicyElemental, "20000"},
		{"3000", PolicyKanun, "1650"},
		{"59999", PolicyKanun, "15000"},
		{"60000", PolicyKanun, "18000"},
		{"123456.78", PolicyKanun, "37037.03"},
	}
	for _, tc := range cases {
		got, err := CalculatePolicyCost(d(tc.rent), tc.typ)
		require.NoError(t, err, tc.rent)
		assert.True(t, got.Equal(d(tc.want)), "rent=%s type=%s got=%s want=%s", tc.rent, tc.typ, got, tc.want)
	}
}

func TestKanunIsDiscontinuousAtThreshold(t *testing.T) {
	below, err := CalculatePolicyCost(d("59999"), PolicyKanun)
	require.NoError(t, err)
	at, err := CalculatePolicyCost(d("60000"), PolicyKanun)
	require.NoError(t, err)
	assert.True(t, at.Sub(below).Equal(d("3000")), "jump=%s", at.Sub(below))
}

func TestCalculatePolicyCostDefaultsToElemental(t *testing.T) {
	got, err := CalculatePolicyCost(d("3000"), "")
	require.NoError(t, err)
	assert.True(t, got.Equal(d("1150")))
}

func TestCalculatePolicyCostRejectsNonPositiveRent(t *testing.T) {
	for _, rent := range []string{"0", "-1", "-0.01"} {
		_, err := CalculatePolicyCost(d(rent), PolicyElemental)
		assert.ErrorIs(t, err, ErrInvalidRent, rent)
	}
}

func TestCalculatePolicyCostRejectsUnknownType(t *testing.T) {
	_, err := CalculatePolicyCost(d("3000"), PolicyType("gold"))
	assert.ErrorIs(t, err, ErrInvalidPolicyType)
}

func TestBracketsAreContiguousAndMonotonic(t *testing.T) {
	for _, typ := range []PolicyType{PolicyElemental, PolicyKanun} {
		brackets := PolicyBrackets(typ)
		require.NotEmpty(t, brackets)
		assert.Equal(t, int64(0), brackets[0].Min)
		assert.Equal(t, int64(59999), brackets[len(brackets)-1].Max)
		for i := 1; i < len(brackets); i++ {
			assert.Equal(t, brackets[i-1].Max+1, brackets[i].Min, "%s gap at %d", typ, i)
			assert.True(t, brackets[i].Cost.GreaterThanOrEqual(brackets[i-1].Cost), "%s cost drops at %d", typ, i)
		}
	}
}

func TestCalculateDiscountedPolicyCost(t *testing.T) {
	got, err := CalculateDiscountedPolicyCost(d("3000"), PolicyElemental, decimal.NewFromFloat(DefaultPolicyDiscount))
	require.NoError(t, err)
	assert.True(t, got.Equal(d("747.5")), "got=%s", got)

	got, err = CalculateDiscountedPolicyCost(d("60000"), PolicyKanun, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, got.Equal(d("18000")))

	_, err = CalculateDiscountedPolicyCost(d("3000"), PolicyKanun, d("101"))
	assert.ErrorIs(t, err, ErrInvalidDiscount)

	_, err = CalculateDiscountedPolicyCost(d("0"), PolicyKanun, d("10"))
	assert.ErrorIs(t, err, ErrInvalidRent)
}

func TestParsePolicyType(t *testing.T) {
	typ, err := ParsePolicyType("")
	require.NoError(t, err)
	assert.Equal(t, PolicyElemental, typ)

	typ, err = ParsePolicyType(" KANUN ")
	require.NoError(t, err)
	assert.Equal(t, PolicyKanun, typ)

	_, err = ParsePolicyType("premium")
	assert.ErrorIs(t, err, ErrInvalidPolicyType)
}

func TestQuotePolicy(t *testing.T) {
	q, err := QuotePolicy(d("70000"), PolicyElemental, d("35"))
	require.NoError(t, err)
	assert.True(t, q.PercentageRule)
	assert.True(t, q.Cost.Equal(d("14000")))
	assert.True(t, q.DiscountedCost.Equal(d("9100")))
}
