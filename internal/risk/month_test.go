package risk_test

import (
	"testing"

	"github.com/riskcore/tradecore/internal/money"
	"github.com/riskcore/tradecore/internal/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMonthlyAllowance_ZeroPerformance(t *testing.T) {
	ma, err := risk.ComputeMonthlyAllowance(money.MustParse("0.02"), money.MustParse("50000"), money.MustParse("50000"), money.Zero)
	require.NoError(t, err)
	assert.Equal(t, "1000", ma.Amount.String())
	assert.Equal(t, "0.02", ma.Ratio.String())
}

func TestComputeMonthlyAllowance_NegativePerformance(t *testing.T) {
	// Lost 5000 this month, nothing open: rebased envelope on the smaller pool.
	ma, err := risk.ComputeMonthlyAllowance(money.MustParse("0.02"), money.MustParse("50000"), money.MustParse("45000"), money.Zero)
	require.NoError(t, err)
	assert.Equal(t, "900", ma.Amount.String())
}

func TestComputeMonthlyAllowance_PositiveUnderEnvelope(t *testing.T) {
	// Gained 400 this month; envelope is 1000, so 600 remains.
	ma, err := risk.ComputeMonthlyAllowance(money.MustParse("0.02"), money.MustParse("50000"), money.MustParse("50400"), money.Zero)
	require.NoError(t, err)
	assert.Equal(t, "600", ma.Amount.String())
}

func TestComputeMonthlyAllowance_ExceedsEnvelope(t *testing.T) {
	ma, err := risk.ComputeMonthlyAllowance(money.MustParse("0.02"), money.MustParse("50000"), money.MustParse("51500"), money.Zero)
	require.NoError(t, err)
	assert.Equal(t, "0", ma.Amount.String())
	assert.True(t, ma.Ratio.IsZero())
}

func TestComputeMonthlyAllowance_CapitalNotAtRiskRebasesNegativeCase(t *testing.T) {
	// Lost 5000 on paper but 10000 is locked in an open trade: rebase on 45000+10000.
	ma, err := risk.ComputeMonthlyAllowance(money.MustParse("0.02"), money.MustParse("50000"), money.MustParse("45000"), money.MustParse("10000"))
	require.NoError(t, err)
	assert.Equal(t, "1100", ma.Amount.String())
}
