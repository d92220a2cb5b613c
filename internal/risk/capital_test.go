package risk_test

import (
	"testing"

	"github.com/riskcore/tradecore/internal/domain"
	"github.com/riskcore/tradecore/internal/money"
	"github.com/riskcore/tradecore/internal/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredCapital_Long(t *testing.T) {
	req, err := risk.RequiredCapital(domain.TradeCategoryLong, 500, money.MustParse("39.90"), money.MustParse("38"))
	require.NoError(t, err)
	assert.Equal(t, "19950", req.String())
}

func TestRequiredCapital_Short(t *testing.T) {
	req, err := risk.RequiredCapital(domain.TradeCategoryShort, 6, money.MustParse("10"), money.MustParse("15"))
	require.NoError(t, err)
	assert.Equal(t, "90", req.String())
}

func TestPerShareRisk_RejectsNonPositive(t *testing.T) {
	_, err := risk.PerShareRisk(domain.TradeCategoryLong, money.MustParse("10"), money.MustParse("10"))
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrStopPriceNotValid))
}

func TestTradeRisk_Short(t *testing.T) {
	r, err := risk.TradeRisk(domain.TradeCategoryShort, 6, money.MustParse("10"), money.MustParse("15"))
	require.NoError(t, err)
	assert.Equal(t, "30", r.String())
}
