package risk_test

import (
	"testing"

	"github.com/riskcore/tradecore/internal/domain"
	"github.com/riskcore/tradecore/internal/money"
	"github.com/riskcore/tradecore/internal/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func balance(available, total, inTrade string) domain.AccountBalance {
	return domain.AccountBalance{
		TotalAvailable: money.MustParse(available),
		TotalBalance:   money.MustParse(total),
		TotalInTrade:   money.MustParse(inTrade),
	}
}

func TestCanFund_NotEnoughFunds(t *testing.T) {
	bal := balance("100", "100", "0")
	err := risk.CanFund(domain.TradeCategoryLong, 500, money.MustParse("40"), money.MustParse("38"), bal, nil, money.Zero)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrNotEnoughFunds))
}

func TestCanFund_NoRulesPasses(t *testing.T) {
	bal := balance("30000", "50000", "20000")
	err := risk.CanFund(domain.TradeCategoryLong, 500, money.MustParse("39.90"), money.MustParse("38"), bal, nil, money.Zero)
	require.NoError(t, err)
}

func TestCanFund_RiskPerTradeExceeded(t *testing.T) {
	bal := balance("30000", "50000", "20000")
	rules := []domain.Rule{{Kind: domain.RuleKindRiskPerTrade, Percentage: money.MustParse("0.001"), Active: true}}
	err := risk.CanFund(domain.TradeCategoryLong, 500, money.MustParse("39.90"), money.MustParse("38"), bal, rules, money.Zero)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrRiskPerTradeExceeded))
}

func TestCanFund_RiskPerMonthExceeded(t *testing.T) {
	bal := balance("30000", "50000", "20000")
	rules := []domain.Rule{{Kind: domain.RuleKindRiskPerMonth, Percentage: money.MustParse("0.0001"), Active: true}}
	err := risk.CanFund(domain.TradeCategoryLong, 500, money.MustParse("39.90"), money.MustParse("38"), bal, rules, money.MustParse("50000"))
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrRiskPerMonthExceeded))
}

func TestCanFund_MonthlyRuleBelowTradePercentage(t *testing.T) {
	// The 0.01% monthly rule gives an allowance ratio far below the 2%
	// per-trade percentage, so even a trade whose risk passes both the
	// monthly amount and the RiskPerTrade cap must fail.
	bal := balance("30000", "50000", "20000")
	rules := []domain.Rule{
		{Kind: domain.RuleKindRiskPerMonth, Percentage: money.MustParse("0.0001"), Active: true},
		{Kind: domain.RuleKindRiskPerTrade, Percentage: money.MustParse("0.02"), Active: true},
	}
	err := risk.CanFund(domain.TradeCategoryLong, 3, money.MustParse("39.90"), money.MustParse("38"), bal, rules, money.MustParse("50000"))
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrRiskPerMonthExceeded))
}

func TestCanSubmit(t *testing.T) {
	require.NoError(t, risk.CanSubmit(domain.Trade{Status: domain.TradeStatusFunded}))
	require.Error(t, risk.CanSubmit(domain.Trade{Status: domain.TradeStatusNew}))
}

func TestCanModifyStop_Long(t *testing.T) {
	trade := domain.Trade{Status: domain.TradeStatusFilled, Category: domain.TradeCategoryLong}
	require.NoError(t, risk.CanModifyStop(trade, money.MustParse("38"), money.MustParse("39")))
	err := risk.CanModifyStop(trade, money.MustParse("38"), money.MustParse("37"))
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrStopPriceNotValid))
}

func TestCanModifyStop_Short(t *testing.T) {
	trade := domain.Trade{Status: domain.TradeStatusFilled, Category: domain.TradeCategoryShort}
	require.NoError(t, risk.CanModifyStop(trade, money.MustParse("15"), money.MustParse("14")))
	err := risk.CanModifyStop(trade, money.MustParse("15"), money.MustParse("16"))
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrStopPriceNotValid))
}

func TestCanTransferWithdraw(t *testing.T) {
	require.NoError(t, risk.CanTransferWithdraw(money.MustParse("10"), money.MustParse("20")))
	err := risk.CanTransferWithdraw(money.MustParse("30"), money.MustParse("20"))
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrNotEnoughFunds))
}

func TestCanCancelFunded(t *testing.T) {
	require.NoError(t, risk.CanCancelFunded(domain.Trade{Status: domain.TradeStatusNew}))
	require.NoError(t, risk.CanCancelFunded(domain.Trade{Status: domain.TradeStatusFunded}))
	err := risk.CanCancelFunded(domain.Trade{Status: domain.TradeStatusSubmitted})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrWrongTradeStatus))
}

func TestCanTransferFill(t *testing.T) {
	trade := domain.Trade{Status: domain.TradeStatusFunded}
	tb := domain.TradeBalance{Funding: money.MustParse("20000")}
	require.NoError(t, risk.CanTransferFill(trade, money.MustParse("19950"), tb))
	err := risk.CanTransferFill(trade, money.MustParse("20001"), tb)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrFillingMustBePositive))
}
