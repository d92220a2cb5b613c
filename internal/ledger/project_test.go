package ledger_test

import (
	"testing"
	"time"

	"github.com/riskcore/tradecore/internal/domain"
	"github.com/riskcore/tradecore/internal/ledger"
	"github.com/riskcore/tradecore/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectAccountBalance_HappyLong(t *testing.T) {
	// Scenario S1 up through target-hit.
	account := domain.NewID()
	trade := domain.NewID()
	now := time.Now().UTC()

	txs := []domain.Transaction{
		ledger.Deposit(account, "USD", money.MustParse("50000"), now),
		ledger.FundTrade(account, trade, "USD", money.MustParse("20000"), now),
	}
	statuses := map[domain.ID]domain.TradeStatus{trade: domain.TradeStatusFunded}

	bal, err := ledger.ProjectAccountBalance(account, "USD", txs, statuses)
	require.NoError(t, err)
	assert.Equal(t, "50000", bal.TotalBalance.String())
	assert.Equal(t, "30000", bal.TotalAvailable.String())
	assert.Equal(t, "20000", bal.TotalInTrade.String())

	// Submit, then sync: entry filled at 39.90 for 500 shares => OpenTrade 19950,
	// PaymentFromTrade 50 (the difference between 20000 reserved and 19950 spent).
	statuses[trade] = domain.TradeStatusFilled
	txs = append(txs,
		ledger.OpenTrade(account, trade, "USD", money.MustParse("19950"), now),
		ledger.PaymentFromTrade(account, trade, "USD", money.MustParse("50"), now),
	)
	bal, err = ledger.ProjectAccountBalance(account, "USD", txs, statuses)
	require.NoError(t, err)
	assert.Equal(t, "30050", bal.TotalAvailable.String())
	assert.Equal(t, "19950", bal.TotalInTrade.String())

	// Target hit at 52.90: CloseTarget 26450; the full exit proceeds flow
	// back to available via a matching PaymentFromTrade, since none of it
	// was sitting in available while the position was open.
	statuses[trade] = domain.TradeStatusClosedTarget
	txs = append(txs,
		ledger.CloseTarget(account, trade, "USD", money.MustParse("26450"), now),
		ledger.PaymentFromTrade(account, trade, "USD", money.MustParse("26450"), now),
	)
	bal, err = ledger.ProjectAccountBalance(account, "USD", txs, statuses)
	require.NoError(t, err)
	assert.Equal(t, "56500", bal.TotalAvailable.String())
	assert.Equal(t, "0", bal.TotalInTrade.String())
}

func TestProjectAccountBalance_StopOutWithSlippage(t *testing.T) {
	// Scenario S2: stop filled at 30.20, well below plan 38.
	account := domain.NewID()
	trade := domain.NewID()
	now := time.Now().UTC()

	txs := []domain.Transaction{
		ledger.Deposit(account, "USD", money.MustParse("50000"), now),
		ledger.FundTrade(account, trade, "USD", money.MustParse("20000"), now),
		ledger.OpenTrade(account, trade, "USD", money.MustParse("19950"), now),
		ledger.PaymentFromTrade(account, trade, "USD", money.MustParse("50"), now),
		ledger.CloseSafetyStopSlippage(account, trade, "USD", money.MustParse("15100"), now),
		ledger.PaymentFromTrade(account, trade, "USD", money.MustParse("15100"), now),
	}
	statuses := map[domain.ID]domain.TradeStatus{trade: domain.TradeStatusClosedStopLoss}

	bal, err := ledger.ProjectAccountBalance(account, "USD", txs, statuses)
	require.NoError(t, err)
	assert.Equal(t, "45150", bal.TotalAvailable.String())
}

func TestProjectAccountBalance_CancelFunded(t *testing.T) {
	// Scenario S3: cancel_funded restores full availability.
	account := domain.NewID()
	trade := domain.NewID()
	now := time.Now().UTC()

	txs := []domain.Transaction{
		ledger.Deposit(account, "USD", money.MustParse("50000"), now),
		ledger.FundTrade(account, trade, "USD", money.MustParse("20000"), now),
		ledger.PaymentFromTrade(account, trade, "USD", money.MustParse("20000"), now),
	}
	statuses := map[domain.ID]domain.TradeStatus{trade: domain.TradeStatusCanceled}

	bal, err := ledger.ProjectAccountBalance(account, "USD", txs, statuses)
	require.NoError(t, err)
	assert.Equal(t, "50000", bal.TotalAvailable.String())
	assert.Equal(t, "0", bal.TotalInTrade.String())
}

func TestProjectAccountBalance_NegativeAvailableIsError(t *testing.T) {
	account := domain.NewID()
	now := time.Now().UTC()
	txs := []domain.Transaction{
		ledger.Withdrawal(account, "USD", money.MustParse("10"), now),
	}
	_, err := ledger.ProjectAccountBalance(account, "USD", txs, nil)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrArithmeticOverflow))
}

func TestProjectTradeBalance_ShortTrade(t *testing.T) {
	// Scenario S4: short AAPL entry 10 stop 15 qty 6; required capital 90.
	account := domain.NewID()
	trade := domain.NewID()
	now := time.Now().UTC()

	txs := []domain.Transaction{
		ledger.FundTrade(account, trade, "USD", money.MustParse("90"), now),
	}
	tb, err := ledger.ProjectTradeBalance(trade, txs, false)
	require.NoError(t, err)
	assert.Equal(t, "90", tb.Funding.String())
}

func TestProjectAccountBalance_ConservationLaw(t *testing.T) {
	// §8 property 8: deposits - withdrawals + sum(total_performance) == total_balance.
	account := domain.NewID()
	trade := domain.NewID()
	now := time.Now().UTC()

	txs := []domain.Transaction{
		ledger.Deposit(account, "USD", money.MustParse("50000"), now),
		ledger.FundTrade(account, trade, "USD", money.MustParse("20000"), now),
		ledger.OpenTrade(account, trade, "USD", money.MustParse("19950"), now),
		ledger.PaymentFromTrade(account, trade, "USD", money.MustParse("50"), now),
		ledger.CloseTarget(account, trade, "USD", money.MustParse("26450"), now),
		ledger.PaymentFromTrade(account, trade, "USD", money.MustParse("26450"), now),
	}
	statuses := map[domain.ID]domain.TradeStatus{trade: domain.TradeStatusClosedTarget}

	bal, err := ledger.ProjectAccountBalance(account, "USD", txs, statuses)
	require.NoError(t, err)

	tb, err := ledger.ProjectTradeBalance(trade, txs, true)
	require.NoError(t, err)

	deposits := money.MustParse("50000")
	sumPerf := tb.TotalPerformance
	lhs, _ := deposits.Add(sumPerf)
	assert.Equal(t, bal.TotalBalance.String(), lhs.String())
}
