package facade_test

import (
	"context"
	"testing"
	"time"

	"github.com/riskcore/tradecore/internal/adapters/storage"
	"github.com/riskcore/tradecore/internal/domain"
	"github.com/riskcore/tradecore/internal/facade"
	"github.com/riskcore/tradecore/internal/money"
	"github.com/riskcore/tradecore/internal/ports"
	"github.com/stretchr/testify/require"
)

// fakeBroker is a hand-rolled ports.Broker, in the teacher's style of
// mocking collaborators with small structs rather than a generated
// framework. Submit hands back fixed broker order IDs; sync reports no
// order updates, so no leg is ever filled.
type fakeBroker struct {
	submitted int
}

func (b *fakeBroker) SubmitTrade(ctx context.Context, trade domain.Trade, account domain.Account) (domain.BrokerLog, ports.OrderIDs, error) {
	b.submitted++
	return domain.BrokerLog{Log: "submitted"}, ports.OrderIDs{
		EntryBrokerOrderID:  "entry-1",
		StopBrokerOrderID:   "stop-1",
		TargetBrokerOrderID: "target-1",
	}, nil
}

func (b *fakeBroker) SyncTrade(ctx context.Context, trade domain.Trade, account domain.Account) (domain.TradeStatus, []ports.BrokerOrderUpdate, domain.BrokerLog, error) {
	return trade.Status, nil, domain.BrokerLog{Log: "synced"}, nil
}

func (b *fakeBroker) CloseTrade(ctx context.Context, trade domain.Trade, account domain.Account) (ports.BrokerOrderUpdate, domain.BrokerLog, error) {
	return ports.BrokerOrderUpdate{}, domain.BrokerLog{Log: "closed"}, nil
}

func (b *fakeBroker) CancelTrade(ctx context.Context, trade domain.Trade, account domain.Account) error {
	return nil
}

func (b *fakeBroker) ModifyStop(ctx context.Context, trade domain.Trade, account domain.Account, price money.Amount) (string, error) {
	return "stop-2", nil
}

func (b *fakeBroker) ModifyTarget(ctx context.Context, trade domain.Trade, account domain.Account, price money.Amount) (string, error) {
	return "target-2", nil
}

var _ ports.Broker = (*fakeBroker)(nil)

func newTestFacade(t *testing.T) *facade.Facade {
	t.Helper()
	store, err := storage.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return facade.New(store, &fakeBroker{})
}

func newTestAccount(ctx context.Context, t *testing.T, f *facade.Facade, now time.Time) domain.Account {
	t.Helper()
	account, err := f.CreateAccount(ctx, domain.Account{
		Name:               "main",
		Environment:        domain.EnvironmentPaper,
		TaxesPercentage:    money.MustParse("0.20"),
		EarningsPercentage: money.MustParse("0.10"),
	}, now)
	require.NoError(t, err)
	return account
}

func TestFacade_CreateAccount_FindByName(t *testing.T) {
	ctx := context.Background()
	f := newTestFacade(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	created := newTestAccount(ctx, t, f, now)
	found, err := f.AccountByName(ctx, "main")
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)
}

func TestFacade_Deposit_RebuildsBalance(t *testing.T) {
	ctx := context.Background()
	f := newTestFacade(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	account := newTestAccount(ctx, t, f, now)

	balance, err := f.Deposit(ctx, account.ID, "USD", money.MustParse("1000"), now)
	require.NoError(t, err)
	require.True(t, balance.TotalAvailable.Cmp(money.MustParse("1000")) == 0)

	balance, err = f.Deposit(ctx, account.ID, "USD", money.MustParse("500"), now.Add(time.Minute))
	require.NoError(t, err)
	require.True(t, balance.TotalAvailable.Cmp(money.MustParse("1500")) == 0)
}

func TestFacade_Withdraw_RejectsInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	f := newTestFacade(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	account := newTestAccount(ctx, t, f, now)

	_, err := f.Deposit(ctx, account.ID, "USD", money.MustParse("100"), now)
	require.NoError(t, err)

	_, err = f.Withdraw(ctx, account.ID, "USD", money.MustParse("500"), now)
	require.Error(t, err)
	require.True(t, domain.IsKind(err, domain.ErrNotEnoughFunds))
}

func TestFacade_TradeLifecycle_CreateFundSubmit(t *testing.T) {
	ctx := context.Background()
	f := newTestFacade(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	account := newTestAccount(ctx, t, f, now)
	_, err := f.Deposit(ctx, account.ID, "USD", money.MustParse("10000"), now)
	require.NoError(t, err)

	vehicle, err := f.CreateTradingVehicle(ctx, domain.TradingVehicle{
		Symbol: "ACME", ISIN: "US0000000001", Category: domain.VehicleStock,
	}, now)
	require.NoError(t, err)

	entry := domain.Order{TradingVehicleID: vehicle.ID, UnitPrice: money.MustParse("100"), Currency: "USD", Quantity: 10, Category: domain.OrderCategoryMarket, Action: domain.OrderActionBuy, Status: domain.OrderStatusNew, TimeInForce: domain.TimeInForceDay}
	stop := domain.Order{TradingVehicleID: vehicle.ID, UnitPrice: money.MustParse("90"), Currency: "USD", Quantity: 10, Category: domain.OrderCategoryStop, Action: domain.OrderActionSell, Status: domain.OrderStatusNew, TimeInForce: domain.TimeInForceGTC}
	target := domain.Order{TradingVehicleID: vehicle.ID, UnitPrice: money.MustParse("120"), Currency: "USD", Quantity: 10, Category: domain.OrderCategoryLimit, Action: domain.OrderActionSell, Status: domain.OrderStatusNew, TimeInForce: domain.TimeInForceGTC}

	trade := domain.Trade{AccountID: account.ID, TradingVehicleID: vehicle.ID, Category: domain.TradeCategoryLong, Currency: "USD"}
	created, err := f.CreateTrade(ctx, trade, entry, stop, target, now)
	require.NoError(t, err)
	require.Equal(t, domain.TradeStatusNew, created.Status)

	funded, err := f.FundTrade(ctx, created.ID, now)
	require.NoError(t, err)
	require.Equal(t, domain.TradeStatusFunded, funded.Status)

	submitted, err := f.SubmitTrade(ctx, created.ID, now)
	require.NoError(t, err)
	require.Equal(t, domain.TradeStatusSubmitted, submitted.Status)

	logs, err := f.BrokerLogs(ctx, created.ID)
	require.NoError(t, err)
	require.NotEmpty(t, logs)
}

func TestFacade_MaxQuantity_BoundedByAvailable(t *testing.T) {
	ctx := context.Background()
	f := newTestFacade(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	account := newTestAccount(ctx, t, f, now)
	_, err := f.Deposit(ctx, account.ID, "USD", money.MustParse("1000"), now)
	require.NoError(t, err)

	q, err := f.MaxQuantity(ctx, account.ID, domain.TradeCategoryLong, "USD", money.MustParse("100"), money.MustParse("90"), now)
	require.NoError(t, err)
	require.Equal(t, int64(10), q)
}
