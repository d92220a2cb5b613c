package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/riskcore/tradecore/internal/adapters/storage"
	"github.com/riskcore/tradecore/internal/domain"
	"github.com/riskcore/tradecore/internal/money"
	"github.com/riskcore/tradecore/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	db, err := storage.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newAccount(name string) domain.Account {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.Account{
		ID:                 domain.NewID(),
		Name:               name,
		Environment:        domain.EnvironmentPaper,
		TaxesPercentage:    money.MustParse("0.19"),
		EarningsPercentage: money.MustParse("0.10"),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func TestSQLiteStore_CreateAndFindAccount(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	account := newAccount("primary")
	_, err := db.CreateAccount(ctx, account)
	require.NoError(t, err)

	found, err := db.FindAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.Name, found.Name)
	assert.Equal(t, domain.EnvironmentPaper, found.Environment)
	assert.True(t, account.TaxesPercentage.Cmp(found.TaxesPercentage) == 0)

	byName, err := db.FindAccountByName(ctx, "PRIMARY")
	require.NoError(t, err)
	assert.Equal(t, account.ID, byName.ID)
}

func TestSQLiteStore_FindAccount_NotFound(t *testing.T) {
	db := newTestStore(t)
	_, err := db.FindAccount(context.Background(), domain.NewID())
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrNotFound))
}

func TestSQLiteStore_SearchAccounts(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	a1 := newAccount("alpha")
	a2 := newAccount("beta")
	_, err := db.CreateAccount(ctx, a1)
	require.NoError(t, err)
	_, err = db.CreateAccount(ctx, a2)
	require.NoError(t, err)

	all, err := db.SearchAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSQLiteStore_UpsertAccountBalance(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	account := newAccount("funding")
	_, err := db.CreateAccount(ctx, account)
	require.NoError(t, err)

	balance := domain.AccountBalance{
		AccountID:      account.ID,
		Currency:       "USD",
		TotalBalance:   money.MustParse("1000"),
		TotalAvailable: money.MustParse("1000"),
	}
	saved, err := db.UpsertAccountBalance(ctx, balance)
	require.NoError(t, err)
	assert.False(t, saved.ID.IsNil())

	balance.TotalBalance = money.MustParse("1500")
	balance.TotalAvailable = money.MustParse("1500")
	updated, err := db.UpsertAccountBalance(ctx, balance)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)

	found, err := db.FindAccountBalance(ctx, account.ID, "USD")
	require.NoError(t, err)
	assert.Equal(t, "1500", found.TotalBalance.String())
}

func TestSQLiteStore_RulesOrderedByPriority(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	account := newAccount("risk")
	_, err := db.CreateAccount(ctx, account)
	require.NoError(t, err)

	now := time.Now().UTC()
	perTrade := domain.Rule{
		ID: domain.NewID(), AccountID: account.ID, Name: "per-trade", Kind: domain.RuleKindRiskPerTrade,
		Percentage: money.MustParse("0.02"), Level: domain.RuleLevelError, Active: true, CreatedAt: now, UpdatedAt: now,
	}
	perMonth := domain.Rule{
		ID: domain.NewID(), AccountID: account.ID, Name: "per-month", Kind: domain.RuleKindRiskPerMonth,
		Percentage: money.MustParse("0.06"), Level: domain.RuleLevelError, Active: true, CreatedAt: now, UpdatedAt: now,
	}
	_, err = db.CreateRule(ctx, perTrade)
	require.NoError(t, err)
	_, err = db.CreateRule(ctx, perMonth)
	require.NoError(t, err)

	rules, err := db.SearchActiveRules(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, domain.RuleKindRiskPerMonth, rules[0].Kind)
	assert.Equal(t, domain.RuleKindRiskPerTrade, rules[1].Kind)
}

func TestSQLiteStore_DeleteRule(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	account := newAccount("rules")
	_, err := db.CreateAccount(ctx, account)
	require.NoError(t, err)

	now := time.Now().UTC()
	rule := domain.Rule{
		ID: domain.NewID(), AccountID: account.ID, Name: "per-trade", Kind: domain.RuleKindRiskPerTrade,
		Percentage: money.MustParse("0.02"), Level: domain.RuleLevelError, Active: true, CreatedAt: now, UpdatedAt: now,
	}
	_, err = db.CreateRule(ctx, rule)
	require.NoError(t, err)

	require.NoError(t, db.DeleteRule(ctx, rule.ID))
	active, err := db.SearchActiveRules(ctx, account.ID)
	require.NoError(t, err)
	assert.Empty(t, active)

	err = db.DeleteRule(ctx, rule.ID)
	assert.True(t, domain.IsKind(err, domain.ErrNotFound))
}

func TestSQLiteStore_TradingVehicle_UniqueISIN(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	vehicle := domain.TradingVehicle{
		ID: domain.NewID(), Symbol: "AAPL", ISIN: "US0378331005", Category: domain.VehicleStock,
		CreatedAt: now, UpdatedAt: now,
	}
	_, err := db.CreateTradingVehicle(ctx, vehicle)
	require.NoError(t, err)

	found, err := db.FindTradingVehicleByISIN(ctx, "US0378331005")
	require.NoError(t, err)
	assert.Equal(t, vehicle.ID, found.ID)
	assert.Equal(t, domain.VehicleStock, found.Category)
}

func newOrder(vehicleID domain.ID, category domain.OrderCategory, action domain.OrderAction, price string) domain.Order {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.Order{
		ID:               domain.NewID(),
		TradingVehicleID: vehicleID,
		UnitPrice:        money.MustParse(price),
		Currency:         "USD",
		Quantity:         10,
		Category:         category,
		Action:           action,
		Status:           domain.OrderStatusNew,
		TimeInForce:      domain.TimeInForceGTC,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func TestSQLiteStore_OrderLifecycle(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	vehicle := domain.TradingVehicle{ID: domain.NewID(), Symbol: "MSFT", ISIN: "US5949181045", Category: domain.VehicleStock, CreatedAt: now, UpdatedAt: now}
	_, err := db.CreateTradingVehicle(ctx, vehicle)
	require.NoError(t, err)

	order := newOrder(vehicle.ID, domain.OrderCategoryLimit, domain.OrderActionBuy, "100")
	_, err = db.CreateOrder(ctx, order)
	require.NoError(t, err)

	order.Status = domain.OrderStatusFilled
	order.FilledQuantity = 10
	order.AverageFillPrice = money.MustParse("100")
	filledAt := time.Now().UTC()
	order.FilledAt = &filledAt
	order.UpdatedAt = filledAt

	_, err = db.UpdateOrder(ctx, order)
	require.NoError(t, err)

	found, err := db.FindOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusFilled, found.Status)
	assert.Equal(t, uint64(10), found.FilledQuantity)
	require.NotNil(t, found.FilledAt)
}

func TestSQLiteStore_TradeAndSearchByStatus(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	account := newAccount("trading")
	_, err := db.CreateAccount(ctx, account)
	require.NoError(t, err)

	vehicle := domain.TradingVehicle{ID: domain.NewID(), Symbol: "TSLA", ISIN: "US88160R1014", Category: domain.VehicleStock, CreatedAt: now, UpdatedAt: now}
	_, err = db.CreateTradingVehicle(ctx, vehicle)
	require.NoError(t, err)

	entry := newOrder(vehicle.ID, domain.OrderCategoryLimit, domain.OrderActionBuy, "100")
	stop := newOrder(vehicle.ID, domain.OrderCategoryStop, domain.OrderActionSell, "95")
	target := newOrder(vehicle.ID, domain.OrderCategoryLimit, domain.OrderActionSell, "110")
	for _, o := range []domain.Order{entry, stop, target} {
		_, err := db.CreateOrder(ctx, o)
		require.NoError(t, err)
	}

	trade := domain.Trade{
		ID: domain.NewID(), AccountID: account.ID, TradingVehicleID: vehicle.ID,
		EntryID: entry.ID, StopID: stop.ID, TargetID: target.ID,
		Category: domain.TradeCategoryLong, Status: domain.TradeStatusNew, Currency: "USD",
		CreatedAt: now, UpdatedAt: now,
	}
	_, err = db.CreateTrade(ctx, trade)
	require.NoError(t, err)

	trade.Status = domain.TradeStatusFunded
	trade.UpdatedAt = time.Now().UTC()
	_, err = db.UpdateTrade(ctx, trade)
	require.NoError(t, err)

	funded, err := db.SearchTrades(ctx, account.ID, []domain.TradeStatus{domain.TradeStatusFunded})
	require.NoError(t, err)
	require.Len(t, funded, 1)
	assert.Equal(t, trade.ID, funded[0].ID)

	none, err := db.SearchTrades(ctx, account.ID, []domain.TradeStatus{domain.TradeStatusNew})
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := db.SearchTrades(ctx, account.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSQLiteStore_Transactions_SearchAndBefore(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	account := newAccount("ledger")
	_, err := db.CreateAccount(ctx, account)
	require.NoError(t, err)

	early := time.Now().UTC().Add(-time.Hour)
	later := time.Now().UTC()

	deposit := domain.NewTransaction(account.ID, "USD", money.MustParse("1000"), domain.CategoryDeposit, early)
	tradeID := domain.NewID()
	fund := domain.NewTransaction(account.ID, "USD", money.MustParse("200"), domain.CategoryFundTrade(tradeID), later)

	err = db.CreateTransactions(ctx, []domain.Transaction{deposit, fund})
	require.NoError(t, err)

	all, err := db.SearchTransactions(ctx, account.ID, "USD")
	require.NoError(t, err)
	require.Len(t, all, 2)

	before, err := db.SearchTransactionsBefore(ctx, account.ID, "USD", later)
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.Equal(t, domain.TxDeposit, before[0].Category.Kind())

	tradeTx, err := db.SearchTradeTransactions(ctx, tradeID)
	require.NoError(t, err)
	require.Len(t, tradeTx, 1)
	assert.Equal(t, tradeID, tradeTx[0].Category.TradeID())
}

func TestSQLiteStore_BrokerLogs(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	tradeID := domain.NewID()
	_, err := db.CreateBrokerLog(ctx, domain.BrokerLog{TradeID: tradeID, Log: "submitted"})
	require.NoError(t, err)
	_, err = db.CreateBrokerLog(ctx, domain.BrokerLog{TradeID: tradeID, Log: "filled"})
	require.NoError(t, err)

	logs, err := db.ListBrokerLogs(ctx, tradeID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "filled", logs[0].Log) // newest first
}

func TestSQLiteStore_Atomic_RollsBackOnError(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	account := newAccount("atomic")

	err := db.Atomic(ctx, func(ctx context.Context, tx ports.Store) error {
		if _, err := tx.CreateAccount(ctx, account); err != nil {
			return err
		}
		return assert.AnError
	})
	require.Error(t, err)

	_, err = db.FindAccount(ctx, account.ID)
	assert.True(t, domain.IsKind(err, domain.ErrNotFound))
}

func TestSQLiteStore_Atomic_CommitsOnSuccess(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	account := newAccount("commits")

	err := db.Atomic(ctx, func(ctx context.Context, tx ports.Store) error {
		_, err := tx.CreateAccount(ctx, account)
		return err
	})
	require.NoError(t, err)

	found, err := db.FindAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.Name, found.Name)
}
