package lifecycle_test

import (
	"context"
	"fmt"
	"time"

	"github.com/riskcore/tradecore/internal/domain"
	"github.com/riskcore/tradecore/internal/ledger"
	"github.com/riskcore/tradecore/internal/ports"
)

// memStore is a hand-rolled in-memory ports.Store, in the teacher's style
// of mocking ports with small structs instead of a generated framework.
type memStore struct {
	accounts      map[domain.ID]domain.Account
	balances      map[string]domain.AccountBalance
	rules         map[domain.ID]domain.Rule
	vehicles      map[domain.ID]domain.TradingVehicle
	orders        map[domain.ID]domain.Order
	trades        map[domain.ID]domain.Trade
	tradeBalances map[domain.ID]domain.TradeBalance
	transactions  []domain.Transaction
	logs          []domain.BrokerLog
}

func newMemStore() *memStore {
	return &memStore{
		accounts:      map[domain.ID]domain.Account{},
		balances:      map[string]domain.AccountBalance{},
		rules:         map[domain.ID]domain.Rule{},
		vehicles:      map[domain.ID]domain.TradingVehicle{},
		orders:        map[domain.ID]domain.Order{},
		trades:        map[domain.ID]domain.Trade{},
		tradeBalances: map[domain.ID]domain.TradeBalance{},
	}
}

func balKey(accountID domain.ID, currency string) string {
	return accountID.String() + "/" + currency
}

func (s *memStore) FindAccount(_ context.Context, id domain.ID) (domain.Account, error) {
	a, ok := s.accounts[id]
	if !ok {
		return domain.Account{}, fmt.Errorf("account %s not found", id)
	}
	return a, nil
}
func (s *memStore) FindAccountByName(_ context.Context, name string) (domain.Account, error) {
	for _, a := range s.accounts {
		if a.Name == name {
			return a, nil
		}
	}
	return domain.Account{}, fmt.Errorf("account %q not found", name)
}
func (s *memStore) SearchAccounts(_ context.Context) ([]domain.Account, error) {
	out := make([]domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	return out, nil
}
func (s *memStore) CreateAccount(_ context.Context, a domain.Account) (domain.Account, error) {
	s.accounts[a.ID] = a
	return a, nil
}

func (s *memStore) FindAccountBalance(_ context.Context, accountID domain.ID, currency string) (domain.AccountBalance, error) {
	b, ok := s.balances[balKey(accountID, currency)]
	if !ok {
		return domain.AccountBalance{}, fmt.Errorf("balance for %s/%s not found", accountID, currency)
	}
	return b, nil
}
func (s *memStore) SearchAccountBalances(_ context.Context, accountID domain.ID) ([]domain.AccountBalance, error) {
	var out []domain.AccountBalance
	for _, b := range s.balances {
		if b.AccountID == accountID {
			out = append(out, b)
		}
	}
	return out, nil
}
func (s *memStore) UpsertAccountBalance(_ context.Context, b domain.AccountBalance) (domain.AccountBalance, error) {
	if b.ID.IsNil() {
		b.ID = domain.NewID()
	}
	s.balances[balKey(b.AccountID, b.Currency)] = b
	return b, nil
}

func (s *memStore) FindRule(_ context.Context, id domain.ID) (domain.Rule, error) {
	r, ok := s.rules[id]
	if !ok {
		return domain.Rule{}, fmt.Errorf("rule %s not found", id)
	}
	return r, nil
}
func (s *memStore) SearchActiveRules(_ context.Context, accountID domain.ID) ([]domain.Rule, error) {
	var out []domain.Rule
	for _, r := range s.rules {
		if r.AccountID == accountID && r.Active {
			out = append(out, r)
		}
	}
	return out, nil
}
func (s *memStore) CreateRule(_ context.Context, r domain.Rule) (domain.Rule, error) {
	if r.ID.IsNil() {
		r.ID = domain.NewID()
	}
	s.rules[r.ID] = r
	return r, nil
}
func (s *memStore) DeleteRule(_ context.Context, id domain.ID) error {
	delete(s.rules, id)
	return nil
}

func (s *memStore) FindTradingVehicle(_ context.Context, id domain.ID) (domain.TradingVehicle, error) {
	v, ok := s.vehicles[id]
	if !ok {
		return domain.TradingVehicle{}, fmt.Errorf("vehicle %s not found", id)
	}
	return v, nil
}
func (s *memStore) FindTradingVehicleByISIN(_ context.Context, isin string) (domain.TradingVehicle, error) {
	for _, v := range s.vehicles {
		if v.ISIN == isin {
			return v, nil
		}
	}
	return domain.TradingVehicle{}, fmt.Errorf("vehicle isin %q not found", isin)
}
func (s *memStore) CreateTradingVehicle(_ context.Context, v domain.TradingVehicle) (domain.TradingVehicle, error) {
	if v.ID.IsNil() {
		v.ID = domain.NewID()
	}
	s.vehicles[v.ID] = v
	return v, nil
}

func (s *memStore) FindOrder(_ context.Context, id domain.ID) (domain.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return domain.Order{}, fmt.Errorf("order %s not found", id)
	}
	return o, nil
}
func (s *memStore) CreateOrder(_ context.Context, o domain.Order) (domain.Order, error) {
	if o.ID.IsNil() {
		o.ID = domain.NewID()
	}
	s.orders[o.ID] = o
	return o, nil
}
func (s *memStore) UpdateOrder(_ context.Context, o domain.Order) (domain.Order, error) {
	s.orders[o.ID] = o
	return o, nil
}

func (s *memStore) FindTrade(_ context.Context, id domain.ID) (domain.Trade, error) {
	t, ok := s.trades[id]
	if !ok {
		return domain.Trade{}, fmt.Errorf("trade %s not found", id)
	}
	return t, nil
}
func (s *memStore) SearchTrades(_ context.Context, accountID domain.ID, statuses []domain.TradeStatus) ([]domain.Trade, error) {
	want := make(map[domain.TradeStatus]bool, len(statuses))
	for _, st := range statuses {
		want[st] = true
	}
	var out []domain.Trade
	for _, t := range s.trades {
		if t.AccountID != accountID {
			continue
		}
		if len(want) == 0 || want[t.Status] {
			out = append(out, t)
		}
	}
	return out, nil
}
func (s *memStore) CreateTrade(_ context.Context, t domain.Trade) (domain.Trade, error) {
	if t.ID.IsNil() {
		t.ID = domain.NewID()
	}
	s.trades[t.ID] = t
	return t, nil
}
func (s *memStore) UpdateTrade(_ context.Context, t domain.Trade) (domain.Trade, error) {
	s.trades[t.ID] = t
	return t, nil
}

func (s *memStore) FindTradeBalance(_ context.Context, tradeID domain.ID) (domain.TradeBalance, error) {
	tb, ok := s.tradeBalances[tradeID]
	if !ok {
		return domain.TradeBalance{}, fmt.Errorf("trade balance for %s not found", tradeID)
	}
	return tb, nil
}
func (s *memStore) UpsertTradeBalance(_ context.Context, tb domain.TradeBalance) (domain.TradeBalance, error) {
	if tb.ID.IsNil() {
		tb.ID = domain.NewID()
	}
	s.tradeBalances[tb.TradeID] = tb
	return tb, nil
}

func (s *memStore) SearchTransactions(_ context.Context, accountID domain.ID, currency string) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, t := range s.transactions {
		if t.AccountID == accountID && t.Currency == currency {
			out = append(out, t)
		}
	}
	return out, nil
}
func (s *memStore) SearchTransactionsBefore(_ context.Context, accountID domain.ID, currency string, before time.Time) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, t := range s.transactions {
		if t.AccountID == accountID && t.Currency == currency && t.CreatedAt.Before(before) {
			out = append(out, t)
		}
	}
	return out, nil
}
func (s *memStore) SearchTradeTransactions(_ context.Context, tradeID domain.ID) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, t := range s.transactions {
		if t.Category.TradeID() == tradeID {
			out = append(out, t)
		}
	}
	return out, nil
}
func (s *memStore) CreateTransactions(_ context.Context, txns []domain.Transaction) error {
	s.transactions = append(s.transactions, txns...)
	return nil
}

func (s *memStore) ListBrokerLogs(_ context.Context, tradeID domain.ID) ([]domain.BrokerLog, error) {
	var out []domain.BrokerLog
	for _, l := range s.logs {
		if l.TradeID == tradeID {
			out = append(out, l)
		}
	}
	return out, nil
}
func (s *memStore) CreateBrokerLog(_ context.Context, l domain.BrokerLog) (domain.BrokerLog, error) {
	if l.ID.IsNil() {
		l.ID = domain.NewID()
	}
	s.logs = append(s.logs, l)
	return l, nil
}

// Atomic runs fn against the same store: memStore has no real transaction
// boundary, so a mid-fn error simply leaves whatever was already written in
// place. Good enough for lifecycle unit tests, which assert on success
// paths and on validator rejections that occur before any write.
func (s *memStore) Atomic(ctx context.Context, fn func(ctx context.Context, tx ports.Store) error) error {
	return fn(ctx, s)
}

var _ ports.Store = (*memStore)(nil)
var _ = ledger.Rebuild
