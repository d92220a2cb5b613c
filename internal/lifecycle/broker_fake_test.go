package lifecycle_test

import (
	"context"

	"github.com/riskcore/tradecore/internal/domain"
	"github.com/riskcore/tradecore/internal/money"
	"github.com/riskcore/tradecore/internal/ports"
)

// fakeBroker is a hand-rolled ports.Broker, in the teacher's style of
// mocking collaborators with small structs rather than a generated
// framework. Each method returns a scripted response so tests can drive
// every branch of SyncTrade's classification without a real brokerage.
type fakeBroker struct {
	syncUpdates []ports.BrokerOrderUpdate
	closeUpdate ports.BrokerOrderUpdate
}

func (b *fakeBroker) SubmitTrade(_ context.Context, trade domain.Trade, _ domain.Account) (domain.BrokerLog, ports.OrderIDs, error) {
	return domain.BrokerLog{Log: "submit ok"}, ports.OrderIDs{
		EntryBrokerOrderID:  "entry-" + trade.ID.String(),
		StopBrokerOrderID:   "stop-" + trade.ID.String(),
		TargetBrokerOrderID: "target-" + trade.ID.String(),
	}, nil
}

func (b *fakeBroker) SyncTrade(_ context.Context, trade domain.Trade, _ domain.Account) (domain.TradeStatus, []ports.BrokerOrderUpdate, domain.BrokerLog, error) {
	return trade.Status, b.syncUpdates, domain.BrokerLog{Log: "sync ok"}, nil
}

func (b *fakeBroker) CloseTrade(_ context.Context, _ domain.Trade, _ domain.Account) (ports.BrokerOrderUpdate, domain.BrokerLog, error) {
	return b.closeUpdate, domain.BrokerLog{Log: "close ok"}, nil
}

func (b *fakeBroker) CancelTrade(_ context.Context, _ domain.Trade, _ domain.Account) error {
	return nil
}

func (b *fakeBroker) ModifyStop(_ context.Context, _ domain.Trade, _ domain.Account, _ money.Amount) (string, error) {
	return "stop-modified", nil
}

func (b *fakeBroker) ModifyTarget(_ context.Context, _ domain.Trade, _ domain.Account, _ money.Amount) (string, error) {
	return "target-modified", nil
}

var _ ports.Broker = (*fakeBroker)(nil)
