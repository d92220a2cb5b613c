package ports

import "context"

// Store is the full storage capability set the core depends on (§4.5/§6):
// one reader and one writer per entity, composed into a single handle so
// the Facade can be wired against one adapter. The core treats storage as
// synchronous and requires at-least read-your-writes consistency within a
// single-process run (§4.5).
type Store interface {
	AccountReader
	AccountWriter
	AccountBalanceReader
	AccountBalanceWriter
	RuleReader
	RuleWriter
	TradingVehicleReader
	TradingVehicleWriter
	OrderReader
	OrderWriter
	TradeReader
	TradeWriter
	TradeBalanceReader
	TradeBalanceWriter
	TransactionReader
	TransactionWriter
	BrokerLogReader
	BrokerLogWriter

	// Atomic executes fn with a Store handle scoped to a single storage
	// transaction. Every write fn performs through that handle commits or
	// rolls back together, satisfying §4.3's and §5's atomicity
	// requirement: transactions, balance updates, trade/order status
	// changes, and broker-log rows land in one atomic unit, or none do.
	Atomic(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}
