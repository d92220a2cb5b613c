package ports

import (
	"context"

	"github.com/riskcore/tradecore/internal/domain"
)

// BrokerLogReader is the read capability set for BrokerLog.
type BrokerLogReader interface {
	// ListBrokerLogs returns every log row kept for a trade, newest first.
	ListBrokerLogs(ctx context.Context, tradeID domain.ID) ([]domain.BrokerLog, error)
}

// BrokerLogWriter is the write capability set for BrokerLog.
type BrokerLogWriter interface {
	CreateBrokerLog(ctx context.Context, log domain.BrokerLog) (domain.BrokerLog, error)
}
