package domain

import "time"

// BrokerLog is an opaque broker-reply record keyed by trade, kept for
// auditability (§3).
type BrokerLog struct {
	ID        ID
	TradeID   ID
	Log       string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
