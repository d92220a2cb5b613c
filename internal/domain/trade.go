package domain

import (
	"fmt"
	"time"
)

// Trade is the aggregate of an entry order, a safety-stop order, a
// target order, a TradeBalance, and references to its account and
// trading vehicle (§3).
//
// Invariant: entry.Quantity == Stop.Quantity == Target.Quantity at
// creation. For a long trade, Stop.UnitPrice < Entry.UnitPrice <
// Target.UnitPrice; mirrored for short. The stop price may only move
// in the direction of reduced risk after fill (see risk.CanModifyStop).
type Trade struct {
	ID               ID
	AccountID        ID
	TradingVehicleID ID

	EntryID  ID
	StopID   ID
	TargetID ID

	TradeBalanceID ID

	Category TradeCategory
	Status   TradeStatus
	Currency string

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// ValidateLegs checks the §3/§8 ordering invariant over the three leg
// orders. Callers pass the already-loaded Order records for entry,
// stop, and target (by ID from Trade.EntryID/StopID/TargetID).
func (t Trade) ValidateLegs(entry, stop, target Order) error {
	if entry.Quantity != stop.Quantity || entry.Quantity != target.Quantity {
		return fmt.Errorf("domain.Trade.ValidateLegs: leg quantities differ: entry=%d stop=%d target=%d",
			entry.Quantity, stop.Quantity, target.Quantity)
	}

	switch t.Category {
	case TradeCategoryLong:
		if !(stop.UnitPrice.LessThan(entry.UnitPrice) && entry.UnitPrice.LessThan(target.UnitPrice)) {
			return fmt.Errorf("domain.Trade.ValidateLegs: long trade requires stop < entry < target, got stop=%s entry=%s target=%s",
				stop.UnitPrice, entry.UnitPrice, target.UnitPrice)
		}
	case TradeCategoryShort:
		if !(target.UnitPrice.LessThan(entry.UnitPrice) && entry.UnitPrice.LessThan(stop.UnitPrice)) {
			return fmt.Errorf("domain.Trade.ValidateLegs: short trade requires target < entry < stop, got target=%s entry=%s stop=%s",
				target.UnitPrice, entry.UnitPrice, stop.UnitPrice)
		}
	default:
		return fmt.Errorf("domain.Trade.ValidateLegs: unknown trade category %v", t.Category)
	}
	return nil
}
