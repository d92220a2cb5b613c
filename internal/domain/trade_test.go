package domain_test

import (
	"testing"

	"github.com/riskcore/tradecore/internal/domain"
	"github.com/riskcore/tradecore/internal/money"
	"github.com/stretchr/testify/assert"
)

func leg(price string, qty uint64) domain.Order {
	return domain.Order{UnitPrice: money.MustParse(price), Quantity: qty}
}

func TestTrade_ValidateLegs_Long(t *testing.T) {
	tr := domain.Trade{Category: domain.TradeCategoryLong}
	entry := leg("40", 500)
	stop := leg("38", 500)
	target := leg("50", 500)
	assert.NoError(t, tr.ValidateLegs(entry, stop, target))
}

func TestTrade_ValidateLegs_LongRejectsBadOrdering(t *testing.T) {
	tr := domain.Trade{Category: domain.TradeCategoryLong}
	entry := leg("40", 500)
	stop := leg("41", 500) // stop above entry — invalid
	target := leg("50", 500)
	assert.Error(t, tr.ValidateLegs(entry, stop, target))
}

func TestTrade_ValidateLegs_Short(t *testing.T) {
	tr := domain.Trade{Category: domain.TradeCategoryShort}
	entry := leg("10", 6)
	stop := leg("15", 6)
	target := leg("5", 6)
	assert.NoError(t, tr.ValidateLegs(entry, stop, target))
}

func TestTrade_ValidateLegs_RejectsMismatchedQuantities(t *testing.T) {
	tr := domain.Trade{Category: domain.TradeCategoryLong}
	entry := leg("40", 500)
	stop := leg("38", 499)
	target := leg("50", 500)
	assert.Error(t, tr.ValidateLegs(entry, stop, target))
}
