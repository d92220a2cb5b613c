// Package facade is the flat synchronous API surface (§4.4) the
// composition root drives: account/rule/vehicle CRUD, deposit/withdrawal
// transfers, quantity sizing, and the trade lifecycle, all delegated to
// internal/lifecycle, internal/risk, internal/ledger and ports.Store.
package facade

import (
	"github.com/riskcore/tradecore/internal/lifecycle"
	"github.com/riskcore/tradecore/internal/ports"
)

// Facade is the single entry point the cmd/tradecli composition root
// wires up: one store, one broker, one lifecycle. It holds no state of
// its own beyond those handles, mirroring lifecycle.Lifecycle's own
// "no state of its own" discipline.
type Facade struct {
	Store     ports.Store
	Lifecycle *lifecycle.Lifecycle
}

// New builds a Facade bound to a store and broker.
func New(store ports.Store, broker ports.Broker) *Facade {
	return &Facade{
		Store:     store,
		Lifecycle: lifecycle.New(store, broker),
	}
}
