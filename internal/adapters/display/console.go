// Package display renders trades, orders, and ledger rows to a terminal.
// It is an external collaborator per spec §1 ("display/table formatting")
// and touches no core package other than internal/domain for field access.
package display

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/riskcore/tradecore/internal/domain"
)

// Console renders tradecore entities as tables to an io.Writer.
type Console struct {
	out io.Writer
}

// NewConsole creates a Console that writes to stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// NewConsoleWriter creates a Console for tests.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{out: w}
}

// PrintTrades renders a table of trades with their leg orders.
func (c *Console) PrintTrades(trades []domain.Trade, legs map[domain.ID][3]domain.Order) {
	if len(trades) == 0 {
		fmt.Fprintln(c.out, "no trades found")
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("ID", "Vehicle", "Cat", "Status", "Entry", "Stop", "Target", "Qty", "Updated")

	for _, t := range trades {
		entry, stop, target := legs[t.ID][0], legs[t.ID][1], legs[t.ID][2]
		table.Append(
			shortID(t.ID),
			t.TradingVehicleID.String()[:8],
			t.Category.String(),
			t.Status.String(),
			entry.UnitPrice.String(),
			stop.UnitPrice.String(),
			target.UnitPrice.String(),
			fmt.Sprintf("%d", entry.Quantity),
			t.UpdatedAt.Format(time.RFC3339),
		)
	}
	table.Render()
}

// PrintBalance renders a single account balance row.
func (c *Console) PrintBalance(bal domain.AccountBalance) {
	table := tablewriter.NewWriter(c.out)
	table.Header("Currency", "Total", "Available", "In Trade", "Taxed", "Earnings")
	table.Append(
		bal.Currency,
		bal.TotalBalance.String(),
		bal.TotalAvailable.String(),
		bal.TotalInTrade.String(),
		bal.Taxed.String(),
		bal.TotalEarnings.String(),
	)
	table.Render()
}

// PrintTradeBalance renders a single trade balance row.
func (c *Console) PrintTradeBalance(tb domain.TradeBalance) {
	table := tablewriter.NewWriter(c.out)
	table.Header("Funding", "In Market", "Out Market", "Taxed", "Performance")
	table.Append(
		tb.Funding.String(),
		tb.CapitalInMarket.String(),
		tb.CapitalOutMarket.String(),
		tb.Taxed.String(),
		tb.TotalPerformance.String(),
	)
	table.Render()
}

// PrintTransactions renders a ledger of transactions in the order given;
// it does not sort them.
func (c *Console) PrintTransactions(transactions []domain.Transaction) {
	if len(transactions) == 0 {
		fmt.Fprintln(c.out, "no transactions found")
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("ID", "Category", "Amount", "Currency", "Created")

	for _, tx := range transactions {
		table.Append(
			shortID(tx.ID),
			tx.Category.String(),
			tx.Amount.String(),
			tx.Currency,
			tx.CreatedAt.Format(time.RFC3339),
		)
	}
	table.Render()
}

func shortID(id domain.ID) string {
	s := id.String()
	if len(s) <= 8 {
		return s
	}
	return s[:8]
}
