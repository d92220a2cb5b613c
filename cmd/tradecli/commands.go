package main

import (
	"context"
	"fmt"
	"time"

	"github.com/riskcore/tradecore/internal/adapters/display"
	"github.com/riskcore/tradecore/internal/domain"
	"github.com/riskcore/tradecore/internal/facade"
	"github.com/riskcore/tradecore/internal/money"
)

func cmdAccountCreate(ctx context.Context, f *facade.Facade, args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("usage: account-create <name> <environment> <taxes-pct> <earnings-pct>")
	}
	env, err := domain.ParseEnvironment(args[1])
	if err != nil {
		return err
	}
	taxes, err := money.Parse(args[2])
	if err != nil {
		return err
	}
	earnings, err := money.Parse(args[3])
	if err != nil {
		return err
	}
	account, err := f.CreateAccount(ctx, domain.Account{
		Name:               args[0],
		Environment:        env,
		TaxesPercentage:    taxes,
		EarningsPercentage: earnings,
	}, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("created account %s (%s)\n", account.ID, account.Name)
	return nil
}

func cmdAccountList(ctx context.Context, f *facade.Facade, _ []string) error {
	accounts, err := f.Accounts(ctx)
	if err != nil {
		return err
	}
	for _, a := range accounts {
		fmt.Printf("%s  %-20s  %s\n", a.ID, a.Name, a.Environment)
	}
	return nil
}

func cmdRuleCreate(ctx context.Context, f *facade.Facade, args []string) error {
	if len(args) != 5 {
		return fmt.Errorf("usage: rule-create <account-id> <name> <kind> <percentage> <level>")
	}
	accountID, err := domain.ParseID(args[0])
	if err != nil {
		return err
	}
	kind, err := domain.ParseRuleKind(args[2])
	if err != nil {
		return err
	}
	pct, err := money.Parse(args[3])
	if err != nil {
		return err
	}
	level, err := domain.ParseRuleLevel(args[4])
	if err != nil {
		return err
	}
	rule, err := f.CreateRule(ctx, domain.Rule{
		AccountID:  accountID,
		Name:       args[1],
		Kind:       kind,
		Percentage: pct,
		Level:      level,
		Active:     true,
	}, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("created rule %s (%s)\n", rule.ID, rule.Name)
	return nil
}

func cmdRuleDelete(ctx context.Context, f *facade.Facade, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: rule-delete <rule-id>")
	}
	ruleID, err := domain.ParseID(args[0])
	if err != nil {
		return err
	}
	return f.DeleteRule(ctx, ruleID)
}

func cmdVehicleCreate(ctx context.Context, f *facade.Facade, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: vehicle-create <symbol> <isin> <category>")
	}
	category, err := domain.ParseVehicleCategory(args[2])
	if err != nil {
		return err
	}
	vehicle, err := f.CreateTradingVehicle(ctx, domain.TradingVehicle{
		Symbol:   args[0],
		ISIN:     args[1],
		Category: category,
	}, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("created vehicle %s (%s)\n", vehicle.ID, vehicle.Symbol)
	return nil
}

func cmdDeposit(ctx context.Context, f *facade.Facade, console *display.Console, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: deposit <account-id> <currency> <amount>")
	}
	accountID, err := domain.ParseID(args[0])
	if err != nil {
		return err
	}
	amount, err := money.Parse(args[2])
	if err != nil {
		return err
	}
	balance, err := f.Deposit(ctx, accountID, args[1], amount, time.Now())
	if err != nil {
		return err
	}
	console.PrintBalance(balance)
	return nil
}

func cmdWithdraw(ctx context.Context, f *facade.Facade, console *display.Console, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: withdraw <account-id> <currency> <amount>")
	}
	accountID, err := domain.ParseID(args[0])
	if err != nil {
		return err
	}
	amount, err := money.Parse(args[2])
	if err != nil {
		return err
	}
	balance, err := f.Withdraw(ctx, accountID, args[1], amount, time.Now())
	if err != nil {
		return err
	}
	console.PrintBalance(balance)
	return nil
}

func cmdBalance(ctx context.Context, f *facade.Facade, console *display.Console, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: balance <account-id> <currency>")
	}
	accountID, err := domain.ParseID(args[0])
	if err != nil {
		return err
	}
	balance, err := f.AccountBalance(ctx, accountID, args[1])
	if err != nil {
		return err
	}
	console.PrintBalance(balance)
	return nil
}

func cmdRebuildBalance(ctx context.Context, f *facade.Facade, console *display.Console, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: rebuild-balance <account-id> <currency>")
	}
	accountID, err := domain.ParseID(args[0])
	if err != nil {
		return err
	}
	balance, err := f.RebuildAccountBalance(ctx, accountID, args[1])
	if err != nil {
		return err
	}
	console.PrintBalance(balance)
	return nil
}

func cmdMaxQuantity(ctx context.Context, f *facade.Facade, args []string) error {
	if len(args) != 5 {
		return fmt.Errorf("usage: max-quantity <account-id> <currency> <long|short> <entry-price> <stop-price>")
	}
	accountID, err := domain.ParseID(args[0])
	if err != nil {
		return err
	}
	category, err := domain.ParseTradeCategory(args[2])
	if err != nil {
		return err
	}
	entry, err := money.Parse(args[3])
	if err != nil {
		return err
	}
	stop, err := money.Parse(args[4])
	if err != nil {
		return err
	}
	q, err := f.MaxQuantity(ctx, accountID, category, args[1], entry, stop, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("max quantity: %d\n", q)
	return nil
}

func cmdTradeCreate(ctx context.Context, f *facade.Facade, args []string) error {
	if len(args) != 8 {
		return fmt.Errorf("usage: trade-create <account-id> <vehicle-id> <long|short> <currency> <qty> <entry> <stop> <target>")
	}
	accountID, err := domain.ParseID(args[0])
	if err != nil {
		return err
	}
	vehicleID, err := domain.ParseID(args[1])
	if err != nil {
		return err
	}
	category, err := domain.ParseTradeCategory(args[2])
	if err != nil {
		return err
	}
	currency := args[3]
	var qty uint64
	if _, err := fmt.Sscanf(args[4], "%d", &qty); err != nil {
		return fmt.Errorf("invalid quantity %q: %w", args[4], err)
	}
	entryPrice, err := money.Parse(args[5])
	if err != nil {
		return err
	}
	stopPrice, err := money.Parse(args[6])
	if err != nil {
		return err
	}
	targetPrice, err := money.Parse(args[7])
	if err != nil {
		return err
	}

	entryAction, targetAction := domain.OrderActionBuy, domain.OrderActionSell
	if category == domain.TradeCategoryShort {
		entryAction, targetAction = domain.OrderActionShort, domain.OrderActionBuy
	}
	leg := func(price money.Amount, action domain.OrderAction, orderCategory domain.OrderCategory, tif domain.TimeInForce) domain.Order {
		return domain.Order{
			TradingVehicleID: vehicleID,
			UnitPrice:        price,
			Currency:         currency,
			Quantity:         qty,
			Category:         orderCategory,
			Action:           action,
			Status:           domain.OrderStatusNew,
			TimeInForce:      tif,
		}
	}
	entry := leg(entryPrice, entryAction, domain.OrderCategoryMarket, domain.TimeInForceDay)
	stop := leg(stopPrice, targetAction, domain.OrderCategoryStop, domain.TimeInForceGTC)
	target := leg(targetPrice, targetAction, domain.OrderCategoryLimit, domain.TimeInForceGTC)

	trade := domain.Trade{AccountID: accountID, TradingVehicleID: vehicleID, Category: category, Currency: currency}
	created, err := f.CreateTrade(ctx, trade, entry, stop, target, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("created trade %s (%s)\n", created.ID, created.Status)
	return nil
}

// tradeTransition is the shape shared by every single-argument trade
// state transition the Facade exposes (FundTrade, SubmitTrade, SyncTrade,
// CloseTrade, CancelFundedTrade, CancelSubmittedTrade).
type tradeTransition func(ctx context.Context, tradeID domain.ID, now time.Time) (domain.Trade, error)

func cmdTradeTransition(ctx context.Context, _ *facade.Facade, args []string, transition tradeTransition) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: <command> <trade-id>")
	}
	tradeID, err := domain.ParseID(args[0])
	if err != nil {
		return err
	}
	trade, err := transition(ctx, tradeID, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("trade %s is now %s\n", trade.ID, trade.Status)
	return nil
}

func cmdTradeList(ctx context.Context, f *facade.Facade, console *display.Console, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: trade-list <account-id> [status...]")
	}
	accountID, err := domain.ParseID(args[0])
	if err != nil {
		return err
	}
	var statuses []domain.TradeStatus
	for _, s := range args[1:] {
		st, err := domain.ParseTradeStatus(s)
		if err != nil {
			return err
		}
		statuses = append(statuses, st)
	}
	trades, err := f.SearchTrades(ctx, accountID, statuses)
	if err != nil {
		return err
	}
	legs := make(map[domain.ID][3]domain.Order)
	for _, t := range trades {
		entry, err := f.Store.FindOrder(ctx, t.EntryID)
		if err != nil {
			return err
		}
		stop, err := f.Store.FindOrder(ctx, t.StopID)
		if err != nil {
			return err
		}
		target, err := f.Store.FindOrder(ctx, t.TargetID)
		if err != nil {
			return err
		}
		legs[t.ID] = [3]domain.Order{entry, stop, target}
	}
	console.PrintTrades(trades, legs)
	return nil
}
