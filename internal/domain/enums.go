package domain

import "fmt"

// Environment distinguishes paper trading from a live brokerage account.
type Environment int

const (
	EnvironmentPaper Environment = iota
	EnvironmentLive
)

func (e Environment) String() string {
	switch e {
	case EnvironmentPaper:
		return "paper"
	case EnvironmentLive:
		return "live"
	default:
		return "unknown"
	}
}

// ParseEnvironment is the inverse of Environment.String.
func ParseEnvironment(s string) (Environment, error) {
	switch s {
	case "paper":
		return EnvironmentPaper, nil
	case "live":
		return EnvironmentLive, nil
	default:
		return 0, fmt.Errorf("domain.ParseEnvironment: unknown environment %q", s)
	}
}

// VehicleCategory classifies the kind of instrument a TradingVehicle trades.
type VehicleCategory int

const (
	VehicleStock VehicleCategory = iota
	VehicleCrypto
	VehicleFiat
)

func (c VehicleCategory) String() string {
	switch c {
	case VehicleStock:
		return "stock"
	case VehicleCrypto:
		return "crypto"
	case VehicleFiat:
		return "fiat"
	default:
		return "unknown"
	}
}

// ParseVehicleCategory is the inverse of VehicleCategory.String.
func ParseVehicleCategory(s string) (VehicleCategory, error) {
	switch s {
	case "stock":
		return VehicleStock, nil
	case "crypto":
		return VehicleCrypto, nil
	case "fiat":
		return VehicleFiat, nil
	default:
		return 0, fmt.Errorf("domain.ParseVehicleCategory: unknown category %q", s)
	}
}

// RuleLevel controls how strictly a Rule is enforced.
type RuleLevel int

const (
	RuleLevelAdvice RuleLevel = iota
	RuleLevelWarning
	RuleLevelError
)

func (l RuleLevel) String() string {
	switch l {
	case RuleLevelAdvice:
		return "advice"
	case RuleLevelWarning:
		return "warning"
	case RuleLevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseRuleLevel is the inverse of RuleLevel.String.
func ParseRuleLevel(s string) (RuleLevel, error) {
	switch s {
	case "advice":
		return RuleLevelAdvice, nil
	case "warning":
		return RuleLevelWarning, nil
	case "error":
		return RuleLevelError, nil
	default:
		return 0, fmt.Errorf("domain.ParseRuleLevel: unknown level %q", s)
	}
}

// RuleKind distinguishes the two risk-policy variants in §3/§4.2.
type RuleKind int

const (
	RuleKindRiskPerTrade RuleKind = iota
	RuleKindRiskPerMonth
)

func (k RuleKind) String() string {
	switch k {
	case RuleKindRiskPerTrade:
		return "risk_per_trade"
	case RuleKindRiskPerMonth:
		return "risk_per_month"
	default:
		return "unknown"
	}
}

// ParseRuleKind is the inverse of RuleKind.String.
func ParseRuleKind(s string) (RuleKind, error) {
	switch s {
	case "risk_per_trade":
		return RuleKindRiskPerTrade, nil
	case "risk_per_month":
		return RuleKindRiskPerMonth, nil
	default:
		return 0, fmt.Errorf("domain.ParseRuleKind: unknown kind %q", s)
	}
}

// Priority returns the evaluation priority defined in §3: lower number
// is applied first. RiskPerMonth is priority 1, RiskPerTrade is priority 2.
func (k RuleKind) Priority() int {
	switch k {
	case RuleKindRiskPerMonth:
		return 1
	case RuleKindRiskPerTrade:
		return 2
	default:
		return 99
	}
}

// OrderCategory is the order type: market, limit, or stop.
type OrderCategory int

const (
	OrderCategoryMarket OrderCategory = iota
	OrderCategoryLimit
	OrderCategoryStop
)

func (c OrderCategory) String() string {
	switch c {
	case OrderCategoryMarket:
		return "market"
	case OrderCategoryLimit:
		return "limit"
	case OrderCategoryStop:
		return "stop"
	default:
		return "unknown"
	}
}

// ParseOrderCategory is the inverse of OrderCategory.String.
func ParseOrderCategory(s string) (OrderCategory, error) {
	switch s {
	case "market":
		return OrderCategoryMarket, nil
	case "limit":
		return OrderCategoryLimit, nil
	case "stop":
		return OrderCategoryStop, nil
	default:
		return 0, fmt.Errorf("domain.ParseOrderCategory: unknown category %q", s)
	}
}

// OrderAction is the trading direction of an order leg.
type OrderAction int

const (
	OrderActionBuy OrderAction = iota
	OrderActionSell
	OrderActionShort
)

func (a OrderAction) String() string {
	switch a {
	case OrderActionBuy:
		return "buy"
	case OrderActionSell:
		return "sell"
	case OrderActionShort:
		return "short"
	default:
		return "unknown"
	}
}

// ParseOrderAction is the inverse of OrderAction.String.
func ParseOrderAction(s string) (OrderAction, error) {
	switch s {
	case "buy":
		return OrderActionBuy, nil
	case "sell":
		return OrderActionSell, nil
	case "short":
		return OrderActionShort, nil
	default:
		return 0, fmt.Errorf("domain.ParseOrderAction: unknown action %q", s)
	}
}

// TimeInForce controls how long a broker keeps a resting order alive.
type TimeInForce int

const (
	TimeInForceGTC TimeInForce = iota // good-till-canceled
	TimeInForceDay
	TimeInForceIOC // immediate-or-cancel
	TimeInForceFOK // fill-or-kill
)

func (t TimeInForce) String() string {
	switch t {
	case TimeInForceGTC:
		return "gtc"
	case TimeInForceDay:
		return "day"
	case TimeInForceIOC:
		return "ioc"
	case TimeInForceFOK:
		return "fok"
	default:
		return "unknown"
	}
}

// ParseTimeInForce is the inverse of TimeInForce.String.
func ParseTimeInForce(s string) (TimeInForce, error) {
	switch s {
	case "gtc":
		return TimeInForceGTC, nil
	case "day":
		return TimeInForceDay, nil
	case "ioc":
		return TimeInForceIOC, nil
	case "fok":
		return TimeInForceFOK, nil
	default:
		return 0, fmt.Errorf("domain.ParseTimeInForce: unknown time-in-force %q", s)
	}
}

// OrderStatus mirrors the broker-reported lifecycle of one order leg.
type OrderStatus int

const (
	OrderStatusNew OrderStatus = iota
	OrderStatusAccepted
	OrderStatusSubmitted
	OrderStatusPartiallyFilled
	OrderStatusFilled
	OrderStatusCanceled
	OrderStatusExpired
	OrderStatusRejected
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusNew:
		return "new"
	case OrderStatusAccepted:
		return "accepted"
	case OrderStatusSubmitted:
		return "submitted"
	case OrderStatusPartiallyFilled:
		return "partially_filled"
	case OrderStatusFilled:
		return "filled"
	case OrderStatusCanceled:
		return "canceled"
	case OrderStatusExpired:
		return "expired"
	case OrderStatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// ParseOrderStatus is the inverse of OrderStatus.String.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch s {
	case "new":
		return OrderStatusNew, nil
	case "accepted":
		return OrderStatusAccepted, nil
	case "submitted":
		return OrderStatusSubmitted, nil
	case "partially_filled":
		return OrderStatusPartiallyFilled, nil
	case "filled":
		return OrderStatusFilled, nil
	case "canceled":
		return OrderStatusCanceled, nil
	case "expired":
		return OrderStatusExpired, nil
	case "rejected":
		return OrderStatusRejected, nil
	default:
		return 0, fmt.Errorf("domain.ParseOrderStatus: unknown status %q", s)
	}
}

// TradeCategory is the directional bias of a trade: long or short.
type TradeCategory int

const (
	TradeCategoryLong TradeCategory = iota
	TradeCategoryShort
)

func (c TradeCategory) String() string {
	switch c {
	case TradeCategoryLong:
		return "long"
	case TradeCategoryShort:
		return "short"
	default:
		return "unknown"
	}
}

// ParseTradeCategory is the inverse of TradeCategory.String.
func ParseTradeCategory(s string) (TradeCategory, error) {
	switch s {
	case "long":
		return TradeCategoryLong, nil
	case "short":
		return TradeCategoryShort, nil
	default:
		return 0, fmt.Errorf("domain.ParseTradeCategory: unknown category %q", s)
	}
}

// TradeStatus is one of the ten states of the §4.1 state machine.
type TradeStatus int

const (
	TradeStatusNew TradeStatus = iota
	TradeStatusFunded
	TradeStatusSubmitted
	TradeStatusPartiallyFilled
	TradeStatusFilled
	TradeStatusClosedTarget
	TradeStatusClosedStopLoss
	TradeStatusCanceled
	TradeStatusExpired
	TradeStatusRejected
)

func (s TradeStatus) String() string {
	switch s {
	case TradeStatusNew:
		return "new"
	case TradeStatusFunded:
		return "funded"
	case TradeStatusSubmitted:
		return "submitted"
	case TradeStatusPartiallyFilled:
		return "partially_filled"
	case TradeStatusFilled:
		return "filled"
	case TradeStatusClosedTarget:
		return "closed_target"
	case TradeStatusClosedStopLoss:
		return "closed_stop_loss"
	case TradeStatusCanceled:
		return "canceled"
	case TradeStatusExpired:
		return "expired"
	case TradeStatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// ParseTradeStatus is the inverse of TradeStatus.String.
func ParseTradeStatus(s string) (TradeStatus, error) {
	switch s {
	case "new":
		return TradeStatusNew, nil
	case "funded":
		return TradeStatusFunded, nil
	case "submitted":
		return TradeStatusSubmitted, nil
	case "partially_filled":
		return TradeStatusPartiallyFilled, nil
	case "filled":
		return TradeStatusFilled, nil
	case "closed_target":
		return TradeStatusClosedTarget, nil
	case "closed_stop_loss":
		return TradeStatusClosedStopLoss, nil
	case "canceled":
		return TradeStatusCanceled, nil
	case "expired":
		return TradeStatusExpired, nil
	case "rejected":
		return TradeStatusRejected, nil
	default:
		return 0, fmt.Errorf("domain.ParseTradeStatus: unknown status %q", s)
	}
}

// IsTerminal reports whether a trade in this status no longer accepts
// lifecycle transitions that change its status — only idempotent re-syncs.
func (s TradeStatus) IsTerminal() bool {
	switch s {
	case TradeStatusClosedTarget, TradeStatusClosedStopLoss, TradeStatusCanceled,
		TradeStatusExpired, TradeStatusRejected:
		return true
	default:
		return false
	}
}

// TransactionCategory is the tagged-sum transaction classification of §3.
// Categories that refer to a specific trade carry that trade's ID.
type TransactionCategory struct {
	kind    txKind
	tradeID ID // only meaningful when kind.NeedsTrade()
}

type txKind int

const (
	TxDeposit txKind = iota
	TxWithdrawal
	TxWithdrawalTax
	TxWithdrawalEarnings
	TxFundTrade
	TxPaymentFromTrade
	TxOpenTrade
	TxCloseTarget
	TxCloseSafetyStop
	TxCloseSafetyStopSlippage
	TxFeeOpen
	TxFeeClose
	TxPaymentTax
	TxPaymentEarnings
)

func (k txKind) String() string {
	switch k {
	case TxDeposit:
		return "deposit"
	case TxWithdrawal:
		return "withdrawal"
	case TxWithdrawalTax:
		return "withdrawal_tax"
	case TxWithdrawalEarnings:
		return "withdrawal_earnings"
	case TxFundTrade:
		return "fund_trade"
	case TxPaymentFromTrade:
		return "payment_from_trade"
	case TxOpenTrade:
		return "open_trade"
	case TxCloseTarget:
		return "close_target"
	case TxCloseSafetyStop:
		return "close_safety_stop"
	case TxCloseSafetyStopSlippage:
		return "close_safety_stop_slippage"
	case TxFeeOpen:
		return "fee_open"
	case TxFeeClose:
		return "fee_close"
	case TxPaymentTax:
		return "payment_tax"
	case TxPaymentEarnings:
		return "payment_earnings"
	default:
		return "unknown"
	}
}

// NeedsTrade reports whether this category tags a specific trade.
func (k txKind) NeedsTrade() bool {
	switch k {
	case TxFundTrade, TxPaymentFromTrade, TxOpenTrade, TxCloseTarget, TxCloseSafetyStop,
		TxCloseSafetyStopSlippage, TxFeeOpen, TxFeeClose, TxPaymentTax, TxPaymentEarnings:
		return true
	default:
		return false
	}
}

// parseTxKind is the inverse of txKind.String, used to reconstruct a
// TransactionCategory read back from storage.
func parseTxKind(s string) (txKind, error) {
	switch s {
	case "deposit":
		return TxDeposit, nil
	case "withdrawal":
		return TxWithdrawal, nil
	case "withdrawal_tax":
		return TxWithdrawalTax, nil
	case "withdrawal_earnings":
		return TxWithdrawalEarnings, nil
	case "fund_trade":
		return TxFundTrade, nil
	case "payment_from_trade":
		return TxPaymentFromTrade, nil
	case "open_trade":
		return TxOpenTrade, nil
	case "close_target":
		return TxCloseTarget, nil
	case "close_safety_stop":
		return TxCloseSafetyStop, nil
	case "close_safety_stop_slippage":
		return TxCloseSafetyStopSlippage, nil
	case "fee_open":
		return TxFeeOpen, nil
	case "fee_close":
		return TxFeeClose, nil
	case "payment_tax":
		return TxPaymentTax, nil
	case "payment_earnings":
		return TxPaymentEarnings, nil
	default:
		return 0, fmt.Errorf("domain.ParseTransactionCategory: unknown category kind %q", s)
	}
}

// ParseTransactionCategory rebuilds a TransactionCategory from its stored
// kind string and (for trade-tagged categories) trade ID, the storage
// adapter's counterpart to writing Kind().String() and TradeID() into
// separate columns of §6's textual transactions table.
func ParseTransactionCategory(kindStr string, tradeID ID) (TransactionCategory, error) {
	kind, err := parseTxKind(kindStr)
	if err != nil {
		return TransactionCategory{}, err
	}
	if kind.NeedsTrade() {
		return NewTradeCategory(kind, tradeID), nil
	}
	return NewAccountCategory(kind), nil
}

// NewAccountCategory builds a TransactionCategory for account-level
// categories that carry no trade reference (Deposit, Withdrawal, ...).
func NewAccountCategory(kind txKind) TransactionCategory {
	return TransactionCategory{kind: kind}
}

// NewTradeCategory builds a TransactionCategory tagged with a trade ID.
func NewTradeCategory(kind txKind, tradeID ID) TransactionCategory {
	return TransactionCategory{kind: kind, tradeID: tradeID}
}

// Kind returns the underlying tag.
func (c TransactionCategory) Kind() txKind { return c.kind }

// TradeID returns the tagged trade, or NilID if this category carries none.
func (c TransactionCategory) TradeID() ID { return c.tradeID }

// String renders "kind" or "kind:tradeID" for categories tagging a trade.
func (c TransactionCategory) String() string {
	if c.kind.NeedsTrade() && !c.tradeID.IsNil() {
		return fmt.Sprintf("%s:%s", c.kind, c.tradeID)
	}
	return c.kind.String()
}

// Exported category constructors used throughout the ledger and risk engine.
var (
	CategoryDeposit            = NewAccountCategory(TxDeposit)
	CategoryWithdrawal         = NewAccountCategory(TxWithdrawal)
	CategoryWithdrawalTax      = NewAccountCategory(TxWithdrawalTax)
	CategoryWithdrawalEarnings = NewAccountCategory(TxWithdrawalEarnings)
)

func CategoryFundTrade(tradeID ID) TransactionCategory {
	return NewTradeCategory(TxFundTrade, tradeID)
}
func CategoryPaymentFromTrade(tradeID ID) TransactionCategory {
	return NewTradeCategory(TxPaymentFromTrade, tradeID)
}
func CategoryOpenTrade(tradeID ID) TransactionCategory {
	return NewTradeCategory(TxOpenTrade, tradeID)
}
func CategoryCloseTarget(tradeID ID) TransactionCategory {
	return NewTradeCategory(TxCloseTarget, tradeID)
}
func CategoryCloseSafetyStop(tradeID ID) TransactionCategory {
	return NewTradeCategory(TxCloseSafetyStop, tradeID)
}
func CategoryCloseSafetyStopSlippage(tradeID ID) TransactionCategory {
	return NewTradeCategory(TxCloseSafetyStopSlippage, tradeID)
}
func CategoryFeeOpen(tradeID ID) TransactionCategory {
	return NewTradeCategory(TxFeeOpen, tradeID)
}
func CategoryFeeClose(tradeID ID) TransactionCategory {
	return NewTradeCategory(TxFeeClose, tradeID)
}
func CategoryPaymentTax(tradeID ID) TransactionCategory {
	return NewTradeCategory(TxPaymentTax, tradeID)
}
func CategoryPaymentEarnings(tradeID ID) TransactionCategory {
	return NewTradeCategory(TxPaymentEarnings, tradeID)
}
