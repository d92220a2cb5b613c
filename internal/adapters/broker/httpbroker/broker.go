package httpbroker

import (
	"context"
	"fmt"

	"github.com/riskcore/tradecore/internal/domain"
	"github.com/riskcore/tradecore/internal/money"
	"github.com/riskcore/tradecore/internal/ports"
)

// Broker implements ports.Broker over Client, translating the bracket-
// order contract of §4.5/§6 into a generic JSON REST wire format. A
// concrete brokerage's wire protocol is out of scope per §1; this adapter
// exists to exercise the rate-limited/retrying transport and the broker
// port's shape with a real dependency, not to model a specific exchange.
type Broker struct {
	client *Client
}

// New builds a Broker over client.
func New(client *Client) *Broker {
	return &Broker{client: client}
}

var _ ports.Broker = (*Broker)(nil)

// submitRequest carries the client-assigned correlation ID the broker
// echoes back so the entry leg can be matched on the first sync (§4.1
// step 1: "entry is matched by client-assigned correlation ID"). The
// bracket order's own prices/quantities are submitted out of band by
// whatever composed the three Order rows the Facade already persisted;
// the broker port itself only carries the Trade/Account pair (§4.5).
type submitRequest struct {
	ClientTradeID string `json:"client_trade_id"`
	AccountID     string `json:"account_id"`
}

type submitResponse struct {
	EntryOrderID  string `json:"entry_order_id"`
	StopOrderID   string `json:"stop_order_id"`
	TargetOrderID string `json:"target_order_id"`
	Log           string `json:"log"`
}

// SubmitTrade submits the bracket order for a Funded trade.
func (b *Broker) SubmitTrade(ctx context.Context, trade domain.Trade, account domain.Account) (domain.BrokerLog, ports.OrderIDs, error) {
	var resp submitResponse
	err := b.client.post(ctx, "/trades", submitRequest{ClientTradeID: trade.ID.String(), AccountID: account.ID.String()}, &resp)
	if err != nil {
		return domain.BrokerLog{}, ports.OrderIDs{}, err
	}
	return domain.BrokerLog{Log: resp.Log}, ports.OrderIDs{
		EntryBrokerOrderID:  resp.EntryOrderID,
		StopBrokerOrderID:   resp.StopOrderID,
		TargetBrokerOrderID: resp.TargetOrderID,
	}, nil
}

type orderStateResponse struct {
	OrderID          string `json:"order_id"`
	Status           string `json:"status"`
	FilledQuantity   uint64 `json:"filled_quantity"`
	AverageFillPrice string `json:"average_fill_price"`
}

type syncResponse struct {
	Orders []orderStateResponse `json:"orders"`
	Log    string               `json:"log"`
}

// SyncTrade fetches the broker's current view of every order leg.
func (b *Broker) SyncTrade(ctx context.Context, trade domain.Trade, account domain.Account) (domain.TradeStatus, []ports.BrokerOrderUpdate, domain.BrokerLog, error) {
	var resp syncResponse
	path := fmt.Sprintf("/trades/%s/orders", trade.ID)
	if err := b.client.get(ctx, path, &resp); err != nil {
		return trade.Status, nil, domain.BrokerLog{}, err
	}

	updates := make([]ports.BrokerOrderUpdate, 0, len(resp.Orders))
	for _, o := range resp.Orders {
		status, err := domain.ParseOrderStatus(o.Status)
		if err != nil {
			return trade.Status, nil, domain.BrokerLog{}, fmt.Errorf("httpbroker.SyncTrade: %w", err)
		}
		price, err := money.Parse(o.AverageFillPrice)
		if err != nil {
			return trade.Status, nil, domain.BrokerLog{}, fmt.Errorf("httpbroker.SyncTrade: %w", err)
		}
		updates = append(updates, ports.BrokerOrderUpdate{
			BrokerOrderID:    o.OrderID,
			Status:           status,
			FilledQuantity:   o.FilledQuantity,
			AverageFillPrice: price,
		})
	}
	return trade.Status, updates, domain.BrokerLog{Log: resp.Log}, nil
}

type closeResponse struct {
	OrderID          string `json:"order_id"`
	Status           string `json:"status"`
	FilledQuantity   uint64 `json:"filled_quantity"`
	AverageFillPrice string `json:"average_fill_price"`
	Log              string `json:"log"`
}

// CloseTrade market-closes a Filled trade's open position.
func (b *Broker) CloseTrade(ctx context.Context, trade domain.Trade, account domain.Account) (ports.BrokerOrderUpdate, domain.BrokerLog, error) {
	var resp closeResponse
	path := fmt.Sprintf("/trades/%s/close", trade.ID)
	if err := b.client.post(ctx, path, struct{}{}, &resp); err != nil {
		return ports.BrokerOrderUpdate{}, domain.BrokerLog{}, err
	}
	status, err := domain.ParseOrderStatus(resp.Status)
	if err != nil {
		return ports.BrokerOrderUpdate{}, domain.BrokerLog{}, fmt.Errorf("httpbroker.CloseTrade: %w", err)
	}
	price, err := money.Parse(resp.AverageFillPrice)
	if err != nil {
		return ports.BrokerOrderUpdate{}, domain.BrokerLog{}, fmt.Errorf("httpbroker.CloseTrade: %w", err)
	}
	return ports.BrokerOrderUpdate{
		BrokerOrderID:    resp.OrderID,
		Status:           status,
		FilledQuantity:   resp.FilledQuantity,
		AverageFillPrice: price,
	}, domain.BrokerLog{Log: resp.Log}, nil
}

// CancelTrade cancels every resting broker order for this trade.
func (b *Broker) CancelTrade(ctx context.Context, trade domain.Trade, account domain.Account) error {
	path := fmt.Sprintf("/trades/%s/cancel", trade.ID)
	return b.client.post(ctx, path, struct{}{}, nil)
}

type modifyRequest struct {
	Price string `json:"price"`
}

type modifyResponse struct {
	OrderID string `json:"order_id"`
}

// ModifyStop replaces the stop leg's price.
func (b *Broker) ModifyStop(ctx context.Context, trade domain.Trade, account domain.Account, price money.Amount) (string, error) {
	var resp modifyResponse
	path := fmt.Sprintf("/trades/%s/stop", trade.ID)
	if err := b.client.post(ctx, path, modifyRequest{Price: price.String()}, &resp); err != nil {
		return "", err
	}
	return resp.OrderID, nil
}

// ModifyTarget replaces the target leg's price.
func (b *Broker) ModifyTarget(ctx context.Context, trade domain.Trade, account domain.Account, price money.Amount) (string, error) {
	var resp modifyResponse
	path := fmt.Sprintf("/trades/%s/target", trade.ID)
	if err := b.client.post(ctx, path, modifyRequest{Price: price.String()}, &resp); err != nil {
		return "", err
	}
	return resp.OrderID, nil
}
