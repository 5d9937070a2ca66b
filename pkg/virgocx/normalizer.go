package virgocx

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cockroachdb/apd/v3"

	"vcx/pkg/core"
)

// Normalizer converts enum-mapped payload trees into canonical types.
// The exchange is not consistent about numeric encoding (strings in some
// places, bare numbers in others), so every field read tolerates both.
type Normalizer struct{}

// NewNormalizer creates a new normalizer instance.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Ticker normalizes a single merged-ticker payload.
func (n *Normalizer) Ticker(symbol string, v any) (*core.Ticker, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected ticker payload: %T", v)
	}
	t := n.tickerFromMap(m)
	if t.Symbol == "" {
		t.Symbol = symbol
	}
	return t, nil
}

// Tickers normalizes the full ticker listing.
func (n *Normalizer) Tickers(v any) ([]core.Ticker, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected tickers payload: %T", v)
	}
	out := make([]core.Ticker, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unexpected ticker entry: %T", item)
		}
		out = append(out, *n.tickerFromMap(m))
	}
	return out, nil
}

func (n *Normalizer) tickerFromMap(m map[string]any) *core.Ticker {
	return &core.Ticker{
		Symbol:        stringAt(m, "symbol"),
		Open:          decimalAt(m, "open"),
		High:          decimalAt(m, "high"),
		Low:           decimalAt(m, "low"),
		Close:         decimalAt(m, "close"),
		Volume:        decimalAt(m, "vol"),
		PriceDecimals: int32(intAt(m, "priceDecimals")),
		QtyDecimals:   int32(intAt(m, "qtyDecimals")),
		MinTotal:      decimalAt(m, "minTotal"),
	}
}

// Klines normalizes candlestick data.
func (n *Normalizer) Klines(v any) ([]core.Kline, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected kline payload: %T", v)
	}
	out := make([]core.Kline, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unexpected kline entry: %T", item)
		}
		k := core.Kline{
			Timestamp: timeAt(m, "time", "id"),
			Open:      decimalAt(m, "open"),
			High:      decimalAt(m, "high"),
			Low:       decimalAt(m, "low"),
			Close:     decimalAt(m, "close"),
			Volume:    decimalAt(m, "vol"),
		}
		out = append(out, k)
	}
	return out, nil
}

// Balances normalizes account balance data.
func (n *Normalizer) Balances(v any) ([]core.Balance, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected balance payload: %T", v)
	}
	out := make([]core.Balance, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unexpected balance entry: %T", item)
		}
		out = append(out, core.Balance{
			Currency:  stringAt(m, "currency"),
			Total:     decimalAt(m, "total"),
			Available: decimalAt(m, "balance"),
			Frozen:    decimalAt(m, "freezing"),
		})
	}
	return out, nil
}

// Orders normalizes an order listing.
func (n *Normalizer) Orders(v any) ([]core.Order, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected order payload: %T", v)
	}
	out := make([]core.Order, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unexpected order entry: %T", item)
		}
		out = append(out, *n.orderFromMap(m))
	}
	return out, nil
}

func (n *Normalizer) orderFromMap(m map[string]any) *core.Order {
	return &core.Order{
		ID:        stringAt(m, "id"),
		Symbol:    stringAt(m, "symbol"),
		Price:     decimalAt(m, "price"),
		Qty:       decimalAt(m, "qty"),
		Total:     decimalAt(m, "total"),
		Status:    statusAt(m, "status"),
		Type:      orderTypeAt(m, "type"),
		Side:      sideAt(m, "direction"),
		CreatedAt: timeAt(m, "createdAt", "time"),
	}
}

// OrderAck normalizes the payload returned by order placement. The endpoint
// sometimes returns an object and sometimes a bare order id.
func (n *Normalizer) OrderAck(v any) (*core.Order, error) {
	switch val := v.(type) {
	case nil:
		return &core.Order{}, nil
	case map[string]any:
		return n.orderFromMap(val), nil
	case string:
		return &core.Order{ID: val}, nil
	case float64:
		return &core.Order{ID: strconv.FormatInt(int64(val), 10)}, nil
	}
	return nil, fmt.Errorf("unexpected order ack payload: %T", v)
}

// Trades normalizes a trade listing. Trade entries use the alternate field
// names: order type under "category", side by name under "type".
func (n *Normalizer) Trades(v any) ([]core.Trade, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected trade payload: %T", v)
	}
	out := make([]core.Trade, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unexpected trade entry: %T", item)
		}
		out = append(out, core.Trade{
			ID:        stringAt(m, "id"),
			Symbol:    stringAt(m, "symbol"),
			Price:     decimalAt(m, "price"),
			Qty:       decimalAt(m, "qty"),
			Total:     decimalAt(m, "total"),
			Status:    statusAt(m, "status"),
			Type:      orderTypeAt(m, "category"),
			Side:      sideAt(m, "type"),
			Timestamp: timeAt(m, "time", "createdAt"),
		})
	}
	return out, nil
}

// Discounts normalizes discount quotes. The result is always a slice: the
// endpoint returns an object for a single symbol and a list otherwise.
func (n *Normalizer) Discounts(v any) ([]core.Discount, error) {
	var items []any
	switch val := v.(type) {
	case nil:
		return []core.Discount{}, nil
	case []any:
		items = val
	case map[string]any:
		items = []any{val}
	default:
		return nil, fmt.Errorf("unexpected discount payload: %T", v)
	}
	out := make([]core.Discount, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unexpected discount entry: %T", item)
		}
		out = append(out, core.Discount{
			Symbol:    stringAt(m, "symbol"),
			BuyPrice:  decimalAt(m, "buyPrice"),
			SellPrice: decimalAt(m, "sellPrice"),
		})
	}
	return out, nil
}

func stringAt(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	}
	return fmt.Sprintf("%v", m[key])
}

func intAt(m map[string]any, key string) int64 {
	switch v := m[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case string:
		i, _ := strconv.ParseInt(v, 10, 64)
		return i
	}
	return 0
}

func decimalAt(m map[string]any, key string) apd.Decimal {
	var s string
	switch v := m[key].(type) {
	case string:
		s = v
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return apd.Decimal{}
	}
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return apd.Decimal{}
	}
	return *d
}

// timeAt reads an epoch timestamp, trying each key in order. Values above
// 1e12 are taken as milliseconds, anything else as seconds.
func timeAt(m map[string]any, keys ...string) time.Time {
	for _, key := range keys {
		epoch := intAt(m, key)
		if epoch == 0 {
			continue
		}
		if epoch > 1e12 {
			return time.UnixMilli(epoch).UTC()
		}
		return time.Unix(epoch, 0).UTC()
	}
	return time.Time{}
}

// statusAt reads an order status that may already be enum-typed by the
// formatter or still raw.
func statusAt(m map[string]any, key string) core.OrderStatus {
	if s, ok := m[key].(core.OrderStatus); ok {
		return s
	}
	if v, ok := m[key]; ok {
		if s, err := core.ParseOrderStatus(v); err == nil {
			return s
		}
	}
	return core.StatusPlaced
}

func orderTypeAt(m map[string]any, key string) core.OrderType {
	if t, ok := m[key].(core.OrderType); ok {
		return t
	}
	if v, ok := m[key]; ok {
		if t, err := core.ParseOrderType(v); err == nil {
			return t
		}
	}
	return 0
}

func sideAt(m map[string]any, key string) core.OrderSide {
	if s, ok := m[key].(core.OrderSide); ok {
		return s
	}
	if v, ok := m[key]; ok {
		if s, err := core.ParseOrderSide(v); err == nil {
			return s
		}
		if s, err := core.ParseOrderSideName(v); err == nil {
			return s
		}
	}
	return 0
}
