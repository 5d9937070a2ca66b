package virgocx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vcx/pkg/core"
)

func TestNormalizer_Tickers(t *testing.T) {
	n := NewNormalizer()
	in := []any{
		map[string]any{
			"symbol":        "BTC/CAD",
			"open":          "60000",
			"high":          61000.5,
			"low":           "59000.25",
			"close":         "60500",
			"vol":           "12.5",
			"priceDecimals": float64(2),
			"qtyDecimals":   float64(6),
			"minTotal":      float64(10),
		},
	}
	tickers, err := n.Tickers(in)
	require.NoError(t, err)
	require.Len(t, tickers, 1)

	tk := tickers[0]
	assert.Equal(t, "BTC/CAD", tk.Symbol)
	assert.Equal(t, "60000", tk.Open.Text('f'))
	assert.Equal(t, "61000.5", tk.High.Text('f'))
	assert.Equal(t, "59000.25", tk.Low.Text('f'))
	assert.Equal(t, int32(2), tk.PriceDecimals)
	assert.Equal(t, int32(6), tk.QtyDecimals)
	assert.Equal(t, "10", tk.MinTotal.Text('f'))
}

func TestNormalizer_TickerFillsSymbol(t *testing.T) {
	n := NewNormalizer()
	tk, err := n.Ticker("ETH/CAD", map[string]any{"close": "3000"})
	require.NoError(t, err)
	assert.Equal(t, "ETH/CAD", tk.Symbol)
	assert.Equal(t, "3000", tk.Close.Text('f'))
}

func TestNormalizer_Tickers_BadPayload(t *testing.T) {
	n := NewNormalizer()
	_, err := n.Tickers(map[string]any{})
	require.Error(t, err)
}

func TestNormalizer_Klines(t *testing.T) {
	n := NewNormalizer()
	in := []any{
		map[string]any{
			"time":  float64(1700000000),
			"open":  "100",
			"high":  "110",
			"low":   "95",
			"close": "105",
			"vol":   "3.2",
		},
	}
	klines, err := n.Klines(in)
	require.NoError(t, err)
	require.Len(t, klines, 1)

	k := klines[0]
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), k.Timestamp)
	assert.Equal(t, "100", k.Open.Text('f'))
	assert.Equal(t, "105", k.Close.Text('f'))
}

func TestNormalizer_KlinesMillisecondEpoch(t *testing.T) {
	n := NewNormalizer()
	klines, err := n.Klines([]any{map[string]any{"time": float64(1700000000000)}})
	require.NoError(t, err)
	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), klines[0].Timestamp)
}

func TestNormalizer_Balances(t *testing.T) {
	n := NewNormalizer()
	in := []any{
		map[string]any{
			"currency": "BTC",
			"total":    "1.5",
			"balance":  "1.0",
			"freezing": "0.5",
		},
	}
	balances, err := n.Balances(in)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, "BTC", balances[0].Currency)
	assert.Equal(t, "1.0", balances[0].Available.Text('f'))
	assert.Equal(t, "0.5", balances[0].Frozen.Text('f'))
}

func TestNormalizer_Orders(t *testing.T) {
	n := NewNormalizer()
	in := []any{
		map[string]any{
			"id":        float64(1001),
			"symbol":    "BTC/CAD",
			"price":     "61000.25",
			"qty":       "0.5",
			"status":    core.StatusOpen,
			"type":      core.TypeLimit,
			"direction": core.SideBuy,
			"createdAt": float64(1700000000000),
		},
	}
	orders, err := n.Orders(in)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	o := orders[0]
	assert.Equal(t, "1001", o.ID)
	assert.Equal(t, core.StatusOpen, o.Status)
	assert.Equal(t, core.TypeLimit, o.Type)
	assert.Equal(t, core.SideBuy, o.Side)
	assert.Equal(t, "61000.25", o.Price.Text('f'))
}

func TestNormalizer_OrdersRawEnumFields(t *testing.T) {
	// Values that skipped the formatter still map.
	n := NewNormalizer()
	orders, err := n.Orders([]any{map[string]any{
		"id":        "7",
		"status":    float64(3),
		"type":      float64(2),
		"direction": float64(2),
	}})
	require.NoError(t, err)
	assert.Equal(t, core.StatusCompleted, orders[0].Status)
	assert.Equal(t, core.TypeMarket, orders[0].Type)
	assert.Equal(t, core.SideSell, orders[0].Side)
}

func TestNormalizer_Trades(t *testing.T) {
	n := NewNormalizer()
	in := []any{
		map[string]any{
			"id":       "t1",
			"symbol":   "ETH/CAD",
			"price":    "3000",
			"qty":      "2",
			"total":    "6000",
			"status":   core.StatusCompleted,
			"category": core.TypeMarket,
			"type":     core.SideSell,
			"time":     float64(1700000000000),
		},
	}
	trades, err := n.Trades(in)
	require.NoError(t, err)
	require.Len(t, trades, 1)

	tr := trades[0]
	assert.Equal(t, core.TypeMarket, tr.Type)
	assert.Equal(t, core.SideSell, tr.Side)
	assert.Equal(t, "6000", tr.Total.Text('f'))
}

func TestNormalizer_DiscountsSingleObject(t *testing.T) {
	n := NewNormalizer()
	out, err := n.Discounts(map[string]any{
		"symbol":    "BTC/CAD",
		"buyPrice":  "60900",
		"sellPrice": "60800",
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "60900", out[0].BuyPrice.Text('f'))
}

func TestNormalizer_DiscountsList(t *testing.T) {
	n := NewNormalizer()
	out, err := n.Discounts([]any{
		map[string]any{"symbol": "BTC/CAD", "buyPrice": "60900", "sellPrice": "60800"},
		map[string]any{"symbol": "ETH/CAD", "buyPrice": "3010", "sellPrice": "2990"},
	})
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestNormalizer_DiscountsNil(t *testing.T) {
	n := NewNormalizer()
	out, err := n.Discounts(nil)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Len(t, out, 0)
}

func TestNormalizer_OrderAckVariants(t *testing.T) {
	n := NewNormalizer()

	ack, err := n.OrderAck(map[string]any{"id": "42"})
	require.NoError(t, err)
	assert.Equal(t, "42", ack.ID)

	ack, err = n.OrderAck("43")
	require.NoError(t, err)
	assert.Equal(t, "43", ack.ID)

	ack, err = n.OrderAck(float64(44))
	require.NoError(t, err)
	assert.Equal(t, "44", ack.ID)

	ack, err = n.OrderAck(nil)
	require.NoError(t, err)
	assert.Empty(t, ack.ID)

	_, err = n.OrderAck(true)
	require.Error(t, err)
}
