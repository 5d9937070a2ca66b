package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpKline, "KLINE"},
		{OpTicker, "TICKER"},
		{OpTickers, "TICKERS"},
		{OpAccountInfo, "ACCOUNT_INFO"},
		{OpQueryOrders, "QUERY_ORDERS"},
		{OpQueryTrades, "QUERY_TRADES"},
		{OpPlaceOrder, "PLACE_ORDER"},
		{OpCancelOrder, "CANCEL_ORDER"},
		{OpDiscountPrice, "DISCOUNT_PRICE"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.op.String())
	}
}
