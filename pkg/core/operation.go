package core

// Operation represents a type of action that can be performed against the API.
type Operation int

// Operation constants define all supported API operations.
const (
	// OpKline retrieves candlestick/OHLCV data for a symbol.
	OpKline Operation = iota
	// OpTicker retrieves current market data for a single symbol.
	OpTicker
	// OpTickers retrieves market data for all symbols.
	OpTickers
	// OpAccountInfo retrieves account balance information.
	OpAccountInfo
	// OpQueryOrders retrieves user orders for a symbol.
	OpQueryOrders
	// OpQueryTrades retrieves completed user trades for a symbol.
	OpQueryTrades
	// OpPlaceOrder submits a new order.
	OpPlaceOrder
	// OpCancelOrder cancels an existing order.
	OpCancelOrder
	// OpDiscountPrice retrieves discounted quote prices.
	OpDiscountPrice
)

// String returns the string representation of the operation.
func (o Operation) String() string {
	return [...]string{
		"KLINE",
		"TICKER",
		"TICKERS",
		"ACCOUNT_INFO",
		"QUERY_ORDERS",
		"QUERY_TRADES",
		"PLACE_ORDER",
		"CANCEL_ORDER",
		"DISCOUNT_PRICE",
	}[o]
}
