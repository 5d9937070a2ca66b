package virgocx

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cockroachdb/apd/v3"
	"github.com/rs/zerolog"
	"resty.dev/v3"

	httpClient "vcx/internal/http"
	"vcx/internal/keyring"
	"vcx/pkg/core"
)

// Client is the facade over the exchange REST API: one method per endpoint.
// Reads are GETs with query-string parameters, mutations are form-encoded
// POSTs, and authenticated calls carry the API key plus an MD5 signature.
// Each call is a single synchronous round-trip; nothing is retried.
type Client struct {
	config   *core.Config
	creds    *keyring.Credentials
	http     *httpClient.Client
	protocol *Protocol
	norm     *Normalizer
	logger   zerolog.Logger
}

// Option is a functional option for configuring the Client.
type Option func(*Options)

// Options holds construction options for the Client.
type Options struct {
	Credentials *keyring.Credentials
	Logger      zerolog.Logger
}

// WithCredentials returns an option that sets the API key pair. The pair is
// wrapped in an opaque handle; neither value is reachable from client state.
func WithCredentials(apiKey, apiSecret string) Option {
	return func(o *Options) {
		o.Credentials = keyring.New(apiKey, apiSecret)
	}
}

// WithLogger returns an option that sets the logger for the client.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// New creates a new Client with the given configuration and options.
// A nil config uses core.DefaultConfig. The constructor performs no network
// activity; the symbol formatting cache is filled on first use.
func New(config *core.Config, opts ...Option) (*Client, error) {
	if config == nil {
		config = core.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	options := &Options{
		Logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(options)
	}

	hc, err := httpClient.NewClient(&httpClient.Config{
		BaseURL:   config.BaseURL,
		Timeout:   config.Timeout,
		TLSVerify: config.TLSVerify,
	}, options.Logger)
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}

	return &Client{
		config:   config,
		creds:    options.Credentials,
		http:     hc,
		protocol: NewProtocol(),
		norm:     NewNormalizer(),
		logger:   options.Logger,
	}, nil
}

// Close releases the underlying transport resources.
func (c *Client) Close() error {
	if c.http != nil {
		return c.http.Close()
	}
	return nil
}

// Kline returns candlestick data for a symbol at the given aggregation
// period.
func (c *Client) Kline(ctx context.Context, symbol string, period core.KlinePeriod) ([]core.Kline, error) {
	if symbol == "" {
		return nil, core.NewUsageError("symbol is required")
	}
	if !period.Valid() {
		return nil, core.NewUsageError(fmt.Sprintf("invalid kline period: %d", int(period)))
	}

	data, err := c.do(ctx, core.OpKline, core.Params{
		"symbol": symbol,
		"period": int(period),
	})
	if err != nil {
		return nil, err
	}
	return c.norm.Klines(data)
}

// Ticker returns market data for a single symbol.
func (c *Client) Ticker(ctx context.Context, symbol string) (*core.Ticker, error) {
	if symbol == "" {
		return nil, core.NewUsageError("symbol is required")
	}

	data, err := c.do(ctx, core.OpTicker, core.Params{"symbol": symbol})
	if err != nil {
		return nil, err
	}
	return c.norm.Ticker(symbol, data)
}

// Tickers returns market data for all symbols. The listing carries each
// symbol's formatting constraints and seeds the process-wide cache used to
// validate order values.
func (c *Client) Tickers(ctx context.Context) ([]core.Ticker, error) {
	data, err := c.do(ctx, core.OpTickers, nil)
	if err != nil {
		return nil, err
	}
	tickers, err := c.norm.Tickers(data)
	if err != nil {
		return nil, err
	}
	seedSymbolSpecs(tickers)
	return tickers, nil
}

// AccountInfo returns the account balances.
func (c *Client) AccountInfo(ctx context.Context) ([]core.Balance, error) {
	params, err := c.authorize(core.Params{})
	if err != nil {
		return nil, err
	}
	data, err := c.do(ctx, core.OpAccountInfo, params)
	if err != nil {
		return nil, err
	}
	return c.norm.Balances(data)
}

// QueryOrders returns user orders for a symbol, optionally restricted to a
// single status.
func (c *Client) QueryOrders(ctx context.Context, symbol string, status *core.OrderStatus) ([]core.Order, error) {
	if symbol == "" {
		return nil, core.NewUsageError("symbol is required")
	}

	params := core.Params{"symbol": symbol}
	if status != nil {
		params["status"] = int(*status)
	}
	params, err := c.authorize(params)
	if err != nil {
		return nil, err
	}
	data, err := c.do(ctx, core.OpQueryOrders, params)
	if err != nil {
		return nil, err
	}
	return c.norm.Orders(data)
}

// QueryTrades returns completed user trades for a symbol.
func (c *Client) QueryTrades(ctx context.Context, symbol string) ([]core.Trade, error) {
	if symbol == "" {
		return nil, core.NewUsageError("symbol is required")
	}

	params, err := c.authorize(core.Params{"symbol": symbol})
	if err != nil {
		return nil, err
	}
	data, err := c.do(ctx, core.OpQueryTrades, params)
	if err != nil {
		return nil, err
	}
	return c.norm.Trades(data)
}

// GetDiscount returns the discounted quote prices. An empty symbol returns
// quotes for every symbol; the result is always a slice either way.
func (c *Client) GetDiscount(ctx context.Context, symbol string) ([]core.Discount, error) {
	params := core.Params{}
	if symbol != "" {
		params["symbol"] = symbol
	}
	params, err := c.authorize(params)
	if err != nil {
		return nil, err
	}
	data, err := c.do(ctx, core.OpDiscountPrice, params)
	if err != nil {
		return nil, err
	}
	discounts, err := c.norm.Discounts(data)
	if err != nil {
		return nil, err
	}
	if symbol != "" {
		for i := range discounts {
			if discounts[i].Symbol == "" {
				discounts[i].Symbol = symbol
			}
		}
	}
	return discounts, nil
}

// CancelOrder cancels an order by its exchange-assigned identifier.
func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	if orderID == "" {
		return core.NewUsageError("order id is required")
	}

	params, err := c.authorize(core.Params{"id": orderID})
	if err != nil {
		return err
	}
	_, err = c.do(ctx, core.OpCancelOrder, params)
	return err
}

// OrderRequest contains the parameters for placing an order. Price, Qty, and
// Total are optional; which ones are required depends on the order type and
// side (see PlaceOrder).
type OrderRequest struct {
	Symbol string
	// Type travels as "category" on the wire.
	Type core.OrderType
	// Side travels as "type" on the wire.
	Side core.OrderSide
	// Price is the limit price in the quote currency.
	Price *apd.Decimal
	// Qty is the order quantity in the base currency.
	Qty *apd.Decimal
	// Total is the order value in the quote currency.
	Total *apd.Decimal
}

// PlaceOrder submits a new order.
//
// Limit orders require Price and Qty. Non-limit buys require Total; any
// other non-limit order requires Qty. With conversion enabled in the config,
// two of the missing cases are derived instead of rejected: a limit order
// missing Qty but carrying Total gets Qty = Total/Price, and a non-limit buy
// missing Total gets Total = Qty × discounted buy price — the latter fetches
// the current discount quote first, so a single PlaceOrder call can perform
// two round-trips.
//
// All values are checked against the symbol's formatting constraints from
// the ticker listing: over-precise values are rounded down with a warning,
// and a Total below the symbol's minimum is rejected.
func (c *Client) PlaceOrder(ctx context.Context, order *OrderRequest) (*core.Order, error) {
	if order == nil {
		return nil, core.NewUsageError("order request is required")
	}
	if order.Symbol == "" {
		return nil, core.NewUsageError("symbol is required")
	}
	switch order.Type {
	case core.TypeLimit, core.TypeMarket, core.TypeQuickTrade:
	default:
		return nil, core.NewUsageError(fmt.Sprintf("invalid order type: %d", int(order.Type)))
	}
	switch order.Side {
	case core.SideBuy, core.SideSell:
	default:
		return nil, core.NewUsageError(fmt.Sprintf("invalid order side: %d", int(order.Side)))
	}

	price, qty, total := order.Price, order.Qty, order.Total

	if order.Type == core.TypeLimit {
		if price == nil {
			return nil, core.NewUsageError("price is required for limit orders")
		}
		if qty == nil {
			if !c.config.EnableConversion || total == nil {
				return nil, core.NewUsageError("quantity is required for limit orders")
			}
			var q apd.Decimal
			if _, err := decimalCtx.Quo(&q, total, price); err != nil {
				return nil, core.NewUsageError(fmt.Sprintf("derive quantity: %v", err))
			}
			qty = &q
			total = nil
		}
	} else if order.Side == core.SideBuy {
		if total == nil {
			if !c.config.EnableConversion || qty == nil {
				return nil, core.NewUsageError("total is required for non-limit buy orders")
			}
			derived, err := c.deriveTotal(ctx, order.Symbol, qty)
			if err != nil {
				return nil, err
			}
			total = derived
			qty = nil
		}
	} else if qty == nil {
		return nil, core.NewUsageError("quantity is required for all but non-limit buy orders")
	}

	spec, err := c.symbolSpecFor(ctx, order.Symbol)
	if err != nil {
		return nil, err
	}

	if price != nil {
		if price, err = c.clampField(order.Symbol, "price", price, spec.PriceDecimals); err != nil {
			return nil, err
		}
	}
	if qty != nil {
		if qty, err = c.clampField(order.Symbol, "qty", qty, spec.QtyDecimals); err != nil {
			return nil, err
		}
	}
	if total != nil {
		if total, err = c.clampField(order.Symbol, "total", total, spec.PriceDecimals); err != nil {
			return nil, err
		}
		if total.Cmp(&spec.MinTotal) < 0 {
			return nil, core.NewUsageError(fmt.Sprintf(
				"total %s below minimum %s for %s", total.Text('f'), spec.MinTotal.Text('f'), order.Symbol))
		}
	}

	params := core.Params{
		"symbol":   order.Symbol,
		"category": int(order.Type),
		"type":     int(order.Side),
		"country":  1,
	}
	if price != nil {
		params["price"] = price
	}
	if qty != nil {
		params["qty"] = qty
	}
	if total != nil {
		params["total"] = total
	}

	params, err = c.authorize(params)
	if err != nil {
		return nil, err
	}
	data, err := c.do(ctx, core.OpPlaceOrder, params)
	if err != nil {
		return nil, err
	}
	ack, err := c.norm.OrderAck(data)
	if err != nil {
		return nil, err
	}
	if ack.Symbol == "" {
		ack.Symbol = order.Symbol
	}
	return ack, nil
}

// deriveTotal computes Total = Qty × the current discounted buy price.
// Buys execute against the ask-side discount quote.
func (c *Client) deriveTotal(ctx context.Context, symbol string, qty *apd.Decimal) (*apd.Decimal, error) {
	discounts, err := c.GetDiscount(ctx, symbol)
	if err != nil {
		return nil, err
	}
	var quote *core.Discount
	for i := range discounts {
		if discounts[i].Symbol == symbol {
			quote = &discounts[i]
			break
		}
	}
	if quote == nil && len(discounts) == 1 {
		quote = &discounts[0]
	}
	if quote == nil || quote.BuyPrice.IsZero() {
		return nil, core.NewUsageError(fmt.Sprintf("no discount quote available for %s", symbol))
	}

	var total apd.Decimal
	if _, err := decimalCtx.Mul(&total, qty, &quote.BuyPrice); err != nil {
		return nil, core.NewUsageError(fmt.Sprintf("derive total: %v", err))
	}
	c.logger.Debug().
		Str("symbol", symbol).
		Str("qty", qty.Text('f')).
		Str("buy_price", quote.BuyPrice.Text('f')).
		Str("total", total.Text('f')).
		Msg("derived order total from discount quote")
	return &total, nil
}

// symbolSpecFor returns the formatting constraints for a symbol, fetching
// the ticker listing first if the cache has not been filled yet.
func (c *Client) symbolSpecFor(ctx context.Context, symbol string) (core.SymbolSpec, error) {
	if !symbolSpecsLoaded() {
		if _, err := c.Tickers(ctx); err != nil {
			return core.SymbolSpec{}, err
		}
	}
	spec, ok := symbolSpec(symbol)
	if !ok {
		return core.SymbolSpec{}, core.NewSymbolCacheError(symbol)
	}
	return spec, nil
}

// clampField rounds a value down to the allowed number of decimal places,
// logging a warning when the value had to change.
func (c *Client) clampField(symbol, field string, d *apd.Decimal, decimals int32) (*apd.Decimal, error) {
	clamped, changed, err := clampDecimal(d, decimals)
	if err != nil {
		return nil, core.NewUsageError(fmt.Sprintf("invalid %s: %v", field, err))
	}
	if changed {
		c.logger.Warn().
			Str("symbol", symbol).
			Str("field", field).
			Str("from", d.Text('f')).
			Str("to", clamped.Text('f')).
			Int32("decimals", decimals).
			Msg("value exceeds allowed precision, rounded down")
	}
	return clamped, nil
}

// authorize attaches the API key and signature to a parameter set.
func (c *Client) authorize(params core.Params) (core.Params, error) {
	if c.creds == nil {
		return nil, core.ErrNoCredentials
	}
	params["apiKey"] = c.creds.APIKey()
	sign, err := c.creds.Sign(params)
	if err != nil {
		return nil, err
	}
	params["sign"] = sign
	return params, nil
}

// do executes one request/response exchange for the operation.
func (c *Client) do(ctx context.Context, op core.Operation, params core.Params) (any, error) {
	req, err := c.protocol.BuildRequest(op, params)
	if err != nil {
		return nil, err
	}

	var resp *resty.Response
	switch req.Method {
	case http.MethodGet:
		resp, err = c.http.Get(ctx, req.Path, req.Query.StringMap())
	case http.MethodPost:
		resp, err = c.http.PostForm(ctx, req.Path, req.Form.StringMap())
	default:
		return nil, fmt.Errorf("unsupported method: %s", req.Method)
	}
	if err != nil {
		return nil, core.NewNetworkError(err)
	}

	return c.protocol.ParseResponse(op, resp)
}
