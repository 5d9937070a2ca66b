package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// KlinePeriod represents a candlestick aggregation granularity in minutes.
// The integer value is the wire code expected by the API.
type KlinePeriod int

// Kline period constants define the supported aggregation windows.
const (
	PeriodMinute       KlinePeriod = 1
	PeriodFiveMinute   KlinePeriod = 5
	PeriodTenMinute    KlinePeriod = 10
	PeriodThirtyMinute KlinePeriod = 30
	PeriodHour         KlinePeriod = 60
	PeriodFourHour     KlinePeriod = 240
	PeriodDay          KlinePeriod = 1440
	PeriodFiveDay      KlinePeriod = 7200
	PeriodWeek         KlinePeriod = 10080
	PeriodMonth        KlinePeriod = 43200
)

// String returns the string representation of the kline period.
func (p KlinePeriod) String() string {
	switch p {
	case PeriodMinute:
		return "1m"
	case PeriodFiveMinute:
		return "5m"
	case PeriodTenMinute:
		return "10m"
	case PeriodThirtyMinute:
		return "30m"
	case PeriodHour:
		return "1h"
	case PeriodFourHour:
		return "4h"
	case PeriodDay:
		return "1d"
	case PeriodFiveDay:
		return "5d"
	case PeriodWeek:
		return "1w"
	case PeriodMonth:
		return "1M"
	}
	return fmt.Sprintf("KlinePeriod(%d)", int(p))
}

// Valid reports whether the period is one of the supported aggregation windows.
func (p KlinePeriod) Valid() bool {
	switch p {
	case PeriodMinute, PeriodFiveMinute, PeriodTenMinute, PeriodThirtyMinute,
		PeriodHour, PeriodFourHour, PeriodDay, PeriodFiveDay, PeriodWeek, PeriodMonth:
		return true
	}
	return false
}

// ParseKlinePeriod parses a raw JSON value into a KlinePeriod.
func ParseKlinePeriod(v any) (KlinePeriod, error) {
	code, err := intCode(v)
	if err != nil {
		return 0, NewUsageError(fmt.Sprintf("invalid kline period: %v", v))
	}
	p := KlinePeriod(code)
	if !p.Valid() {
		return 0, NewUsageError(fmt.Sprintf("invalid kline period: %d", code))
	}
	return p, nil
}

// OrderStatus represents the lifecycle state of an order.
// The integer value is the wire code used by the API.
type OrderStatus int

// Order status constants define the lifecycle state of an order.
const (
	// StatusCanceled indicates the order has been canceled.
	StatusCanceled OrderStatus = -1
	// StatusPlaced indicates the order has been accepted but not yet booked.
	StatusPlaced OrderStatus = 0
	// StatusOpen indicates the order is resting on the book.
	StatusOpen OrderStatus = 1
	// StatusMatching indicates the order is currently being matched.
	StatusMatching OrderStatus = 2
	// StatusCompleted indicates the order has been fully executed.
	StatusCompleted OrderStatus = 3
)

// String returns the string representation of the order status.
func (s OrderStatus) String() string {
	switch s {
	case StatusCanceled:
		return "CANCELED"
	case StatusPlaced:
		return "PLACED"
	case StatusOpen:
		return "OPEN"
	case StatusMatching:
		return "MATCHING"
	case StatusCompleted:
		return "COMPLETED"
	}
	return fmt.Sprintf("OrderStatus(%d)", int(s))
}

// IsTerminal returns true if the order is in a terminal state.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCanceled || s == StatusCompleted
}

// ParseOrderStatus parses a raw JSON value into an OrderStatus.
func ParseOrderStatus(v any) (OrderStatus, error) {
	code, err := intCode(v)
	if err != nil {
		return 0, NewUsageError(fmt.Sprintf("invalid order status: %v", v))
	}
	s := OrderStatus(code)
	switch s {
	case StatusCanceled, StatusPlaced, StatusOpen, StatusMatching, StatusCompleted:
		return s, nil
	}
	return 0, NewUsageError(fmt.Sprintf("invalid order status: %d", code))
}

// OrderSide represents the direction of an order (buy or sell).
type OrderSide int

// Order side constants define the direction of a trade.
const (
	// SideBuy indicates an order to purchase an asset.
	SideBuy OrderSide = 1
	// SideSell indicates an order to sell an asset.
	SideSell OrderSide = 2
)

// String returns the string representation of the order side ("BUY" or "SELL").
func (s OrderSide) String() string {
	switch s {
	case SideBuy:
		return "BUY"
	case SideSell:
		return "SELL"
	}
	return fmt.Sprintf("OrderSide(%d)", int(s))
}

// ParseOrderSide parses a raw numeric JSON value into an OrderSide.
func ParseOrderSide(v any) (OrderSide, error) {
	code, err := intCode(v)
	if err != nil {
		return 0, NewUsageError(fmt.Sprintf("invalid order side: %v", v))
	}
	switch OrderSide(code) {
	case SideBuy:
		return SideBuy, nil
	case SideSell:
		return SideSell, nil
	}
	return 0, NewUsageError(fmt.Sprintf("invalid order side: %d", code))
}

// ParseOrderSideName parses a textual side ("buy"/"sell", any case) into an
// OrderSide. Some endpoints report the side by name rather than by code.
func ParseOrderSideName(v any) (OrderSide, error) {
	s, ok := v.(string)
	if !ok {
		return 0, NewUsageError(fmt.Sprintf("invalid order side: %v", v))
	}
	switch strings.ToLower(s) {
	case "buy":
		return SideBuy, nil
	case "sell":
		return SideSell, nil
	}
	return 0, NewUsageError(fmt.Sprintf("invalid order side: %q", s))
}

// OrderType represents how an order executes.
type OrderType int

// Order type constants define how an order is executed.
const (
	// TypeLimit executes at a specified price or better.
	TypeLimit OrderType = 1
	// TypeMarket executes immediately at the best available price.
	TypeMarket OrderType = 2
	// TypeQuickTrade executes against the exchange's quoted OTC price.
	TypeQuickTrade OrderType = 3
)

// String returns the string representation of the order type.
func (t OrderType) String() string {
	switch t {
	case TypeLimit:
		return "LIMIT"
	case TypeMarket:
		return "MARKET"
	case TypeQuickTrade:
		return "QUICK_TRADE"
	}
	return fmt.Sprintf("OrderType(%d)", int(t))
}

// ParseOrderType parses a raw JSON value into an OrderType.
func ParseOrderType(v any) (OrderType, error) {
	code, err := intCode(v)
	if err != nil {
		return 0, NewUsageError(fmt.Sprintf("invalid order type: %v", v))
	}
	switch OrderType(code) {
	case TypeLimit:
		return TypeLimit, nil
	case TypeMarket:
		return TypeMarket, nil
	case TypeQuickTrade:
		return TypeQuickTrade, nil
	}
	return 0, NewUsageError(fmt.Sprintf("invalid order type: %d", code))
}

// intCode extracts an integer wire code from a raw JSON value.
// JSON numbers decode as float64; string-encoded codes are also accepted.
func intCode(v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		if val != float64(int(val)) {
			return 0, fmt.Errorf("non-integral code: %v", val)
		}
		return int(val), nil
	case string:
		return strconv.Atoi(val)
	}
	return 0, fmt.Errorf("unsupported code type: %T", v)
}

// Ticker represents market data for a trading pair as returned by the
// ticker endpoints. The listing variant also carries the per-symbol
// formatting constraints used to validate order values.
type Ticker struct {
	// Symbol is the trading pair identifier (e.g., "BTC/CAD").
	Symbol string `json:"symbol"`
	// Open is the price at the start of the 24h window.
	Open apd.Decimal `json:"open"`
	// High is the highest price in the last 24 hours.
	High apd.Decimal `json:"high"`
	// Low is the lowest price in the last 24 hours.
	Low apd.Decimal `json:"low"`
	// Close is the price of the most recent trade.
	Close apd.Decimal `json:"close"`
	// Volume is the total trading volume in the last 24 hours.
	Volume apd.Decimal `json:"vol"`
	// PriceDecimals is the number of decimal places allowed on prices.
	PriceDecimals int32 `json:"priceDecimals"`
	// QtyDecimals is the number of decimal places allowed on quantities.
	QtyDecimals int32 `json:"qtyDecimals"`
	// MinTotal is the minimum order value in the quote currency.
	MinTotal apd.Decimal `json:"minTotal"`
}

// Kline represents a single OHLCV candlestick.
type Kline struct {
	// Timestamp is the start of the candlestick period.
	Timestamp time.Time `json:"time"`
	// Open is the price at the start of the period.
	Open apd.Decimal `json:"open"`
	// High is the highest price during the period.
	High apd.Decimal `json:"high"`
	// Low is the lowest price during the period.
	Low apd.Decimal `json:"low"`
	// Close is the price at the end of the period.
	Close apd.Decimal `json:"close"`
	// Volume is the total trading volume during the period.
	Volume apd.Decimal `json:"vol"`
}

// Balance represents the account balance for a single currency.
type Balance struct {
	// Currency is the asset symbol (e.g., "BTC", "CAD").
	Currency string `json:"currency"`
	// Total is the overall balance including frozen funds.
	Total apd.Decimal `json:"total"`
	// Available is the balance free for trading.
	Available apd.Decimal `json:"balance"`
	// Frozen is the balance locked in open orders.
	Frozen apd.Decimal `json:"freezing"`
}

// Order represents an exchange order.
type Order struct {
	// ID is the exchange-assigned order identifier.
	ID string `json:"id"`
	// Symbol is the trading pair for this order.
	Symbol string `json:"symbol"`
	// Price is the limit price; zero for market orders.
	Price apd.Decimal `json:"price"`
	// Qty is the order quantity in the base currency.
	Qty apd.Decimal `json:"qty"`
	// Total is the order value in the quote currency.
	Total apd.Decimal `json:"total"`
	// Status is the current lifecycle state of the order.
	Status OrderStatus `json:"status"`
	// Type defines how the order executes (limit, market, quick trade).
	Type OrderType `json:"type"`
	// Side indicates whether this is a buy or sell order.
	Side OrderSide `json:"direction"`
	// CreatedAt is when the order was submitted.
	CreatedAt time.Time `json:"createdAt"`
}

// Trade represents a completed user trade.
//
// The trade endpoint names its fields differently from the order endpoints:
// the order type arrives under "category" and the side under "type", by name
// rather than by code.
type Trade struct {
	// ID is the exchange-assigned trade identifier.
	ID string `json:"id"`
	// Symbol is the trading pair for this trade.
	Symbol string `json:"symbol"`
	// Price is the execution price.
	Price apd.Decimal `json:"price"`
	// Qty is the executed quantity in the base currency.
	Qty apd.Decimal `json:"qty"`
	// Total is the executed value in the quote currency.
	Total apd.Decimal `json:"total"`
	// Status is the lifecycle state of the originating order.
	Status OrderStatus `json:"status"`
	// Type defines how the originating order executed.
	Type OrderType `json:"category"`
	// Side indicates whether this was a buy or sell.
	Side OrderSide `json:"type"`
	// Timestamp is when the trade was executed.
	Timestamp time.Time `json:"time"`
}

// Discount represents the exchange's discounted quote for a symbol.
// Buys execute against BuyPrice (ask side), sells against SellPrice (bid side).
type Discount struct {
	// Symbol is the trading pair this quote applies to.
	Symbol string `json:"symbol"`
	// BuyPrice is the discounted ask price.
	BuyPrice apd.Decimal `json:"buyPrice"`
	// SellPrice is the discounted bid price.
	SellPrice apd.Decimal `json:"sellPrice"`
}

// SymbolSpec holds the per-symbol formatting constraints applied to order
// values before submission.
type SymbolSpec struct {
	// Symbol is the trading pair identifier.
	Symbol string `json:"symbol"`
	// PriceDecimals is the number of decimal places allowed on prices.
	PriceDecimals int32 `json:"priceDecimals"`
	// QtyDecimals is the number of decimal places allowed on quantities.
	QtyDecimals int32 `json:"qtyDecimals"`
	// MinTotal is the minimum order value in the quote currency.
	MinTotal apd.Decimal `json:"minTotal"`
}
