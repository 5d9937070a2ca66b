package virgocx

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"resty.dev/v3"

	"vcx/pkg/core"
)

// endpoint describes how one operation maps onto the REST API.
type endpoint struct {
	method string
	path   string
	// auth marks operations that need an API key and signature.
	auth bool
	// atypical selects the alternate field-name mapping. The trade endpoint
	// reuses "type" for the side (by name) and "category" for the order
	// type, unlike every other endpoint.
	atypical bool
}

var endpoints = map[core.Operation]endpoint{
	core.OpKline:         {method: http.MethodGet, path: "/market/history/kline"},
	core.OpTicker:        {method: http.MethodGet, path: "/market/detail/merged"},
	core.OpTickers:       {method: http.MethodGet, path: "/market/tickers"},
	core.OpAccountInfo:   {method: http.MethodGet, path: "/member/accounts", auth: true},
	core.OpQueryOrders:   {method: http.MethodGet, path: "/member/queryOrder", auth: true},
	core.OpQueryTrades:   {method: http.MethodGet, path: "/member/queryTrade", auth: true, atypical: true},
	core.OpPlaceOrder:    {method: http.MethodPost, path: "/member/addOrder", auth: true},
	core.OpCancelOrder:   {method: http.MethodPost, path: "/member/cancelOrder", auth: true},
	core.OpDiscountPrice: {method: http.MethodGet, path: "/member/discountPrice", auth: true},
}

// envelope is the response wrapper used by every endpoint.
// A zero code signals success; anything else is an application error.
type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// Protocol builds API requests and decodes envelope responses.
type Protocol struct{}

// NewProtocol creates a new protocol instance.
func NewProtocol() *Protocol {
	return &Protocol{}
}

// BuildRequest constructs the HTTP request for the given operation.
// Parameters travel in the query string for reads and as a form body for
// mutations.
func (p *Protocol) BuildRequest(op core.Operation, params core.Params) (*core.Request, error) {
	ep, ok := endpoints[op]
	if !ok {
		return nil, fmt.Errorf("unsupported operation: %s", op)
	}

	req := core.NewRequest(ep.method, ep.path).SetRequireAuth(ep.auth)
	if ep.method == http.MethodPost {
		req.SetForm(params)
	} else if len(params) > 0 {
		req.SetQueryParams(params)
	}
	return req, nil
}

// ParseResponse validates the transport status and envelope code, then
// returns the enum-mapped payload for the operation.
func (p *Protocol) ParseResponse(op core.Operation, resp *resty.Response) (any, error) {
	if resp == nil {
		return nil, fmt.Errorf("nil response")
	}
	ep, ok := endpoints[op]
	if !ok {
		return nil, fmt.Errorf("unsupported operation: %s", op)
	}
	mapping := typicalMapping
	if ep.atypical {
		mapping = atypicalMapping
	}
	return formatResult(resp.StatusCode(), resp.Bytes(), mapping)
}

// formatResult applies the response pipeline: transport status check,
// envelope decode, application code check, payload extraction, enum mapping.
func formatResult(statusCode int, body []byte, mapping enumMapping) (any, error) {
	if statusCode != http.StatusOK {
		return nil, core.NewTransportError(statusCode, string(body))
	}

	var env envelope
	if err := sonic.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Code != 0 {
		msg := env.Msg
		if msg == "" {
			msg = string(body)
		}
		return nil, core.NewAPIError(env.Code, msg)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, nil
	}

	var data any
	if err := sonic.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return enumify(data, mapping)
}

// enumParser converts a raw field value into its enumerated type.
type enumParser func(any) (any, error)

// enumMapping associates response field names with their enum parsers.
type enumMapping map[string]enumParser

func parserOf[T any](fn func(any) (T, error)) enumParser {
	return func(v any) (any, error) {
		return fn(v)
	}
}

// typicalMapping covers the order endpoints, where "type" carries the order
// type code and "direction" the side code.
var typicalMapping = enumMapping{
	"status":    parserOf(core.ParseOrderStatus),
	"direction": parserOf(core.ParseOrderSide),
	"type":      parserOf(core.ParseOrderType),
}

// atypicalMapping covers the trade endpoint, where "category" carries the
// order type code and "type" the side by name.
var atypicalMapping = enumMapping{
	"status":   parserOf(core.ParseOrderStatus),
	"category": parserOf(core.ParseOrderType),
	"type":     parserOf(core.ParseOrderSideName),
}

// enumify walks the decoded payload and replaces the values of mapped keys
// with their enum equivalents. Unknown keys and scalar nodes pass through
// unchanged; lists are mapped element-wise.
func enumify(node any, mapping enumMapping) (any, error) {
	switch n := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(n))
		for k, v := range n {
			if parse, ok := mapping[k]; ok {
				pv, err := parse(v)
				if err != nil {
					return nil, fmt.Errorf("field %q: %w", k, err)
				}
				out[k] = pv
				continue
			}
			cv, err := enumify(v, mapping)
			if err != nil {
				return nil, err
			}
			out[k] = cv
		}
		return out, nil
	case []any:
		out := make([]any, len(n))
		for i, v := range n {
			cv, err := enumify(v, mapping)
			if err != nil {
				return nil, err
			}
			out[i] = cv
		}
		return out, nil
	}
	return node, nil
}
