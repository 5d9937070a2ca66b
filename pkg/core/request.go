package core

import (
	"fmt"
	"maps"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// Params is a request parameter set. Key order carries no meaning; every
// consumer that needs an ordering (signing in particular) sorts the keys.
type Params map[string]any

// Clone returns a shallow copy of the parameter set.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	maps.Copy(out, p)
	return out
}

// StringMap converts the parameter set to the string form used on the wire.
// The same representation feeds the request signature, so any change here
// changes signatures too.
func (p Params) StringMap() map[string]string {
	result := make(map[string]string, len(p))
	for k, v := range p {
		result[k] = FormatValue(v)
	}
	return result
}

// FormatValue renders a single parameter value as it appears on the wire.
func FormatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case *apd.Decimal:
		return val.Text('f')
	case apd.Decimal:
		return val.Text('f')
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Request describes a single API call before transport.
type Request struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Query       Params `json:"query,omitempty"`
	Form        Params `json:"form,omitempty"`
	RequireAuth bool   `json:"require_auth"`
}

// NewRequest creates a request for the given HTTP method and path.
func NewRequest(method, path string) *Request {
	return &Request{
		Method: method,
		Path:   path,
	}
}

// SetQuery sets a single query parameter.
func (r *Request) SetQuery(key string, value any) *Request {
	if r.Query == nil {
		r.Query = make(Params)
	}
	r.Query[key] = value
	return r
}

// SetQueryParams merges the given parameters into the query set.
func (r *Request) SetQueryParams(params Params) *Request {
	if r.Query == nil {
		r.Query = make(Params)
	}
	maps.Copy(r.Query, params)
	return r
}

// SetForm replaces the form-encoded body parameters.
func (r *Request) SetForm(params Params) *Request {
	r.Form = params
	return r
}

// SetRequireAuth marks whether the request needs an API key and signature.
func (r *Request) SetRequireAuth(require bool) *Request {
	r.RequireAuth = require
	return r
}
