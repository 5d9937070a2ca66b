package core

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultBaseURL is the production API root. The exchange is currently
// reached by IP because CloudFlare may block requests made via the domain
// name; certificate verification is therefore off by default (see TLSVerify).
const DefaultBaseURL = "https://3.98.238.66/api"

// Config contains all configuration options for a client.
type Config struct {
	// BaseURL is the API root address for all requests.
	BaseURL string `json:"base_url" validate:"required,url"`

	// Timeout is the maximum duration for HTTP requests.
	Timeout time.Duration `json:"timeout" validate:"min=1ms"`

	// TLSVerify enables TLS certificate verification. It defaults to false
	// to match the exchange's current IP-based endpoint, whose certificate
	// does not match the address. Set it to true once the domain endpoint
	// is usable again.
	TLSVerify bool `json:"tls_verify"`

	// EnableConversion allows PlaceOrder to derive a missing quantity or
	// total instead of rejecting the order. Deriving a total for a market
	// buy performs an extra discount-price request as a side effect.
	EnableConversion bool `json:"enable_conversion"`

	// LogLevel sets the client log verbosity.
	LogLevel string `json:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultConfig returns a Config initialized with the production endpoint,
// a 30s timeout, verification off, and conversion disabled.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:  DefaultBaseURL,
		Timeout:  30 * time.Second,
		LogLevel: "info",
	}
}

var validate = validator.New()

// Validate checks the configuration against its constraints.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// WithBaseURL sets the API root address and returns the config for chaining.
func (c *Config) WithBaseURL(url string) *Config {
	c.BaseURL = url
	return c
}

// WithTimeout sets the request timeout and returns the config for chaining.
func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.Timeout = timeout
	return c
}

// WithTLSVerify enables or disables certificate verification and returns the
// config for chaining.
func (c *Config) WithTLSVerify(verify bool) *Config {
	c.TLSVerify = verify
	return c
}

// WithConversion enables or disables quantity/total derivation in PlaceOrder
// and returns the config for chaining.
func (c *Config) WithConversion(enabled bool) *Config {
	c.EnableConversion = enabled
	return c
}
