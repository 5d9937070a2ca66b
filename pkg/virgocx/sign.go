package virgocx

import (
	"vcx/internal/keyring"
	"vcx/pkg/core"
)

// Signature returns the signature required for an authenticated API request.
//
// The payload is copied and, unless it already carries the secret under the
// "apiSecret" key, the provided secret is injected; an empty secret with no
// payload override returns core.ErrNoSecret. Values are concatenated in
// lexicographic key order and hashed with MD5 (the digest the exchange
// expects; it is a compatibility choice, not a security one), returned as
// lowercase hex.
func Signature(params core.Params, secret string) (string, error) {
	return keyring.Signature(params, secret)
}
