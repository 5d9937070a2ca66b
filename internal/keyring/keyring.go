// Package keyring holds API credentials and produces request signatures.
// The secret lives in an unexported field with no accessor; the only way it
// participates in a request is through Sign, so it never appears in logs,
// JSON output, or reflective dumps of client state.
package keyring

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"

	"vcx/pkg/core"
)

// SecretParam is the reserved payload key for the API secret. The secret is
// folded into the signature under this key and never transmitted.
const SecretParam = "apiSecret"

// Credentials is an opaque handle for one API key pair.
type Credentials struct {
	apiKey string
	secret string
}

// New creates a credential handle for the given key pair.
func New(apiKey, secret string) *Credentials {
	return &Credentials{apiKey: apiKey, secret: secret}
}

// APIKey returns the public API key identifier.
func (c *Credentials) APIKey() string {
	return c.apiKey
}

// Sign computes the request signature for the given payload using the held
// secret. The payload is not modified.
func (c *Credentials) Sign(params core.Params) (string, error) {
	return Signature(params, c.secret)
}

// String returns a masked representation safe for logging.
func (c *Credentials) String() string {
	return fmt.Sprintf("Credentials{Key:%s}", maskKey(c.apiKey))
}

// Signature computes the MD5 request signature over a parameter set.
//
// The payload is copied and, unless it already carries the secret under
// SecretParam, the provided secret is injected; an empty secret with no
// payload override is a usage error. Values are concatenated in lexicographic
// key order using their wire string representation, then hashed. The exchange
// recomputes the digest the same way, so the sort order and the value
// formatting are both part of the contract.
func Signature(params core.Params, secret string) (string, error) {
	p := params.Clone()
	if _, ok := p[SecretParam]; !ok {
		if secret == "" {
			return "", core.ErrNoSecret
		}
		p[SecretParam] = secret
	}

	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := md5.New()
	for _, k := range keys {
		h.Write([]byte(core.FormatValue(p[k])))
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}
