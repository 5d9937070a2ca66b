package keyring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vcx/pkg/core"
)

func TestSignature_KnownVector(t *testing.T) {
	sig, err := Signature(core.Params{
		"apiKey": "key123",
		"symbol": "BTC/CAD",
	}, "sec456")
	require.NoError(t, err)
	assert.Equal(t, "ab05b19a7d6b9de1be7863649bb1f1e5", sig)
}

func TestSignature_SortedByKeyNotInsertion(t *testing.T) {
	a := core.Params{}
	a["apiKey"] = "key123"
	a["symbol"] = "BTC/CAD"

	b := core.Params{}
	b["symbol"] = "BTC/CAD"
	b["apiKey"] = "key123"

	sigA, err := Signature(a, "sec456")
	require.NoError(t, err)
	sigB, err := Signature(b, "sec456")
	require.NoError(t, err)
	assert.Equal(t, sigA, sigB)
}

func TestSignature_MixedValueTypes(t *testing.T) {
	sig, err := Signature(core.Params{
		"apiKey": "k",
		"symbol": "ETH/CAD",
		"status": 1,
	}, "s")
	require.NoError(t, err)
	assert.Equal(t, "41a58a3ebc4d5ee3ef31cb2a1ff422ea", sig)
}

func TestSignature_OrderPayload(t *testing.T) {
	sig, err := Signature(core.Params{
		"apiKey":   "key123",
		"symbol":   "BTC/CAD",
		"price":    "61000.25",
		"qty":      "0.5",
		"category": 1,
		"type":     1,
		"country":  1,
	}, "sec456")
	require.NoError(t, err)
	assert.Equal(t, "99dfa442ff076b81fe884d021c72ff37", sig)
}

func TestSignature_InlineSecretWins(t *testing.T) {
	sig, err := Signature(core.Params{
		"apiKey":    "key123",
		SecretParam: "inline",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "bd35dc5b5e64ecfd3b1f28a96dc37f7e", sig)
}

func TestSignature_NoSecret(t *testing.T) {
	_, err := Signature(core.Params{"apiKey": "key123"}, "")
	require.ErrorIs(t, err, core.ErrNoSecret)
}

func TestSignature_DoesNotMutatePayload(t *testing.T) {
	params := core.Params{"apiKey": "key123"}
	_, err := Signature(params, "sec456")
	require.NoError(t, err)
	assert.Len(t, params, 1)
	assert.NotContains(t, params, SecretParam)
}

func TestCredentials_Sign(t *testing.T) {
	creds := New("key123", "sec456")
	assert.Equal(t, "key123", creds.APIKey())

	sig, err := creds.Sign(core.Params{"apiKey": "key123"})
	require.NoError(t, err)
	assert.Equal(t, "e64a644f942709b2d2008e62cf1d31ee", sig)
}

func TestCredentials_SignEmptySecret(t *testing.T) {
	creds := New("key123", "")
	_, err := creds.Sign(core.Params{"apiKey": "key123"})
	require.ErrorIs(t, err, core.ErrNoSecret)
}

func TestCredentials_StringMasksKeyAndOmitsSecret(t *testing.T) {
	creds := New("key123456789", "topsecret")
	s := creds.String()
	assert.NotContains(t, s, "topsecret")
	assert.NotContains(t, s, "key123456789")
	assert.Contains(t, s, "key1****6789")
}

func TestCredentials_StringShortKey(t *testing.T) {
	creds := New("abc", "s")
	assert.Contains(t, creds.String(), "****")
	assert.NotContains(t, creds.String(), "abc")
}
