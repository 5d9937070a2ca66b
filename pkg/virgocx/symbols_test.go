package virgocx

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vcx/pkg/core"
)

func mustDecimal(t *testing.T, s string) *apd.Decimal {
	t.Helper()
	d, _, err := apd.NewFromString(s)
	require.NoError(t, err)
	return d
}

func testTicker(symbol string, priceDec, qtyDec int32, minTotal string) core.Ticker {
	tk := core.Ticker{
		Symbol:        symbol,
		PriceDecimals: priceDec,
		QtyDecimals:   qtyDec,
	}
	d, _, _ := apd.NewFromString(minTotal)
	tk.MinTotal = *d
	return tk
}

func TestSeedSymbolSpecs(t *testing.T) {
	resetSymbolSpecs()
	t.Cleanup(resetSymbolSpecs)

	assert.False(t, symbolSpecsLoaded())
	seedSymbolSpecs([]core.Ticker{testTicker("BTC/CAD", 2, 6, "10")})
	assert.True(t, symbolSpecsLoaded())

	spec, ok := symbolSpec("BTC/CAD")
	require.True(t, ok)
	assert.Equal(t, int32(2), spec.PriceDecimals)
	assert.Equal(t, int32(6), spec.QtyDecimals)
	assert.Equal(t, "10", spec.MinTotal.Text('f'))

	_, ok = symbolSpec("DOGE/CAD")
	assert.False(t, ok)
}

func TestSeedSymbolSpecs_FirstListingWins(t *testing.T) {
	resetSymbolSpecs()
	t.Cleanup(resetSymbolSpecs)

	seedSymbolSpecs([]core.Ticker{testTicker("BTC/CAD", 2, 6, "10")})
	seedSymbolSpecs([]core.Ticker{testTicker("BTC/CAD", 4, 8, "20")})

	spec, ok := symbolSpec("BTC/CAD")
	require.True(t, ok)
	assert.Equal(t, int32(2), spec.PriceDecimals)
}

func TestSeedSymbolSpecs_SkipsEmptySymbols(t *testing.T) {
	resetSymbolSpecs()
	t.Cleanup(resetSymbolSpecs)

	seedSymbolSpecs([]core.Ticker{testTicker("", 2, 6, "10")})
	assert.True(t, symbolSpecsLoaded())
	_, ok := symbolSpec("")
	assert.False(t, ok)
}

func TestClampDecimal_RoundsDown(t *testing.T) {
	out, changed, err := clampDecimal(mustDecimal(t, "61000.259"), 2)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "61000.25", out.Text('f'))
}

func TestClampDecimal_NeverRoundsUp(t *testing.T) {
	out, changed, err := clampDecimal(mustDecimal(t, "0.999999"), 2)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "0.99", out.Text('f'))
}

func TestClampDecimal_WithinPrecision(t *testing.T) {
	out, changed, err := clampDecimal(mustDecimal(t, "61000.25"), 2)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 0, out.Cmp(mustDecimal(t, "61000.25")))
}

func TestClampDecimal_ZeroDecimals(t *testing.T) {
	out, changed, err := clampDecimal(mustDecimal(t, "5.7"), 0)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "5", out.Text('f'))
}
