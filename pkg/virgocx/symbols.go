package virgocx

import (
	"sync"

	"github.com/cockroachdb/apd/v3"

	"vcx/pkg/core"
)

// symbolCache holds the process-wide formatting metadata. It is filled at
// most once, from the first ticker listing any client fetches, and shared by
// every client in the process. Reads go through the same lock so concurrent
// clients observe a consistent view.
var symbolCache = struct {
	mu     sync.Mutex
	specs  map[string]core.SymbolSpec
	loaded bool
}{}

// seedSymbolSpecs fills the cache from a ticker listing. Later listings are
// ignored; the constraints are static for the life of the process.
func seedSymbolSpecs(tickers []core.Ticker) {
	symbolCache.mu.Lock()
	defer symbolCache.mu.Unlock()
	if symbolCache.loaded {
		return
	}
	specs := make(map[string]core.SymbolSpec, len(tickers))
	for _, t := range tickers {
		if t.Symbol == "" {
			continue
		}
		specs[t.Symbol] = core.SymbolSpec{
			Symbol:        t.Symbol,
			PriceDecimals: t.PriceDecimals,
			QtyDecimals:   t.QtyDecimals,
			MinTotal:      t.MinTotal,
		}
	}
	symbolCache.specs = specs
	symbolCache.loaded = true
}

func symbolSpec(symbol string) (core.SymbolSpec, bool) {
	symbolCache.mu.Lock()
	defer symbolCache.mu.Unlock()
	spec, ok := symbolCache.specs[symbol]
	return spec, ok
}

func symbolSpecsLoaded() bool {
	symbolCache.mu.Lock()
	defer symbolCache.mu.Unlock()
	return symbolCache.loaded
}

// resetSymbolSpecs clears the cache. Test helper.
func resetSymbolSpecs() {
	symbolCache.mu.Lock()
	defer symbolCache.mu.Unlock()
	symbolCache.specs = nil
	symbolCache.loaded = false
}

var decimalCtx = apd.BaseContext.WithPrecision(34)

// clampDecimal rounds d down to the given number of decimal places and
// reports whether rounding changed the value.
func clampDecimal(d *apd.Decimal, decimals int32) (*apd.Decimal, bool, error) {
	ctx := *decimalCtx
	ctx.Rounding = apd.RoundDown
	var out apd.Decimal
	if _, err := ctx.Quantize(&out, d, -decimals); err != nil {
		return nil, false, err
	}
	return &out, out.Cmp(d) != 0, nil
}
