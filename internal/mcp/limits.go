package mcp

// Ceilings for tool requests. Callers can raise the per-request limits
// up to the Max values; anything beyond is clamped, not rejected.
const (
	// read_range without a range walks the whole sheet, so it gets a
	// row cap even when the caller asks for none.
	DefaultRowLimit = 1000
	MaxRowLimit     = 10000

	DefaultHeadRows = 10
	MaxHeadRows     = 5000

	DefaultTailRows = 10
	MaxTailRows     = 5000

	DefaultSearchResults = 100
	MaxSearchResults     = 1000

	// MaxOutputBytes caps any single JSON result (5MB).
	MaxOutputBytes = 5 * 1024 * 1024

	// DefaultCacheSize is the number of parsed workbooks kept for the
	// read tools, overridable via CELLQ_CACHE_SIZE.
	DefaultCacheSize = 8
)
