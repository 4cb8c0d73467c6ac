package render

// Option configures a single Render call.
type Option func(*config)

type config struct {
	table    bool
	balanced bool
	onBand   func(Band)
}

// WithColorTable colors pixels through a 1024 entry Table instead of
// evaluating Shade per pixel. Output then matches the quantized legacy
// renders, which show slight banding.
func WithColorTable() Option {
	return func(c *config) { c.table = true }
}

// WithBalancedBands spreads remainder rows over the first bands.
// Pixels are identical to the default partition.
func WithBalancedBands() Option {
	return func(c *config) { c.balanced = true }
}

// WithBandHook registers f to be called by each worker once its band is
// complete. f is called from several goroutines at once.
func WithBandHook(f func(Band)) Option {
	return func(c *config) { c.onBand = f }
}
