package incremental

// IntEncoding selects how multi-byte integers are written.
type IntEncoding uint8

const (
	// VarintEncoding writes integers in bincode's variable-length form.
	VarintEncoding IntEncoding = iota
	// FixedIntEncoding writes integers at their full width.
	FixedIntEncoding
)

func (e IntEncoding) String() string {
	switch e {
	case VarintEncoding:
		return "varint"
	case FixedIntEncoding:
		return "fixed"
	default:
		return "unknown"
	}
}

// Config holds codec settings shared by the encoder and decoder.
type Config struct {
	// IntEncoding is the integer representation. Defaults to VarintEncoding.
	IntEncoding IntEncoding
	// Limit caps the bytes of decoded memory a decode may claim. Zero means no limit.
	Limit int
}

// Option configures a Config.
type Option func(*Config)

// WithVarintEncoding selects variable-length integers.
func WithVarintEncoding() Option {
	return func(c *Config) {
		c.IntEncoding = VarintEncoding
	}
}

// WithFixedIntEncoding selects fixed-width integers.
func WithFixedIntEncoding() Option {
	return func(c *Config) {
		c.IntEncoding = FixedIntEncoding
	}
}

// WithLimit caps the decoded memory a single decode may claim.
func WithLimit(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Limit = n
		}
	}
}

// NewConfig applies opts over the default configuration.
func NewConfig(opts ...Option) Config {
	var c Config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
