package arenacodec

import (
	"log/slog"

	"github.com/hupe1980/arenacodec/arena"
	"github.com/hupe1980/arenacodec/compress"
	"github.com/hupe1980/arenacodec/incremental"
	"github.com/hupe1980/arenacodec/resource"
)

type options struct {
	compression      compress.Type
	resources        *resource.Controller
	chunkSize        int
	arenaOptions     []arena.Option
	incremental      []incremental.Option
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Store.
type Option func(*options)

// WithCompression sets the compression applied to saved units.
// Units whose payload does not shrink enough are stored uncompressed.
//
// Default: compress.None, which keeps archive units viewable in place.
func WithCompression(t compress.Type) Option {
	return func(o *options) {
		o.compression = t
	}
}

// WithResourceController bounds memory, concurrent transfers and IO bandwidth.
// Arenas created by Store.NewArena charge their chunks against the controller.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resources = rc
	}
}

// WithChunkSize sets the chunk size of arenas created by Store.NewArena.
func WithChunkSize(size int) Option {
	return func(o *options) {
		o.chunkSize = size
	}
}

// WithArenaOptions appends options for arenas created by Store.NewArena.
//
// Example:
//
//	store := arenacodec.New(blobs, arenacodec.WithArenaOptions(arena.WithOffHeap()))
func WithArenaOptions(opts ...arena.Option) Option {
	return func(o *options) {
		o.arenaOptions = append(o.arenaOptions, opts...)
	}
}

// WithIncrementalOptions configures the framed codec (integer encoding, limit).
// The same options must be used to save and to load a unit.
func WithIncrementalOptions(opts ...incremental.Option) Option {
	return func(o *options) {
		o.incremental = append(o.incremental, opts...)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &arenacodec.BasicMetricsCollector{}
//	store := arenacodec.New(blobs, arenacodec.WithMetricsCollector(metrics))
//	// ... use store ...
//	stats := metrics.GetStats()
//	fmt.Printf("Saves: %d, Avg latency: %dns\n", stats.SaveCount, stats.SaveAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := arenacodec.NewJSONLogger(slog.LevelInfo)
//	store := arenacodec.New(blobs, arenacodec.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		compression:      compress.None,
		chunkSize:        arena.DefaultChunkSize,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
