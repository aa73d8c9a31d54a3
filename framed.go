package arenacodec

import (
	"context"
	"time"

	"github.com/hupe1980/arenacodec/arena"
	"github.com/hupe1980/arenacodec/incremental"
	"github.com/hupe1980/arenacodec/persistence"
)

// SaveFramed encodes v with the incremental codec and stores it as a framed unit.
func SaveFramed[T any](ctx context.Context, s *Store, name string, c incremental.Codec[T], v T) error {
	raw, err := incremental.EncodeToBytes(c, v, s.opts.incremental...)
	if err != nil {
		err = wrapError("encode", name, err)
		s.metrics.RecordSave(persistence.FormatIncremental, 0, 0, err)
		s.logger.LogSave(ctx, name, persistence.UnitHeader{Format: persistence.FormatIncremental}, 0, err)
		return err
	}
	return s.put(ctx, name, persistence.FormatIncremental, raw)
}

// LoadFramed reads a framed unit and decodes it into a. The whole payload must
// be consumed. On error a may hold a partially decoded value and should be
// discarded.
func LoadFramed[T any](ctx context.Context, s *Store, name string, a *arena.Arena, c incremental.Codec[T]) (T, error) {
	start := time.Now()
	v, h, err := loadFramed(ctx, s, name, a, c)
	s.metrics.RecordLoad(persistence.FormatIncremental, int(h.RawSize), time.Since(start), err) //nolint:gosec // bounded by the payload
	s.logger.LogLoad(ctx, name, h, false, time.Since(start), err)
	return v, err
}

func loadFramed[T any](ctx context.Context, s *Store, name string, a *arena.Arena, c incremental.Codec[T]) (T, persistence.UnitHeader, error) {
	var zero T

	f, err := s.fetch(ctx, name, persistence.FormatIncremental)
	if err != nil {
		return zero, persistence.UnitHeader{}, err
	}
	defer f.release()

	v, n, err := incremental.Decode(f.payload, a, c, s.opts.incremental...)
	if err != nil {
		return zero, f.header, wrapError("decode", name, err)
	}
	if n != len(f.payload) {
		return zero, f.header, &TrailingDataError{Unit: name, Consumed: n, Size: len(f.payload)}
	}
	return v, f.header, nil
}
