package arenacodec

import (
	"bytes"
	"context"
	"time"

	"github.com/hupe1980/arenacodec/arena"
	"github.com/hupe1980/arenacodec/blobstore"
	"github.com/hupe1980/arenacodec/persistence"
	"github.com/hupe1980/arenacodec/resource"
)

// Store saves and loads encoded units to a blob store. It is safe for
// concurrent use; the arenas it hands out are not.
type Store struct {
	blobs   blobstore.BlobStore
	opts    options
	metrics MetricsCollector
	logger  *Logger
}

// New creates a Store over blobs.
func New(blobs blobstore.BlobStore, optFns ...Option) *Store {
	opts := applyOptions(optFns)
	return &Store{
		blobs:   blobs,
		opts:    opts,
		metrics: opts.metricsCollector,
		logger:  opts.logger,
	}
}

// NewArena creates an arena with the Store's chunk size. When a resource
// controller is configured, every chunk is charged against its memory limit.
func (s *Store) NewArena() *arena.Arena {
	opts := make([]arena.Option, 0, len(s.opts.arenaOptions)+1)
	if s.opts.resources != nil {
		opts = append(opts, arena.WithMemoryAcquirer(s.opts.resources))
	}
	opts = append(opts, s.opts.arenaOptions...)
	return arena.New(s.opts.chunkSize, opts...)
}

// Resources returns the configured resource controller, or nil.
func (s *Store) Resources() *resource.Controller {
	return s.opts.resources
}

// Delete removes a unit. Deleting a missing unit is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	start := time.Now()
	err := s.delete(ctx, name)
	s.metrics.RecordDelete(time.Since(start), err)
	s.logger.LogDelete(ctx, name, err)
	return err
}

func (s *Store) delete(ctx context.Context, name string) error {
	if name == "" {
		return ErrInvalidName
	}
	if err := s.opts.resources.AcquireTransfer(ctx); err != nil {
		return err
	}
	defer s.opts.resources.ReleaseTransfer()

	return wrapError("delete", name, s.blobs.Delete(ctx, name))
}

// List returns the sorted names of all units starting with prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	return s.blobs.List(ctx, prefix)
}

// Stat reads and validates the header of a unit without loading its payload.
func (s *Store) Stat(ctx context.Context, name string) (persistence.UnitHeader, error) {
	if name == "" {
		return persistence.UnitHeader{}, ErrInvalidName
	}
	blob, err := s.blobs.Open(ctx, name)
	if err != nil {
		return persistence.UnitHeader{}, translateError(wrapError("stat", name, err))
	}
	defer func() { _ = blob.Close() }()

	h, err := persistence.ReadHeader(blobstore.NewReader(ctx, blob), persistence.FormatAny)
	return h, wrapError("stat", name, err)
}

// put wraps raw in a unit envelope and stores it under name.
func (s *Store) put(ctx context.Context, name string, format persistence.Format, raw []byte) (err error) {
	start := time.Now()
	var h persistence.UnitHeader
	defer func() {
		stored := 0
		if err == nil {
			stored = persistence.HeaderSize + int(h.PayloadSize) //nolint:gosec // bounded by len(raw)
		}
		s.metrics.RecordSave(format, stored, time.Since(start), err)
		s.logger.LogSave(ctx, name, h, time.Since(start), err)
	}()

	if name == "" {
		return ErrInvalidName
	}
	if err := s.opts.resources.AcquireTransfer(ctx); err != nil {
		return err
	}
	defer s.opts.resources.ReleaseTransfer()

	var buf bytes.Buffer
	buf.Grow(persistence.HeaderSize + len(raw))
	w := resource.NewRateLimitedWriter(ctx, &buf, s.opts.resources)

	h, err = persistence.WriteUnit(w, format, s.opts.compression, raw)
	if err != nil {
		return wrapError("save", name, err)
	}
	return wrapError("save", name, s.blobs.Put(ctx, name, buf.Bytes()))
}

// fetched is a validated unit payload. When blob is non-nil the payload
// aliases the blob's mapping and blob must stay open while it is in use.
type fetched struct {
	header  persistence.UnitHeader
	payload []byte
	blob    blobstore.Blob
}

func (f *fetched) release() {
	if f.blob != nil {
		_ = f.blob.Close()
		f.blob = nil
	}
}

// fetch opens a unit and returns its decompressed payload. Uncompressed units
// in mappable blobs are not copied; the caller must release the result.
func (s *Store) fetch(ctx context.Context, name string, want persistence.Format) (*fetched, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if err := s.opts.resources.AcquireTransfer(ctx); err != nil {
		return nil, err
	}
	defer s.opts.resources.ReleaseTransfer()

	blob, err := s.blobs.Open(ctx, name)
	if err != nil {
		return nil, translateError(wrapError("open", name, err))
	}

	if m, ok := blob.(blobstore.Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			_ = blob.Close()
			return nil, wrapError("open", name, err)
		}
		if err := s.opts.resources.AcquireIO(ctx, len(data)); err != nil {
			_ = blob.Close()
			return nil, err
		}
		h, payload, err := persistence.ParseUnit(data, want)
		if err != nil {
			_ = blob.Close()
			return nil, wrapError("load", name, err)
		}
		if h.ZeroCopy() {
			return &fetched{header: h, payload: payload, blob: blob}, nil
		}
		_ = blob.Close()
		return &fetched{header: h, payload: payload}, nil
	}

	defer func() { _ = blob.Close() }()
	r := resource.NewRateLimitedReader(ctx, blobstore.NewReader(ctx, blob), s.opts.resources)
	h, payload, err := persistence.ReadUnit(r, want)
	if err != nil {
		return nil, wrapError("load", name, err)
	}
	return &fetched{header: h, payload: payload}, nil
}
