package arenacodec

import (
	"context"
	"time"

	"github.com/hupe1980/arenacodec/archive"
	"github.com/hupe1980/arenacodec/arena"
	"github.com/hupe1980/arenacodec/blobstore"
	"github.com/hupe1980/arenacodec/persistence"
)

// SaveArchive archives v and stores it as an archive unit.
func SaveArchive[T, A any](ctx context.Context, s *Store, name string, ar archive.Archiver[T, A], v T) error {
	raw, err := archive.ToBytes(ar, v)
	if err != nil {
		err = wrapError("archive", name, err)
		s.metrics.RecordSave(persistence.FormatArchive, 0, 0, err)
		s.logger.LogSave(ctx, name, persistence.UnitHeader{Format: persistence.FormatArchive}, 0, err)
		return err
	}
	return s.put(ctx, name, persistence.FormatArchive, raw)
}

// LoadArchive reads an archive unit and copies its root value into a.
func LoadArchive[T, A any](ctx context.Context, s *Store, name string, a *arena.Arena, ar archive.Archiver[T, A]) (T, error) {
	start := time.Now()
	v, h, err := loadArchive(ctx, s, name, a, ar)
	s.metrics.RecordLoad(persistence.FormatArchive, int(h.RawSize), time.Since(start), err) //nolint:gosec // bounded by the payload
	s.logger.LogLoad(ctx, name, h, false, time.Since(start), err)
	return v, err
}

func loadArchive[T, A any](ctx context.Context, s *Store, name string, a *arena.Arena, ar archive.Archiver[T, A]) (T, persistence.UnitHeader, error) {
	var zero T

	f, err := s.fetch(ctx, name, persistence.FormatArchive)
	if err != nil {
		return zero, persistence.UnitHeader{}, err
	}
	defer f.release()

	v, err := archive.Dematerialize(a, ar, f.payload)
	if err != nil {
		return zero, f.header, wrapError("dematerialize", name, err)
	}
	return v, f.header, nil
}

// Unit is an opened archive unit. Its root view is valid until Close.
type Unit[A any] struct {
	name   string
	header persistence.UnitHeader
	buf    []byte
	root   A
	blob   blobstore.Blob
}

// OpenArchive opens an archive unit for reading in place. Uncompressed units
// in mappable blobs (LocalStore, MemoryStore) are viewed without copying;
// everything else is read into memory first.
func OpenArchive[T, A any](ctx context.Context, s *Store, name string, ar archive.Archiver[T, A]) (*Unit[A], error) {
	start := time.Now()
	u, err := openArchive(ctx, s, name, ar)
	var h persistence.UnitHeader
	zeroCopy := false
	if u != nil {
		h, zeroCopy = u.header, u.ZeroCopy()
	}
	s.metrics.RecordLoad(persistence.FormatArchive, int(h.RawSize), time.Since(start), err) //nolint:gosec // bounded by the payload
	s.logger.LogLoad(ctx, name, h, zeroCopy, time.Since(start), err)
	return u, err
}

func openArchive[T, A any](ctx context.Context, s *Store, name string, ar archive.Archiver[T, A]) (*Unit[A], error) {
	f, err := s.fetch(ctx, name, persistence.FormatArchive)
	if err != nil {
		return nil, err
	}

	root, err := archive.Root(ar, f.payload)
	if err != nil {
		f.release()
		return nil, wrapError("open", name, err)
	}

	return &Unit[A]{
		name:   name,
		header: f.header,
		buf:    f.payload,
		root:   root,
		blob:   f.blob,
	}, nil
}

// Name returns the unit name.
func (u *Unit[A]) Name() string { return u.name }

// Header returns the unit envelope.
func (u *Unit[A]) Header() persistence.UnitHeader { return u.header }

// Root returns the view of the archived root value.
func (u *Unit[A]) Root() A { return u.root }

// Bytes returns the archive payload the views read from.
func (u *Unit[A]) Bytes() []byte { return u.buf }

// ZeroCopy reports whether the views alias the blob store's mapping.
func (u *Unit[A]) ZeroCopy() bool { return u.blob != nil }

// Close releases the underlying blob. Views must not be used afterwards.
func (u *Unit[A]) Close() error {
	if u.blob == nil {
		return nil
	}
	err := u.blob.Close()
	u.blob = nil
	return err
}
