// Package arenacodec persists arena-allocated data structures.
//
// Values that live in an arena (arena.Array, arena.Box, arena.Cell and structs
// built from them) are written in one of two formats:
//
//   - Framed (package incremental): a compact field-by-field encoding that is
//     decoded into a fresh arena under an allocation budget.
//   - Archive (package archive): a relative-pointer layout whose root can be
//     inspected in place without allocating, or copied back into an arena.
//
// Store wraps either format in a checksummed envelope (package persistence),
// optionally compresses it (package compress) and keeps it in a
// blobstore.BlobStore: local disk, memory, S3 or MinIO.
//
// # Quick Start
//
//	store := arenacodec.New(blobstore.NewLocalStore("./units"),
//	    arenacodec.WithCompression(compress.ZSTD),
//	    arenacodec.WithLogger(arenacodec.NewTextLogger(slog.LevelInfo)),
//	)
//
//	// Framed
//	err := arenacodec.SaveFramed(ctx, store, "main.bin", ast.ProgramCodec, program)
//
//	a := store.NewArena()
//	defer a.Free()
//	loaded, err := arenacodec.LoadFramed(ctx, store, "main.bin", a, ast.ProgramCodec)
//
// Archive units saved without compression can be opened in place:
//
//	err = arenacodec.SaveArchive(ctx, store, "main.arc", ast.ProgramArchiver, program)
//
//	unit, err := arenacodec.OpenArchive(ctx, store, "main.arc", ast.ProgramArchiver)
//	defer unit.Close()
//	fmt.Println(unit.Root().Body().Len())
//
// # Resources
//
// WithResourceController bounds the memory of arenas created by Store.NewArena,
// the number of concurrent transfers and the blob store bandwidth.
//
// # Observability
//
// Store reports to a MetricsCollector (BasicMetricsCollector in memory, or the
// Prometheus collector in package observability) and logs through Logger.
package arenacodec
