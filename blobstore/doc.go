// Package blobstore provides the storage abstraction units are saved to.
//
// BlobStore is the interface for reading and writing immutable blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: Local filesystem with mmap support and atomic writes
//   - MemoryStore: In-memory, for tests
//   - s3.Store: Amazon S3 with range reads and managed uploads
//   - minio.Store: MinIO and other S3-compatible services
//   - CachingStore: In-memory block cache in front of any other store
//
// Blobs that also implement Mappable expose their bytes without copying, which
// lets archive units be viewed in place.
package blobstore
