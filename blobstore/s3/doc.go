// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	blobs, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("units/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	store := arenacodec.New(blobs)
//
// # Features
//
//   - Range reads for partial fetches
//   - Multipart uploads for large units
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
