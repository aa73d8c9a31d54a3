// Package minio stores units in MinIO or any other S3-compatible service
// (Ceph, Garage, SeaweedFS) through the MinIO client.
//
//	blobs, err := minio.New("localhost:9000", "units",
//		credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//		minio.WithPrefix("prod"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := blobs.EnsureBucket(ctx); err != nil {
//		log.Fatal(err)
//	}
//	store := arenacodec.New(blobs)
//
// Reads are ranged GETs pinned to the ETag seen by Open, so a unit replaced
// while it is being read fails instead of mixing versions. Wrap the store in
// blobstore.NewCachingStore to avoid one request per read.
package minio
