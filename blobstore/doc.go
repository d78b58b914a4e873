// Package blobstore abstracts storage for model snapshots.
//
// A Store reads and writes whole, immutable blobs by name. Snapshots are
// small (centroids plus a header), so the interface is deliberately
// whole-blob rather than streaming.
//
// Implementations:
//
//   - MemoryStore: in-memory, for tests and ephemeral models
//   - LocalStore: local filesystem with atomic writes
//   - s3.Store: Amazon S3 (sub-package)
//   - minio.Store: MinIO and S3-compatible storage (sub-package)
//
// CachingStore wraps any Store with a read-through cache that collapses
// concurrent fetches of the same blob.
package blobstore
