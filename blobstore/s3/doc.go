// Package s3 implements blobstore.Store on Amazon S3.
//
// Uploads stream through the AWS multipart upload manager, optionally
// throttled by a rate limiter. The package also provides a
// DynamoDB-backed model registry for atomic "latest version" pointers,
// which S3 alone cannot provide.
package s3
