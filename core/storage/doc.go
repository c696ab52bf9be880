// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for publishing
// cleaned BibTeX files. This abstraction supports both AWS S3 and self-hosted
// MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - MakeBucket: Creates a new bucket if needed.
//   - PutObject: Uploads content (with size and options).
//   - UploadFiles: Uploads a set of files concurrently under the configured prefix.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	names, err := storage.UploadFiles(ctx, client, config, files)
package storage
