package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/minio/minio-go/v7"
	"golang.org/x/sync/errgroup"
)

// File is a named in-memory object to upload.
type File struct {
	Name string
	Data []byte
}

// EnsureBucket creates the bucket when it does not exist yet.
func EnsureBucket(ctx context.Context, client Client, bucket, region string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("create bucket %s: %w", bucket, err)
	}
	return nil
}

// UploadFiles uploads files concurrently under cfg.Prefix and returns the object names.
// The first failure cancels the remaining uploads.
func UploadFiles(ctx context.Context, client Client, cfg Config, files []File) ([]string, error) {
	if err := EnsureBucket(ctx, client, cfg.Bucket, cfg.Region); err != nil {
		return nil, err
	}

	names := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		names[i] = path.Join(cfg.Prefix, f.Name)
		g.Go(func() error {
			_, err := client.PutObject(gctx, cfg.Bucket, names[i], bytes.NewReader(f.Data), int64(len(f.Data)), minio.PutObjectOptions{
				ContentType: "application/x-bibtex",
			})
			if err != nil {
				return fmt.Errorf("upload %s: %w", names[i], err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return names, nil
}
