package loader

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/wayfind-dev/wayfind/pkg/route"
)

// S3Client is the subset of the aws-sdk-go-v2 S3 API the source needs.
// *s3.Client satisfies it.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source fetches code-split view payloads from an S3 bucket.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(context.Background())
//	src := loader.NewS3Source(s3.NewFromConfig(cfg), "my-views", "payloads/")
//
//	table, _ := route.Build([]route.Def[View]{
//		{Path: "/reports/:id", Load: route.Single(loader.S3(src, "reports.json", decodeView))},
//	})
type S3Source struct {
	client  S3Client
	bucket  string
	prefix  string
	maxSize int64
}

// NewS3Source creates a view source reading from the given bucket.
// prefix is prepended to every object key (e.g. "payloads/").
func NewS3Source(client S3Client, bucket, prefix string) *S3Source {
	return &S3Source{
		client:  client,
		bucket:  bucket,
		prefix:  prefix,
		maxSize: 8 << 20,
	}
}

// WithMaxSize sets the maximum payload size in bytes (0 = no limit).
func (s *S3Source) WithMaxSize(n int64) *S3Source {
	s.maxSize = n
	return s
}

// fetch reads one object fully.
func (s *S3Source) fetch(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.prefix + key),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s/%s%s: %w", s.bucket, s.prefix, key, err)
	}
	defer out.Body.Close()

	body := out.Body
	var r io.Reader = body
	if s.maxSize > 0 {
		r = io.LimitReader(body, s.maxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s/%s%s: %w", s.bucket, s.prefix, key, err)
	}
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return nil, fmt.Errorf("payload %s%s exceeds %d bytes", s.prefix, key, s.maxSize)
	}
	return data, nil
}

// DecodeFunc turns a fetched payload into a view.
type DecodeFunc[V any] func(data []byte) (V, error)

// S3 returns a view loader that fetches key from the source and
// decodes it. The fetch runs once per resolution session and honors
// the session's cancellation context.
func S3[V any](src *S3Source, key string, decode DecodeFunc[V]) route.LoadFunc[V] {
	return func(ctx context.Context) (V, error) {
		var zero V
		data, err := src.fetch(ctx, key)
		if err != nil {
			return zero, err
		}
		return decode(data)
	}
}
