// Package s3 implements blobstore.Store for Amazon S3.
//
// Run folders archived to S3 keep their layout under a key prefix, e.g.
// "runs/140131_1287_0851_A01n401drr/InterOp/TileMetricsOut.bin".
package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"golang.org/x/time/rate"

	"github.com/hupe1980/interop/blobstore"
)

// Options configures a Store.
type Options struct {
	// Prefix is prepended to all keys (e.g. "runs/").
	Prefix string
	// DownloadConcurrency is the number of parallel ranged GETs per blob.
	DownloadConcurrency int
	// BytesPerSecond throttles downloads. Zero means unlimited.
	BytesPerSecond int
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) func(*Options) {
	return func(o *Options) { o.Prefix = prefix }
}

// WithDownloadConcurrency sets the number of parallel ranged GETs.
func WithDownloadConcurrency(n int) func(*Options) {
	return func(o *Options) { o.DownloadConcurrency = n }
}

// WithBytesPerSecond throttles downloads to the given rate.
func WithBytesPerSecond(n int) func(*Options) {
	return func(o *Options) { o.BytesPerSecond = n }
}

// Store implements blobstore.Store for S3.
type Store struct {
	client     *s3.Client
	bucket     string
	prefix     string
	downloader *manager.Downloader
	limiter    *rate.Limiter
}

// New creates a new S3 blob store.
func New(client *s3.Client, bucket string, optFns ...func(*Options)) *Store {
	opts := Options{DownloadConcurrency: 4}
	for _, fn := range optFns {
		fn(&opts)
	}

	s := &Store{
		client: client,
		bucket: bucket,
		prefix: opts.Prefix,
		downloader: manager.NewDownloader(client, func(d *manager.Downloader) {
			d.Concurrency = opts.DownloadConcurrency
		}),
	}
	if opts.BytesPerSecond > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(opts.BytesPerSecond), opts.BytesPerSecond)
	}
	return s
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open opens a blob for reading. The object body is fetched lazily on the
// first Read.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	key := s.key(name)
	size, err := s.head(ctx, key)
	if err != nil {
		return nil, err
	}
	return &s3Blob{ctx: ctx, store: s, key: key, size: size}, nil
}

// ReadAll implements blobstore.FullReader using ranged parallel downloads.
func (s *Store) ReadAll(ctx context.Context, name string) ([]byte, error) {
	key := s.key(name)
	size, err := s.head(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := s.waitQuota(ctx, size); err != nil {
		return nil, err
	}

	buf := manager.NewWriteAtBuffer(make([]byte, 0, size))
	_, err = s.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return buf.Bytes(), nil
}

// Put writes a blob.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
		Body:   bytes.NewReader(data),
	})
	return err
}

func (s *Store) head(ctx context.Context, key string) (int64, error) {
	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return 0, mapNotFound(err)
	}
	return aws.ToInt64(head.ContentLength), nil
}

// waitQuota blocks until n bytes of download quota are available.
// Requests larger than the burst are consumed in chunks.
func (s *Store) waitQuota(ctx context.Context, n int64) error {
	if s.limiter == nil {
		return nil
	}
	burst := int64(s.limiter.Burst())
	for n > 0 {
		chunk := n
		if chunk > burst {
			chunk = burst
		}
		if err := s.limiter.WaitN(ctx, int(chunk)); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

func mapNotFound(err error) error {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return blobstore.ErrNotFound
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return blobstore.ErrNotFound
	}
	return err
}

type s3Blob struct {
	ctx   context.Context
	store *Store
	key   string
	size  int64
	body  io.ReadCloser
}

func (b *s3Blob) Read(p []byte) (int, error) {
	if b.body == nil {
		resp, err := b.store.client.GetObject(b.ctx, &s3.GetObjectInput{
			Bucket: aws.String(b.store.bucket),
			Key:    aws.String(b.key),
		})
		if err != nil {
			return 0, mapNotFound(err)
		}
		b.body = resp.Body
	}
	return b.body.Read(p)
}

func (b *s3Blob) Close() error {
	if b.body == nil {
		return nil
	}
	return b.body.Close()
}

func (b *s3Blob) Size() int64 {
	return b.size
}
