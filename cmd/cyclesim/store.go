package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/interop/blobstore"
	miniostore "github.com/hupe1980/interop/blobstore/minio"
	s3store "github.com/hupe1980/interop/blobstore/s3"
)

// openSource resolves a run folder location to a blob store. Plain paths
// map to the local file system. s3://bucket/prefix uses the default AWS
// credential chain; minio://host/bucket/prefix reads credentials from
// the MINIO_ACCESS_KEY and MINIO_SECRET_KEY environment variables.
func openSource(ctx context.Context, location string) (blobstore.Store, error) {
	switch {
	case strings.HasPrefix(location, "s3://"):
		return openS3(ctx, location)
	case strings.HasPrefix(location, "minio://"):
		return openMinio(location)
	default:
		info, err := os.Stat(location)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%w: %s is not a directory", errUsage, location)
		}
		return blobstore.NewLocalStore(location), nil
	}
}

func openS3(ctx context.Context, location string) (blobstore.Store, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errUsage, location)
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	client := awss3.NewFromConfig(cfg)
	return s3store.New(client, u.Host, s3store.WithPrefix(strings.TrimPrefix(u.Path, "/"))), nil
}

func openMinio(location string) (blobstore.Store, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errUsage, location)
	}
	bucket, prefix, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	if bucket == "" {
		return nil, fmt.Errorf("%w: %s has no bucket", errUsage, location)
	}
	client, err := minio.New(u.Host, &minio.Options{
		Creds:  credentials.NewEnvMinio(),
		Secure: u.Query().Get("insecure") != "true",
	})
	if err != nil {
		return nil, err
	}
	return miniostore.New(client, bucket, miniostore.WithPrefix(prefix)), nil
}
