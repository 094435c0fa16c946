package etl

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BartekS5/retail-etl/pkg/database"
)

// FileSource reads entity files from a local directory.
type FileSource struct {
	Dir string
}

func (f *FileSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	p := filepath.Join(f.Dir, name)
	file, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open source file: %w", err)
	}
	return file, nil
}

// S3GetObjectAPI is the part of the S3 client S3Source needs.
type S3GetObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads entity files stored under Prefix in an S3 bucket.
type S3Source struct {
	Client S3GetObjectAPI
	Bucket string
	Prefix string
}

func (s *S3Source) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key := path.Join(s.Prefix, name)
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.Bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", s.Bucket, key, err)
	}
	return out.Body, nil
}

// NewSource picks the Source for a data location: s3://bucket/prefix reads
// from S3, anything else is a local directory.
func NewSource(ctx context.Context, location string) (Source, error) {
	if !strings.HasPrefix(location, "s3://") {
		return &FileSource{Dir: location}, nil
	}

	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("parse data location %q: %w", location, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("data location %q has no bucket", location)
	}
	client, err := database.ConnectS3(ctx)
	if err != nil {
		return nil, err
	}
	return &S3Source{
		Client: client,
		Bucket: u.Host,
		Prefix: strings.Trim(u.Path, "/"),
	}, nil
}
