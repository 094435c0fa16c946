package database

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ConnectS3 builds an S3 client from the default AWS credential chain
// (environment, shared config, instance role). AWS_REGION and
// AWS_ENDPOINT_URL are honoured by the chain.
func ConnectS3(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS configuration: %w", err)
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		// S3-compatible stores (MinIO, LocalStack) need path-style keys.
		o.UsePathStyle = cfg.BaseEndpoint != nil
	}), nil
}
