package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"subscription-audit/internal/config"
	"subscription-audit/internal/errors"
	"subscription-audit/internal/logging"
)

// S3API is the subset of the S3 client the sink needs
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink writes reports to an S3 or S3-compatible bucket
type S3Sink struct {
	client S3API
	bucket string
	key    string
}

// NewS3Sink creates an S3 sink. Static credentials and a custom endpoint are
// used when configured; otherwise the default AWS credential chain applies.
func NewS3Sink(ctx context.Context, cfg config.S3Config, bucket, key string) (*S3Sink, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Storage("failed to load AWS config", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewS3SinkWithClient(client, bucket, key), nil
}

// NewS3SinkWithClient creates an S3 sink around an existing client
func NewS3SinkWithClient(client S3API, bucket, key string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, key: key}
}

// Location returns the s3:// URL
func (s *S3Sink) Location() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key)
}

// Write uploads data as a single object
func (s *S3Sink) Write(ctx context.Context, data []byte, contentType string) error {
	logging.Debug("uploading report",
		zap.String("bucket", s.bucket),
		zap.String("key", s.key),
		zap.Int("size_bytes", len(data)))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return errors.Storage("failed to upload report", err).WithContext("location", s.Location())
	}
	return nil
}
