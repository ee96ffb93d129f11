package sinksvc

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core/export"
)

// S3API is the part of the S3 client the sink uses.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads files to an S3 bucket with a single PutObject, which is atomic.
type S3Sink struct {
	client S3API
	bucket string
	prefix string
}

var _ export.Sink = (*S3Sink)(nil)

// NewS3Sink loads the default AWS configuration (env, shared config, instance role).
func NewS3Sink(ctx context.Context, region, bucket, prefix string) (*S3Sink, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "loading aws config")
	}
	return NewS3SinkWithClient(s3.NewFromConfig(cfg), bucket, prefix), nil
}

func NewS3SinkWithClient(client S3API, bucket, prefix string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: prefix}
}

func (s *S3Sink) Save(ctx context.Context, f export.File) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(s.bucket),
		Key:                aws.String(objectKey(s.prefix, f.Name)),
		Body:               bytes.NewReader(f.Data),
		ContentType:        aws.String(f.ContentType),
		ContentDisposition: aws.String(`attachment; filename="` + f.Name + `"`),
	})
	if err != nil {
		return errors.Wrap(err, "uploading export")
	}
	return nil
}
