package backup

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader is the part of the S3 client the exporter needs.
type Uploader interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Options locates an S3-compatible endpoint such as MinIO.
type S3Options struct {
	User         string
	Password     string
	Region       string
	BaseEndpoint string
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// NewS3Uploader builds an S3 client with static credentials and path-style
// addressing.
func NewS3Uploader(ctx context.Context, o S3Options) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(o.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(o.User, o.Password, "")),
	)
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(opts *s3.Options) {
		if o.BaseEndpoint != "" {
			opts.BaseEndpoint = aws.String(o.BaseEndpoint)
		}
		opts.UsePathStyle = true
	}), nil
}
