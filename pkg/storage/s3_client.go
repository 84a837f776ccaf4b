package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Provider represents the S3-compatible storage provider
type S3Provider string

const (
	S3ProviderAWS    S3Provider = "aws"
	S3ProviderWasabi S3Provider = "wasabi"
)

// S3ClientConfig holds configuration for S3-compatible storage
type S3ClientConfig struct {
	Provider        S3Provider
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	// Wasabi only, e.g. "s3.eu-central-1.wasabisys.com"
	WasabiEndpoint string
}

// WasabiEndpoints maps regions to Wasabi endpoints
var WasabiEndpoints = map[string]string{
	"us-east-1":      "s3.us-east-1.wasabisys.com",
	"us-east-2":      "s3.us-east-2.wasabisys.com",
	"us-west-1":      "s3.us-west-1.wasabisys.com",
	"eu-central-1":   "s3.eu-central-1.wasabisys.com",
	"eu-west-1":      "s3.eu-west-1.wasabisys.com",
	"eu-west-2":      "s3.eu-west-2.wasabisys.com",
	"ap-northeast-1": "s3.ap-northeast-1.wasabisys.com",
	"ap-southeast-1": "s3.ap-southeast-1.wasabisys.com",
}

// ResolveWasabiEndpoint returns the explicit endpoint, the region's endpoint, or eu-central-1.
func (c S3ClientConfig) ResolveWasabiEndpoint() string {
	if c.WasabiEndpoint != "" {
		return strings.TrimPrefix(c.WasabiEndpoint, "https://")
	}
	if endpoint, ok := WasabiEndpoints[c.Region]; ok {
		return endpoint
	}
	return WasabiEndpoints["eu-central-1"]
}

// NewS3Client creates an S3 client for AWS or Wasabi
func NewS3Client(ctx context.Context, cfg S3ClientConfig) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if cfg.Provider == S3ProviderWasabi {
		// Wasabi requires a custom endpoint and path-style addressing
		endpoint := cfg.ResolveWasabiEndpoint()
		return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String("https://" + endpoint)
			o.UsePathStyle = true
		}), nil
	}

	return s3.NewFromConfig(awsCfg), nil
}

// ObjectPresigner issues time-limited GET URLs for private objects
type ObjectPresigner struct {
	presign presignFunc
	bucket  string
	expiry  time.Duration
}

type presignFunc func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (string, error)

// NewObjectPresigner wraps client for bucket; URLs stay valid for expiry
func NewObjectPresigner(client *s3.Client, bucket string, expiry time.Duration) *ObjectPresigner {
	pc := s3.NewPresignClient(client)
	return &ObjectPresigner{
		presign: func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (string, error) {
			req, err := pc.PresignGetObject(ctx, params, optFns...)
			if err != nil {
				return "", err
			}
			return req.URL, nil
		},
		bucket: bucket,
		expiry: expiry,
	}
}

// PresignGet returns a download URL for key. filename sets Content-Disposition.
func (p *ObjectPresigner) PresignGet(ctx context.Context, key, filename string) (string, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(strings.TrimPrefix(key, "/")),
	}
	if filename != "" {
		input.ResponseContentDisposition = aws.String(fmt.Sprintf("attachment; filename=%q", filename))
	}

	url, err := p.presign(ctx, input, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", key, err)
	}
	return url, nil
}
