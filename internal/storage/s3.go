package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// ErrNoBucket is returned when no bucket name is configured.
var ErrNoBucket = errors.New("storage: bucket name must be set")

// API is the subset of the S3 client used here.
type API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, opts ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Client holds corpus texts and benchmark reports in one bucket.
type Client struct {
	api    API
	bucket string
}

// LoadAWSConfig loads the default credential chain for region. When
// AWS_ENDPOINT_URL is set (LocalStack), every service client talks to it.
func LoadAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	opts := []func(*awsConfig.LoadOptions) error{awsConfig.WithRegion(region)}
	if ep := os.Getenv("AWS_ENDPOINT_URL"); ep != "" {
		opts = append(opts, awsConfig.WithBaseEndpoint(ep))
	}
	return awsConfig.LoadDefaultConfig(ctx, opts...)
}

// NewWithClient constructs an S3 client for the given bucket using the provided aws.Config.
// It enables path-style addressing so LocalStack will accept the requests.
func NewWithClient(bucket string, awsCfg aws.Config) (*Client, error) {
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return New(bucket, client)
}

// New wraps an existing API implementation.
func New(bucket string, api API) (*Client, error) {
	if bucket == "" {
		return nil, ErrNoBucket
	}
	return &Client{api: api, bucket: bucket}, nil
}

// Bucket returns the bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}

// PutObject uploads the data from the reader to S3 under the given key.
func (c *Client) PutObject(ctx context.Context, key string, body io.Reader) error {
	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &c.bucket,
		Key:    &key,
		Body:   body,
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", c.bucket, key, err)
	}
	return nil
}

// GetObject retrieves the object from S3 and returns its ReadCloser.
func (c *Client) GetObject(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &c.bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", c.bucket, key, err)
	}
	return out.Body, nil
}

// Open makes the bucket usable as a corpus source.
func (c *Client) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return c.GetObject(ctx, strings.TrimPrefix(name, "/"))
}

// ListKeys returns every key under prefix, following continuation tokens.
func (c *Client) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	in := &s3.ListObjectsV2Input{Bucket: &c.bucket}
	if prefix != "" {
		in.Prefix = aws.String(prefix)
	}
	for {
		out, err := c.api.ListObjectsV2(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("list s3://%s/%s: %w", c.bucket, prefix, err)
		}
		for _, obj := range out.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
		if !aws.ToBool(out.IsTruncated) || out.NextContinuationToken == nil {
			return keys, nil
		}
		in.ContinuationToken = out.NextContinuationToken
	}
}

// CallerAccount returns the AWS account ID the credentials in awsCfg belong to.
func CallerAccount(ctx context.Context, awsCfg aws.Config) (string, error) {
	out, err := sts.NewFromConfig(awsCfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("sts caller identity: %w", err)
	}
	return aws.ToString(out.Account), nil
}
