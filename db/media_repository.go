package db

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
	"github.com/techagentng/dutyreport/config"
)

// MediaRepository stores uploaded objects and returns their public URL.
type MediaRepository interface {
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
}

type s3MediaRepo struct {
	client   *s3.Client
	bucket   string
	region   string
	endpoint string
}

func NewS3MediaRepo(ctx context.Context, c *config.Config) (MediaRepository, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(c.AWSRegion),
	}
	if c.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.AWSAccessKeyID,
			c.AWSSecretAccessKey,
			"",
		)))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load SDK config")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if c.AWSEndpoint != "" {
			o.BaseEndpoint = aws.String(c.AWSEndpoint)
			o.UsePathStyle = true
		}
	})

	return &s3MediaRepo{
		client:   client,
		bucket:   c.AWSBucket,
		region:   c.AWSRegion,
		endpoint: strings.TrimRight(c.AWSEndpoint, "/"),
	}, nil
}

func (m *s3MediaRepo) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", errors.Wrapf(err, "uploading %s to s3", key)
	}
	return m.objectURL(key), nil
}

func (m *s3MediaRepo) objectURL(key string) string {
	if m.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", m.endpoint, m.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.bucket, m.region, key)
}
