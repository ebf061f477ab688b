package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"inkboard/pkg/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type Client struct {
	s3Client   *s3.S3
	bucket     string
	endpoint   string
	disableSSL bool
	region     string
}

func NewClient(cfg *config.Config) (*Client, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	}

	disableSSL := false
	// MinIO for local development
	if cfg.AWSEndpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.AWSEndpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		if cfg.S3UseSSL == "false" {
			disableSSL = true
			awsConfig.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &Client{
		s3Client:   s3.New(sess),
		bucket:     cfg.S3BucketName,
		endpoint:   cfg.AWSEndpoint,
		disableSSL: disableSSL,
		region:     cfg.AWSRegion,
	}, nil
}

// EnsureBucket creates the bucket when it is missing (MinIO setups start empty).
func (c *Client) EnsureBucket(ctx context.Context) error {
	_, err := c.s3Client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucket),
	})
	if err == nil {
		return nil
	}

	_, err = c.s3Client.CreateBucketWithContext(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(c.bucket),
	})
	if err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", c.bucket, err)
	}
	return nil
}

// UploadFile stores body publicly readable under key and returns its URL.
func (c *Client) UploadFile(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error) {
	_, err := c.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		ACL:         aws.String(s3.ObjectCannedACLPublicRead),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return objectURL(c.endpoint, c.disableSSL, c.region, c.bucket, key), nil
}

func objectURL(endpoint string, disableSSL bool, region, bucket, key string) string {
	if endpoint != "" && !strings.Contains(endpoint, "amazonaws.com") {
		// MinIO path-style URL
		protocol := "https"
		if disableSSL {
			protocol = "http"
		}
		host := strings.TrimPrefix(strings.TrimPrefix(endpoint, "http://"), "https://")
		return fmt.Sprintf("%s://%s/%s/%s", protocol, host, bucket, key)
	}

	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
}
