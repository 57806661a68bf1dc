package export

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/vela/internal/errors"
)

// DefaultRegion is used when neither the caller nor AWS_REGION names one.
const DefaultRegion = "us-east-1"

// ObjectPutter is the part of *s3.Client that S3Store uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads the stylesheet to a single S3 object.
//
// Example usage:
//
//	store := export.NewS3Store(export.NewS3Client("eu-west-1"), "assets", "vela/keyframes.css")
//	err := store.Put(ctx, css)
type S3Store struct {
	client       ObjectPutter
	bucket       string
	key          string
	cacheControl string
}

// NewS3Store creates a new S3 export store.
func NewS3Store(client ObjectPutter, bucket, key string) *S3Store {
	return &S3Store{
		client:       client,
		bucket:       bucket,
		key:          key,
		cacheControl: "public, max-age=300",
	}
}

// WithCacheControl sets the Cache-Control header stored with the object.
func (s *S3Store) WithCacheControl(v string) *S3Store {
	s.cacheControl = v
	return s
}

// Put uploads css.
func (s *S3Store) Put(ctx context.Context, css []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key),
		Body:          bytes.NewReader(css),
		ContentLength: aws.Int64(int64(len(css))),
		ContentType:   aws.String("text/css; charset=utf-8"),
		CacheControl:  aws.String(s.cacheControl),
	})
	if err != nil {
		return errors.New("E302").
			WithDetailf("s3://%s/%s", s.bucket, s.key).
			Wrap(err)
	}
	return nil
}

// NewS3Client creates an S3 client for region that reads static
// credentials from the environment.
func NewS3Client(region string) *s3.Client {
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if region == "" {
		region = DefaultRegion
	}
	return s3.New(s3.Options{
		Region:      region,
		Credentials: aws.NewCredentialsCache(EnvCredentials()),
	})
}

// EnvCredentials returns a provider for AWS_ACCESS_KEY_ID,
// AWS_SECRET_ACCESS_KEY and the optional AWS_SESSION_TOKEN.
func EnvCredentials() aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		id, secret := os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY")
		if id == "" || secret == "" {
			return aws.Credentials{}, fmt.Errorf("export: AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
		}
		return aws.Credentials{
			AccessKeyID:     id,
			SecretAccessKey: secret,
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			Source:          "EnvCredentials",
		}, nil
	})
}
