package images

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Storage uploads images to a bucket served behind a CDN or the public
// bucket URL.
type S3Storage struct {
	client     S3PutObjectAPI
	bucket     string
	prefix     string
	cdnBaseURL string
}

func NewS3Storage(client S3PutObjectAPI, bucket, prefix, cdnBaseURL string) *S3Storage {
	return &S3Storage{
		client:     client,
		bucket:     bucket,
		prefix:     strings.Trim(prefix, "/"),
		cdnBaseURL: strings.TrimRight(cdnBaseURL, "/"),
	}
}

func (s *S3Storage) Save(ctx context.Context, fileName, contentType string, body io.Reader) (string, error) {
	key := path.Join(s.prefix, fileName)

	// PutObject needs a seekable or sized body to sign the payload.
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", fileName, err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        &s.bucket,
		Key:           &key,
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("upload to s3: %w", err)
	}
	return s.cdnBaseURL + "/" + key, nil
}
