package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3API is the subset of *s3.Client used for room images.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3FileStorage struct {
	Client s3API
	Bucket string
}

// NewS3FileStorage builds a client from the default AWS config chain
// (env vars, shared config, instance role).
func NewS3FileStorage(ctx context.Context, bucket string) (*S3FileStorage, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, errors.New("s3 bucket is not configured")
	}
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &S3FileStorage{Client: s3.NewFromConfig(cfg), Bucket: bucket}, nil
}

func (s *S3FileStorage) Store(ctx context.Context, file UploadedFile, namespace string) (string, error) {
	// PutObject needs a seekable body to sign the payload.
	body, err := io.ReadAll(file.Reader)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	key := objectKey(namespace, file.Name)
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	}
	if file.ContentType != "" {
		input.ContentType = aws.String(file.ContentType)
	}
	if _, err := s.Client.PutObject(ctx, input); err != nil {
		log.Printf("Could not put object %s to bucket %s: %v", key, s.Bucket, err)
		return "", fmt.Errorf("put object: %w", err)
	}
	log.Printf("Added object '%s' to bucket '%s'", key, s.Bucket)
	return key, nil
}

func (s *S3FileStorage) Delete(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return nil
	}
	if _, err := s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}
