// Package storage uploads book cover images to an S3-compatible object store
// and hands back stable, publicly fetchable URLs.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	appconfig "booksy/internal/config"
	apperrors "booksy/internal/errors"
)

const (
	// MaxImageSize is the largest accepted cover upload, 5 MiB.
	MaxImageSize = 5 * 1024 * 1024
	// coverFolder is the fixed logical folder covers live under.
	coverFolder = "books"
)

// Uploader stores an in-memory image buffer and returns its public URL.
type Uploader interface {
	UploadImage(ctx context.Context, data []byte, contentType string) (string, error)
}

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader implements Uploader against an S3-compatible endpoint (AWS S3 or
// MinIO in development).
type S3Uploader struct {
	client     s3API
	bucket     string
	publicBase string
}

var _ Uploader = (*S3Uploader)(nil)

// NewS3Uploader builds an uploader from application config.
func NewS3Uploader(ctx context.Context, cfg *appconfig.Config) (*S3Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	publicBase := cfg.S3PublicBase
	if publicBase == "" {
		publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &S3Uploader{
		client:     client,
		bucket:     cfg.S3Bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
	}, nil
}

// ValidateImage rejects buffers that are too large or not declared as images.
// It runs before any network call so bad uploads never reach the store.
func ValidateImage(data []byte, contentType string) error {
	if len(data) == 0 || len(data) > MaxImageSize {
		return apperrors.ErrInvalidImage
	}
	if !strings.HasPrefix(contentType, "image/") {
		return apperrors.ErrInvalidImage
	}
	return nil
}

// UploadImage validates and stores the buffer under books/<uuid><ext>,
// returning the public URL. A failed remote call surfaces to the caller as-is;
// there is no local retry.
func (u *S3Uploader) UploadImage(ctx context.Context, data []byte, contentType string) (string, error) {
	if err := ValidateImage(data, contentType); err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/%s%s", coverFolder, uuid.New(), extensionFor(contentType))
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload cover image: %w", err)
	}

	return u.publicBase + "/" + key, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
