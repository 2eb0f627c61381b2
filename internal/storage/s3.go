// Package storage keeps profile images in an external object store.
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

	"github.com/kaloraat/auth-api/internal/model"
)

// ImageStore uploads profile images and returns their public reference.
type ImageStore interface {
	UploadProfileImage(ctx context.Context, accountID string, data []byte, contentType string) (model.Image, error)
}

// Config configures the S3 bucket holding profile images.
type Config struct {
	Region       string
	Bucket       string
	BaseEndpoint string // optional, for S3-compatible stores such as MinIO
	AccessKey    string
	SecretKey    string
	PublicURL    string // optional override for the public object URL base
}

// S3ImageStore stores profile images in an S3 bucket.
type S3ImageStore struct {
	client *s3.Client
	cfg    Config
}

// NewS3ImageStore creates an S3ImageStore with static credentials.
func NewS3ImageStore(ctx context.Context, cfg Config) (*S3ImageStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3ImageStore{client: client, cfg: cfg}, nil
}

// UploadProfileImage writes the image under a key derived from the account
// id, so a re-upload replaces the previous image.
func (s *S3ImageStore) UploadProfileImage(ctx context.Context, accountID string, data []byte, contentType string) (model.Image, error) {
	key := ProfileImageKey(accountID)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return model.Image{}, fmt.Errorf("uploading profile image: %w", err)
	}

	return model.Image{PublicID: key, URL: s.objectURL(key)}, nil
}

// ProfileImageKey returns the object key for an account's profile image.
func ProfileImageKey(accountID string) string {
	return "profile_images/profile_" + accountID
}

func (s *S3ImageStore) objectURL(key string) string {
	if s.cfg.PublicURL != "" {
		return strings.TrimSuffix(s.cfg.PublicURL, "/") + "/" + key
	}
	if s.cfg.BaseEndpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(s.cfg.BaseEndpoint, "/"), s.cfg.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}
