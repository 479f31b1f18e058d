package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/myrecipebox/backend/config"
)

// ImageStore is the file-storage collaborator: it turns an uploaded recipe
// image into a stored location string. The rest of the system only ever
// persists that string on the recipe row.
type ImageStore interface {
	Store(ctx context.Context, filename string, contentType string, body io.Reader) (string, error)
}

// S3ImageStore stores recipe images in an S3 bucket.
type S3ImageStore struct {
	s3Config *config.S3Config
}

// NewS3ImageStore creates a new S3ImageStore instance
func NewS3ImageStore(s3Config *config.S3Config) *S3ImageStore {
	return &S3ImageStore{s3Config: s3Config}
}

// Store uploads the image bytes and returns the public URL of the stored
// object. The original filename only contributes its extension; the key is
// always a fresh UUID.
func (s *S3ImageStore) Store(ctx context.Context, filename string, contentType string, body io.Reader) (string, error) {
	ext := path.Ext(filename)
	if ext == "" {
		ext = ".png"
	}
	key := fmt.Sprintf("recipe-images/%s%s", uuid.New().String(), ext)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	location := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	log.Printf("[ImageStore] Stored recipe image at %s", location)
	return location, nil
}
