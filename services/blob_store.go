package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/acamacho/portfolio-backend/config"
)

// BlobStore holds uploaded images in an S3-compatible bucket. Clients upload
// directly through short-lived presigned URLs; the API only ever handles
// storage ids.
type BlobStore struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	presignExpiry time.Duration
	logger        zerolog.Logger
}

// UploadSlot is a presigned upload target handed to the dashboard.
type UploadSlot struct {
	StorageID string    `json:"storageId"`
	UploadURL string    `json:"uploadUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// NewBlobStore builds a BlobStore from STORAGE_* configuration. Works against
// AWS S3 or any S3-compatible endpoint (MinIO etc.).
func NewBlobStore(c map[string]string) (*BlobStore, error) {
	bucket := config.GetString(c, "STORAGE_BUCKET", "")
	if bucket == "" {
		return nil, errors.New("STORAGE_BUCKET is required")
	}
	accessKey := config.GetString(c, "STORAGE_ACCESS_KEY", "")
	secretKey := config.GetString(c, "STORAGE_SECRET_KEY", "")
	if accessKey == "" || secretKey == "" {
		return nil, errors.New("STORAGE_ACCESS_KEY and STORAGE_SECRET_KEY are required")
	}

	endpoint := config.GetString(c, "STORAGE_ENDPOINT", "")
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		if config.GetBool(c, "STORAGE_USE_SSL", true) {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}

	region := config.GetString(c, "STORAGE_REGION", "us-east-1")

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKey,
			secretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = config.GetBool(c, "STORAGE_USE_PATH_STYLE", true)
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &BlobStore{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		bucket:        bucket,
		presignExpiry: config.GetDuration(c, "STORAGE_PRESIGN_EXPIRY", 15*time.Minute),
		logger:        log.With().Str("service", "blobStore").Logger(),
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist. Called once at startup.
func (b *BlobStore) EnsureBucket(ctx context.Context) error {
	_, err := b.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(b.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	b.logger.Info().Str("bucket", b.bucket).Msg("Creating storage bucket")
	_, err = b.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(b.bucket),
	})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// RequestUploadSlot mints a fresh storage id and a presigned PUT URL the
// client uploads the file to directly.
func (b *BlobStore) RequestUploadSlot(ctx context.Context, contentType string) (UploadSlot, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	storageID := uuid.NewString()

	presignReq, err := b.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(storageID),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(b.presignExpiry))
	if err != nil {
		return UploadSlot{}, fmt.Errorf("failed to generate upload URL: %w", err)
	}

	return UploadSlot{
		StorageID: storageID,
		UploadURL: presignReq.URL,
		ExpiresAt: time.Now().Add(b.presignExpiry),
	}, nil
}

// Exists checks whether a previously issued storage id refers to a stored blob.
func (b *BlobStore) Exists(ctx context.Context, storageID string) (bool, error) {
	if storageID == "" {
		return false, errors.New("storage id is required")
	}

	_, err := b.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(storageID),
	})
	if err != nil {
		var notFound *types.NotFound
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &notFound) || errors.As(err, &noSuchKey) {
			return false, nil
		}
		// Some S3-compatible services surface not-found differently
		if strings.Contains(err.Error(), "NotFound") || strings.Contains(err.Error(), "NoSuchKey") {
			return false, nil
		}
		return false, fmt.Errorf("failed to check object existence: %w", err)
	}
	return true, nil
}

// ResolveURL returns a presigned GET URL for a stored blob.
func (b *BlobStore) ResolveURL(ctx context.Context, storageID string) (string, time.Time, error) {
	if storageID == "" {
		return "", time.Time{}, errors.New("storage id is required")
	}

	presignReq, err := b.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(storageID),
	}, s3.WithPresignExpires(b.presignExpiry))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate download URL: %w", err)
	}
	return presignReq.URL, time.Now().Add(b.presignExpiry), nil
}

// ErrBlobMissing reports a fetch of a storage id with no stored object behind it.
var ErrBlobMissing = errors.New("blob missing")

// Fetch streams a stored blob's bytes and content type, for the image proxy
// endpoint. The caller must close the reader.
func (b *BlobStore) Fetch(ctx context.Context, storageID string) (io.ReadCloser, string, error) {
	if storageID == "" {
		return nil, "", errors.New("storage id is required")
	}

	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(storageID),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) || strings.Contains(err.Error(), "NoSuchKey") {
			return nil, "", ErrBlobMissing
		}
		return nil, "", fmt.Errorf("failed to fetch object: %w", err)
	}

	contentType := "image/jpeg"
	if out.ContentType != nil && *out.ContentType != "" {
		contentType = *out.ContentType
	}
	return out.Body, contentType, nil
}
