package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/bathudi/admissions/internal/pkg/logger"
)

// S3Config configures an S3Storage
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // optional, for S3-compatible services
	AccessKey string
	SecretKey string
	PublicURL string // optional; defaults to the virtual-hosted bucket URL
}

// S3Storage stores files as objects in a single bucket
type S3Storage struct {
	svc      *s3.S3
	uploader *s3manager.Uploader
	bucket   string
	baseURL  string
}

// NewS3Storage creates an S3Storage from static credentials
func NewS3Storage(cfg S3Config) (*S3Storage, error) {
	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	baseURL := cfg.PublicURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	logger.Info().Str("bucket", cfg.Bucket).Str("region", cfg.Region).Msg("S3 storage configured")
	return &S3Storage{
		svc:      s3.New(sess),
		uploader: s3manager.NewUploader(sess),
		bucket:   cfg.Bucket,
		baseURL:  baseURL,
	}, nil
}

func isS3NotFound(err error) bool {
	var aerr awserr.RequestFailure
	if errors.As(err, &aerr) && aerr.StatusCode() == http.StatusNotFound {
		return true
	}
	var cerr awserr.Error
	if errors.As(err, &cerr) {
		switch cerr.Code() {
		case s3.ErrCodeNoSuchKey, "NotFound":
			return true
		}
	}
	return false
}

// Save uploads r to relPath
func (s *S3Storage) Save(ctx context.Context, relPath string, r io.Reader) error {
	key, err := CleanPath(relPath)
	if err != nil {
		return err
	}
	_, err = s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	})
	if err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Failed to upload file to S3")
		return fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return nil
}

// Open streams the object at relPath
func (s *S3Storage) Open(ctx context.Context, relPath string) (io.ReadCloser, error) {
	key, err := CleanPath(relPath)
	if err != nil {
		return nil, err
	}
	out, err := s.svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get object from S3: %w", err)
	}
	return out.Body, nil
}

// Stat reads object metadata
func (s *S3Storage) Stat(ctx context.Context, relPath string) (FileInfo, error) {
	key, err := CleanPath(relPath)
	if err != nil {
		return FileInfo{}, err
	}
	out, err := s.svc.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return FileInfo{}, ErrNotFound
		}
		return FileInfo{}, fmt.Errorf("failed to head object in S3: %w", err)
	}
	return FileInfo{
		Path:    relPath,
		Size:    aws.Int64Value(out.ContentLength),
		ModTime: aws.TimeValue(out.LastModified),
	}, nil
}

// Exists reports whether an object is stored at relPath
func (s *S3Storage) Exists(ctx context.Context, relPath string) (bool, error) {
	_, err := s.Stat(ctx, relPath)
	if err == nil {
		return true, nil
	}
	if IsNotFound(err) {
		return false, nil
	}
	return false, err
}

// Delete removes the object at relPath
func (s *S3Storage) Delete(ctx context.Context, relPath string) error {
	key, err := CleanPath(relPath)
	if err != nil {
		return err
	}
	_, err = s.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil && !isS3NotFound(err) {
		logger.Error().Err(err).Str("key", key).Msg("Failed to delete file from S3")
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

// URL returns the public address of relPath
func (s *S3Storage) URL(relPath string) string {
	return joinURL(s.baseURL, relPath)
}
