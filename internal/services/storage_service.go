// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"github.com/gophershop/backend/internal/apperrors"
	"github.com/gophershop/backend/internal/config"
)

const (
	maxImageSize   = 10 * 1024 * 1024
	localUploadDir = "uploads"
)

var allowedImageExts = []string{".jpg", ".jpeg", ".png"}

// StorageService stores product images. With AWS credentials present images
// go to S3; otherwise they land on the local filesystem under uploads/, which
// is what development setups serve as static files.
type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

type UploadResult struct {
	URL  string `json:"image"`
	Key  string `json:"key"`
	Size int64  `json:"size"`
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if cfg.AWS.AccessKeyID == "" {
		return &StorageService{config: cfg}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   cfg,
	}, nil
}

// UploadImage validates and stores a single product image.
func (s *StorageService) UploadImage(file multipart.File, header *multipart.FileHeader) (*UploadResult, error) {
	if header.Size > maxImageSize {
		return nil, apperrors.New(apperrors.KindValidation, "image exceeds maximum size of 10MB")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, e := range allowedImageExts {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, apperrors.New(apperrors.KindValidation, "images only (jpg, jpeg, png)")
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, apperrors.Upstream(fmt.Errorf("failed to read upload: %w", err))
	}

	key := s.generateFileName(ext)

	if s.s3Client != nil {
		return s.uploadToS3(fileBytes, key, header.Header.Get("Content-Type"))
	}
	return s.uploadToLocal(fileBytes, key)
}

func (s *StorageService) uploadToS3(fileBytes []byte, key, contentType string) (*UploadResult, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
		ACL:           aws.String("public-read"),
	}

	if _, err := s.s3Client.PutObject(params); err != nil {
		return nil, apperrors.Upstream(fmt.Errorf("failed to upload to S3: %w", err))
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, key)

	return &UploadResult{
		URL:  url,
		Key:  key,
		Size: int64(len(fileBytes)),
	}, nil
}

func (s *StorageService) uploadToLocal(fileBytes []byte, key string) (*UploadResult, error) {
	if err := os.MkdirAll(localUploadDir, 0o755); err != nil {
		return nil, apperrors.Upstream(fmt.Errorf("failed to prepare upload dir: %w", err))
	}

	path := filepath.Join(localUploadDir, key)
	if err := os.WriteFile(path, fileBytes, 0o644); err != nil {
		return nil, apperrors.Upstream(fmt.Errorf("failed to write upload: %w", err))
	}

	return &UploadResult{
		URL:  "/" + localUploadDir + "/" + key,
		Key:  key,
		Size: int64(len(fileBytes)),
	}, nil
}

func (s *StorageService) DeleteImage(key string) error {
	if s.s3Client == nil {
		err := os.Remove(filepath.Join(localUploadDir, filepath.Base(key)))
		if err != nil && !os.IsNotExist(err) {
			return apperrors.Upstream(err)
		}
		return nil
	}

	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return apperrors.Upstream(fmt.Errorf("failed to delete from S3: %w", err))
	}
	return nil
}

func (s *StorageService) generateFileName(ext string) string {
	id := uuid.New()
	timestamp := time.Now().Format("20060102")
	return fmt.Sprintf("image_%s_%s%s", timestamp, id.String()[:8], ext)
}
