package file

import (
	"context"
	"fmt"
)

// Config selects and configures the storage backend from the environment.
type Config struct {
	Driver string `env:"FILE_STORAGE_DRIVER" envDefault:"local"`

	LocalDir     string `env:"FILE_STORAGE_LOCAL_DIR" envDefault:"./uploads"`
	LocalBaseURL string `env:"FILE_STORAGE_LOCAL_BASE_URL" envDefault:"/uploads/"`

	S3Bucket         string `env:"FILE_STORAGE_S3_BUCKET"`
	S3Region         string `env:"FILE_STORAGE_S3_REGION"`
	S3AccessKeyID    string `env:"FILE_STORAGE_S3_ACCESS_KEY_ID"`
	S3SecretKey      string `env:"FILE_STORAGE_S3_SECRET_KEY"`
	S3Endpoint       string `env:"FILE_STORAGE_S3_ENDPOINT"`
	S3BaseURL        string `env:"FILE_STORAGE_S3_BASE_URL"`
	S3ForcePathStyle bool   `env:"FILE_STORAGE_S3_FORCE_PATH_STYLE" envDefault:"false"`
}

// NewFromConfig builds the Storage named by cfg.Driver.
func NewFromConfig(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Driver {
	case "local", "":
		return NewLocalStorage(cfg.LocalDir, cfg.LocalBaseURL)
	case "s3":
		return NewS3Storage(ctx, S3Config{
			Bucket:         cfg.S3Bucket,
			Region:         cfg.S3Region,
			AccessKeyID:    cfg.S3AccessKeyID,
			SecretKey:      cfg.S3SecretKey,
			Endpoint:       cfg.S3Endpoint,
			BaseURL:        cfg.S3BaseURL,
			ForcePathStyle: cfg.S3ForcePathStyle,
		})
	default:
		return nil, fmt.Errorf("%w: unknown driver %q", ErrInvalidConfig, cfg.Driver)
	}
}
