package objectstore

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/notification"
)

// Config contains the information required to talk to an object store.
type Config struct {
	Provider  string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// Client represents the capabilities the recorder expects from the bucket
// side: making sure uploads are announced to it.
type Client interface {
	EnsureUploadNotification(ctx context.Context, bucket, targetARN string) error
	Close() error
}

// New creates an object store client based on the given configuration.
func New(cfg Config) (Client, error) {
	switch cfg.Provider {
	case "minio", "s3":
		return newMinioClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported object store provider: %s", cfg.Provider)
	}
}

type minioClient struct {
	client *minio.Client
}

func newMinioClient(cfg Config) (Client, error) {
	cl, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	return &minioClient{client: cl}, nil
}

// EnsureUploadNotification registers an s3:ObjectCreated:* queue target on
// bucket unless an identical one is already configured.
func (m *minioClient) EnsureUploadNotification(ctx context.Context, bucket, targetARN string) error {
	target, err := parseTarget(targetARN)
	if err != nil {
		return err
	}

	current, err := m.client.GetBucketNotification(ctx, bucket)
	if err != nil {
		return fmt.Errorf("get bucket notification: %w", err)
	}

	merged, changed := withUploadQueue(current, target)
	if !changed {
		return nil
	}
	if err := m.client.SetBucketNotification(ctx, bucket, merged); err != nil {
		return fmt.Errorf("set bucket notification: %w", err)
	}
	return nil
}

func (m *minioClient) Close() error {
	return nil
}

func parseTarget(raw string) (notification.Arn, error) {
	parsed, err := arn.Parse(raw)
	if err != nil {
		return notification.Arn{}, fmt.Errorf("parse notification target %q: %w", raw, err)
	}
	return notification.NewArn(parsed.Partition, parsed.Service, parsed.Region, parsed.AccountID, parsed.Resource), nil
}

func withUploadQueue(cfg notification.Configuration, target notification.Arn) (notification.Configuration, bool) {
	queue := notification.NewConfig(target)
	queue.AddEvents(notification.ObjectCreatedAll)
	changed := cfg.AddQueue(queue)
	return cfg, changed
}
