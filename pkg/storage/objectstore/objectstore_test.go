package objectstore

import (
	"testing"

	"github.com/minio/minio-go/v7/pkg/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnknownProvider(t *testing.T) {
	_, err := New(Config{Provider: "ftp"})
	assert.Error(t, err)
}

func TestParseTarget(t *testing.T) {
	target, err := parseTarget("arn:minio:sqs::primary:webhook")
	require.NoError(t, err)

	assert.Equal(t, "minio", target.Partition)
	assert.Equal(t, "sqs", target.Service)
	assert.Equal(t, "primary", target.AccountID)
	assert.Equal(t, "webhook", target.Resource)
	assert.Equal(t, "arn:minio:sqs::primary:webhook", target.String())

	_, err = parseTarget("webhook")
	assert.Error(t, err)
}

func TestWithUploadQueue(t *testing.T) {
	target, err := parseTarget("arn:minio:sqs::primary:webhook")
	require.NoError(t, err)

	cfg, changed := withUploadQueue(notification.Configuration{}, target)
	require.True(t, changed)
	require.Len(t, cfg.QueueConfigs, 1)
	assert.Equal(t, []notification.EventType{notification.ObjectCreatedAll}, cfg.QueueConfigs[0].Events)

	_, changed = withUploadQueue(cfg, target)
	assert.False(t, changed, "same target registered twice")
}
