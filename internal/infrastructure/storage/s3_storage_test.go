package storage

import (
	"context"
	"testing"
	"time"

	infraconfig "github.com/salesops/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validStorageConfig() *infraconfig.StorageConfig {
	return &infraconfig.StorageConfig{
		Endpoint:        "localhost:9000",
		Region:          "us-east-1",
		Bucket:          "salesops-statements",
		AccessKeyID:     "minioadmin",
		SecretAccessKey: "minioadmin",
		UsePathStyle:    true,
	}
}

func TestNewS3StatementStore(t *testing.T) {
	t.Run("creates store from valid config", func(t *testing.T) {
		store, err := NewS3StatementStore(validStorageConfig())
		require.NoError(t, err)
		assert.Equal(t, "salesops-statements", store.Bucket())
	})

	t.Run("applies options", func(t *testing.T) {
		store, err := NewS3StatementStore(validStorageConfig(),
			WithLogger(zap.NewNop()),
			WithPresignExpiration(time.Hour),
		)
		require.NoError(t, err)
		assert.Equal(t, time.Hour, store.presignExpiration)
	})

	t.Run("rejects missing configuration", func(t *testing.T) {
		_, err := NewS3StatementStore(nil)
		assert.Error(t, err)
	})

	t.Run("rejects missing bucket", func(t *testing.T) {
		cfg := validStorageConfig()
		cfg.Bucket = ""
		_, err := NewS3StatementStore(cfg)
		assert.ErrorContains(t, err, "bucket")
	})

	t.Run("rejects missing credentials", func(t *testing.T) {
		cfg := validStorageConfig()
		cfg.AccessKeyID = ""
		_, err := NewS3StatementStore(cfg)
		assert.ErrorContains(t, err, "access key")
	})
}

func TestS3StatementStoreValidation(t *testing.T) {
	store, err := NewS3StatementStore(validStorageConfig())
	require.NoError(t, err)

	ctx := context.Background()

	// Key validation happens before any network call.
	assert.Error(t, store.Store(ctx, "", []byte("x"), "text/plain"))

	_, _, err = store.DownloadURL(ctx, "", time.Minute)
	assert.Error(t, err)

	_, err = store.Exists(ctx, "")
	assert.Error(t, err)
}
