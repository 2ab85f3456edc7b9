package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("DB_HOST", "db.internal")
	os.Setenv("DB_NAME", "vidtube_test")
	os.Setenv("ACCESS_TOKEN_SECRET", "access-test-secret")
	os.Setenv("REFRESH_TOKEN_SECRET", "refresh-test-secret")
	os.Setenv("ACCESS_TOKEN_EXPIRY", "30m")
	os.Setenv("REFRESH_TOKEN_EXPIRY", "168h")
	os.Setenv("S3_BUCKET_NAME", "test-bucket")
	defer func() {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("DB_HOST")
		os.Unsetenv("DB_NAME")
		os.Unsetenv("ACCESS_TOKEN_SECRET")
		os.Unsetenv("REFRESH_TOKEN_SECRET")
		os.Unsetenv("ACCESS_TOKEN_EXPIRY")
		os.Unsetenv("REFRESH_TOKEN_EXPIRY")
		os.Unsetenv("S3_BUCKET_NAME")
	}()

	cfg, err := Load()
	assert.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "vidtube_test", cfg.DBName)
	assert.Equal(t, "access-test-secret", cfg.AccessTokenSecret)
	assert.Equal(t, "refresh-test-secret", cfg.RefreshTokenSecret)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 168*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, "test-bucket", cfg.S3BucketName)
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("DB_PORT")
	os.Unsetenv("ACCESS_TOKEN_EXPIRY")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
}

func TestLoad_BadDuration(t *testing.T) {
	os.Setenv("ACCESS_TOKEN_EXPIRY", "not-a-duration")
	defer os.Unsetenv("ACCESS_TOKEN_EXPIRY")

	cfg, err := Load()
	assert.NoError(t, err)
	// Unparseable durations fall back to the default
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
}
