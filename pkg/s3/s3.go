// Package s3 is the gateway to the external media store. Uploads take a
// local temporary file and always remove it, success or failure. Deletes
// treat a missing remote object as a no-op.
package s3

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vidtube/pkg/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

type AssetKind string

const (
	KindImage AssetKind = "image"
	KindVideo AssetKind = "video"
)

// AssetReference is the stored pointer to a remote object: the public
// URL, the key needed to delete it, and the kind of content it holds.
type AssetReference struct {
	URL  string    `json:"url"`
	Key  string    `json:"key"`
	Kind AssetKind `json:"kind"`
}

type Client struct {
	s3Client     *s3.S3
	bucket       string
	imageTimeout time.Duration
	videoTimeout time.Duration
}

func NewClient(cfg *config.Config) (*Client, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	}

	// Support MinIO for local development
	if cfg.AWSEndpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.AWSEndpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		if cfg.S3UseSSL == "false" {
			awsConfig.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &Client{
		s3Client:     s3.New(sess),
		bucket:       cfg.S3BucketName,
		imageTimeout: 30 * time.Second,
		videoTimeout: 5 * time.Minute,
	}, nil
}

// UploadLocalFile transmits the file at localPath to the store and
// returns a reference to the created object. The local file is removed
// on every exit path so handler temp files never pile up.
func (c *Client) UploadLocalFile(ctx context.Context, localPath, keyPrefix string) (AssetReference, error) {
	defer os.Remove(localPath)

	file, err := os.Open(localPath)
	if err != nil {
		return AssetReference{}, fmt.Errorf("failed to open upload file: %w", err)
	}
	defer file.Close()

	ext := filepath.Ext(localPath)
	kind := kindOf(ext)
	key := fmt.Sprintf("%s/%s%s", strings.Trim(keyPrefix, "/"), uuid.New().String(), ext)

	ctx, cancel := context.WithTimeout(ctx, c.timeoutFor(kind))
	defer cancel()

	_, err = c.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentTypeOf(ext)),
	})
	if err != nil {
		return AssetReference{}, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return AssetReference{URL: c.objectURL(key), Key: key, Kind: kind}, nil
}

// DeleteFile requests removal of a previously uploaded object. A
// store-side "not found" is reported as (false, nil), never an error;
// only transport failures surface.
func (c *Client) DeleteFile(ctx context.Context, ref AssetReference) (bool, error) {
	if ref.Key == "" {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeoutFor(ref.Kind))
	defer cancel()

	_, err := c.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(ref.Key),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) {
			switch aerr.Code() {
			case s3.ErrCodeNoSuchKey, "NotFound":
				return false, nil
			}
		}
		return false, fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return true, nil
}

func (c *Client) timeoutFor(kind AssetKind) time.Duration {
	if kind == KindVideo {
		return c.videoTimeout
	}
	return c.imageTimeout
}

func (c *Client) objectURL(key string) string {
	// Generate URL based on endpoint (MinIO or AWS S3)
	endpoint := aws.StringValue(c.s3Client.Config.Endpoint)
	if endpoint != "" && !strings.Contains(endpoint, "amazonaws.com") {
		protocol := "https"
		if c.s3Client.Config.DisableSSL != nil && *c.s3Client.Config.DisableSSL {
			protocol = "http"
		}
		endpoint = strings.TrimPrefix(endpoint, "http://")
		endpoint = strings.TrimPrefix(endpoint, "https://")
		return fmt.Sprintf("%s://%s/%s/%s", protocol, endpoint, c.bucket, key)
	}

	region := aws.StringValue(c.s3Client.Config.Region)
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, region, key)
}

func kindOf(ext string) AssetKind {
	switch strings.ToLower(ext) {
	case ".mp4", ".webm", ".mkv", ".mov", ".avi":
		return KindVideo
	default:
		return KindImage
	}
}

func contentTypeOf(ext string) string {
	if ct := mime.TypeByExtension(strings.ToLower(ext)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
