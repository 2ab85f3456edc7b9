package usecase

import (
	"context"
	"errors"

	"vidtube/pkg/s3"

	"gorm.io/gorm"
)

// MediaGateway is the slice of the media store client the use cases
// need. pkg/s3 satisfies it; tests substitute fakes.
type MediaGateway interface {
	UploadLocalFile(ctx context.Context, localPath, keyPrefix string) (s3.AssetReference, error)
	DeleteFile(ctx context.Context, ref s3.AssetReference) (bool, error)
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return limit, (page - 1) * limit
}
