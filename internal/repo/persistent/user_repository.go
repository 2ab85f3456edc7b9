package persistent

import (
	"time"

	"vidtube/internal/entity"
	"vidtube/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByUsernameOrEmail(username, email string) (*entity.User, error)
	UpdateAccount(id string, fields map[string]interface{}) error
	UpdatePassword(id, passwordHash string) error
	UpdateAvatar(id string, asset entity.Asset) error
	UpdateCover(id string, asset entity.Asset) error
	SetRefreshToken(id, token string) error
	ClearRefreshToken(id string) error
	RotateRefreshToken(id, current, next string) (bool, error)
	AddWatchEntry(userID, videoID string) error
	WatchHistory(userID string, limit, offset int) ([]*entity.WatchHistoryEntry, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *entity.User) error {
	userModel := toUserModel(user)
	if userModel.ID == "" {
		userModel.ID = uuid.New().String()
	}
	if err := r.db.Create(userModel).Error; err != nil {
		return err
	}
	*user = *toUserEntity(userModel)
	return nil
}

func (r *userRepository) GetByID(id string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, err
	}
	return toUserEntity(&userModel), nil
}

func (r *userRepository) GetByUsername(username string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("username = ?", username).First(&userModel).Error; err != nil {
		return nil, err
	}
	return toUserEntity(&userModel), nil
}

func (r *userRepository) GetByEmail(email string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("email = ?", email).First(&userModel).Error; err != nil {
		return nil, err
	}
	return toUserEntity(&userModel), nil
}

func (r *userRepository) GetByUsernameOrEmail(username, email string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("username = ? OR email = ?", username, email).First(&userModel).Error; err != nil {
		return nil, err
	}
	return toUserEntity(&userModel), nil
}

func (r *userRepository) UpdateAccount(id string, fields map[string]interface{}) error {
	return r.db.Model(&model.UserModel{}).Where("id = ?", id).Updates(fields).Error
}

func (r *userRepository) UpdatePassword(id, passwordHash string) error {
	return r.db.Model(&model.UserModel{}).Where("id = ?", id).Update("password", passwordHash).Error
}

func (r *userRepository) UpdateAvatar(id string, asset entity.Asset) error {
	return r.db.Model(&model.UserModel{}).Where("id = ?", id).Updates(map[string]interface{}{
		"avatar_url":  asset.URL,
		"avatar_key":  asset.Key,
		"avatar_kind": asset.Kind,
	}).Error
}

func (r *userRepository) UpdateCover(id string, asset entity.Asset) error {
	return r.db.Model(&model.UserModel{}).Where("id = ?", id).Updates(map[string]interface{}{
		"cover_url":  asset.URL,
		"cover_key":  asset.Key,
		"cover_kind": asset.Kind,
	}).Error
}

func (r *userRepository) SetRefreshToken(id, token string) error {
	return r.db.Model(&model.UserModel{}).Where("id = ?", id).Update("refresh_token", token).Error
}

func (r *userRepository) ClearRefreshToken(id string) error {
	return r.db.Model(&model.UserModel{}).Where("id = ?", id).Update("refresh_token", nil).Error
}

// RotateRefreshToken swaps the stored refresh token only if it still
// equals current. The conditional UPDATE is the atomicity point: of two
// concurrent rotations with the same stale token exactly one matches.
func (r *userRepository) RotateRefreshToken(id, current, next string) (bool, error) {
	res := r.db.Model(&model.UserModel{}).
		Where("id = ? AND refresh_token = ?", id, current).
		Update("refresh_token", next)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *userRepository) AddWatchEntry(userID, videoID string) error {
	// Re-watching bumps the existing entry instead of duplicating it.
	var existing model.WatchHistoryModel
	err := r.db.Where("user_id = ? AND video_id = ?", userID, videoID).First(&existing).Error
	if err == nil {
		return r.db.Model(&existing).Update("watched_at", time.Now()).Error
	}

	entryModel := &model.WatchHistoryModel{
		UserID:  userID,
		VideoID: videoID,
	}
	return r.db.Create(entryModel).Error
}

func (r *userRepository) WatchHistory(userID string, limit, offset int) ([]*entity.WatchHistoryEntry, int64, error) {
	q := r.db.Model(&model.WatchHistoryModel{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entryModels []model.WatchHistoryModel
	err := q.Order("watched_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entryModels).Error
	if err != nil {
		return nil, 0, err
	}
	if len(entryModels) == 0 {
		return []*entity.WatchHistoryEntry{}, total, nil
	}

	videoIDs := make([]string, 0, len(entryModels))
	for _, e := range entryModels {
		videoIDs = append(videoIDs, e.VideoID)
	}

	var videoModels []model.VideoModel
	if err := r.db.Where("id IN ?", videoIDs).Find(&videoModels).Error; err != nil {
		return nil, 0, err
	}
	videosByID := make(map[string]*model.VideoModel, len(videoModels))
	ownerIDs := make([]string, 0, len(videoModels))
	for i := range videoModels {
		videosByID[videoModels[i].ID] = &videoModels[i]
		ownerIDs = append(ownerIDs, videoModels[i].OwnerID)
	}

	var ownerModels []model.UserModel
	if err := r.db.Where("id IN ?", ownerIDs).Find(&ownerModels).Error; err != nil {
		return nil, 0, err
	}
	ownersByID := make(map[string]*model.UserModel, len(ownerModels))
	for i := range ownerModels {
		ownersByID[ownerModels[i].ID] = &ownerModels[i]
	}

	entries := make([]*entity.WatchHistoryEntry, 0, len(entryModels))
	for _, e := range entryModels {
		videoModel, ok := videosByID[e.VideoID]
		if !ok {
			// Video removed since it was watched
			continue
		}
		video := toVideoEntity(videoModel)
		if owner, ok := ownersByID[videoModel.OwnerID]; ok {
			video.Owner = toOwnerEntity(owner)
		}
		entries = append(entries, &entity.WatchHistoryEntry{
			Video:     *video,
			WatchedAt: e.WatchedAt,
		})
	}
	return entries, total, nil
}
