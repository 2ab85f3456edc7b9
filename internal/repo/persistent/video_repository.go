package persistent

import (
	"vidtube/internal/entity"
	"vidtube/internal/model"

	"gorm.io/gorm"
)

// VideoListParams describe the public listing query. SortBy is matched
// against a whitelist; anything else falls back to created_at.
type VideoListParams struct {
	Limit    int
	Offset   int
	Query    string
	SortBy   string
	SortType string
	OwnerID  string
}

type VideoRepository interface {
	Create(video *entity.Video) error
	GetByID(id string) (*entity.Video, error)
	GetByIDWithOwner(id string) (*entity.Video, error)
	List(params VideoListParams) ([]*entity.Video, int64, error)
	UpdateFields(id string, fields map[string]interface{}) error
	Delete(id string) error
	IncrementViews(id string) error
	Exists(id string) (bool, error)
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(video *entity.Video) error {
	videoModel := toVideoModel(video)
	if err := r.db.Create(videoModel).Error; err != nil {
		return err
	}
	*video = *toVideoEntity(videoModel)
	return nil
}

func (r *videoRepository) GetByID(id string) (*entity.Video, error) {
	var videoModel model.VideoModel
	if err := r.db.Where("id = ?", id).First(&videoModel).Error; err != nil {
		return nil, err
	}
	return toVideoEntity(&videoModel), nil
}

func (r *videoRepository) GetByIDWithOwner(id string) (*entity.Video, error) {
	var videoModel model.VideoModel
	if err := r.db.Preload("Owner").Where("id = ?", id).First(&videoModel).Error; err != nil {
		return nil, err
	}
	video := toVideoEntity(&videoModel)
	if videoModel.Owner.ID != "" {
		video.Owner = toOwnerEntity(&videoModel.Owner)
	}
	return video, nil
}

var videoSortColumns = map[string]string{
	"created_at": "created_at",
	"views":      "views",
	"duration":   "duration",
	"title":      "title",
}

func (r *videoRepository) List(params VideoListParams) ([]*entity.Video, int64, error) {
	q := r.db.Model(&model.VideoModel{}).Where("is_published = ?", true)

	if params.Query != "" {
		like := "%" + params.Query + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}
	if params.OwnerID != "" {
		q = q.Where("owner_id = ?", params.OwnerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := videoSortColumns[params.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if params.SortType == "asc" {
		direction = "ASC"
	}

	var videoModels []model.VideoModel
	err := q.Order(column + " " + direction).
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&videoModels).Error
	if err != nil {
		return nil, 0, err
	}

	videos := make([]*entity.Video, len(videoModels))
	for i := range videoModels {
		videos[i] = toVideoEntity(&videoModels[i])
	}
	return videos, total, nil
}

func (r *videoRepository) UpdateFields(id string, fields map[string]interface{}) error {
	return r.db.Model(&model.VideoModel{}).Where("id = ?", id).Updates(fields).Error
}

func (r *videoRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.VideoModel{}).Error
}

func (r *videoRepository) IncrementViews(id string) error {
	return r.db.Model(&model.VideoModel{}).Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}

func (r *videoRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&model.VideoModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
