package persistent

import (
	"vidtube/internal/entity"
	"vidtube/internal/model"
)

func toUserEntity(m *model.UserModel) *entity.User {
	u := &entity.User{
		ID:        m.ID,
		FullName:  m.FullName,
		Username:  m.Username,
		Email:     m.Email,
		Password:  m.Password,
		Avatar:    entity.Asset{URL: m.AvatarURL, Key: m.AvatarKey, Kind: m.AvatarKind},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.CoverURL != "" {
		u.CoverImage = entity.Asset{URL: m.CoverURL, Key: m.CoverKey, Kind: m.CoverKind}
	}
	if m.RefreshToken != nil {
		u.RefreshToken = *m.RefreshToken
	}
	return u
}

func toUserModel(u *entity.User) *model.UserModel {
	m := &model.UserModel{
		ID:         u.ID,
		FullName:   u.FullName,
		Username:   u.Username,
		Email:      u.Email,
		Password:   u.Password,
		AvatarURL:  u.Avatar.URL,
		AvatarKey:  u.Avatar.Key,
		AvatarKind: u.Avatar.Kind,
		CoverURL:   u.CoverImage.URL,
		CoverKey:   u.CoverImage.Key,
		CoverKind:  u.CoverImage.Kind,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
	if u.RefreshToken != "" {
		token := u.RefreshToken
		m.RefreshToken = &token
	}
	return m
}

func toOwnerEntity(m *model.UserModel) *entity.Owner {
	return &entity.Owner{
		ID:       m.ID,
		FullName: m.FullName,
		Username: m.Username,
		Avatar:   entity.Asset{URL: m.AvatarURL, Key: m.AvatarKey, Kind: m.AvatarKind},
	}
}

func toVideoEntity(m *model.VideoModel) *entity.Video {
	return &entity.Video{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Title:       m.Title,
		Description: m.Description,
		VideoFile:   entity.Asset{URL: m.VideoURL, Key: m.VideoKey, Kind: m.VideoKind},
		Thumbnail:   entity.Asset{URL: m.ThumbnailURL, Key: m.ThumbnailKey, Kind: m.ThumbnailKind},
		Duration:    m.Duration,
		Views:       m.Views,
		IsPublished: m.IsPublished,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toVideoModel(v *entity.Video) *model.VideoModel {
	return &model.VideoModel{
		ID:            v.ID,
		OwnerID:       v.OwnerID,
		Title:         v.Title,
		Description:   v.Description,
		VideoURL:      v.VideoFile.URL,
		VideoKey:      v.VideoFile.Key,
		VideoKind:     v.VideoFile.Kind,
		ThumbnailURL:  v.Thumbnail.URL,
		ThumbnailKey:  v.Thumbnail.Key,
		ThumbnailKind: v.Thumbnail.Kind,
		Duration:      v.Duration,
		Views:         v.Views,
		IsPublished:   v.IsPublished,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func toTweetEntity(m *model.TweetModel) *entity.Tweet {
	return &entity.Tweet{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toCommentEntity(m *model.CommentModel) *entity.Comment {
	return &entity.Comment{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		VideoID:   m.VideoID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toLikeEntity(m *model.LikeModel) *entity.Like {
	l := &entity.Like{
		ID:        m.ID,
		LikedByID: m.LikedByID,
		CreatedAt: m.CreatedAt,
	}
	if m.VideoID != nil {
		l.VideoID = *m.VideoID
	}
	if m.CommentID != nil {
		l.CommentID = *m.CommentID
	}
	if m.TweetID != nil {
		l.TweetID = *m.TweetID
	}
	return l
}

func toSubscriptionEntity(m *model.SubscriptionModel) *entity.Subscription {
	return &entity.Subscription{
		ID:           m.ID,
		SubscriberID: m.SubscriberID,
		ChannelID:    m.ChannelID,
		CreatedAt:    m.CreatedAt,
	}
}
