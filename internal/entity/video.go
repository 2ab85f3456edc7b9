package entity

import "time"

type Video struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoFile   Asset     `json:"video_file"`
	Thumbnail   Asset     `json:"thumbnail"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"is_published"`
	Owner       *Owner    `json:"owner,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type WatchHistoryEntry struct {
	Video     Video     `json:"video"`
	WatchedAt time.Time `json:"watched_at"`
}
