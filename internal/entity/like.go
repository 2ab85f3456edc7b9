package entity

import "time"

// LikeTarget names the single entity a like points at. Exactly one
// field is non-empty.
type LikeTarget struct {
	VideoID   string
	CommentID string
	TweetID   string
}

type Like struct {
	ID        string    `json:"id"`
	LikedByID string    `json:"liked_by_id"`
	VideoID   string    `json:"video_id,omitempty"`
	CommentID string    `json:"comment_id,omitempty"`
	TweetID   string    `json:"tweet_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
