package entity

import "time"

// Asset points at a binary object in the external media store. Key and
// Kind are what the store needs to delete it later.
type Asset struct {
	URL  string `json:"url"`
	Key  string `json:"key,omitempty"`
	Kind string `json:"kind,omitempty"`
}

type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Password     string    `json:"-"`
	Avatar       Asset     `json:"avatar"`
	CoverImage   Asset     `json:"cover_image"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Owner is the public slice of a user attached to videos, comments and
// watch history entries.
type Owner struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Avatar   Asset  `json:"avatar"`
}

// ChannelProfile is a user profile viewed as a channel, with
// subscription counts relative to the viewer.
type ChannelProfile struct {
	User
	SubscribersCount  int64 `json:"subscribers_count"`
	SubscribedToCount int64 `json:"subscribed_to_count"`
	IsSubscribed      bool  `json:"is_subscribed"`
}
