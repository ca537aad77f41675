package models

import "time"

// SavedPost represents a bookmarked post. A user holds at most one row per post.
type SavedPost struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"authorId" gorm:"not null;index;uniqueIndex:idx_user_post_save"`
	PostID    string    `json:"postId" gorm:"type:varchar(24);not null;index;uniqueIndex:idx_user_post_save"`
	CreatedAt time.Time `json:"createdAt"`
}

// SavePostRequest is the toggle body.
type SavePostRequest struct {
	PostID string `json:"postId" validate:"required"`
}

// SavedPostWithPost is a saved row with its post populated. Post is nil when
// the referenced post has been deleted.
type SavedPostWithPost struct {
	SavedPost
	Post *Post `json:"post"`
}
