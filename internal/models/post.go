package model

import (
	"database/sql"
	"time"
)

type Post struct {
	ID            string         `json:"id"`
	UserID        string         `json:"userId"`
	Author        *UserAuthor    `json:"author,omitempty"`
	Content       string         `json:"content"`
	ImageURLs     []string       `json:"imageUrls,omitempty"`
	Likes         int            `json:"likes"`
	CommentsCount int            `json:"commentsCount"`
	UserLiked     sql.NullBool   `json:"userLiked,omitempty"`
	DeletedBy     sql.NullString `json:"deletedBy,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     sql.NullTime   `json:"deletedAt,omitempty"`
}

type Comment struct {
	ID        string       `json:"id"`
	PostID    string       `json:"postId"`
	UserID    string       `json:"userId"`
	Author    *UserAuthor  `json:"author,omitempty"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	DeletedAt sql.NullTime `json:"deletedAt,omitempty"`
}
