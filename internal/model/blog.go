package model

import "time"

// Group 结构体表示帖子所属的社区
type Group struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type Post struct {
	ID           int       `json:"id"`
	AuthorID     int       `json:"author_id"`
	GroupID      *int      `json:"group_id,omitempty"`
	Text         string    `json:"text"`
	Image        string    `json:"image,omitempty"`
	PubDate      time.Time `json:"pub_date"`
	Author       *User     `json:"author,omitempty"`
	Group        *Group    `json:"group,omitempty"`
	CommentCount int       `json:"comment_count"`
}

type Comment struct {
	ID       int       `json:"id"`
	PostID   int       `json:"post_id"`
	AuthorID int       `json:"author_id"`
	Text     string    `json:"text"`
	Created  time.Time `json:"created"`
	Author   *User     `json:"author,omitempty"`
}

// Follow 表示 user 关注 author 的有向边
type Follow struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	AuthorID  int       `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}
