package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Like struct {
	UserID string `json:"user"`
}

type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"date"`
}

// Post 保存发帖时作者的名字和头像
type Post struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;index;not null" json:"user"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Name      string    `gorm:"size:128" json:"name"`
	Avatar    string    `gorm:"size:512" json:"avatar"`
	Likes     []Like    `gorm:"serializer:json" json:"likes"`
	Comments  []Comment `gorm:"serializer:json" json:"comments"`
	CreatedAt time.Time `gorm:"index" json:"date"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (p *Post) LikedBy(userID string) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// Like 为 userID 添加点赞，每个用户只能点赞一次
func (p *Post) Like(userID string) error {
	if p.LikedBy(userID) {
		return ErrAlreadyLiked
	}
	p.Likes = append([]Like{{UserID: userID}}, p.Likes...)
	return nil
}

// Unlike 移除 userID 的点赞
func (p *Post) Unlike(userID string) error {
	for i, l := range p.Likes {
		if l.UserID == userID {
			p.Likes = append(p.Likes[:i:i], p.Likes[i+1:]...)
			return nil
		}
	}
	return ErrNotLiked
}

// AddComment 在最前面添加 author 的评论
func (p *Post) AddComment(author *User, text string) Comment {
	c := Comment{
		ID:        uuid.NewString(),
		UserID:    author.ID,
		Text:      text,
		Name:      author.Name,
		Avatar:    author.Avatar,
		CreatedAt: time.Now(),
	}
	p.Comments = append([]Comment{c}, p.Comments...)
	return c
}

// RemoveComment 删除评论，requesterID 必须是评论作者
func (p *Post) RemoveComment(commentID, requesterID string) error {
	for i, c := range p.Comments {
		if c.ID != commentID {
			continue
		}
		if c.UserID != requesterID {
			return ErrNotCommentAuthor
		}
		p.Comments = append(p.Comments[:i:i], p.Comments[i+1:]...)
		return nil
	}
	return ErrCommentNotFound
}
