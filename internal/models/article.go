package models

import "time"

// Article is a long-form post published by a user.
type Article struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:300;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Likes     []uint    `gorm:"-" json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Article) TableName() string {
	return "articles"
}

// ArticleLike records one user's like on one article.
// The (article, user) pair is unique, so an article's likes never
// contain the same user twice.
type ArticleLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID uint      `gorm:"not null;uniqueIndex:idx_article_user" json:"article_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_article_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (ArticleLike) TableName() string {
	return "article_likes"
}
