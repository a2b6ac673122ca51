package models

import (
	"time"

	"gorm.io/gorm"

	"autogallery/pkg/utils"
)

// ArticleContext is the content context reported to preparers for articles.
const ArticleContext = "article"

type Article struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string     `gorm:"not null" json:"title"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Path        string     `gorm:"uniqueIndex;not null" json:"path"`
	Description string     `json:"description"`
	Content     string     `gorm:"type:text" json:"content"`
	Published   bool       `gorm:"default:false" json:"published"`
	PublishAt   *time.Time `gorm:"index" json:"publish_at,omitempty"`
}

// BeforeSave keeps the stored path in canonical form.
func (a *Article) BeforeSave(_ *gorm.DB) error {
	a.Path = utils.NormalizePath(a.Path)
	return nil
}
