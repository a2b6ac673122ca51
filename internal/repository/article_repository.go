package repository

import (
	"errors"
	"fmt"
	"time"

	"autogallery/internal/models"
	"autogallery/pkg/utils"

	"gorm.io/gorm"
)

// ErrArticleNotFound is returned when no published article matches a lookup.
var ErrArticleNotFound = errors.New("article not found")

type ArticleRepository interface {
	Create(article *models.Article) error
	Update(article *models.Article) error
	GetByID(id uint) (*models.Article, error)
	GetByPath(path string) (*models.Article, error)
	GetAll() ([]models.Article, error)
	ExistsByPath(path string) (bool, error)
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(article *models.Article) error {
	return r.db.Create(article).Error
}

func (r *articleRepository) Update(article *models.Article) error {
	return r.db.Save(article).Error
}

func (r *articleRepository) GetByID(id uint) (*models.Article, error) {
	var article models.Article
	if err := r.db.First(&article, id).Error; err != nil {
		return nil, translate(err)
	}
	return &article, nil
}

// GetByPath returns the published article stored under the normalized path.
func (r *articleRepository) GetByPath(path string) (*models.Article, error) {
	var article models.Article
	now := time.Now().UTC()

	if err := r.db.Where("path = ? AND published = ?", utils.NormalizePath(path), true).
		Where("publish_at IS NULL OR publish_at <= ?", now).
		First(&article).Error; err != nil {
		return nil, translate(err)
	}
	return &article, nil
}

func (r *articleRepository) GetAll() ([]models.Article, error) {
	var articles []models.Article
	if err := r.db.Order("articles.created_at DESC").Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) ExistsByPath(path string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Article{}).
		Where("path = ?", utils.NormalizePath(path)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrArticleNotFound
	}
	return fmt.Errorf("article query failed: %w", err)
}
