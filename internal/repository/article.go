package repository

import (
	"context"
	"errors"

	"mindhaven/internal/models"

	"gorm.io/gorm"
)

// ArticleRepository defines the interface for article data operations.
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id uint) (*models.Article, error)
	List(ctx context.Context) ([]*models.Article, error)
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id uint) error
	HasLike(ctx context.Context, articleID, userID uint) (bool, error)
	AddLike(ctx context.Context, articleID, userID uint) error
	RemoveLike(ctx context.Context, articleID, userID uint) error
	LikeUserIDs(ctx context.Context, articleID uint) ([]uint, error)
}

// articleRepository implements ArticleRepository.
type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new article repository.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	if err := r.db.WithContext(ctx).Create(article).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *articleRepository) GetByID(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	if err := r.db.WithContext(ctx).Preload("Author").First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Article", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &article, nil
}

func (r *articleRepository) List(ctx context.Context) ([]*models.Article, error) {
	var articles []*models.Article
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Find(&articles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return articles, nil
}

func (r *articleRepository) Update(ctx context.Context, article *models.Article) error {
	if err := r.db.WithContext(ctx).Save(article).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the article and its likes. Likes have no life of their own
// outside the article.
func (r *articleRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&models.ArticleLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Article{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *articleRepository) HasLike(ctx context.Context, articleID, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ArticleLike{}).
		Where("article_id = ? AND user_id = ?", articleID, userID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *articleRepository) AddLike(ctx context.Context, articleID, userID uint) error {
	like := models.ArticleLike{ArticleID: articleID, UserID: userID}
	if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *articleRepository) RemoveLike(ctx context.Context, articleID, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("article_id = ? AND user_id = ?", articleID, userID).
		Delete(&models.ArticleLike{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// LikeUserIDs returns the article's likes as user IDs in insertion order.
func (r *articleRepository) LikeUserIDs(ctx context.Context, articleID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.ArticleLike{}).
		Where("article_id = ?", articleID).
		Order("id ASC").
		Pluck("user_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}
