package service

import (
	"context"

	"mindhaven/internal/models"
	"mindhaven/internal/repository"
	"mindhaven/internal/validation"
)

// ArticleService handles article publishing, editing, and likes.
type ArticleService struct {
	articleRepo repository.ArticleRepository
}

// NewArticleService returns a new ArticleService.
func NewArticleService(articleRepo repository.ArticleRepository) *ArticleService {
	return &ArticleService{articleRepo: articleRepo}
}

// ArticleInput carries the writable article fields.
type ArticleInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Create publishes a new article after content validation.
func (s *ArticleService) Create(ctx context.Context, authorID uint, in ArticleInput) (*models.Article, error) {
	if err := validation.ValidateArticle(in.Title, in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	article := &models.Article{
		Title:    in.Title,
		Content:  in.Content,
		AuthorID: authorID,
	}
	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, article.ID)
}

// GetByID returns the article with its author and likes resolved.
func (s *ArticleService) GetByID(ctx context.Context, id uint) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachLikes(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// List returns all articles, newest first, with authors and likes resolved.
func (s *ArticleService) List(ctx context.Context) ([]*models.Article, error) {
	articles, err := s.articleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, article := range articles {
		if err := s.attachLikes(ctx, article); err != nil {
			return nil, err
		}
	}
	return articles, nil
}

// Edit updates an article's title and content. Only the author may edit, and
// the replacement content passes the same validation as a new article.
func (s *ArticleService) Edit(ctx context.Context, articleID, requesterID uint, in ArticleInput) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != requesterID {
		return nil, models.NewForbiddenError("Only the author can edit this article")
	}
	if err := validation.ValidateArticle(in.Title, in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	article.Title = in.Title
	article.Content = in.Content
	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, articleID)
}

// Remove deletes an article and its likes. Only the author may delete.
func (s *ArticleService) Remove(ctx context.Context, articleID, requesterID uint) error {
	article, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return err
	}
	if article.AuthorID != requesterID {
		return models.NewForbiddenError("Only the author can delete this article")
	}
	return s.articleRepo.Delete(ctx, articleID)
}

// ToggleLike flips the user's like on the article and returns the resulting
// liker IDs. Liking twice unlikes; authors may like their own articles.
func (s *ArticleService) ToggleLike(ctx context.Context, articleID, userID uint) ([]uint, error) {
	if _, err := s.articleRepo.GetByID(ctx, articleID); err != nil {
		return nil, err
	}

	liked, err := s.articleRepo.HasLike(ctx, articleID, userID)
	if err != nil {
		return nil, err
	}
	if liked {
		err = s.articleRepo.RemoveLike(ctx, articleID, userID)
	} else {
		err = s.articleRepo.AddLike(ctx, articleID, userID)
	}
	if err != nil {
		return nil, err
	}

	return s.articleRepo.LikeUserIDs(ctx, articleID)
}

func (s *ArticleService) attachLikes(ctx context.Context, article *models.Article) error {
	likes, err := s.articleRepo.LikeUserIDs(ctx, article.ID)
	if err != nil {
		return err
	}
	if likes == nil {
		likes = []uint{}
	}
	article.Likes = likes
	return nil
}
