package server

import (
	"mindhaven/internal/models"
	"mindhaven/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetArticles handles GET /api/articles. Newest first.
func (s *Server) GetArticles(c *fiber.Ctx) error {
	articles, err := s.articleService.List(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	if articles == nil {
		articles = []*models.Article{}
	}
	return c.JSON(articles)
}

// GetArticle handles GET /api/articles/:id.
func (s *Server) GetArticle(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	article, err := s.articleService.GetByID(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(article)
}

// CreateArticle handles POST /api/articles.
func (s *Server) CreateArticle(c *fiber.Ctx) error {
	var req service.ArticleInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	userID := c.Locals("userID").(uint)
	article, err := s.articleService.Create(c.Context(), userID, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(article)
}

// UpdateArticle handles PUT /api/articles/:id. Author only.
func (s *Server) UpdateArticle(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.ArticleInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	userID := c.Locals("userID").(uint)
	article, err := s.articleService.Edit(c.Context(), id, userID, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(article)
}

// DeleteArticle handles DELETE /api/articles/:id. Author only.
func (s *Server) DeleteArticle(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	userID := c.Locals("userID").(uint)
	if err := s.articleService.Remove(c.Context(), id, userID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Article deleted"})
}

// ToggleArticleLike handles POST /api/articles/:id/like. A second call from
// the same user removes the like.
func (s *Server) ToggleArticleLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	userID := c.Locals("userID").(uint)
	likes, err := s.articleService.ToggleLike(c.Context(), id, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"likes": likes})
}
