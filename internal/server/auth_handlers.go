package server

import (
	"time"

	"mindhaven/internal/cache"
	"mindhaven/internal/models"
	"mindhaven/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Register handles POST /api/auth/register.
func (s *Server) Register(c *fiber.Ctx) error {
	var req service.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, token, err := s.authService.Register(c.Context(), req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user.Public(),
	})
}

// Login handles POST /api/auth/login.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, token, err := s.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user.Public(),
	})
}

// Logout handles POST /api/auth/logout. The presented token's jti is
// blacklisted until the token would have expired anyway.
func (s *Server) Logout(c *fiber.Ctx) error {
	if s.redis != nil {
		if jti, ttl, ok := s.tokenRevocationInfo(c); ok {
			s.redis.Set(c.Context(), cache.BlacklistKey(jti), "revoked", ttl)
		}
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// tokenRevocationInfo re-parses the already-validated bearer token and
// returns its jti with the remaining lifetime.
func (s *Server) tokenRevocationInfo(c *fiber.Ctx) (string, time.Duration, bool) {
	authHeader := c.Get("Authorization")
	if len(authHeader) <= len("Bearer ") {
		return "", 0, false
	}
	tokenString := authHeader[len("Bearer "):]

	token, err := jwt.Parse(tokenString, func(_ *jwt.Token) (any, error) {
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", 0, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", 0, false
	}
	jti, ok := claims["jti"].(string)
	if !ok || jti == "" {
		return "", 0, false
	}

	ttl := cache.TokenBlacklistTTL
	if exp, ok := claims["exp"].(float64); ok {
		if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
			ttl = remaining
		}
	}
	return jti, ttl, true
}
