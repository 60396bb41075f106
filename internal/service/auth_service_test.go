package service

import (
	"context"
	"testing"

	"mindhaven/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn:       func(_ context.Context, _ uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
	}
}

const testSecret = "test-secret"

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()
		svc := NewAuthService(noopUserRepo(), testSecret)
		_, _, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.co"})
		assertAppCode(t, err, models.CodeValidation)
	})

	t.Run("short password", func(t *testing.T) {
		t.Parallel()
		svc := NewAuthService(noopUserRepo(), testSecret)
		_, _, err := svc.Register(context.Background(), RegisterInput{
			Username: "ann", Email: "ann@example.com", Password: "abc",
		})
		assertAppCode(t, err, models.CodeValidation)
	})

	t.Run("email taken", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) {
			return &models.User{ID: 5}, nil
		}
		svc := NewAuthService(repo, testSecret)
		_, _, err := svc.Register(context.Background(), RegisterInput{
			Username: "ann", Email: "ann@example.com", Password: "pw123456",
		})
		assertAppCode(t, err, models.CodeConflict)
	})

	t.Run("username taken", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getByUsernameFn = func(_ context.Context, _ string) (*models.User, error) {
			return &models.User{ID: 5}, nil
		}
		svc := NewAuthService(repo, testSecret)
		_, _, err := svc.Register(context.Background(), RegisterInput{
			Username: "ann", Email: "ann@example.com", Password: "pw123456",
		})
		assertAppCode(t, err, models.CodeConflict)
	})

	t.Run("success hashes password and signs a token", func(t *testing.T) {
		t.Parallel()
		var created *models.User
		repo := noopUserRepo()
		repo.createFn = func(_ context.Context, u *models.User) error {
			u.ID = 3
			created = u
			return nil
		}
		svc := NewAuthService(repo, testSecret)
		user, token, err := svc.Register(context.Background(), RegisterInput{
			Username: "ann", Email: "Ann@Example.com", Password: "pw123456",
		})
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.Equal(t, "ann@example.com", user.Email, "email is normalized to lower case")
		assert.NotEqual(t, "pw123456", created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("pw123456")))

		parsed, err := jwt.Parse(token, func(_ *jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		require.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		assert.Equal(t, "3", claims["sub"])
		assert.Equal(t, tokenIssuer, claims["iss"])
		assert.NotEmpty(t, claims["jti"])
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("pw123456"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &models.User{ID: 8, Username: "ann", Email: "ann@example.com", Password: string(hash)}

	t.Run("unknown email", func(t *testing.T) {
		t.Parallel()
		svc := NewAuthService(noopUserRepo(), testSecret)
		_, _, err := svc.Login(context.Background(), "ghost@example.com", "pw123456")
		assertAppCode(t, err, models.CodeUnauthorized)
		assert.Contains(t, err.Error(), "Invalid credentials")
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) { return stored, nil }
		svc := NewAuthService(repo, testSecret)
		_, _, err := svc.Login(context.Background(), "ann@example.com", "wrong")
		assertAppCode(t, err, models.CodeUnauthorized)
		assert.Contains(t, err.Error(), "Invalid credentials")
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) { return stored, nil }
		svc := NewAuthService(repo, testSecret)
		user, token, err := svc.Login(context.Background(), "ann@example.com", "pw123456")
		require.NoError(t, err)
		assert.Equal(t, uint(8), user.ID)
		assert.NotEmpty(t, token)
	})
}
