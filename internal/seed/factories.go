// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"mindhaven/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db: db,
		// #nosec G404: acceptable for seeding
		r: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. All seeded users share
// the password "password123".
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: string(hashed),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Role:     "user",
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateArticle constructs and persists an article long enough to pass the
// minimum word count, with a realistic created_at spread.
func (f *Factory) CreateArticle(author *models.User, overrides ...func(*models.Article)) (*models.Article, error) {
	article := &models.Article{
		Title:    gofakeit.Sentence(6),
		Content:  f.articleText(),
		AuthorID: author.ID,
	}

	daysBack := f.r.Intn(90)
	hoursBack := f.r.Intn(24)
	article.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(article)
	}

	if err := f.db.Create(article).Error; err != nil {
		return nil, err
	}
	return article, nil
}

// articleText generates prose comfortably above the publication minimum.
func (f *Factory) articleText() string {
	var b strings.Builder
	for i := 0; i < 6; i++ {
		b.WriteString(gofakeit.Paragraph(1, 4, 8, " "))
		b.WriteString("\n\n")
	}
	return strings.TrimSpace(b.String())
}

// CreateLike persists a like from user on article.
func (f *Factory) CreateLike(user *models.User, article *models.Article) error {
	like := &models.ArticleLike{
		ArticleID: article.ID,
		UserID:    user.ID,
	}
	return f.db.Create(like).Error
}

// CreateGroup constructs and persists a group with the admin membership.
func (f *Factory) CreateGroup(admin *models.User, overrides ...func(*models.Group)) (*models.Group, error) {
	group := &models.Group{
		Name:        gofakeit.BuzzWord() + " " + gofakeit.NounCollectiveThing() + fmt.Sprintf(" %d", gofakeit.Number(1, 9999)),
		Description: gofakeit.Sentence(12),
	}

	for _, override := range overrides {
		override(group)
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		return tx.Create(&models.GroupMembership{
			GroupID: group.ID,
			UserID:  admin.ID,
			IsAdmin: true,
			State:   models.MembershipStateActive,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

// CreateMembership persists a membership row in the given state.
func (f *Factory) CreateMembership(group *models.Group, user *models.User, state models.MembershipState, blocked bool) error {
	return f.db.Create(&models.GroupMembership{
		GroupID: group.ID,
		UserID:  user.ID,
		State:   state,
		Blocked: blocked,
	}).Error
}

// CreateMessage persists a chat message in the group from the sender.
func (f *Factory) CreateMessage(group *models.Group, sender *models.User, overrides ...func(*models.Message)) (*models.Message, error) {
	message := &models.Message{
		GroupID:  group.ID,
		SenderID: sender.ID,
		Content:  gofakeit.Sentence(10),
	}

	for _, override := range overrides {
		override(message)
	}

	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}
