package seed

import (
	"fmt"
	"log"

	"mindhaven/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder.
type Options struct {
	NumUsers    int
	NumArticles int
	NumGroups   int
	ShouldClean bool
}

// Seeder populates the database with demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll wipes seedable tables in dependency order.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	tables := []any{
		&models.Message{},
		&models.GroupMembership{},
		&models.Group{},
		&models.ArticleLike{},
		&models.Article{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			return fmt.Errorf("clear %T: %w", table, err)
		}
	}
	return nil
}

// Run populates users, articles with likes, and groups with the full
// membership spread: members, pending requesters, and blocked members.
func (s *Seeder) Run(opts Options) error {
	log.Printf("Seeding %d users, %d articles, %d groups...",
		opts.NumUsers, opts.NumArticles, opts.NumGroups)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("created %d users", len(users))

	if len(users) == 0 {
		return nil
	}

	for i := 0; i < opts.NumArticles; i++ {
		author := users[s.factory.r.Intn(len(users))]
		article, err := s.factory.CreateArticle(author)
		if err != nil {
			return fmt.Errorf("create article: %w", err)
		}

		// A random subset of readers likes each article.
		for _, user := range users {
			if s.factory.r.Intn(4) == 0 {
				if err := s.factory.CreateLike(user, article); err != nil {
					return fmt.Errorf("create like: %w", err)
				}
			}
		}
	}
	log.Printf("created %d articles", opts.NumArticles)

	for i := 0; i < opts.NumGroups; i++ {
		admin := users[s.factory.r.Intn(len(users))]
		group, err := s.factory.CreateGroup(admin)
		if err != nil {
			return fmt.Errorf("create group: %w", err)
		}

		members := []*models.User{admin}
		for _, user := range users {
			if user.ID == admin.ID {
				continue
			}
			switch s.factory.r.Intn(6) {
			case 0: // active member
				if err := s.factory.CreateMembership(group, user, models.MembershipStateActive, false); err != nil {
					return fmt.Errorf("create membership: %w", err)
				}
				members = append(members, user)
			case 1: // pending join request
				if err := s.factory.CreateMembership(group, user, models.MembershipStatePending, false); err != nil {
					return fmt.Errorf("create membership: %w", err)
				}
			case 2: // blocked member
				if err := s.factory.CreateMembership(group, user, models.MembershipStateActive, true); err != nil {
					return fmt.Errorf("create membership: %w", err)
				}
			}
		}

		// Backfill some chat history from non-blocked members.
		msgCount := 5 + s.factory.r.Intn(20)
		for j := 0; j < msgCount; j++ {
			sender := members[s.factory.r.Intn(len(members))]
			if _, err := s.factory.CreateMessage(group, sender); err != nil {
				return fmt.Errorf("create message: %w", err)
			}
		}
	}
	log.Printf("created %d groups", opts.NumGroups)

	return nil
}
