package seed

import (
	"fmt"
	"log"

	"devhub/internal/models"

	"gorm.io/gorm"
)

// Seeder orchestrates demo data generation.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts)}
}

// ClearAll removes every seeded row, children first so foreign keys hold.
func (s *Seeder) ClearAll() error {
	tables := []interface{}{
		&models.Like{}, &models.Comment{}, &models.Post{},
		&models.Experience{}, &models.Education{}, &models.Profile{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", table, err)
		}
	}
	log.Println("Cleared existing data")
	return nil
}

// SeedDevelopers creates n users; most of them also get a developer profile
// so listings have variety between complete and bare accounts.
func (s *Seeder) SeedDevelopers(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("creating user %d: %w", i, err)
		}
		users = append(users, user)

		if i%5 != 4 {
			if _, err := s.factory.CreateProfile(user); err != nil {
				return nil, fmt.Errorf("creating profile for user %d: %w", user.ID, err)
			}
		}
	}
	log.Printf("Seeded %d users", len(users))
	return users, nil
}

// SeedEngagement creates numPosts posts across the users, then sprinkles
// likes and comments over them.
func (s *Seeder) SeedEngagement(users []*models.User, numPosts int) (int, error) {
	if len(users) == 0 {
		return 0, fmt.Errorf("no users to seed posts for")
	}

	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := users[s.factory.rng.Intn(len(users))]
		posts = append(posts, s.factory.BuildPost(author))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return 0, fmt.Errorf("creating posts: %w", err)
	}

	engagements := 0
	for _, post := range posts {
		for i := 0; i < s.factory.rng.Intn(4); i++ {
			user := users[s.factory.rng.Intn(len(users))]
			if err := s.factory.CreateLike(user, post); err != nil {
				return engagements, fmt.Errorf("liking post %d: %w", post.ID, err)
			}
			engagements++
		}
		for i := 0; i < s.factory.rng.Intn(3); i++ {
			user := users[s.factory.rng.Intn(len(users))]
			if err := s.factory.CreateComment(user, post); err != nil {
				return engagements, fmt.Errorf("commenting post %d: %w", post.ID, err)
			}
			engagements++
		}
	}

	log.Printf("Seeded %d posts with %d engagements", len(posts), engagements)
	return engagements, nil
}
