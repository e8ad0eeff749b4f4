// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"devhub/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how the factory generates and persists entities.
type Options struct {
	// DryRun builds entities with synthetic IDs without touching the DB.
	DryRun bool
	// SkipBcrypt stores the demo password in plain text for fast seeding.
	SkipBcrypt bool
	// MaxDays bounds how far in the past generated timestamps spread.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

var statuses = []string{
	"Developer", "Junior Developer", "Senior Developer",
	"Manager", "Student or Learning", "Instructor", "Intern",
}

var skillPool = []string{
	"Go", "JavaScript", "TypeScript", "Python", "Rust",
	"PostgreSQL", "Redis", "Docker", "Kubernetes", "React", "HTML", "CSS",
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:     db,
		opts:   opts,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		nextID: 1000,
	}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Name:   gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:  gofakeit.Email(),
		Avatar: fmt.Sprintf("https://gravatar.com/avatar/%s?d=identicon&s=200", gofakeit.UUID()),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s <%s>", user.Name, user.Email)
		return user, nil
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildProfile constructs a developer profile for the user without
// persisting it.
func (f *Factory) BuildProfile(user *models.User) *models.Profile {
	skills := make([]string, 0, 4)
	for _, idx := range f.rng.Perm(len(skillPool))[:2+f.rng.Intn(3)] {
		skills = append(skills, skillPool[idx])
	}

	profile := &models.Profile{
		UserID:         user.ID,
		Status:         statuses[f.rng.Intn(len(statuses))],
		Skills:         skills,
		Company:        gofakeit.Company(),
		Website:        gofakeit.URL(),
		Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		Bio:            gofakeit.Sentence(12),
		GithubUsername: gofakeit.Username(),
		Social: models.SocialLinks{
			Twitter:  fmt.Sprintf("https://twitter.com/%s", gofakeit.Username()),
			Linkedin: fmt.Sprintf("https://linkedin.com/in/%s", gofakeit.Username()),
		},
	}

	for i := 0; i < 1+f.rng.Intn(3); i++ {
		from := f.pastDate(365 * (i + 2))
		exp := models.Experience{
			Title:       gofakeit.JobTitle(),
			Company:     gofakeit.Company(),
			Location:    gofakeit.City(),
			From:        from,
			Current:     i == 0,
			Description: gofakeit.Sentence(10),
		}
		if !exp.Current {
			to := from.AddDate(1, f.rng.Intn(12), 0)
			exp.To = &to
		}
		profile.Experience = append(profile.Experience, exp)
	}

	from := f.pastDate(365 * 8)
	to := from.AddDate(4, 0, 0)
	profile.Education = append(profile.Education, models.Education{
		School:       fmt.Sprintf("%s University", gofakeit.City()),
		Degree:       "BSc",
		FieldOfStudy: "Computer Science",
		From:         from,
		To:           &to,
		Description:  gofakeit.Sentence(8),
	})

	return profile
}

// CreateProfile persists a generated profile for the user.
func (f *Factory) CreateProfile(user *models.User) (*models.Profile, error) {
	profile := f.BuildProfile(user)
	if f.opts.DryRun {
		f.nextID++
		profile.ID = f.nextID
		log.Printf("[dry-run] CreateProfile: user=%d status=%s", user.ID, profile.Status)
		return profile, nil
	}
	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// BuildPost constructs a post for the user without persisting it. The
// created_at timestamp spreads over the configured MaxDays window so feeds
// look lived-in.
func (f *Factory) BuildPost(user *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Text:      gofakeit.Paragraph(1, 2, 8, " "),
		Name:      user.Name,
		Avatar:    user.Avatar,
		UserID:    user.ID,
		CreatedAt: f.pastTimestamp(),
	}
	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call when possible.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if f.opts.DryRun {
		for _, p := range posts {
			f.nextID++
			p.ID = f.nextID
		}
		log.Printf("[dry-run] CreatePostsBatch: %d posts (no DB write)", len(posts))
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateComment persists a comment by the user on the post.
func (f *Factory) CreateComment(user *models.User, post *models.Post) error {
	comment := &models.Comment{
		Text:      gofakeit.Sentence(8),
		Name:      user.Name,
		Avatar:    user.Avatar,
		UserID:    user.ID,
		PostID:    post.ID,
		CreatedAt: f.pastTimestamp(),
	}
	if f.opts.DryRun {
		log.Printf("[dry-run] CreateComment: user=%d post=%d", user.ID, post.ID)
		return nil
	}
	return f.db.Create(comment).Error
}

// CreateLike persists a like by the user on the post. Duplicate likes are
// skipped silently so random engagement stays idempotent.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	if f.opts.DryRun {
		log.Printf("[dry-run] CreateLike: user=%d post=%d", user.ID, post.ID)
		return nil
	}
	like := &models.Like{UserID: user.ID, PostID: post.ID}
	err := f.db.Where("user_id = ? AND post_id = ?", user.ID, post.ID).
		FirstOrCreate(like).Error
	return err
}

func (f *Factory) pastTimestamp() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}

func (f *Factory) pastDate(maxDaysBack int) time.Time {
	return time.Now().AddDate(0, 0, -f.rng.Intn(maxDaysBack)).Truncate(24 * time.Hour)
}
