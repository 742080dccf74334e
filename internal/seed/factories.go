// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"ripple/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db  *gorm.DB
	rnd *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a user with a fake identity. All seeded users share
// the password "Password123!trial" so developers can log in as any of them.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Password123!trial"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	username := fmt.Sprintf("%s_%s%d",
		gofakeit.Adjective(), gofakeit.NounAbstract(), f.rnd.Intn(10000))

	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
		Password: string(hash),
		Bio:      gofakeit.Sentence(8),
		Avatar:   fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// BuildPost constructs a post with a realistic created_at spread over the
// past maxDays days but does not persist it. Useful for batching.
func (f *Factory) BuildPost(user *models.User, maxDays int) *models.Post {
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rnd.Intn(maxDays)
	hoursBack := f.rnd.Intn(24)
	minsBack := f.rnd.Intn(60)

	post := &models.Post{
		Content: gofakeit.Paragraph(1, 3, 8, "\n"),
		UserID:  user.ID,
	}
	post.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour).
		Add(-time.Duration(hoursBack)*time.Hour).
		Add(-time.Duration(minsBack)*time.Minute)
	return post
}

// CreatePostsBatch persists multiple posts in a single insert.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	if err := f.db.CreateInBatches(posts, 100).Error; err != nil {
		return fmt.Errorf("failed to batch create posts: %w", err)
	}
	return nil
}

// CreateComment persists a comment on the given post.
func (f *Factory) CreateComment(user *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(f.rnd.Intn(12) + 3),
		PostID:  post.ID,
		UserID:  user.ID,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// CreateAuthorWithBooks persists an author along with numBooks catalog
// entries created by the given user.
func (f *Factory) CreateAuthorWithBooks(createdBy *models.User, numBooks int) (*models.Author, error) {
	author := &models.Author{Name: gofakeit.Name()}
	if err := f.db.Create(author).Error; err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	currentYear := time.Now().Year()
	for i := 0; i < numBooks; i++ {
		book := &models.Book{
			Title:           gofakeit.BookTitle(),
			PublicationYear: currentYear - f.rnd.Intn(60),
			AuthorID:        author.ID,
			CreatedByID:     createdBy.ID,
		}
		if err := f.db.Create(book).Error; err != nil {
			return nil, fmt.Errorf("failed to create book: %w", err)
		}
	}
	return author, nil
}
