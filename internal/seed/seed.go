package seed

import (
	"fmt"
	"log"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	NumAuthors  int
	ShouldClean bool
}

// Seed populates the database with demo data: users, a follow mesh,
// posts, comments, likes (with their notifications) and a small book
// catalog.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	factory := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("created %d users", len(users))

	follows, err := createFollowMesh(db, factory, users)
	if err != nil {
		return fmt.Errorf("failed to create follow mesh: %w", err)
	}
	log.Printf("created %d follow edges", follows)

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[factory.rnd.Intn(len(users))]
		posts = append(posts, factory.BuildPost(author, 90))
	}
	if err := factory.CreatePostsBatch(posts); err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	if err := createEngagement(db, factory, users, posts); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}

	for i := 0; i < opts.NumAuthors; i++ {
		creator := users[factory.rnd.Intn(len(users))]
		if _, err := factory.CreateAuthorWithBooks(creator, factory.rnd.Intn(4)+1); err != nil {
			return fmt.Errorf("failed to create book catalog: %w", err)
		}
	}
	log.Printf("created %d catalog authors", opts.NumAuthors)

	log.Println("Seeding complete")
	return nil
}

// createFollowMesh gives every user a handful of random follows so feeds
// have content. Self-follows are skipped and duplicates are harmless
// thanks to the unique constraint.
func createFollowMesh(db *gorm.DB, factory *Factory, users []*models.User) (int, error) {
	created := 0
	for _, user := range users {
		numFollows := factory.rnd.Intn(8) + 2
		for i := 0; i < numFollows; i++ {
			target := users[factory.rnd.Intn(len(users))]
			if target.ID == user.ID {
				continue
			}
			res := db.Exec(
				`INSERT INTO follows (follower_id, following_id, created_at)
				 VALUES (?, ?, CURRENT_TIMESTAMP)
				 ON CONFLICT (follower_id, following_id) DO NOTHING`,
				user.ID, target.ID,
			)
			if res.Error != nil {
				return created, res.Error
			}
			created += int(res.RowsAffected)
		}
	}
	return created, nil
}

// createEngagement adds comments and likes to roughly half the posts.
// Likes are written together with their notification the same way the
// API does it.
func createEngagement(db *gorm.DB, factory *Factory, users []*models.User, posts []*models.Post) error {
	comments, likes := 0, 0
	for _, post := range posts {
		if factory.rnd.Intn(2) == 0 {
			continue
		}

		numComments := factory.rnd.Intn(3)
		for i := 0; i < numComments; i++ {
			commenter := users[factory.rnd.Intn(len(users))]
			if _, err := factory.CreateComment(commenter, post); err != nil {
				return err
			}
			comments++
		}

		numLikes := factory.rnd.Intn(5)
		for i := 0; i < numLikes; i++ {
			liker := users[factory.rnd.Intn(len(users))]
			err := db.Transaction(func(tx *gorm.DB) error {
				res := tx.Exec(
					`INSERT INTO likes (user_id, post_id, created_at)
					 VALUES (?, ?, CURRENT_TIMESTAMP)
					 ON CONFLICT (user_id, post_id) DO NOTHING`,
					liker.ID, post.ID,
				)
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return nil
				}
				likes++
				return tx.Create(&models.Notification{
					RecipientID: post.UserID,
					ActorID:     liker.ID,
					Verb:        models.NotificationVerbLiked,
					PostID:      post.ID,
				}).Error
			})
			if err != nil {
				return err
			}
		}
	}
	log.Printf("created %d comments and %d likes", comments, likes)
	return nil
}

// clearData wipes seedable tables. Order matters for foreign keys.
func clearData(db *gorm.DB) error {
	tables := []string{
		"notifications", "likes", "comments", "posts",
		"follows", "books", "authors", "users",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}
