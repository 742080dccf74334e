package server

import (
	"fmt"
	"sync/atomic"
	"testing"

	"ripple/internal/config"
	"ripple/internal/database"
	"ripple/internal/featureflags"
	"ripple/internal/repository"
	"ripple/internal/service"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// setupTestDB opens an isolated in-memory SQLite database with the full
// schema applied. Shared cache keeps the database alive across pooled
// connections within a single test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:servertest%d?mode=memory&cache=shared",
		atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// newTestServer builds a Server wired to an in-memory database. Redis and
// Prometheus stay nil; routes under test must not depend on them.
func newTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db := setupTestDB(t)
	cfg := &config.Config{
		JWTSecret: "test-secret-which-is-long-enough",
		Env:       "test",
	}

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	bookRepo := repository.NewBookRepository(db)
	authorRepo := repository.NewAuthorRepository(db)

	srv := &Server{
		config:           cfg,
		db:               db,
		featureFlags:     featureflags.NewManager(""),
		userRepo:         userRepo,
		followRepo:       followRepo,
		postRepo:         postRepo,
		commentRepo:      commentRepo,
		notificationRepo: notificationRepo,
		bookRepo:         bookRepo,
		authorRepo:       authorRepo,
	}
	srv.followService = service.NewFollowService(followRepo, userRepo)
	srv.feedService = service.NewFeedService(followRepo, postRepo)
	srv.engagementService = service.NewEngagementService(db, postRepo)
	return srv, db
}
