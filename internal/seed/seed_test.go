package seed

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"ripple/internal/database"
	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:seedtest%d?mode=memory&cache=shared",
		atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestSeed(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Seed(db, Options{
		NumUsers:   5,
		NumPosts:   20,
		NumAuthors: 2,
	}))

	var users, posts, follows, books int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Post{}).Count(&posts)
	db.Model(&models.Follow{}).Count(&follows)
	db.Model(&models.Book{}).Count(&books)

	assert.Equal(t, int64(5), users)
	assert.Equal(t, int64(20), posts)
	assert.Positive(t, follows)
	assert.Positive(t, books)

	t.Run("No self follows", func(t *testing.T) {
		var selfFollows int64
		db.Model(&models.Follow{}).
			Where("follower_id = following_id").Count(&selfFollows)
		assert.Zero(t, selfFollows)
	})

	t.Run("Each like has a notification", func(t *testing.T) {
		var likes, notifications int64
		db.Model(&models.Like{}).Count(&likes)
		db.Model(&models.Notification{}).Count(&notifications)
		assert.Equal(t, likes, notifications)
	})

	t.Run("Books never postdate the current year", func(t *testing.T) {
		var future int64
		db.Model(&models.Book{}).
			Where("publication_year > ?", time.Now().Year()).Count(&future)
		assert.Zero(t, future)
	})
}

func TestFactoryCreateUser(t *testing.T) {
	db := setupTestDB(t)
	factory := NewFactory(db)

	user, err := factory.CreateUser(func(u *models.User) {
		u.Username = "fixed_name"
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed_name", user.Username)
	assert.NotEmpty(t, user.Email)
	assert.NotEqual(t, "Password123!trial", user.Password)
}
