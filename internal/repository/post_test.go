package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"ripple/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_Create_SQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), &models.Post{Content: "hello", UserID: 1})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Feed(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "alice")
	bob := mustCreateUser(t, db, "bob")
	carol := mustCreateUser(t, db, "carol")

	base := time.Now().Add(-time.Hour)
	mkPost := func(author *models.User, content string, offset time.Duration) *models.Post {
		post := &models.Post{Content: content, UserID: author.ID}
		post.CreatedAt = base.Add(offset)
		require.NoError(t, db.Create(post).Error)
		return post
	}
	mkPost(bob, "t1", 0)
	mkPost(carol, "t2", time.Minute)
	mkPost(bob, "t3", 2*time.Minute)
	mkPost(alice, "own", 3*time.Minute)

	t.Run("No follows yields empty non-nil slice", func(t *testing.T) {
		feed, err := repo.Feed(ctx, nil, alice.ID)
		require.NoError(t, err)
		require.NotNil(t, feed)
		assert.Empty(t, feed)
	})

	t.Run("Newest first across followed authors", func(t *testing.T) {
		feed, err := repo.Feed(ctx, []uint{bob.ID, carol.ID}, alice.ID)
		require.NoError(t, err)
		require.Len(t, feed, 3)
		assert.Equal(t, "t3", feed[0].Content)
		assert.Equal(t, "t2", feed[1].Content)
		assert.Equal(t, "t1", feed[2].Content)
	})

	t.Run("Author preloaded", func(t *testing.T) {
		feed, err := repo.Feed(ctx, []uint{carol.ID}, alice.ID)
		require.NoError(t, err)
		require.Len(t, feed, 1)
		assert.Equal(t, "carol", feed[0].User.Username)
	})
}

func TestPostRepository_ComputedDetails(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "alice")
	bob := mustCreateUser(t, db, "bob")

	post := &models.Post{Content: "popular", UserID: bob.ID}
	require.NoError(t, db.Create(post).Error)
	require.NoError(t, db.Create(&models.Like{UserID: alice.ID, PostID: post.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{Content: "hi", UserID: alice.ID, PostID: post.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{Content: "yo", UserID: bob.ID, PostID: post.ID}).Error)

	t.Run("Counts and liked for the liker", func(t *testing.T) {
		got, err := repo.GetByID(ctx, post.ID, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.LikesCount)
		assert.Equal(t, 2, got.CommentsCount)
		assert.True(t, got.Liked)
	})

	t.Run("Liked is false for others", func(t *testing.T) {
		got, err := repo.GetByID(ctx, post.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, got.Liked)
	})

	t.Run("Soft-deleted comments are not counted", func(t *testing.T) {
		require.NoError(t, db.Where("content = ?", "yo").Delete(&models.Comment{}).Error)

		got, err := repo.GetByID(ctx, post.ID, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.CommentsCount)
	})
}

func TestPostRepository_Delete_Cascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "alice")
	bob := mustCreateUser(t, db, "bob")

	post := &models.Post{Content: "doomed", UserID: bob.ID}
	require.NoError(t, db.Create(post).Error)
	keeper := &models.Post{Content: "kept", UserID: bob.ID}
	require.NoError(t, db.Create(keeper).Error)

	require.NoError(t, db.Create(&models.Like{UserID: alice.ID, PostID: post.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{Content: "c", UserID: alice.ID, PostID: post.ID}).Error)
	require.NoError(t, db.Create(&models.Notification{
		RecipientID: bob.ID, ActorID: alice.ID,
		Verb: models.NotificationVerbLiked, PostID: post.ID,
	}).Error)
	require.NoError(t, db.Create(&models.Like{UserID: alice.ID, PostID: keeper.ID}).Error)

	require.NoError(t, repo.Delete(ctx, post.ID))

	_, err := repo.GetByID(ctx, post.ID, alice.ID)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	var likes, notifications int64
	db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likes)
	db.Model(&models.Notification{}).Where("post_id = ?", post.ID).Count(&notifications)
	assert.Zero(t, likes)
	assert.Zero(t, notifications)

	var keptLikes int64
	db.Model(&models.Like{}).Where("post_id = ?", keeper.ID).Count(&keptLikes)
	assert.Equal(t, int64(1), keptLikes)
}

func TestPostRepository_Unlike_NoOp(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	alice := mustCreateUser(t, db, "alice")
	require.NoError(t, repo.Unlike(context.Background(), alice.ID, 42))
}
