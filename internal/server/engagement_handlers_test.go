package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func engagementApp(srv *Server, userID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
	posts := app.Group("/api/posts")
	posts.Post("/:id/like", srv.LikePost)
	posts.Post("/:id/unlike", srv.UnlikePost)
	posts.Get("/:id/comments", srv.GetComments)
	posts.Post("/:id/comments", srv.CreateComment)
	posts.Get("/:id", srv.GetPost)
	app.Get("/api/notifications", srv.GetNotifications)
	return app
}

func TestLikePost(t *testing.T) {
	srv, db := newTestServer(t)
	alice := seedUser(t, srv, "alice")
	bob := seedUser(t, srv, "bob")
	post := seedPost(t, srv, bob, "bob's post", time.Now())
	app := engagementApp(srv, alice.ID)

	like := func(t *testing.T) *http.Response {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, "/api/posts/1/like", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("Like creates one like and notifies the author", func(t *testing.T) {
		resp := like(t)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "Post liked", body["detail"])

		var likes, notifications int64
		db.Model(&models.Like{}).Count(&likes)
		db.Model(&models.Notification{}).Count(&notifications)
		assert.Equal(t, int64(1), likes)
		assert.Equal(t, int64(1), notifications)

		var n models.Notification
		require.NoError(t, db.First(&n).Error)
		assert.Equal(t, bob.ID, n.RecipientID)
		assert.Equal(t, alice.ID, n.ActorID)
		assert.Equal(t, models.NotificationVerbLiked, n.Verb)
		assert.Equal(t, post.ID, n.PostID)
	})

	t.Run("Double like stays at one like and one notification", func(t *testing.T) {
		resp := like(t)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var likes, notifications int64
		db.Model(&models.Like{}).Count(&likes)
		db.Model(&models.Notification{}).Count(&notifications)
		assert.Equal(t, int64(1), likes)
		assert.Equal(t, int64(1), notifications)
	})

	t.Run("Liked status shows on the post", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/posts/1", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got models.Post
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.True(t, got.Liked)
		assert.Equal(t, 1, got.LikesCount)
	})

	t.Run("Author sees the notification", func(t *testing.T) {
		bobApp := engagementApp(srv, bob.ID)
		req := httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
		resp, err := bobApp.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var notifications []models.Notification
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&notifications))
		require.Len(t, notifications, 1)
		assert.Equal(t, "alice", notifications[0].Actor.Username)
	})

	t.Run("Unlike removes the like but keeps the notification", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/posts/1/unlike", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "Post unliked", body["detail"])

		var likes, notifications int64
		db.Model(&models.Like{}).Count(&likes)
		db.Model(&models.Notification{}).Count(&notifications)
		assert.Equal(t, int64(0), likes)
		assert.Equal(t, int64(1), notifications)
	})

	t.Run("Unlike of never-liked post is still OK", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/posts/1/unlike", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Like of missing post is 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/posts/999/like", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestComments(t *testing.T) {
	srv, db := newTestServer(t)
	alice := seedUser(t, srv, "alice")
	bob := seedUser(t, srv, "bob")
	seedPost(t, srv, bob, "bob's post", time.Now())
	app := engagementApp(srv, alice.ID)

	t.Run("Create and list", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/api/posts/1/comments",
			map[string]string{"content": "nice post"})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		req = httptest.NewRequest(http.MethodGet, "/api/posts/1/comments", nil)
		resp, err = app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var comments []models.Comment
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&comments))
		require.Len(t, comments, 1)
		assert.Equal(t, "nice post", comments[0].Content)
		assert.Equal(t, alice.ID, comments[0].UserID)
	})

	t.Run("Comment on missing post is 404", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/api/posts/42/comments",
			map[string]string{"content": "hello"})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Comment count shows on post", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/posts/1", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		var got models.Post
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, 1, got.CommentsCount)
	})

	t.Run("Post delete cascades comments and likes", func(t *testing.T) {
		bobApp := engagementApp(srv, bob.ID)
		req := httptest.NewRequest(http.MethodPost, "/api/posts/1/like", nil)
		_, err := bobApp.Test(req)
		require.NoError(t, err)

		require.NoError(t, srv.postRepo.Delete(t.Context(), 1))

		var comments, likes, notifications int64
		db.Unscoped().Model(&models.Comment{}).
			Where("post_id = ? AND deleted_at IS NULL", 1).Count(&comments)
		db.Model(&models.Like{}).Where("post_id = ?", 1).Count(&likes)
		db.Model(&models.Notification{}).Where("post_id = ?", 1).Count(&notifications)
		assert.Equal(t, int64(0), comments)
		assert.Equal(t, int64(0), likes)
		assert.Equal(t, int64(0), notifications)
	})
}
