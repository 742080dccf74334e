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

// authedApp registers the social routes with a stubbed authentication layer
// that pins the calling user to the given ID.
func authedApp(srv *Server, userID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
	users := app.Group("/api/users")
	users.Get("/me", srv.GetMyProfile)
	users.Put("/me", srv.UpdateMyProfile)
	users.Post("/:id/follow", srv.FollowUser)
	users.Post("/:id/unfollow", srv.UnfollowUser)
	users.Get("/:id/followers", srv.GetFollowers)
	users.Get("/:id/following", srv.GetFollowing)
	users.Get("/:id", srv.GetUserProfile)
	app.Get("/api/feed", srv.GetFeed)
	return app
}

func seedUser(t *testing.T, srv *Server, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "irrelevant",
	}
	require.NoError(t, srv.db.Create(user).Error)
	return user
}

func seedPost(t *testing.T, srv *Server, author *models.User, content string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{Content: content, UserID: author.ID}
	post.CreatedAt = createdAt
	require.NoError(t, srv.db.Create(post).Error)
	return post
}

func TestFollowUser(t *testing.T) {
	srv, db := newTestServer(t)
	alice := seedUser(t, srv, "alice")
	bob := seedUser(t, srv, "bob")
	app := authedApp(srv, alice.ID)

	t.Run("Follow succeeds with confirmation", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/users/2/follow", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "User followed", body["detail"])
	})

	t.Run("Repeat follow is idempotent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/users/2/follow", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var count int64
		db.Model(&models.Follow{}).
			Where("follower_id = ? AND following_id = ?", alice.ID, bob.ID).
			Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Self follow rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/users/1/follow", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Follow of missing user is 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/users/999/follow", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Followers and following reflect the edge", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/1/following", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var following []models.User
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&following))
		require.Len(t, following, 1)
		assert.Equal(t, "bob", following[0].Username)

		req = httptest.NewRequest(http.MethodGet, "/api/users/2/followers", nil)
		resp, err = app.Test(req)
		require.NoError(t, err)

		var followers []models.User
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&followers))
		require.Len(t, followers, 1)
		assert.Equal(t, "alice", followers[0].Username)
	})

	t.Run("Unfollow removes the edge and is idempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			req := httptest.NewRequest(http.MethodPost, "/api/users/2/unfollow", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			body := decodeBody(t, resp)
			assert.Equal(t, "User unfollowed", body["detail"])
		}

		var count int64
		db.Model(&models.Follow{}).Count(&count)
		assert.Equal(t, int64(0), count)
	})
}

func TestGetFeed(t *testing.T) {
	srv, _ := newTestServer(t)
	alice := seedUser(t, srv, "alice")
	bob := seedUser(t, srv, "bob")
	carol := seedUser(t, srv, "carol")
	app := authedApp(srv, alice.ID)

	base := time.Now().Add(-time.Hour)
	seedPost(t, srv, bob, "bob first", base)
	seedPost(t, srv, carol, "carol middle", base.Add(time.Minute))
	seedPost(t, srv, bob, "bob last", base.Add(2*time.Minute))
	seedPost(t, srv, alice, "alice own post", base.Add(3*time.Minute))

	feed := func(t *testing.T) []models.Post {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var posts []models.Post
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&posts))
		return posts
	}

	t.Run("Empty when following nobody", func(t *testing.T) {
		assert.Empty(t, feed(t))
	})

	t.Run("Only followed authors, newest first", func(t *testing.T) {
		require.NoError(t, srv.followRepo.Follow(t.Context(), alice.ID, bob.ID))
		require.NoError(t, srv.followRepo.Follow(t.Context(), alice.ID, carol.ID))

		posts := feed(t)
		require.Len(t, posts, 3)
		assert.Equal(t, "bob last", posts[0].Content)
		assert.Equal(t, "carol middle", posts[1].Content)
		assert.Equal(t, "bob first", posts[2].Content)
	})

	t.Run("Unfollow removes the author's posts", func(t *testing.T) {
		require.NoError(t, srv.followRepo.Unfollow(t.Context(), alice.ID, carol.ID))

		posts := feed(t)
		require.Len(t, posts, 2)
		for _, p := range posts {
			assert.Equal(t, bob.ID, p.UserID)
		}
	})
}
