package service

import (
	"context"
	"errors"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postRepoStub struct {
	feedFn func(authorIDs []uint, currentUserID uint) ([]*models.Post, error)
}

func (s *postRepoStub) Create(context.Context, *models.Post) error { return nil }

func (s *postRepoStub) GetByID(context.Context, uint, uint) (*models.Post, error) {
	return nil, nil
}

func (s *postRepoStub) GetByUserID(context.Context, uint, int, int, uint) ([]*models.Post, error) {
	return nil, nil
}

func (s *postRepoStub) List(context.Context, int, int, uint) ([]*models.Post, error) {
	return nil, nil
}

func (s *postRepoStub) Feed(_ context.Context, authorIDs []uint, currentUserID uint) ([]*models.Post, error) {
	return s.feedFn(authorIDs, currentUserID)
}

func (s *postRepoStub) Update(context.Context, *models.Post) error { return nil }
func (s *postRepoStub) Delete(context.Context, uint) error         { return nil }

func (s *postRepoStub) IsLiked(context.Context, uint, uint) (bool, error) {
	return false, nil
}

func (s *postRepoStub) Unlike(context.Context, uint, uint) error { return nil }

func TestFeedService_GetFeed(t *testing.T) {
	t.Run("Passes following IDs through", func(t *testing.T) {
		follows := &followRepoStub{
			getFollowingIDsFn: func(uint) ([]uint, error) { return []uint{2, 3}, nil },
		}
		posts := &postRepoStub{
			feedFn: func(authorIDs []uint, currentUserID uint) ([]*models.Post, error) {
				assert.Equal(t, []uint{2, 3}, authorIDs)
				assert.Equal(t, uint(1), currentUserID)
				return []*models.Post{{ID: 10, UserID: 2}}, nil
			},
		}
		svc := NewFeedService(follows, posts)

		feed, err := svc.GetFeed(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, feed, 1)
		assert.Equal(t, uint(10), feed[0].ID)
	})

	t.Run("Follow graph errors surface", func(t *testing.T) {
		follows := &followRepoStub{
			getFollowingIDsFn: func(uint) ([]uint, error) { return nil, errors.New("db down") },
		}
		svc := NewFeedService(follows, &postRepoStub{})

		_, err := svc.GetFeed(context.Background(), 1)
		assert.Error(t, err)
	})
}
