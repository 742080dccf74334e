package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// FeedService assembles a user's feed from the follow graph and the content store.
type FeedService struct {
	followRepo repository.FollowRepository
	postRepo   repository.PostRepository
}

// NewFeedService returns a new FeedService.
func NewFeedService(followRepo repository.FollowRepository, postRepo repository.PostRepository) *FeedService {
	return &FeedService{
		followRepo: followRepo,
		postRepo:   postRepo,
	}
}

// GetFeed returns every post authored by users the requester follows, newest
// first. The requester's own posts are excluded unless they follow themselves.
// A user following nobody gets an empty slice, not an error.
func (s *FeedService) GetFeed(ctx context.Context, userID uint) ([]*models.Post, error) {
	followingIDs, err := s.followRepo.GetFollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.postRepo.Feed(ctx, followingIDs, userID)
}
