// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// FollowService provides follow-graph business logic.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow adds the target user to the requester's following set.
// Following an already-followed user is a no-op, not an error.
func (s *FollowService) Follow(ctx context.Context, userID, targetUserID uint) error {
	if userID == targetUserID {
		return models.NewValidationError("Cannot follow yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return err
	}

	return s.followRepo.Follow(ctx, userID, targetUserID)
}

// Unfollow removes the target user from the requester's following set.
// Unfollowing a user that is not followed is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, userID, targetUserID uint) error {
	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return err
	}

	return s.followRepo.Unfollow(ctx, userID, targetUserID)
}

// GetFollowing returns the users the given user follows.
func (s *FollowService) GetFollowing(ctx context.Context, targetUserID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return nil, err
	}
	return s.followRepo.GetFollowing(ctx, targetUserID)
}

// GetFollowers returns the users following the given user.
func (s *FollowService) GetFollowers(ctx context.Context, targetUserID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return nil, err
	}
	return s.followRepo.GetFollowers(ctx, targetUserID)
}
