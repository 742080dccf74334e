package service

import (
	"context"
	"errors"

	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/repository"

	"gorm.io/gorm"
)

// EngagementService toggles likes and emits notifications for new likes.
// It holds the gorm handle directly because like-plus-notification must run
// inside a single transaction.
type EngagementService struct {
	db       *gorm.DB
	postRepo repository.PostRepository
}

// NewEngagementService returns a new EngagementService.
func NewEngagementService(db *gorm.DB, postRepo repository.PostRepository) *EngagementService {
	return &EngagementService{
		db:       db,
		postRepo: postRepo,
	}
}

// LikePost records a like for (userID, postID) and, when the like is new,
// creates exactly one notification for the post's author. Re-liking is an
// idempotent no-op: no duplicate like row, no second notification. The
// conditional insert leans on the unique (user_id, post_id) index, so
// concurrent likes from the same user cannot double-notify.
// Returns whether a new like was created.
func (s *EngagementService) LikePost(ctx context.Context, userID, postID uint) (bool, error) {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return false, appErr
		}
		return false, models.NewInternalError(err)
	}

	var created bool
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(
			`INSERT INTO likes (user_id, post_id, created_at)
			 VALUES (?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT (user_id, post_id) DO NOTHING`,
			userID, postID,
		)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already liked; nothing to notify.
			return nil
		}
		created = true

		notification := &models.Notification{
			RecipientID: post.UserID,
			ActorID:     userID,
			Verb:        models.NotificationVerbLiked,
			PostID:      postID,
		}
		return tx.Create(notification).Error
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}

	if created {
		middleware.NotificationsCreated.WithLabelValues(models.NotificationVerbLiked).Inc()
	}
	return created, nil
}

// UnlikePost removes the like for (userID, postID) if present. Unliking a post
// that was never liked is a no-op. Notifications already sent are kept.
func (s *EngagementService) UnlikePost(ctx context.Context, userID, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID, userID); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}

	if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
