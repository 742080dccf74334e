package models

import "time"

// NotificationVerbLiked is the verb recorded when a user likes a post.
const NotificationVerbLiked = "liked your post"

// Notification is an immutable record of an engagement event directed at a
// recipient. It is created exactly once per new like and never updated; there
// is no read state and no deletion.
type Notification struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RecipientID uint      `gorm:"not null;index" json:"recipient_id"`
	ActorID     uint      `gorm:"not null" json:"actor_id"`
	Verb        string    `gorm:"not null" json:"verb"`
	PostID      uint      `gorm:"not null;index" json:"post_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	Recipient User `gorm:"foreignKey:RecipientID" json:"-"`
	Actor     User `gorm:"foreignKey:ActorID" json:"actor"`
	Post      Post `gorm:"foreignKey:PostID" json:"-"`
}
