package models

import (
	"time"

	"gorm.io/gorm"
)

// Author represents a writer who can have multiple books.
// Distinct from User: the author of a book is catalog data, while CreatedByID
// on Book records which account owns the catalog entry.
type Author struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Books     []Book         `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"books,omitempty"`
}

// Book represents a catalog entry owned by the user who created it.
type Book struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Title           string         `gorm:"not null;index" json:"title"`
	PublicationYear int            `gorm:"not null;index" json:"publication_year"`
	AuthorID        uint           `gorm:"not null;index" json:"author_id"`
	Author          Author         `gorm:"foreignKey:AuthorID" json:"author"`
	CreatedByID     uint           `gorm:"not null;index" json:"created_by_id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
