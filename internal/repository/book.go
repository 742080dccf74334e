package repository

import (
	"context"
	"errors"
	"strings"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// BookListFilter carries the query parameters accepted by the book list
// endpoint: exact filters, a free-text search, and an ordering key.
type BookListFilter struct {
	Title           string
	AuthorName      string
	PublicationYear int
	Search          string
	Ordering        string
}

// BookRepository defines persistence operations for the book catalog.
type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id uint) (*models.Book, error)
	List(ctx context.Context, filter BookListFilter, limit, offset int) ([]*models.Book, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id uint) error
}

// AuthorRepository defines persistence operations for authors.
type AuthorRepository interface {
	Create(ctx context.Context, author *models.Author) error
	GetByID(ctx context.Context, id uint) (*models.Author, error)
	List(ctx context.Context, limit, offset int) ([]*models.Author, error)
}

type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository returns a new BookRepository implementation.
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

func (r *bookRepository) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	if err := r.db.WithContext(ctx).Preload("Author").First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Book", id)
		}
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) List(ctx context.Context, filter BookListFilter, limit, offset int) ([]*models.Book, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Preload("Author").
		Joins("JOIN authors ON authors.id = books.author_id")

	if filter.Title != "" {
		q = q.Where("books.title = ?", filter.Title)
	}
	if filter.AuthorName != "" {
		q = q.Where("authors.name = ?", filter.AuthorName)
	}
	if filter.PublicationYear != 0 {
		q = q.Where("books.publication_year = ?", filter.PublicationYear)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(books.title) LIKE ? OR LOWER(authors.name) LIKE ?", like, like)
	}

	q = q.Order(orderClause(filter.Ordering))

	var books []*models.Book
	err := q.Limit(limit).Offset(offset).Find(&books).Error
	return books, err
}

// orderClause maps an ordering key ("title", "publication_year", optionally
// "-"-prefixed for descending) to a safe ORDER BY clause. Unknown keys fall
// back to the default title ascending.
func orderClause(ordering string) string {
	desc := strings.HasPrefix(ordering, "-")
	key := strings.TrimPrefix(ordering, "-")

	var column string
	switch key {
	case "publication_year":
		column = "books.publication_year"
	case "title", "":
		column = "books.title"
	default:
		return "books.title ASC"
	}

	if desc {
		return column + " DESC"
	}
	return column + " ASC"
}

func (r *bookRepository) Update(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Save(book).Error
}

func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Book{}, id).Error
}

type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository returns a new AuthorRepository implementation.
func NewAuthorRepository(db *gorm.DB) AuthorRepository {
	return &authorRepository{db: db}
}

func (r *authorRepository) Create(ctx context.Context, author *models.Author) error {
	return r.db.WithContext(ctx).Create(author).Error
}

func (r *authorRepository) GetByID(ctx context.Context, id uint) (*models.Author, error) {
	var author models.Author
	if err := r.db.WithContext(ctx).First(&author, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Author", id)
		}
		return nil, err
	}
	return &author, nil
}

func (r *authorRepository) List(ctx context.Context, limit, offset int) ([]*models.Author, error) {
	var authors []*models.Author
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&authors).Error
	return authors, err
}
