package server

import (
	"strconv"
	"strings"
	"time"

	"ripple/internal/models"
	"ripple/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// GetBooks handles GET /api/books. Supports exact filters (title,
// author, publication_year), a free-text search over title and
// author name, and ordering by title or publication_year with a "-"
// prefix for descending.
func (s *Server) GetBooks(c *fiber.Ctx) error {
	page := parsePagination(c, 50)

	filter := repository.BookListFilter{
		Title:      c.Query("title"),
		AuthorName: c.Query("author"),
		Search:     c.Query("search"),
		Ordering:   c.Query("ordering"),
	}
	if yearStr := c.Query("publication_year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("publication_year must be an integer"))
		}
		filter.PublicationYear = year
	}

	books, err := s.bookRepo.List(c.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(books)
}

// GetBook handles GET /api/books/:id
func (s *Server) GetBook(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	book, err := s.bookRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(book)
}

type bookRequest struct {
	Title           *string `json:"title"`
	PublicationYear *int    `json:"publication_year"`
	AuthorID        *uint   `json:"author_id"`
}

func validateBookFields(title string, year int) *models.AppError {
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("Title cannot be empty")
	}
	if year > time.Now().Year() {
		return models.NewValidationError("Publication year cannot be in the future")
	}
	return nil
}

// CreateBook handles POST /api/books
func (s *Server) CreateBook(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req bookRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Title == nil || req.PublicationYear == nil || req.AuthorID == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("title, publication_year and author_id are required"))
	}
	if appErr := validateBookFields(*req.Title, *req.PublicationYear); appErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
	}

	if _, err := s.authorRepo.GetByID(c.Context(), *req.AuthorID); err != nil {
		return respondServiceError(c, err)
	}

	book := &models.Book{
		Title:           strings.TrimSpace(*req.Title),
		PublicationYear: *req.PublicationYear,
		AuthorID:        *req.AuthorID,
		CreatedByID:     userID,
	}
	if err := s.bookRepo.Create(c.Context(), book); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	created, err := s.bookRepo.GetByID(c.Context(), book.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateBook handles PUT and PATCH /api/books/:id. Only the user who
// created the catalog entry may modify it. PATCH semantics apply in
// both cases: absent fields keep their current values.
func (s *Server) UpdateBook(c *fiber.Ctx) error {
	userID := currentUserID(c)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	book, err := s.bookRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	if book.CreatedByID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only modify books you added"))
	}

	var req bookRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Title != nil {
		book.Title = strings.TrimSpace(*req.Title)
	}
	if req.PublicationYear != nil {
		book.PublicationYear = *req.PublicationYear
	}
	if appErr := validateBookFields(book.Title, book.PublicationYear); appErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
	}
	if req.AuthorID != nil {
		if _, err := s.authorRepo.GetByID(c.Context(), *req.AuthorID); err != nil {
			return respondServiceError(c, err)
		}
		book.AuthorID = *req.AuthorID
	}

	if err := s.bookRepo.Update(c.Context(), book); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	updated, err := s.bookRepo.GetByID(c.Context(), book.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(updated)
}

// DeleteBook handles DELETE /api/books/:id. Only the creator may delete.
func (s *Server) DeleteBook(c *fiber.Ctx) error {
	userID := currentUserID(c)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	book, err := s.bookRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	if book.CreatedByID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only delete books you added"))
	}

	if err := s.bookRepo.Delete(c.Context(), id); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetAuthors handles GET /api/authors
func (s *Server) GetAuthors(c *fiber.Ctx) error {
	page := parsePagination(c, 50)

	authors, err := s.authorRepo.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(authors)
}

// CreateAuthor handles POST /api/authors
func (s *Server) CreateAuthor(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name cannot be empty"))
	}

	author := &models.Author{Name: req.Name}
	if err := s.authorRepo.Create(c.Context(), author); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(author)
}
