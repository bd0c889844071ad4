package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pagemark/bookreview/internal/domain"
	"github.com/pagemark/bookreview/internal/event"
	"github.com/pagemark/bookreview/internal/repository"
	redisrepo "github.com/pagemark/bookreview/internal/repository/redis"
	apperrors "github.com/pagemark/bookreview/pkg/errors"
)

// BookService implements the business logic for catalog operations.
type BookService struct {
	bookRepo repository.BookRepository
	cache    *redisrepo.BookCache
	producer *event.Producer
	logger   *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(
	bookRepo repository.BookRepository,
	cache *redisrepo.BookCache,
	producer *event.Producer,
	logger *slog.Logger,
) *BookService {
	return &BookService{
		bookRepo: bookRepo,
		cache:    cache,
		producer: producer,
		logger:   logger,
	}
}

// CreateBookInput holds the parameters for creating a book.
type CreateBookInput struct {
	Title       string
	Author      string
	Description string
	Genre       string
	CreatedBy   string
}

// Create adds a new book to the catalog with an empty rating rollup.
func (s *BookService) Create(ctx context.Context, input CreateBookInput) (*domain.Book, error) {
	if input.Title == "" {
		return nil, apperrors.InvalidInput("title is required")
	}
	if input.Author == "" {
		return nil, apperrors.InvalidInput("author is required")
	}
	if input.CreatedBy == "" {
		return nil, apperrors.InvalidInput("creator is required")
	}

	book := &domain.Book{
		ID:            uuid.New().String(),
		Title:         input.Title,
		Author:        input.Author,
		Description:   input.Description,
		Genre:         input.Genre,
		CreatedBy:     input.CreatedBy,
		AverageRating: 0,
		TotalReviews:  0,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	// The listing changed; drop the cached copy.
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate book list cache",
			slog.String("error", err.Error()),
		)
	}

	// Publish creation event (non-blocking on failure).
	if err := s.producer.PublishBookCreated(ctx, book); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish book.created event",
			slog.String("book_id", book.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "book created",
		slog.String("book_id", book.ID),
		slog.String("title", book.Title),
	)

	return book, nil
}

// GetByID retrieves a single book.
func (s *BookService) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("book", id)
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	return book, nil
}

// List returns the full catalog, read-through from the cache. Cache failures
// degrade to the store rather than failing the request.
func (s *BookService) List(ctx context.Context) ([]domain.Book, error) {
	cached, found, err := s.cache.GetList(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "book list cache read failed",
			slog.String("error", err.Error()),
		)
	} else if found {
		return cached, nil
	}

	books, err := s.bookRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	if err := s.cache.SetList(ctx, books); err != nil {
		s.logger.WarnContext(ctx, "book list cache write failed",
			slog.String("error", err.Error()),
		)
	}

	return books, nil
}
