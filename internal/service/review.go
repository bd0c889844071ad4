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

// ReviewService implements the business logic for reviews and keeps the
// per-book rating rollup in step with the review set.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	bookRepo   repository.BookRepository
	cache      *redisrepo.BookCache
	producer   *event.Producer
	logger     *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	bookRepo repository.BookRepository,
	cache *redisrepo.BookCache,
	producer *event.Producer,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		bookRepo:   bookRepo,
		cache:      cache,
		producer:   producer,
		logger:     logger,
	}
}

// AddReviewInput holds the parameters for adding a review.
type AddReviewInput struct {
	BookID  string
	UserID  string
	Rating  int
	Comment string
}

// Add persists a review and recomputes the book's rating rollup from the full
// review set. The recomputation is read-aggregate-write in application code;
// concurrent writers for the same book can interleave and the last rollup
// write wins.
func (s *ReviewService) Add(ctx context.Context, input AddReviewInput) (*domain.Review, error) {
	if input.BookID == "" {
		return nil, apperrors.InvalidInput("bookId is required")
	}
	if input.UserID == "" {
		return nil, apperrors.InvalidInput("user is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.InvalidInput("rating must be between 1 and 5")
	}

	if _, err := s.bookRepo.GetByID(ctx, input.BookID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("book", input.BookID)
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	review := &domain.Review{
		ID:        uuid.New().String(),
		BookID:    input.BookID,
		UserID:    input.UserID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	avg, total, err := s.recomputeRollup(ctx, input.BookID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate book list cache",
			slog.String("error", err.Error()),
		)
	}

	// Publish review event (non-blocking on failure).
	if err := s.producer.PublishReviewCreated(ctx, review, avg, total); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.created event",
			slog.String("review_id", review.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "review added",
		slog.String("review_id", review.ID),
		slog.String("book_id", review.BookID),
		slog.Int("rating", review.Rating),
		slog.Float64("average_rating", avg),
		slog.Int("total_reviews", total),
	)

	return review, nil
}

// recomputeRollup fetches every rating for the book and writes the mean and
// count back onto it.
func (s *ReviewService) recomputeRollup(ctx context.Context, bookID string) (float64, int, error) {
	ratings, err := s.reviewRepo.ListRatingsByBook(ctx, bookID)
	if err != nil {
		return 0, 0, fmt.Errorf("list ratings: %w", err)
	}

	total := len(ratings)
	var avg float64
	if total > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r
		}
		avg = float64(sum) / float64(total)
	}

	if err := s.bookRepo.UpdateRating(ctx, bookID, avg, total); err != nil {
		return 0, 0, fmt.Errorf("update rating rollup: %w", err)
	}

	return avg, total, nil
}

// ListByBook returns all reviews for a book with author names.
func (s *ReviewService) ListByBook(ctx context.Context, bookID string) ([]domain.ReviewWithAuthor, error) {
	if bookID == "" {
		return nil, apperrors.InvalidInput("bookId is required")
	}

	reviews, err := s.reviewRepo.ListByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	return reviews, nil
}
