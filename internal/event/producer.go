package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pagemark/bookreview/internal/domain"
	pkgkafka "github.com/pagemark/bookreview/pkg/kafka"
)

// Kafka topic constants for book review domain events.
const (
	TopicUserRegistered = "bookreview.user.registered"
	TopicBookCreated    = "bookreview.book.created"
	TopicReviewCreated  = "bookreview.review.created"
)

// Aggregate type constants.
const (
	AggregateTypeUser   = "user"
	AggregateTypeBook   = "book"
	AggregateTypeReview = "review"
)

// Source identifier for events originating from this service.
const SourceBookReview = "bookreview"

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// BookCreatedData is the payload for a book.created event.
type BookCreatedData struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Genre     string `json:"genre"`
	CreatedBy string `json:"created_by"`
}

// ReviewCreatedData is the payload for a review.created event. It carries the
// rating rollup as recomputed when the review was written.
type ReviewCreatedData struct {
	ID            string  `json:"id"`
	BookID        string  `json:"book_id"`
	UserID        string  `json:"user_id"`
	Rating        int     `json:"rating"`
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`
}

// Producer publishes book review domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}

	event, err := pkgkafka.NewEvent(TopicUserRegistered, user.ID, AggregateTypeUser, SourceBookReview, data)
	if err != nil {
		return fmt.Errorf("create user.registered event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserRegistered, event); err != nil {
		return fmt.Errorf("publish user.registered event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.registered event",
		slog.String("user_id", user.ID),
	)

	return nil
}

// PublishBookCreated publishes a book.created event.
func (p *Producer) PublishBookCreated(ctx context.Context, book *domain.Book) error {
	data := BookCreatedData{
		ID:        book.ID,
		Title:     book.Title,
		Author:    book.Author,
		Genre:     book.Genre,
		CreatedBy: book.CreatedBy,
	}

	event, err := pkgkafka.NewEvent(TopicBookCreated, book.ID, AggregateTypeBook, SourceBookReview, data)
	if err != nil {
		return fmt.Errorf("create book.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicBookCreated, event); err != nil {
		return fmt.Errorf("publish book.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published book.created event",
		slog.String("book_id", book.ID),
		slog.String("title", book.Title),
	)

	return nil
}

// PublishReviewCreated publishes a review.created event.
func (p *Producer) PublishReviewCreated(ctx context.Context, review *domain.Review, averageRating float64, totalReviews int) error {
	data := ReviewCreatedData{
		ID:            review.ID,
		BookID:        review.BookID,
		UserID:        review.UserID,
		Rating:        review.Rating,
		AverageRating: averageRating,
		TotalReviews:  totalReviews,
	}

	event, err := pkgkafka.NewEvent(TopicReviewCreated, review.ID, AggregateTypeReview, SourceBookReview, data)
	if err != nil {
		return fmt.Errorf("create review.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewCreated, event); err != nil {
		return fmt.Errorf("publish review.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.created event",
		slog.String("review_id", review.ID),
		slog.String("book_id", review.BookID),
	)

	return nil
}
