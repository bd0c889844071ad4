package repository

import (
	"context"

	"github.com/pagemark/bookreview/internal/domain"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create inserts a new user into the store.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// BookRepository defines the interface for book persistence operations.
type BookRepository interface {
	// Create inserts a new book into the store.
	Create(ctx context.Context, book *domain.Book) error

	// GetByID retrieves a book by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Book, error)

	// List returns all books ordered by creation time, newest first.
	List(ctx context.Context) ([]domain.Book, error)

	// ListByCreator returns id+title references for books created by the given user.
	ListByCreator(ctx context.Context, userID string) ([]domain.BookRef, error)

	// UpdateRating overwrites the stored rating rollup for a book.
	UpdateRating(ctx context.Context, bookID string, averageRating float64, totalReviews int) error
}

// ReviewRepository defines the interface for review persistence operations.
type ReviewRepository interface {
	// Create inserts a new review into the store.
	Create(ctx context.Context, review *domain.Review) error

	// ListByBook returns all reviews for a book with author names, in
	// insertion order.
	ListByBook(ctx context.Context, bookID string) ([]domain.ReviewWithAuthor, error)

	// ListRatingsByBook returns the ratings of every review currently stored
	// for the book. Used to recompute the rating rollup.
	ListRatingsByBook(ctx context.Context, bookID string) ([]int, error)

	// ListByAuthor returns all reviews written by the given user with book
	// titles, in insertion order.
	ListByAuthor(ctx context.Context, userID string) ([]domain.AuthorReview, error)
}
