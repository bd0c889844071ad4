package postgres

import (
	"context"
	"fmt"

	"github.com/pagemark/bookreview/internal/domain"
	"github.com/pagemark/bookreview/pkg/database"
)

// ReviewRepository implements repository.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	pool database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool database.DBTX) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Create inserts a new review into the database.
func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	query := `
		INSERT INTO reviews (id, book_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		rv.ID,
		rv.BookID,
		rv.UserID,
		rv.Rating,
		rv.Comment,
		rv.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}

	return nil
}

// ListByBook returns all reviews for a book with author names, in insertion order.
func (r *ReviewRepository) ListByBook(ctx context.Context, bookID string) ([]domain.ReviewWithAuthor, error) {
	query := `
		SELECT r.id, r.book_id, r.user_id, r.rating, r.comment, r.created_at, u.name
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.book_id = $1
		ORDER BY r.created_at ASC`

	rows, err := r.pool.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.ReviewWithAuthor
	for rows.Next() {
		var rv domain.ReviewWithAuthor
		if err := rows.Scan(
			&rv.ID,
			&rv.BookID,
			&rv.UserID,
			&rv.Rating,
			&rv.Comment,
			&rv.CreatedAt,
			&rv.AuthorName,
		); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	if reviews == nil {
		reviews = []domain.ReviewWithAuthor{}
	}

	return reviews, nil
}

// ListRatingsByBook returns the ratings of every review currently stored for the book.
func (r *ReviewRepository) ListRatingsByBook(ctx context.Context, bookID string) ([]int, error) {
	query := `
		SELECT rating
		FROM reviews
		WHERE book_id = $1`

	rows, err := r.pool.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	var ratings []int
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			return nil, fmt.Errorf("scan rating row: %w", err)
		}
		ratings = append(ratings, rating)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rating rows: %w", err)
	}

	if ratings == nil {
		ratings = []int{}
	}

	return ratings, nil
}

// ListByAuthor returns all reviews written by the given user with book titles,
// in insertion order.
func (r *ReviewRepository) ListByAuthor(ctx context.Context, userID string) ([]domain.AuthorReview, error) {
	query := `
		SELECT r.id, r.book_id, b.title, r.rating, r.comment, r.created_at
		FROM reviews r
		JOIN books b ON b.id = r.book_id
		WHERE r.user_id = $1
		ORDER BY r.created_at ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list reviews by author: %w", err)
	}
	defer rows.Close()

	var reviews []domain.AuthorReview
	for rows.Next() {
		var rv domain.AuthorReview
		if err := rows.Scan(
			&rv.ID,
			&rv.BookID,
			&rv.BookTitle,
			&rv.Rating,
			&rv.Comment,
			&rv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	if reviews == nil {
		reviews = []domain.AuthorReview{}
	}

	return reviews, nil
}
