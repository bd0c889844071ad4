package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pagemark/bookreview/internal/domain"
	"github.com/pagemark/bookreview/pkg/database"
	apperrors "github.com/pagemark/bookreview/pkg/errors"
)

// BookRepository implements repository.BookRepository using PostgreSQL.
type BookRepository struct {
	pool database.DBTX
}

// NewBookRepository creates a new PostgreSQL-backed book repository.
func NewBookRepository(pool database.DBTX) *BookRepository {
	return &BookRepository{pool: pool}
}

// Create inserts a new book into the database.
func (r *BookRepository) Create(ctx context.Context, b *domain.Book) error {
	query := `
		INSERT INTO books (id, title, author, description, genre, created_by, average_rating, total_reviews, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		b.ID,
		b.Title,
		b.Author,
		b.Description,
		b.Genre,
		b.CreatedBy,
		b.AverageRating,
		b.TotalReviews,
		b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}

	return nil
}

// GetByID retrieves a book by its ID.
func (r *BookRepository) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	query := `
		SELECT id, title, author, description, genre, created_by, average_rating, total_reviews, created_at
		FROM books
		WHERE id = $1`

	var b domain.Book
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.Description,
		&b.Genre,
		&b.CreatedBy,
		&b.AverageRating,
		&b.TotalReviews,
		&b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan book: %w", err)
	}

	return &b, nil
}

// List returns all books ordered by creation time, newest first.
func (r *BookRepository) List(ctx context.Context) ([]domain.Book, error) {
	query := `
		SELECT id, title, author, description, genre, created_by, average_rating, total_reviews, created_at
		FROM books
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(
			&b.ID,
			&b.Title,
			&b.Author,
			&b.Description,
			&b.Genre,
			&b.CreatedBy,
			&b.AverageRating,
			&b.TotalReviews,
			&b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan book row: %w", err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate book rows: %w", err)
	}

	if books == nil {
		books = []domain.Book{}
	}

	return books, nil
}

// ListByCreator returns id+title references for books created by the given user.
func (r *BookRepository) ListByCreator(ctx context.Context, userID string) ([]domain.BookRef, error) {
	query := `
		SELECT id, title
		FROM books
		WHERE created_by = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list books by creator: %w", err)
	}
	defer rows.Close()

	var refs []domain.BookRef
	for rows.Next() {
		var ref domain.BookRef
		if err := rows.Scan(&ref.ID, &ref.Title); err != nil {
			return nil, fmt.Errorf("scan book ref row: %w", err)
		}
		refs = append(refs, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate book ref rows: %w", err)
	}

	if refs == nil {
		refs = []domain.BookRef{}
	}

	return refs, nil
}

// UpdateRating overwrites the stored rating rollup for a book.
func (r *BookRepository) UpdateRating(ctx context.Context, bookID string, averageRating float64, totalReviews int) error {
	query := `
		UPDATE books
		SET average_rating = $1, total_reviews = $2
		WHERE id = $3`

	ct, err := r.pool.Exec(ctx, query, averageRating, totalReviews, bookID)
	if err != nil {
		return fmt.Errorf("update book rating: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("book", bookID)
	}

	return nil
}
