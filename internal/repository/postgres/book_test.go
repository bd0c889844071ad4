package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagemark/bookreview/internal/domain"
	"github.com/pagemark/bookreview/pkg/database"
	apperrors "github.com/pagemark/bookreview/pkg/errors"
)

func newBookTestFixture(t *testing.T) (*BookRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	repo := NewBookRepository(mock)
	return repo, mock
}

func sampleBook() *domain.Book {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Book{
		ID:            "b-1234",
		Title:         "The Go Programming Language",
		Author:        "Donovan & Kernighan",
		Description:   "A comprehensive introduction.",
		Genre:         "technical",
		CreatedBy:     "u-1234",
		AverageRating: 4.5,
		TotalReviews:  2,
		CreatedAt:     now,
	}
}

func bookColumns() []string {
	return []string{
		"id", "title", "author", "description", "genre",
		"created_by", "average_rating", "total_reviews", "created_at",
	}
}

func bookRow(b *domain.Book) *pgxmock.Rows {
	return pgxmock.NewRows(bookColumns()).AddRow(
		b.ID, b.Title, b.Author, b.Description, b.Genre,
		b.CreatedBy, b.AverageRating, b.TotalReviews, b.CreatedAt,
	)
}

func TestBookRepository_Create_Success(t *testing.T) {
	repo, mock := newBookTestFixture(t)
	defer mock.Close()

	b := sampleBook()

	mock.ExpectExec("INSERT INTO books").
		WithArgs(
			b.ID, b.Title, b.Author, b.Description, b.Genre,
			b.CreatedBy, b.AverageRating, b.TotalReviews, b.CreatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), b)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepository_GetByID_Success(t *testing.T) {
	repo, mock := newBookTestFixture(t)
	defer mock.Close()

	b := sampleBook()

	mock.ExpectQuery("SELECT .+ FROM books WHERE id =").
		WithArgs(b.ID).
		WillReturnRows(bookRow(b))

	got, err := repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.Title, got.Title)
	assert.Equal(t, b.AverageRating, got.AverageRating)
	assert.Equal(t, b.TotalReviews, got.TotalReviews)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newBookTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM books WHERE id =").
		WithArgs("missing-id").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByID(context.Background(), "missing-id")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepository_List_Success(t *testing.T) {
	repo, mock := newBookTestFixture(t)
	defer mock.Close()

	b1 := sampleBook()
	b2 := sampleBook()
	b2.ID = "b-5678"
	b2.Title = "Designing Data-Intensive Applications"

	rows := pgxmock.NewRows(bookColumns()).
		AddRow(b2.ID, b2.Title, b2.Author, b2.Description, b2.Genre,
			b2.CreatedBy, b2.AverageRating, b2.TotalReviews, b2.CreatedAt).
		AddRow(b1.ID, b1.Title, b1.Author, b1.Description, b1.Genre,
			b1.CreatedBy, b1.AverageRating, b1.TotalReviews, b1.CreatedAt)

	mock.ExpectQuery("SELECT .+ FROM books ORDER BY created_at DESC").
		WillReturnRows(rows)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, b2.ID, got[0].ID)
	assert.Equal(t, b1.ID, got[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepository_List_Empty(t *testing.T) {
	repo, mock := newBookTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM books ORDER BY created_at DESC").
		WillReturnRows(pgxmock.NewRows(bookColumns()))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepository_ListByCreator_Success(t *testing.T) {
	repo, mock := newBookTestFixture(t)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"id", "title"}).
		AddRow("b-1234", "The Go Programming Language").
		AddRow("b-5678", "Designing Data-Intensive Applications")

	mock.ExpectQuery("SELECT id, title FROM books WHERE created_by =").
		WithArgs("u-1234").
		WillReturnRows(rows)

	got, err := repo.ListByCreator(context.Background(), "u-1234")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b-1234", got[0].ID)
	assert.Equal(t, "Designing Data-Intensive Applications", got[1].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepository_UpdateRating_Success(t *testing.T) {
	repo, mock := newBookTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE books SET average_rating =").
		WithArgs(3.5, 4, "b-1234").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdateRating(context.Background(), "b-1234", 3.5, 4)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepository_UpdateRating_NotFound(t *testing.T) {
	repo, mock := newBookTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE books SET average_rating =").
		WithArgs(3.5, 4, "missing-id").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateRating(context.Background(), "missing-id", 3.5, 4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
