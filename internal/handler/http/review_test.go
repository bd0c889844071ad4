package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pagemark/bookreview/internal/domain"
	apperrors "github.com/pagemark/bookreview/pkg/errors"
)

func TestListReviewsEndpoint_Success(t *testing.T) {
	env := setupRouter(t)

	reviews := []domain.ReviewWithAuthor{
		{Review: domain.Review{ID: "r-1", BookID: testBookID, Rating: 4, Comment: "Solid read."}, AuthorName: "Alice Smith"},
	}
	env.reviewRepo.On("ListByBook", mock.Anything, testBookID).Return(reviews, nil)

	rec := getPath(env.router, "/api/reviews?bookId="+testBookID, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, "Alice Smith", body[0]["authorName"])
	assert.Equal(t, float64(4), body[0]["rating"])
}

func TestListReviewsEndpoint_MissingBookID(t *testing.T) {
	env := setupRouter(t)

	rec := getPath(env.router, "/api/reviews", nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "INVALID_INPUT", body["code"])
}

func TestAddReviewEndpoint_Success(t *testing.T) {
	env := setupRouter(t)

	env.bookRepo.On("GetByID", mock.Anything, testBookID).Return(&domain.Book{ID: testBookID}, nil)
	env.reviewRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(nil)
	env.reviewRepo.On("ListRatingsByBook", mock.Anything, testBookID).Return([]int{4}, nil)
	env.bookRepo.On("UpdateRating", mock.Anything, testBookID, 4.0, 1).Return(nil)

	rec := postJSON(env.router, "/api/reviews", map[string]any{
		"bookId":  testBookID,
		"rating":  4,
		"comment": "Solid read.",
	}, map[string]string{"Authorization": env.bearerToken(t, domain.RoleUser)})

	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, testBookID, body["bookId"])
	assert.Equal(t, testUserID, body["userId"])
	assert.Equal(t, float64(4), body["rating"])

	env.bookRepo.AssertExpectations(t)
	env.reviewRepo.AssertExpectations(t)
}

func TestAddReviewEndpoint_NoToken(t *testing.T) {
	env := setupRouter(t)

	rec := postJSON(env.router, "/api/reviews", map[string]any{
		"bookId": testBookID,
		"rating": 4,
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env.reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddReviewEndpoint_NoTokenWrongContentTypeIs401(t *testing.T) {
	env := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", bytes.NewReader([]byte("rating=4")))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAddReviewEndpoint_RatingOutOfRange(t *testing.T) {
	env := setupRouter(t)

	for _, rating := range []int{0, 6, -3} {
		rec := postJSON(env.router, "/api/reviews", map[string]any{
			"bookId": testBookID,
			"rating": rating,
		}, map[string]string{"Authorization": env.bearerToken(t, domain.RoleUser)})

		assert.Equal(t, http.StatusBadRequest, rec.Code, "rating %d", rating)
	}

	// Validation failed before the service ran; nothing persisted.
	env.reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	env.bookRepo.AssertNotCalled(t, "UpdateRating", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddReviewEndpoint_BookNotFound(t *testing.T) {
	env := setupRouter(t)

	env.bookRepo.On("GetByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound)

	rec := postJSON(env.router, "/api/reviews", map[string]any{
		"bookId": "missing",
		"rating": 4,
	}, map[string]string{"Authorization": env.bearerToken(t, domain.RoleUser)})

	require.Equal(t, http.StatusNotFound, rec.Code)
	env.reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
