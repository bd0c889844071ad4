package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pagemark/bookreview/internal/service"
	"github.com/pagemark/bookreview/pkg/httputil"
	"github.com/pagemark/bookreview/pkg/middleware"
	"github.com/pagemark/bookreview/pkg/validator"
)

// ReviewHandler handles HTTP requests for reviews.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{service: svc, logger: logger}
}

// AddReviewRequest is the JSON request body for adding a review.
type AddReviewRequest struct {
	BookID  string `json:"bookId" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=5000"`
}

// ListByBook handles GET /api/reviews?bookId=ID
func (h *ReviewHandler) ListByBook(w http.ResponseWriter, r *http.Request) {
	bookID := r.URL.Query().Get("bookId")
	if bookID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorBody{
			Code: "INVALID_INPUT", Message: "bookId query parameter is required",
		})
		return
	}

	reviews, err := h.service.ListByBook(r.Context(), bookID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, reviews)
}

// Add handles POST /api/reviews
func (h *ReviewHandler) Add(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req AddReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorBody{
			Code: "INVALID_INPUT", Message: "invalid request body",
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	review, err := h.service.Add(r.Context(), service.AddReviewInput{
		BookID:  req.BookID,
		UserID:  middleware.UserIDFromContext(r.Context()),
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, review)
}
