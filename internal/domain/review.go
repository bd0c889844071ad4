package domain

import (
	"time"
)

// Review is a single rating plus optional comment left by a user on a book.
type Review struct {
	ID        string    `json:"id"`
	BookID    string    `json:"bookId"`
	UserID    string    `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewWithAuthor joins the author's display name onto a review for the
// per-book listing.
type ReviewWithAuthor struct {
	Review
	AuthorName string `json:"authorName"`
}

// AuthorReview joins the book's title onto a review for the profile view.
type AuthorReview struct {
	ID        string    `json:"id"`
	BookID    string    `json:"bookId"`
	BookTitle string    `json:"bookTitle"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}
