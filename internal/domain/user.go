package domain

import (
	"time"
)

// User represents a registered account. The password hash never leaves the
// process through the API.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Profile is the /api/users/me projection: the user minus credentials, plus
// the books they posted and the reviews they wrote.
type Profile struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	PostedBooks   []BookRef      `json:"postedBooks"`
	ReviewedBooks []AuthorReview `json:"reviewedBooks"`
}
