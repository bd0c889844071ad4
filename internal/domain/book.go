package domain

import (
	"time"
)

// Book represents a catalog entry. AverageRating and TotalReviews form the
// denormalized rollup: both always equal a full recomputation over the book's
// current review set and are written only by the aggregation step.
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Description   string    `json:"description"`
	Genre         string    `json:"genre"`
	CreatedBy     string    `json:"createdBy"`
	AverageRating float64   `json:"averageRating"`
	TotalReviews  int       `json:"totalReviews"`
	CreatedAt     time.Time `json:"createdAt"`
}

// BookRef is the reduced id+title projection used by the profile view.
type BookRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
