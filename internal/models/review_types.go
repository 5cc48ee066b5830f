package models

import "time"

// Review is the model for the 'reviews' table. (user_id, product_id) is
// unique; every insert/delete goes through the review aggregator so the
// product's rating and reviews_count never drift from these rows.
type Review struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   *string   `json:"comment,omitempty" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Join field from users.
	UserName string `json:"user_name,omitempty" db:"-"`
}
