package models

import "time"

// WishlistItem is the model for the 'wishlist' table.
type WishlistItem struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Join fields from products.
	Name   string  `json:"name" db:"-"`
	Price  float64 `json:"price" db:"-"`
	Image  *string `json:"image,omitempty" db:"-"`
	Stock  int     `json:"stock" db:"-"`
	Rating float64 `json:"rating" db:"-"`
}
