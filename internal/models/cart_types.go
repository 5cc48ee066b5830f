package models

import "time"

// CartItem is the model for the 'cart' table. (user_id, product_id) is
// unique; adding the same product again bumps the quantity instead.
type CartItem struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Join fields from products, populated by the cart queries.
	Name     string  `json:"name" db:"-"`
	Price    float64 `json:"price" db:"-"`
	Image    *string `json:"image,omitempty" db:"-"`
	Stock    int     `json:"stock" db:"-"`
	Subtotal float64 `json:"subtotal" db:"-"`
}
