package models

import "time"

// Product is the model for the 'products' table. Price travels as a
// DECIMAL(10,2) column; rating and reviews_count are derived from the
// reviews table and only ever written by the review aggregator.
type Product struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  *string   `json:"description,omitempty" db:"description"`
	Price        float64   `json:"price" db:"price"`
	CategoryID   *int64    `json:"category_id,omitempty" db:"category_id"`
	Stock        int       `json:"stock" db:"stock"`
	Image        *string   `json:"image,omitempty" db:"image"`
	Rating       float64   `json:"rating" db:"rating"`
	ReviewsCount int       `json:"reviews_count" db:"reviews_count"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// Join field, populated by the list/detail queries.
	CategoryName *string `json:"category_name,omitempty" db:"-"`
}

// ProductUpdate enumerates the updatable product fields. Nil means
// "leave untouched"; the column list is fixed at compile time.
type ProductUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	CategoryID  *int64   `json:"category_id"`
	Stock       *int     `json:"stock"`
	Image       *string  `json:"image"`
}

// Columns returns the SET columns and values for the fields present.
func (u ProductUpdate) Columns() ([]string, []interface{}) {
	var cols []string
	var args []interface{}
	if u.Name != nil {
		cols = append(cols, "name = ?")
		args = append(args, *u.Name)
	}
	if u.Description != nil {
		cols = append(cols, "description = ?")
		args = append(args, *u.Description)
	}
	if u.Price != nil {
		cols = append(cols, "price = ?")
		args = append(args, *u.Price)
	}
	if u.CategoryID != nil {
		cols = append(cols, "category_id = ?")
		args = append(args, *u.CategoryID)
	}
	if u.Stock != nil {
		cols = append(cols, "stock = ?")
		args = append(args, *u.Stock)
	}
	if u.Image != nil {
		cols = append(cols, "image = ?")
		args = append(args, *u.Image)
	}
	return cols, args
}
