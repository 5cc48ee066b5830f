package models

import "time"

// Category is the model for the 'categories' table.
type Category struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description *string   `json:"description,omitempty" db:"description"`
	Image       *string   `json:"image,omitempty" db:"image"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// CategoryUpdate enumerates the updatable category fields.
type CategoryUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

func (u CategoryUpdate) Columns() ([]string, []interface{}) {
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
	if u.Image != nil {
		cols = append(cols, "image = ?")
		args = append(args, *u.Image)
	}
	return cols, args
}
