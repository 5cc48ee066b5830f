package models

import "time"

// Address is the model for the 'addresses' table. At most one address per
// user carries is_default = true; the handlers maintain that invariant.
type Address struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"user_id" db:"user_id"`
	FullName     string    `json:"full_name" db:"full_name"`
	AddressLine1 string    `json:"address_line1" db:"address_line1"`
	AddressLine2 *string   `json:"address_line2,omitempty" db:"address_line2"`
	City         string    `json:"city" db:"city"`
	State        *string   `json:"state,omitempty" db:"state"`
	ZipCode      string    `json:"zip_code" db:"zip_code"`
	Country      string    `json:"country" db:"country"`
	IsDefault    bool      `json:"is_default" db:"is_default"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// AddressUpdate enumerates the updatable address fields.
type AddressUpdate struct {
	FullName     *string `json:"full_name"`
	AddressLine1 *string `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	ZipCode      *string `json:"zip_code"`
	Country      *string `json:"country"`
}

func (u AddressUpdate) Columns() ([]string, []interface{}) {
	var cols []string
	var args []interface{}
	if u.FullName != nil {
		cols = append(cols, "full_name = ?")
		args = append(args, *u.FullName)
	}
	if u.AddressLine1 != nil {
		cols = append(cols, "address_line1 = ?")
		args = append(args, *u.AddressLine1)
	}
	if u.AddressLine2 != nil {
		cols = append(cols, "address_line2 = ?")
		args = append(args, *u.AddressLine2)
	}
	if u.City != nil {
		cols = append(cols, "city = ?")
		args = append(args, *u.City)
	}
	if u.State != nil {
		cols = append(cols, "state = ?")
		args = append(args, *u.State)
	}
	if u.ZipCode != nil {
		cols = append(cols, "zip_code = ?")
		args = append(args, *u.ZipCode)
	}
	if u.Country != nil {
		cols = append(cols, "country = ?")
		args = append(args, *u.Country)
	}
	return cols, args
}
