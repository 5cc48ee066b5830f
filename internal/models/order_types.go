package models

import "time"

// Order statuses. The normal flow is pending -> processing -> shipped ->
// delivered; cancelled is terminal from any earlier state.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

// Order is the model for the 'orders' table.
type Order struct {
	ID             int64     `json:"id" db:"id"`
	UserID         int64     `json:"user_id" db:"user_id"`
	AddressID      *int64    `json:"address_id,omitempty" db:"address_id"`
	PaymentMethod  string    `json:"payment_method" db:"payment_method"`
	Subtotal       float64   `json:"subtotal" db:"subtotal"`
	Shipping       float64   `json:"shipping" db:"shipping"`
	Total          float64   `json:"total" db:"total"`
	Status         string    `json:"status" db:"status"`
	PaymentStatus  string    `json:"payment_status" db:"payment_status"`
	TrackingNumber *string   `json:"tracking_number,omitempty" db:"tracking_number"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`

	// Join fields from the shipping address (list/detail queries).
	FullName     *string `json:"full_name,omitempty" db:"-"`
	AddressLine1 *string `json:"address_line1,omitempty" db:"-"`
	AddressLine2 *string `json:"address_line2,omitempty" db:"-"`
	City         *string `json:"city,omitempty" db:"-"`
	State        *string `json:"state,omitempty" db:"-"`
	ZipCode      *string `json:"zip_code,omitempty" db:"-"`
	Country      *string `json:"country,omitempty" db:"-"`

	// Join fields for the admin listing.
	UserName  *string `json:"user_name,omitempty" db:"-"`
	UserEmail *string `json:"user_email,omitempty" db:"-"`

	Items []OrderItem `json:"items,omitempty" db:"-"`
}

// OrderItem is the model for the 'order_items' table. Price is the unit
// price snapshotted at purchase time, immune to later catalog changes.
type OrderItem struct {
	ID        int64   `json:"id" db:"id"`
	OrderID   int64   `json:"order_id" db:"order_id"`
	ProductID int64   `json:"product_id" db:"product_id"`
	Quantity  int     `json:"quantity" db:"quantity"`
	Price     float64 `json:"price" db:"price"`

	// Join fields from products.
	Name  string  `json:"name" db:"-"`
	Image *string `json:"image,omitempty" db:"-"`
}

// OrderUpdate enumerates what an admin may change on an order.
type OrderUpdate struct {
	Status         *string `json:"status"`
	TrackingNumber *string `json:"tracking_number"`
}

func (u OrderUpdate) Columns() ([]string, []interface{}) {
	var cols []string
	var args []interface{}
	if u.Status != nil {
		cols = append(cols, "status = ?")
		args = append(args, *u.Status)
	}
	if u.TrackingNumber != nil {
		cols = append(cols, "tracking_number = ?")
		args = append(args, *u.TrackingNumber)
	}
	return cols, args
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
