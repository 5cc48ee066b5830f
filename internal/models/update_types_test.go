package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
func intPtr(i int) *int         { return &i }
func int64Ptr(i int64) *int64   { return &i }

func TestProductUpdateColumns(t *testing.T) {
	empty := ProductUpdate{}
	cols, args := empty.Columns()
	assert.Empty(t, cols)
	assert.Empty(t, args)

	u := ProductUpdate{
		Name:  strPtr("Walnut Desk"),
		Price: f64Ptr(249.99),
		Stock: intPtr(12),
	}
	cols, args = u.Columns()
	assert.Equal(t, []string{"name = ?", "price = ?", "stock = ?"}, cols)
	assert.Equal(t, []interface{}{"Walnut Desk", 249.99, 12}, args)

	full := ProductUpdate{
		Name:        strPtr("n"),
		Description: strPtr("d"),
		Price:       f64Ptr(1),
		CategoryID:  int64Ptr(2),
		Stock:       intPtr(3),
		Image:       strPtr("i"),
	}
	cols, args = full.Columns()
	assert.Len(t, cols, 6)
	assert.Len(t, args, 6)
}

func TestOrderUpdateColumns(t *testing.T) {
	u := OrderUpdate{Status: strPtr(OrderStatusShipped), TrackingNumber: strPtr("TRK-123")}
	cols, args := u.Columns()
	assert.Equal(t, []string{"status = ?", "tracking_number = ?"}, cols)
	assert.Equal(t, []interface{}{"shipped", "TRK-123"}, args)

	none := OrderUpdate{}
	cols, args = none.Columns()
	assert.Empty(t, cols)
	assert.Empty(t, args)
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{
		OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	} {
		assert.True(t, ValidOrderStatus(s), s)
	}
	assert.False(t, ValidOrderStatus("refunded"))
	assert.False(t, ValidOrderStatus(""))
	assert.False(t, ValidOrderStatus("Pending"))
}
