package checkout

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/shopello/shopello-golang/internal/database"
	"github.com/shopello/shopello-golang/internal/models"
)

// Payment methods accepted at checkout.
const (
	PaymentCOD    = "cod"
	PaymentStripe = "stripe"
	PaymentPayPal = "paypal"
)

// freeShippingOver is the exclusive free-shipping threshold: a subtotal of
// exactly 100.00 still pays the flat fee.
var (
	freeShippingOver = decimal.NewFromInt(100)
	flatShippingFee  = decimal.NewFromInt(10)
)

// Engine turns checkout intent into a persisted order, stock decrement and
// cart clear, all inside one serializable transaction.
type Engine struct {
	DB *sql.DB
}

func NewEngine(db *sql.DB) *Engine {
	return &Engine{DB: db}
}

// ShippingInfo creates a new address inline when the client has no saved
// address to reference.
type ShippingInfo struct {
	FullName     string  `json:"full_name" binding:"required"`
	AddressLine1 string  `json:"address_line1" binding:"required"`
	AddressLine2 *string `json:"address_line2"`
	City         string  `json:"city" binding:"required"`
	State        *string `json:"state"`
	ZipCode      string  `json:"zip_code" binding:"required"`
	Country      string  `json:"country" binding:"required"`
}

// ItemInput is one requested order line.
type ItemInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// Input is the full checkout request. Exactly one of AddressID and
// ShippingInfo must be set.
type Input struct {
	AddressID     *int64        `json:"address_id"`
	ShippingInfo  *ShippingInfo `json:"shipping_info"`
	PaymentMethod string        `json:"payment_method"`
	Items         []ItemInput   `json:"items"`
}

// line is a validated order line with the authoritative price read under
// the row lock.
type line struct {
	productID int64
	quantity  int
	unitPrice decimal.Decimal
}

// ShippingFee returns the flat fee for a subtotal: free only when the
// subtotal strictly exceeds 100.00.
func ShippingFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(freeShippingOver) {
		return decimal.Zero
	}
	return flatShippingFee
}

func validPaymentMethod(m string) bool {
	switch m {
	case PaymentCOD, PaymentStripe, PaymentPayPal:
		return true
	}
	return false
}

// PlaceOrder validates and persists an order for userID. On any error the
// transaction is rolled back in full: no order, no stock decrement, no
// cart mutation is ever observable from a failed call. The returned order
// is composed by a read-only post-commit query.
func (e *Engine) PlaceOrder(ctx context.Context, userID int64, input Input) (*models.Order, error) {
	if (input.AddressID == nil) == (input.ShippingInfo == nil) {
		return nil, ErrShippingTarget
	}
	if !validPaymentMethod(input.PaymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}
	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("product %d: %w", item.ProductID, ErrInvalidQuantity)
		}
	}

	var orderID int64

	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}
	err := database.Transact(ctx, e.DB, opts, func(tx *sql.Tx) error {
		addressID, err := e.resolveAddress(ctx, tx, userID, input)
		if err != nil {
			return err
		}

		lines, subtotal, err := e.lockAndPrice(ctx, tx, input.Items)
		if err != nil {
			return err
		}

		shipping := ShippingFee(subtotal)
		total := subtotal.Add(shipping)

		res, err := tx.ExecContext(ctx,
			`INSERT INTO orders (user_id, address_id, payment_method, subtotal, shipping, total, status, payment_status)
			 VALUES (?, ?, ?, ?, ?, ?, 'pending', 'pending')`,
			userID, addressID, input.PaymentMethod,
			subtotal.StringFixed(2), shipping.StringFixed(2), total.StringFixed(2),
		)
		if err != nil {
			return err
		}
		orderID, err = res.LastInsertId()
		if err != nil {
			return err
		}

		for _, l := range lines {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO order_items (order_id, product_id, quantity, price) VALUES (?, ?, ?, ?)",
				orderID, l.productID, l.quantity, l.unitPrice.StringFixed(2),
			); err != nil {
				return err
			}

			if _, err := tx.ExecContext(ctx,
				"UPDATE products SET stock = stock - ? WHERE id = ?",
				l.quantity, l.productID,
			); err != nil {
				return err
			}
		}

		_, err = tx.ExecContext(ctx, "DELETE FROM cart WHERE user_id = ?", userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return e.composeOrder(ctx, orderID)
}

// resolveAddress returns the order's address id: either the caller's
// existing address or a fresh row created from the inline shipping info,
// scoped to the same transaction.
func (e *Engine) resolveAddress(ctx context.Context, tx *sql.Tx, userID int64, input Input) (int64, error) {
	if input.AddressID != nil {
		var id int64
		err := tx.QueryRowContext(ctx,
			"SELECT id FROM addresses WHERE id = ? AND user_id = ?",
			*input.AddressID, userID,
		).Scan(&id)
		if err == sql.ErrNoRows {
			return 0, ErrAddressNotFound
		}
		return id, err
	}

	info := input.ShippingInfo
	res, err := tx.ExecContext(ctx,
		`INSERT INTO addresses (user_id, full_name, address_line1, address_line2, city, state, zip_code, country)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, info.FullName, info.AddressLine1, info.AddressLine2,
		info.City, info.State, info.ZipCode, info.Country,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// lockAndPrice reads each product's authoritative price and stock under a
// row lock, so concurrent orders on the same product serialize here.
// Client-supplied prices are never consulted.
func (e *Engine) lockAndPrice(ctx context.Context, tx *sql.Tx, items []ItemInput) ([]line, decimal.Decimal, error) {
	lines := make([]line, 0, len(items))
	subtotal := decimal.Zero

	for _, item := range items {
		var price decimal.Decimal
		var stock int

		err := tx.QueryRowContext(ctx,
			"SELECT price, stock FROM products WHERE id = ? FOR UPDATE",
			item.ProductID,
		).Scan(&price, &stock)
		if err == sql.ErrNoRows {
			return nil, decimal.Zero, fmt.Errorf("product %d: %w", item.ProductID, ErrProductNotFound)
		}
		if err != nil {
			return nil, decimal.Zero, err
		}

		if stock < item.Quantity {
			return nil, decimal.Zero, fmt.Errorf("product %d: %w", item.ProductID, ErrInsufficientStock)
		}

		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		lines = append(lines, line{productID: item.ProductID, quantity: item.Quantity, unitPrice: price})
	}

	return lines, subtotal, nil
}

// composeOrder joins the committed order with its address and items for
// the response body.
func (e *Engine) composeOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	var o models.Order
	err := e.DB.QueryRowContext(ctx,
		`SELECT o.id, o.user_id, o.address_id, o.payment_method, o.subtotal, o.shipping, o.total,
		        o.status, o.payment_status, o.tracking_number, o.created_at,
		        a.full_name, a.address_line1, a.address_line2, a.city, a.state, a.zip_code, a.country
		 FROM orders o
		 LEFT JOIN addresses a ON o.address_id = a.id
		 WHERE o.id = ?`,
		orderID,
	).Scan(
		&o.ID, &o.UserID, &o.AddressID, &o.PaymentMethod, &o.Subtotal, &o.Shipping, &o.Total,
		&o.Status, &o.PaymentStatus, &o.TrackingNumber, &o.CreatedAt,
		&o.FullName, &o.AddressLine1, &o.AddressLine2, &o.City, &o.State, &o.ZipCode, &o.Country,
	)
	if err != nil {
		return nil, err
	}

	rows, err := e.DB.QueryContext(ctx,
		`SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price, p.name, p.image
		 FROM order_items oi
		 JOIN products p ON oi.product_id = p.id
		 WHERE oi.order_id = ?`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price, &item.Name, &item.Image); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &o, nil
}
