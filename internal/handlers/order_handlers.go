package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopello/shopello-golang/internal/checkout"
	"github.com/shopello/shopello-golang/internal/models"
)

// CreateOrder is the handler for POST /api/orders. All validation, stock
// and pricing logic lives in the checkout engine; this handler only binds
// the request and translates engine errors to status codes.
func (h *Handlers) CreateOrder(c *gin.Context) {
	var input checkout.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide address/shipping info, payment method, and items"})
		return
	}

	order, err := h.Checkout.PlaceOrder(c.Request.Context(), currentUserID(c), input)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
		case errors.Is(err, checkout.ErrAddressNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Address not found"})
		case errors.Is(err, checkout.ErrInsufficientStock):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		case errors.Is(err, checkout.ErrInvalidPaymentMethod),
			errors.Is(err, checkout.ErrEmptyOrder),
			errors.Is(err, checkout.ErrInvalidQuantity),
			errors.Is(err, checkout.ErrShippingTarget):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order created successfully",
		"data":    gin.H{"order": order, "items": order.Items},
	})
}

// attachItems loads the item rows (with product name/image) for an order.
func (h *Handlers) attachItems(order *models.Order) error {
	rows, err := h.DB.Query(
		`SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price, p.name, p.image
		 FROM order_items oi
		 JOIN products p ON oi.product_id = p.id
		 WHERE oi.order_id = ?`,
		order.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	order.Items = []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price, &item.Name, &item.Image); err != nil {
			return err
		}
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}

// GetMyOrders is the handler for GET /api/orders.
func (h *Handlers) GetMyOrders(c *gin.Context) {
	rows, err := h.DB.Query(
		`SELECT o.id, o.user_id, o.address_id, o.payment_method, o.subtotal, o.shipping, o.total,
		        o.status, o.payment_status, o.tracking_number, o.created_at,
		        a.full_name, a.address_line1, a.city
		 FROM orders o
		 LEFT JOIN addresses a ON o.address_id = a.id
		 WHERE o.user_id = ?
		 ORDER BY o.created_at DESC`,
		currentUserID(c),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.AddressID, &o.PaymentMethod, &o.Subtotal, &o.Shipping, &o.Total,
			&o.Status, &o.PaymentStatus, &o.TrackingNumber, &o.CreatedAt,
			&o.FullName, &o.AddressLine1, &o.City,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}
		orders = append(orders, o)
	}
	rows.Close()

	for i := range orders {
		if err := h.attachItems(&orders[i]); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(orders), "data": orders})
}

// GetOrder is the handler for GET /api/orders/:id. Ownership is part of
// the lookup, so another user's order reads as not found.
func (h *Handlers) GetOrder(c *gin.Context) {
	var o models.Order
	err := h.DB.QueryRow(
		`SELECT o.id, o.user_id, o.address_id, o.payment_method, o.subtotal, o.shipping, o.total,
		        o.status, o.payment_status, o.tracking_number, o.created_at,
		        a.full_name, a.address_line1, a.address_line2, a.city, a.state, a.zip_code, a.country
		 FROM orders o
		 LEFT JOIN addresses a ON o.address_id = a.id
		 WHERE o.id = ? AND o.user_id = ?`,
		c.Param("id"), currentUserID(c),
	).Scan(
		&o.ID, &o.UserID, &o.AddressID, &o.PaymentMethod, &o.Subtotal, &o.Shipping, &o.Total,
		&o.Status, &o.PaymentStatus, &o.TrackingNumber, &o.CreatedAt,
		&o.FullName, &o.AddressLine1, &o.AddressLine2, &o.City, &o.State, &o.ZipCode, &o.Country,
	)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	if err := h.attachItems(&o); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"order": o, "items": o.Items}})
}

// ConfirmOrderReceipt is the handler for PUT /api/orders/:id/confirm.
// Marks the order delivered and the payment completed.
func (h *Handlers) ConfirmOrderReceipt(c *gin.Context) {
	var status string
	err := h.DB.QueryRow(
		"SELECT status FROM orders WHERE id = ? AND user_id = ?",
		c.Param("id"), currentUserID(c),
	).Scan(&status)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	if status == models.OrderStatusDelivered {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Order has already been confirmed as delivered"})
		return
	}
	if status == models.OrderStatusCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cannot confirm a cancelled order"})
		return
	}

	if _, err := h.DB.Exec(
		"UPDATE orders SET status = 'delivered', payment_status = 'completed' WHERE id = ?",
		c.Param("id"),
	); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order confirmed as delivered. Thank you for shopping with us!",
	})
}

// GetAllOrders is the handler for GET /api/admin/orders.
func (h *Handlers) GetAllOrders(c *gin.Context) {
	where := ""
	var params []interface{}
	if status := c.Query("status"); status != "" {
		where = " WHERE o.status = ?"
		params = append(params, status)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int
	if err := h.DB.QueryRow("SELECT COUNT(*) FROM orders o"+where, params...).Scan(&total); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	rows, err := h.DB.Query(
		`SELECT o.id, o.user_id, o.address_id, o.payment_method, o.subtotal, o.shipping, o.total,
		        o.status, o.payment_status, o.tracking_number, o.created_at,
		        u.name, u.email
		 FROM orders o
		 JOIN users u ON o.user_id = u.id`+where+`
		 ORDER BY o.created_at DESC
		 LIMIT ? OFFSET ?`,
		append(params, limit, offset)...,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.AddressID, &o.PaymentMethod, &o.Subtotal, &o.Shipping, &o.Total,
			&o.Status, &o.PaymentStatus, &o.TrackingNumber, &o.CreatedAt,
			&o.UserName, &o.UserEmail,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}
		orders = append(orders, o)
	}

	pages := (total + limit - 1) / limit
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(orders),
		"total":   total,
		"page":    page,
		"pages":   pages,
		"data":    orders,
	})
}

// UpdateOrderStatus is the handler for PUT /api/admin/orders/:id.
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	var update models.OrderUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	if update.Status != nil && !models.ValidOrderStatus(*update.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status"})
		return
	}

	cols, args := update.Columns()
	if len(cols) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No fields to update"})
		return
	}

	args = append(args, c.Param("id"))
	if _, err := h.DB.Exec("UPDATE orders SET "+strings.Join(cols, ", ")+" WHERE id = ?", args...); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	var o models.Order
	err := h.DB.QueryRow(
		`SELECT id, user_id, address_id, payment_method, subtotal, shipping, total,
		        status, payment_status, tracking_number, created_at
		 FROM orders WHERE id = ?`,
		c.Param("id"),
	).Scan(
		&o.ID, &o.UserID, &o.AddressID, &o.PaymentMethod, &o.Subtotal, &o.Shipping, &o.Total,
		&o.Status, &o.PaymentStatus, &o.TrackingNumber, &o.CreatedAt,
	)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order updated successfully",
		"data":    o,
	})
}
