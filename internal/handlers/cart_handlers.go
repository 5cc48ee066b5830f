package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopello/shopello-golang/internal/models"
)

// loadCart fetches a user's cart joined with live product data.
func (h *Handlers) loadCart(userID int64) ([]models.CartItem, float64, error) {
	rows, err := h.DB.Query(
		`SELECT c.id, c.user_id, c.product_id, c.quantity, c.created_at,
		        p.name, p.price, p.image, p.stock
		 FROM cart c
		 JOIN products p ON c.product_id = p.id
		 WHERE c.user_id = ?`,
		userID,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []models.CartItem{}
	var total float64
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt,
			&item.Name, &item.Price, &item.Image, &item.Stock,
		); err != nil {
			return nil, 0, err
		}
		item.Subtotal = item.Price * float64(item.Quantity)
		total += item.Subtotal
		items = append(items, item)
	}
	return items, total, rows.Err()
}

func (h *Handlers) respondCart(c *gin.Context, status int, message string, userID int64) {
	items, total, err := h.loadCart(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	body := gin.H{"success": true, "count": len(items), "total": total, "data": items}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

// GetCart is the handler for GET /api/cart.
func (h *Handlers) GetCart(c *gin.Context) {
	h.respondCart(c, http.StatusOK, "", currentUserID(c))
}

// AddToCartInput is the JSON body for POST /api/cart.
type AddToCartInput struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"omitempty,gt=0"`
}

// AddToCart is the handler for POST /api/cart. Adding a product already in
// the cart bumps its quantity, re-checked against stock.
func (h *Handlers) AddToCart(c *gin.Context) {
	userID := currentUserID(c)

	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Product ID is required"})
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	var stock int
	err := h.DB.QueryRow("SELECT stock FROM products WHERE id = ?", input.ProductID).Scan(&stock)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	if stock < input.Quantity {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Insufficient stock"})
		return
	}

	var existingQty int
	err = h.DB.QueryRow(
		"SELECT quantity FROM cart WHERE user_id = ? AND product_id = ?",
		userID, input.ProductID,
	).Scan(&existingQty)

	switch {
	case err == sql.ErrNoRows:
		if _, err := h.DB.Exec(
			"INSERT INTO cart (user_id, product_id, quantity) VALUES (?, ?, ?)",
			userID, input.ProductID, input.Quantity,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}
	case err == nil:
		newQty := existingQty + input.Quantity
		if stock < newQty {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Insufficient stock"})
			return
		}
		if _, err := h.DB.Exec(
			"UPDATE cart SET quantity = ? WHERE user_id = ? AND product_id = ?",
			newQty, userID, input.ProductID,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	h.respondCart(c, http.StatusOK, "Item added to cart", userID)
}

// UpdateCartItemInput is the JSON body for PUT /api/cart/:id.
type UpdateCartItemInput struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// UpdateCartItem is the handler for PUT /api/cart/:id.
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	userID := currentUserID(c)

	var input UpdateCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Valid quantity is required"})
		return
	}

	var stock int
	err := h.DB.QueryRow(
		`SELECT p.stock FROM cart c JOIN products p ON c.product_id = p.id
		 WHERE c.id = ? AND c.user_id = ?`,
		c.Param("id"), userID,
	).Scan(&stock)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cart item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	if stock < input.Quantity {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Insufficient stock"})
		return
	}

	if _, err := h.DB.Exec(
		"UPDATE cart SET quantity = ? WHERE id = ? AND user_id = ?",
		input.Quantity, c.Param("id"), userID,
	); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	h.respondCart(c, http.StatusOK, "Cart updated", userID)
}

// RemoveFromCart is the handler for DELETE /api/cart/:id.
func (h *Handlers) RemoveFromCart(c *gin.Context) {
	userID := currentUserID(c)

	res, err := h.DB.Exec("DELETE FROM cart WHERE id = ? AND user_id = ?", c.Param("id"), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cart item not found"})
		return
	}

	h.respondCart(c, http.StatusOK, "Item removed from cart", userID)
}

// ClearCart is the handler for DELETE /api/cart.
func (h *Handlers) ClearCart(c *gin.Context) {
	if _, err := h.DB.Exec("DELETE FROM cart WHERE user_id = ?", currentUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart cleared"})
}
