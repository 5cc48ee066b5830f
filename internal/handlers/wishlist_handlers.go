package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopello/shopello-golang/internal/models"
)

// GetWishlist is the handler for GET /api/wishlist.
func (h *Handlers) GetWishlist(c *gin.Context) {
	rows, err := h.DB.Query(
		`SELECT w.id, w.user_id, w.product_id, w.created_at, p.name, p.price, p.image, p.stock, p.rating
		 FROM wishlist w
		 JOIN products p ON w.product_id = p.id
		 WHERE w.user_id = ?`,
		currentUserID(c),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	defer rows.Close()

	items := []models.WishlistItem{}
	for rows.Next() {
		var item models.WishlistItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.CreatedAt, &item.Name, &item.Price, &item.Image, &item.Stock, &item.Rating); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(items), "data": items})
}

// AddToWishlistInput is the JSON body for POST /api/wishlist.
type AddToWishlistInput struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

// AddToWishlist is the handler for POST /api/wishlist.
func (h *Handlers) AddToWishlist(c *gin.Context) {
	userID := currentUserID(c)

	var input AddToWishlistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Product ID is required"})
		return
	}

	var exists int64
	err := h.DB.QueryRow("SELECT id FROM products WHERE id = ?", input.ProductID).Scan(&exists)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	err = h.DB.QueryRow(
		"SELECT id FROM wishlist WHERE user_id = ? AND product_id = ?",
		userID, input.ProductID,
	).Scan(&exists)
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Product already in wishlist"})
		return
	}
	if err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	if _, err := h.DB.Exec(
		"INSERT INTO wishlist (user_id, product_id) VALUES (?, ?)",
		userID, input.ProductID,
	); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Product added to wishlist"})
}

// RemoveFromWishlist is the handler for DELETE /api/wishlist/:id, where
// :id is the product id.
func (h *Handlers) RemoveFromWishlist(c *gin.Context) {
	res, err := h.DB.Exec(
		"DELETE FROM wishlist WHERE product_id = ? AND user_id = ?",
		c.Param("id"), currentUserID(c),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Item not found in wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product removed from wishlist"})
}
