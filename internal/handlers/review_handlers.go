package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopello/shopello-golang/internal/models"
	"github.com/shopello/shopello-golang/internal/reviews"
)

// GetProductReviews is the handler for GET /api/reviews/product/:id.
func (h *Handlers) GetProductReviews(c *gin.Context) {
	rows, err := h.DB.Query(
		`SELECT r.id, r.user_id, r.product_id, r.rating, r.comment, r.created_at, u.name
		 FROM reviews r
		 JOIN users u ON r.user_id = u.id
		 WHERE r.product_id = ?
		 ORDER BY r.created_at DESC`,
		c.Param("id"),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	defer rows.Close()

	items := []models.Review{}
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.UserID, &r.ProductID, &r.Rating, &r.Comment, &r.CreatedAt, &r.UserName); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}
		items = append(items, r)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(items), "data": items})
}

// AddReviewInput is the JSON body for POST /api/reviews.
type AddReviewInput struct {
	ProductID int64   `json:"product_id" binding:"required"`
	Rating    int     `json:"rating" binding:"required"`
	Comment   *string `json:"comment"`
}

// AddReview is the handler for POST /api/reviews. The aggregator performs
// the duplicate check, insert and product aggregate refresh atomically.
func (h *Handlers) AddReview(c *gin.Context) {
	var input AddReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide product ID and rating"})
		return
	}

	review, err := h.Reviews.AddReview(c.Request.Context(), currentUserID(c), input.ProductID, input.Rating, input.Comment)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Rating must be between 1 and 5"})
		case errors.Is(err, reviews.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		case errors.Is(err, reviews.ErrDuplicateReview):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "You have already reviewed this product"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Review added successfully",
		"data":    review,
	})
}

// DeleteReview is the handler for DELETE /api/reviews/:id.
func (h *Handlers) DeleteReview(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid review id"})
		return
	}

	isAdmin := currentUserRole(c) == "admin"
	err = h.Reviews.DeleteReview(c.Request.Context(), reviewID, currentUserID(c), isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Review not found"})
		case errors.Is(err, reviews.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized to delete this review"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review deleted"})
}
