package handlers

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/shopello/shopello-golang/internal/checkout"
	"github.com/shopello/shopello-golang/internal/reviews"
)

// Handlers holds all dependencies for the HTTP layer.
type Handlers struct {
	DB       *sql.DB
	Checkout *checkout.Engine
	Reviews  *reviews.Aggregator
}

func New(db *sql.DB) *Handlers {
	return &Handlers{
		DB:       db,
		Checkout: checkout.NewEngine(db),
		Reviews:  reviews.NewAggregator(db),
	}
}

// currentUserID reads the authenticated user id set by AuthMiddleware.
func currentUserID(c *gin.Context) int64 {
	raw, _ := c.Get("userID")
	id, _ := raw.(int64)
	return id
}

// currentUserRole reads the authenticated role set by AuthMiddleware.
func currentUserRole(c *gin.Context) string {
	raw, _ := c.Get("userRole")
	role, _ := raw.(string)
	return role
}
