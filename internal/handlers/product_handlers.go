package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopello/shopello-golang/internal/models"
)

const productColumns = `p.id, p.name, p.description, p.price, p.category_id, p.stock, p.image,
	p.rating, p.reviews_count, p.created_at, c.name`

func scanProduct(row interface{ Scan(...interface{}) error }) (models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.CategoryID, &p.Stock, &p.Image,
		&p.Rating, &p.ReviewsCount, &p.CreatedAt, &p.CategoryName,
	)
	return p, err
}

// GetProducts is the handler for GET /api/products. Supports category,
// price range, minimum rating and text filters plus sorting/pagination.
func (h *Handlers) GetProducts(c *gin.Context) {
	where := " WHERE 1=1"
	var params []interface{}

	if category := c.Query("category"); category != "" {
		where += " AND p.category_id = ?"
		params = append(params, category)
	}
	if minPrice := c.Query("minPrice"); minPrice != "" {
		if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
			where += " AND p.price >= ?"
			params = append(params, v)
		}
	}
	if maxPrice := c.Query("maxPrice"); maxPrice != "" {
		if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			where += " AND p.price <= ?"
			params = append(params, v)
		}
	}
	if minRating := c.Query("minRating"); minRating != "" {
		if v, err := strconv.ParseFloat(minRating, 64); err == nil {
			where += " AND p.rating >= ?"
			params = append(params, v)
		}
	}
	if search := c.Query("search"); search != "" {
		where += " AND (p.name LIKE ? OR p.description LIKE ?)"
		like := "%" + search + "%"
		params = append(params, like, like)
	}

	// Sorting is restricted to a fixed column whitelist; anything else
	// falls back to created_at.
	sort := c.DefaultQuery("sort", "created_at")
	switch sort {
	case "price", "rating", "created_at", "name":
	default:
		sort = "created_at"
	}
	order := "DESC"
	if strings.EqualFold(c.DefaultQuery("order", "DESC"), "ASC") {
		order = "ASC"
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))
	if limit < 1 || limit > 100 {
		limit = 12
	}
	offset := (page - 1) * limit

	var total int
	countQuery := "SELECT COUNT(*) FROM products p LEFT JOIN categories c ON p.category_id = c.id" + where
	if err := h.DB.QueryRow(countQuery, params...).Scan(&total); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	query := "SELECT " + productColumns + " FROM products p LEFT JOIN categories c ON p.category_id = c.id" +
		where + " ORDER BY p." + sort + " " + order + " LIMIT ? OFFSET ?"
	rows, err := h.DB.Query(query, append(params, limit, offset)...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}
		products = append(products, p)
	}

	pages := (total + limit - 1) / limit
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(products),
		"total":   total,
		"page":    page,
		"pages":   pages,
		"data":    products,
	})
}

// GetProduct is the handler for GET /api/products/:id.
func (h *Handlers) GetProduct(c *gin.Context) {
	row := h.DB.QueryRow(
		"SELECT "+productColumns+" FROM products p LEFT JOIN categories c ON p.category_id = c.id WHERE p.id = ?",
		c.Param("id"),
	)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
}

// CreateProductInput is the JSON body for POST /api/products (admin).
type CreateProductInput struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	CategoryID  int64   `json:"category_id" binding:"required"`
	Stock       int     `json:"stock" binding:"gte=0"`
	Image       *string `json:"image"`
}

// CreateProduct is the handler for POST /api/products (admin).
func (h *Handlers) CreateProduct(c *gin.Context) {
	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide name, price, and category"})
		return
	}

	res, err := h.DB.Exec(
		"INSERT INTO products (name, description, price, category_id, stock, image) VALUES (?, ?, ?, ?, ?, ?)",
		input.Name, input.Description, input.Price, input.CategoryID, input.Stock, input.Image,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	id, _ := res.LastInsertId()

	row := h.DB.QueryRow(
		"SELECT "+productColumns+" FROM products p LEFT JOIN categories c ON p.category_id = c.id WHERE p.id = ?",
		id,
	)
	p, err := scanProduct(row)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Product created successfully",
		"data":    p,
	})
}

// UpdateProduct is the handler for PUT /api/products/:id (admin). The
// updatable columns are enumerated on models.ProductUpdate rather than
// assembled from arbitrary request keys.
func (h *Handlers) UpdateProduct(c *gin.Context) {
	var update models.ProductUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	cols, args := update.Columns()
	if len(cols) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No fields to update"})
		return
	}
	if update.Stock != nil && *update.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Stock cannot be negative"})
		return
	}
	if update.Price != nil && *update.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Price must be positive"})
		return
	}

	args = append(args, c.Param("id"))
	res, err := h.DB.Exec("UPDATE products SET "+strings.Join(cols, ", ")+" WHERE id = ?", args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish "missing" from "unchanged".
		var exists int64
		if err := h.DB.QueryRow("SELECT id FROM products WHERE id = ?", c.Param("id")).Scan(&exists); err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
	}

	row := h.DB.QueryRow(
		"SELECT "+productColumns+" FROM products p LEFT JOIN categories c ON p.category_id = c.id WHERE p.id = ?",
		c.Param("id"),
	)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product updated successfully",
		"data":    p,
	})
}

// DeleteProduct is the handler for DELETE /api/products/:id (admin).
func (h *Handlers) DeleteProduct(c *gin.Context) {
	res, err := h.DB.Exec("DELETE FROM products WHERE id = ?", c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted successfully"})
}
