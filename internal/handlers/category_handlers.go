package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"github.com/shopello/shopello-golang/internal/models"
)

// GetCategories is the handler for GET /api/products/categories.
func (h *Handlers) GetCategories(c *gin.Context) {
	rows, err := h.DB.Query("SELECT id, name, slug, description, image, created_at FROM categories ORDER BY name")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.Image, &cat.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}
		categories = append(categories, cat)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(categories), "data": categories})
}

// CreateCategoryInput is the JSON body for POST /api/admin/categories.
type CreateCategoryInput struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

// CreateCategory is the handler for POST /api/admin/categories.
func (h *Handlers) CreateCategory(c *gin.Context) {
	var input CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Category name is required"})
		return
	}

	res, err := h.DB.Exec(
		"INSERT INTO categories (name, slug, description, image) VALUES (?, ?, ?, ?)",
		input.Name, slug.Make(input.Name), input.Description, input.Image,
	)
	if err != nil {
		// Most likely the UNIQUE constraint on slug.
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Category could not be created (duplicate name?)"})
		return
	}
	id, _ := res.LastInsertId()

	var cat models.Category
	err = h.DB.QueryRow(
		"SELECT id, name, slug, description, image, created_at FROM categories WHERE id = ?", id,
	).Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.Image, &cat.CreatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Category created successfully",
		"data":    cat,
	})
}

// UpdateCategory is the handler for PUT /api/admin/categories/:id. Renames
// regenerate the slug alongside the name.
func (h *Handlers) UpdateCategory(c *gin.Context) {
	var update models.CategoryUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	cols, args := update.Columns()
	if len(cols) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No fields to update"})
		return
	}
	if update.Name != nil {
		cols = append(cols, "slug = ?")
		args = append(args, slug.Make(*update.Name))
	}

	args = append(args, c.Param("id"))
	if _, err := h.DB.Exec("UPDATE categories SET "+strings.Join(cols, ", ")+" WHERE id = ?", args...); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	var cat models.Category
	err := h.DB.QueryRow(
		"SELECT id, name, slug, description, image, created_at FROM categories WHERE id = ?", c.Param("id"),
	).Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.Image, &cat.CreatedAt)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category updated successfully",
		"data":    cat,
	})
}

// DeleteCategory is the handler for DELETE /api/admin/categories/:id.
// Products referencing it keep existing; their category_id becomes NULL.
func (h *Handlers) DeleteCategory(c *gin.Context) {
	res, err := h.DB.Exec("DELETE FROM categories WHERE id = ?", c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category deleted successfully"})
}
