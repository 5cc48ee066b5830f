package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopello/shopello-golang/internal/models"
)

//
// --- Admin User Management ---
//

// GetUsers is the handler for GET /api/admin/users.
func (h *Handlers) GetUsers(c *gin.Context) {
	where := ""
	var params []interface{}
	if role := c.Query("role"); role != "" {
		where = " WHERE role = ?"
		params = append(params, role)
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
	if err := h.DB.QueryRow("SELECT COUNT(*) FROM users"+where, params...).Scan(&total); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	rows, err := h.DB.Query(
		"SELECT id, name, email, role, phone, created_at FROM users"+where+
			" ORDER BY created_at DESC LIMIT ? OFFSET ?",
		append(params, limit, offset)...,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Phone, &u.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}
		users = append(users, u)
	}

	pages := (total + limit - 1) / limit
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(users),
		"total":   total,
		"page":    page,
		"pages":   pages,
		"data":    users,
	})
}

// UpdateUserRoleInput is the JSON body for PUT /api/admin/users/:id.
type UpdateUserRoleInput struct {
	Role string `json:"role" binding:"required"`
}

// UpdateUserRole is the handler for PUT /api/admin/users/:id.
func (h *Handlers) UpdateUserRole(c *gin.Context) {
	var input UpdateUserRoleInput
	if err := c.ShouldBindJSON(&input); err != nil || (input.Role != "user" && input.Role != "admin") {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid role"})
		return
	}

	res, err := h.DB.Exec("UPDATE users SET role = ? WHERE id = ?", input.Role, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int64
		if err := h.DB.QueryRow("SELECT id FROM users WHERE id = ?", c.Param("id")).Scan(&exists); err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
	}

	var u models.User
	err = h.DB.QueryRow(
		"SELECT id, name, email, role, phone, created_at FROM users WHERE id = ?", c.Param("id"),
	).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Phone, &u.CreatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User role updated", "data": u})
}

// DeleteUser is the handler for DELETE /api/admin/users/:id. Admins cannot
// delete themselves; only the super admin may delete other admins; the
// super admin itself cannot be deleted.
func (h *Handlers) DeleteUser(c *gin.Context) {
	requesterID := currentUserID(c)
	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user id"})
		return
	}

	if targetID == requesterID {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cannot delete your own account"})
		return
	}

	var targetRole string
	var targetIsSuper bool
	err = h.DB.QueryRow(
		"SELECT role, is_super_admin FROM users WHERE id = ?", targetID,
	).Scan(&targetRole, &targetIsSuper)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	if targetIsSuper {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "The Primary Administrator cannot be deleted"})
		return
	}

	if targetRole == "admin" {
		var requesterIsSuper bool
		if err := h.DB.QueryRow(
			"SELECT is_super_admin FROM users WHERE id = ?", requesterID,
		).Scan(&requesterIsSuper); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}
		if !requesterIsSuper {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Only the Primary Administrator can delete other admins"})
			return
		}
	}

	if _, err := h.DB.Exec("DELETE FROM users WHERE id = ?", targetID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted successfully"})
}

// CreateAdmin is the handler for POST /api/admin/create-admin. The new
// account gets the admin role but never the super admin flag.
func (h *Handlers) CreateAdmin(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide all required fields"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var existingID int64
	err := h.DB.QueryRow("SELECT id FROM users WHERE email = ?", email).Scan(&existingID)
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User already exists with this email"})
		return
	}
	if err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	var password models.Password
	if err := password.Set(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to hash password"})
		return
	}

	res, err := h.DB.Exec(
		"INSERT INTO users (name, email, password, role) VALUES (?, ?, ?, 'admin')",
		input.Name, email, password.Hash,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	id, _ := res.LastInsertId()

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "New admin created successfully",
		"data":    gin.H{"id": id, "name": input.Name, "email": email, "role": "admin"},
	})
}
