package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopello/shopello-golang/internal/database"
	"github.com/shopello/shopello-golang/internal/models"
)

func (h *Handlers) fetchAddress(id interface{}) (*models.Address, error) {
	var a models.Address
	err := h.DB.QueryRow(
		`SELECT id, user_id, full_name, address_line1, address_line2, city, state, zip_code, country, is_default, created_at
		 FROM addresses WHERE id = ?`, id,
	).Scan(&a.ID, &a.UserID, &a.FullName, &a.AddressLine1, &a.AddressLine2, &a.City, &a.State, &a.ZipCode, &a.Country, &a.IsDefault, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAddresses is the handler for GET /api/addresses.
func (h *Handlers) GetAddresses(c *gin.Context) {
	rows, err := h.DB.Query(
		`SELECT id, user_id, full_name, address_line1, address_line2, city, state, zip_code, country, is_default, created_at
		 FROM addresses WHERE user_id = ? ORDER BY is_default DESC, created_at DESC`,
		currentUserID(c),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	defer rows.Close()

	addresses := []models.Address{}
	for rows.Next() {
		var a models.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.FullName, &a.AddressLine1, &a.AddressLine2, &a.City, &a.State, &a.ZipCode, &a.Country, &a.IsDefault, &a.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}
		addresses = append(addresses, a)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(addresses), "data": addresses})
}

// AddAddressInput is the JSON body for POST /api/addresses.
type AddAddressInput struct {
	FullName     string  `json:"full_name" binding:"required"`
	AddressLine1 string  `json:"address_line1" binding:"required"`
	AddressLine2 *string `json:"address_line2"`
	City         string  `json:"city" binding:"required"`
	State        *string `json:"state"`
	ZipCode      string  `json:"zip_code" binding:"required"`
	Country      string  `json:"country" binding:"required"`
	IsDefault    bool    `json:"is_default"`
}

// AddAddress is the handler for POST /api/addresses. The first address a
// user creates becomes the default; an explicit is_default displaces the
// previous default inside one transaction.
func (h *Handlers) AddAddress(c *gin.Context) {
	userID := currentUserID(c)

	var input AddAddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide required address fields (full_name, address_line1, city, zip_code, country)"})
		return
	}

	var newID int64
	err := database.Transact(c.Request.Context(), h.DB, nil, func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRow("SELECT COUNT(*) FROM addresses WHERE user_id = ?", userID).Scan(&count); err != nil {
			return err
		}

		isDefault := count == 0 || input.IsDefault
		if isDefault {
			if _, err := tx.Exec("UPDATE addresses SET is_default = FALSE WHERE user_id = ?", userID); err != nil {
				return err
			}
		}

		res, err := tx.Exec(
			`INSERT INTO addresses (user_id, full_name, address_line1, address_line2, city, state, zip_code, country, is_default)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			userID, input.FullName, input.AddressLine1, input.AddressLine2,
			input.City, input.State, input.ZipCode, input.Country, isDefault,
		)
		if err != nil {
			return err
		}
		newID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	address, err := h.fetchAddress(newID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Address added successfully",
		"data":    address,
	})
}

// UpdateAddress is the handler for PUT /api/addresses/:id.
func (h *Handlers) UpdateAddress(c *gin.Context) {
	userID := currentUserID(c)

	var ownerID int64
	err := h.DB.QueryRow("SELECT user_id FROM addresses WHERE id = ?", c.Param("id")).Scan(&ownerID)
	if err == sql.ErrNoRows || (err == nil && ownerID != userID) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Address not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	var update models.AddressUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	cols, args := update.Columns()
	if len(cols) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No fields to update"})
		return
	}

	args = append(args, c.Param("id"))
	if _, err := h.DB.Exec("UPDATE addresses SET "+strings.Join(cols, ", ")+" WHERE id = ?", args...); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	address, err := h.fetchAddress(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Address updated successfully",
		"data":    address,
	})
}

// DeleteAddress is the handler for DELETE /api/addresses/:id. Deleting the
// default address promotes the most recently created survivor, inside the
// same transaction as the delete.
func (h *Handlers) DeleteAddress(c *gin.Context) {
	userID := currentUserID(c)

	err := database.Transact(c.Request.Context(), h.DB, nil, func(tx *sql.Tx) error {
		var wasDefault bool
		err := tx.QueryRow(
			"SELECT is_default FROM addresses WHERE id = ? AND user_id = ?",
			c.Param("id"), userID,
		).Scan(&wasDefault)
		if err != nil {
			return err
		}

		if _, err := tx.Exec("DELETE FROM addresses WHERE id = ?", c.Param("id")); err != nil {
			return err
		}

		if wasDefault {
			if _, err := tx.Exec(
				"UPDATE addresses SET is_default = TRUE WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT 1",
				userID,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Address not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Address deleted successfully"})
}

// SetDefaultAddress is the handler for PUT /api/addresses/:id/default.
func (h *Handlers) SetDefaultAddress(c *gin.Context) {
	userID := currentUserID(c)

	err := database.Transact(c.Request.Context(), h.DB, nil, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRow(
			"SELECT id FROM addresses WHERE id = ? AND user_id = ?",
			c.Param("id"), userID,
		).Scan(&id)
		if err != nil {
			return err
		}

		if _, err := tx.Exec("UPDATE addresses SET is_default = FALSE WHERE user_id = ?", userID); err != nil {
			return err
		}
		_, err = tx.Exec("UPDATE addresses SET is_default = TRUE WHERE id = ?", id)
		return err
	})
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Address not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	address, err := h.fetchAddress(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Default address updated",
		"data":    address,
	})
}
