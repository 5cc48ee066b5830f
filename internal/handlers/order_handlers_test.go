package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires the handlers against a mocked database with a fake
// authenticated user injected where the auth middleware would run.
func newTestRouter(t *testing.T, userID int64, role string) (*gin.Engine, *Handlers, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h := New(db)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("userRole", role)
		c.Next()
	})
	return r, h, mock
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// Engine validation errors surface as 400s before any SQL runs.
func TestCreateOrderValidationStatuses(t *testing.T) {
	r, h, mock := newTestRouter(t, 42, "user")
	r.POST("/api/orders", h.CreateOrder)

	cases := []struct {
		name string
		body string
	}{
		{"no shipping target", `{"payment_method":"cod","items":[{"product_id":1,"quantity":1}]}`},
		{"bad payment method", `{"address_id":7,"payment_method":"cheque","items":[{"product_id":1,"quantity":1}]}`},
		{"empty items", `{"address_id":7,"payment_method":"cod","items":[]}`},
		{"zero quantity", `{"address_id":7,"payment_method":"cod","items":[{"product_id":1,"quantity":0}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/api/orders", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderMissingProductIs404(t *testing.T) {
	r, h, mock := newTestRouter(t, 42, "user")
	r.POST("/api/orders", h.CreateOrder)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM addresses WHERE id = \\? AND user_id = \\?").
		WithArgs(int64(7), int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery("SELECT price, stock FROM products WHERE id = \\? FOR UPDATE").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"price", "stock"}))
	mock.ExpectRollback()

	w := doJSON(r, http.MethodPost, "/api/orders",
		`{"address_id":7,"payment_method":"cod","items":[{"product_id":99,"quantity":1}]}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmOrderReceipt(t *testing.T) {
	t.Run("marks delivered and completed", func(t *testing.T) {
		r, h, mock := newTestRouter(t, 42, "user")
		r.PUT("/api/orders/:id/confirm", h.ConfirmOrderReceipt)

		mock.ExpectQuery("SELECT status FROM orders WHERE id = \\? AND user_id = \\?").
			WithArgs("10", int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("shipped"))
		mock.ExpectExec("UPDATE orders SET status = 'delivered', payment_status = 'completed' WHERE id = \\?").
			WithArgs("10").
			WillReturnResult(sqlmock.NewResult(0, 1))

		w := doJSON(r, http.MethodPut, "/api/orders/10/confirm", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already delivered", func(t *testing.T) {
		r, h, mock := newTestRouter(t, 42, "user")
		r.PUT("/api/orders/:id/confirm", h.ConfirmOrderReceipt)

		mock.ExpectQuery("SELECT status FROM orders WHERE id = \\? AND user_id = \\?").
			WithArgs("10", int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("delivered"))

		w := doJSON(r, http.MethodPut, "/api/orders/10/confirm", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cancelled order", func(t *testing.T) {
		r, h, mock := newTestRouter(t, 42, "user")
		r.PUT("/api/orders/:id/confirm", h.ConfirmOrderReceipt)

		mock.ExpectQuery("SELECT status FROM orders WHERE id = \\? AND user_id = \\?").
			WithArgs("10", int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("cancelled"))

		w := doJSON(r, http.MethodPut, "/api/orders/10/confirm", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("someone else's order", func(t *testing.T) {
		r, h, mock := newTestRouter(t, 42, "user")
		r.PUT("/api/orders/:id/confirm", h.ConfirmOrderReceipt)

		mock.ExpectQuery("SELECT status FROM orders WHERE id = \\? AND user_id = \\?").
			WithArgs("10", int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}))

		w := doJSON(r, http.MethodPut, "/api/orders/10/confirm", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	r, h, mock := newTestRouter(t, 1, "admin")
	r.PUT("/api/admin/orders/:id", h.UpdateOrderStatus)

	w := doJSON(r, http.MethodPut, "/api/admin/orders/10", `{"status":"refunded"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPut, "/api/admin/orders/10", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}
