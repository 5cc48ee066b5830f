package reviews

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockAggregator(t *testing.T) (*Aggregator, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAggregator(db), mock
}

func TestAverageRating(t *testing.T) {
	cases := []struct {
		ratings []int
		want    string
	}{
		{nil, "0"},
		{[]int{5}, "5"},
		{[]int{4, 5}, "4.5"},
		{[]int{1, 2}, "1.5"},
		{[]int{2, 3, 3}, "2.7"}, // 8/3 rounds up at the second decimal
		{[]int{1, 1, 1, 2}, "1.3"},
	}

	for _, tc := range cases {
		got := AverageRating(tc.ratings)
		assert.Equal(t, tc.want, got.String(), "ratings %v", tc.ratings)
	}
}

func TestAddReviewRecomputesAggregates(t *testing.T) {
	agg, mock := newMockAggregator(t)
	userID, productID := int64(42), int64(3)
	comment := "solid"

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM products WHERE id = \\?").
		WithArgs(productID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(productID))
	mock.ExpectQuery("SELECT id FROM reviews WHERE user_id = \\? AND product_id = \\?").
		WithArgs(userID, productID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO reviews").
		WithArgs(userID, productID, 5, comment).
		WillReturnResult(sqlmock.NewResult(17, 1))
	mock.ExpectQuery("SELECT rating FROM reviews WHERE product_id = \\?").
		WithArgs(productID).
		WillReturnRows(sqlmock.NewRows([]string{"rating"}).AddRow(4).AddRow(5))
	mock.ExpectExec("UPDATE products SET rating = \\?, reviews_count = \\? WHERE id = \\?").
		WithArgs("4.5", 2, productID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	now := time.Now()
	mock.ExpectQuery("SELECT id, user_id, product_id, rating, comment, created_at FROM reviews WHERE id = \\?").
		WithArgs(int64(17)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "product_id", "rating", "comment", "created_at"}).
			AddRow(17, userID, productID, 5, comment, now))

	review, err := agg.AddReview(context.Background(), userID, productID, 5, &comment)
	require.NoError(t, err)
	assert.Equal(t, int64(17), review.ID)
	assert.Equal(t, 5, review.Rating)
	require.NotNil(t, review.Comment)
	assert.Equal(t, "solid", *review.Comment)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddReviewInvalidRating(t *testing.T) {
	agg, mock := newMockAggregator(t)

	for _, rating := range []int{0, -1, 6} {
		_, err := agg.AddReview(context.Background(), 42, 3, rating, nil)
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %d", rating)
	}

	// Rating validation never reaches the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddReviewUnknownProduct(t *testing.T) {
	agg, mock := newMockAggregator(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM products WHERE id = \\?").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := agg.AddReview(context.Background(), 42, 99, 4, nil)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddReviewDuplicateRollsBack(t *testing.T) {
	agg, mock := newMockAggregator(t)
	userID, productID := int64(42), int64(3)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM products WHERE id = \\?").
		WithArgs(productID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(productID))
	mock.ExpectQuery("SELECT id FROM reviews WHERE user_id = \\? AND product_id = \\?").
		WithArgs(userID, productID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectRollback()

	_, err := agg.AddReview(context.Background(), userID, productID, 4, nil)
	assert.ErrorIs(t, err, ErrDuplicateReview)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Deleting the last review resets the product to an unrated state.
func TestDeleteReviewResetsAggregates(t *testing.T) {
	agg, mock := newMockAggregator(t)
	reviewID, ownerID, productID := int64(17), int64(42), int64(3)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT user_id, product_id FROM reviews WHERE id = \\?").
		WithArgs(reviewID).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "product_id"}).AddRow(ownerID, productID))
	mock.ExpectExec("DELETE FROM reviews WHERE id = \\?").
		WithArgs(reviewID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT rating FROM reviews WHERE product_id = \\?").
		WithArgs(productID).
		WillReturnRows(sqlmock.NewRows([]string{"rating"}))
	mock.ExpectExec("UPDATE products SET rating = \\?, reviews_count = \\? WHERE id = \\?").
		WithArgs("0.0", 0, productID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := agg.DeleteReview(context.Background(), reviewID, ownerID, false)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReviewForbiddenForStranger(t *testing.T) {
	agg, mock := newMockAggregator(t)
	reviewID, ownerID, productID := int64(17), int64(42), int64(3)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT user_id, product_id FROM reviews WHERE id = \\?").
		WithArgs(reviewID).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "product_id"}).AddRow(ownerID, productID))
	mock.ExpectRollback()

	err := agg.DeleteReview(context.Background(), reviewID, 99, false)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReviewAdminOverridesOwnership(t *testing.T) {
	agg, mock := newMockAggregator(t)
	reviewID, ownerID, productID := int64(17), int64(42), int64(3)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT user_id, product_id FROM reviews WHERE id = \\?").
		WithArgs(reviewID).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "product_id"}).AddRow(ownerID, productID))
	mock.ExpectExec("DELETE FROM reviews WHERE id = \\?").
		WithArgs(reviewID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT rating FROM reviews WHERE product_id = \\?").
		WithArgs(productID).
		WillReturnRows(sqlmock.NewRows([]string{"rating"}).AddRow(3))
	mock.ExpectExec("UPDATE products SET rating = \\?, reviews_count = \\? WHERE id = \\?").
		WithArgs("3.0", 1, productID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := agg.DeleteReview(context.Background(), reviewID, 99, true)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReviewNotFound(t *testing.T) {
	agg, mock := newMockAggregator(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT user_id, product_id FROM reviews WHERE id = \\?").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := agg.DeleteReview(context.Background(), 404, 42, false)
	assert.ErrorIs(t, err, ErrReviewNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
