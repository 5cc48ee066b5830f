package reviews

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/shopello/shopello-golang/internal/database"
	"github.com/shopello/shopello-golang/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("product already reviewed by this user")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrForbidden       = errors.New("not allowed to delete this review")
)

// Aggregator owns every mutation of the reviews table. Each operation
// recomputes the product's rating and reviews_count inside the same
// transaction, so the cached aggregates can never drift from the rows.
type Aggregator struct {
	DB *sql.DB
}

func NewAggregator(db *sql.DB) *Aggregator {
	return &Aggregator{DB: db}
}

// AddReview inserts a review and refreshes the product aggregates
// atomically. The duplicate check and the insert share one transaction so
// two racing requests cannot both get through.
func (a *Aggregator) AddReview(ctx context.Context, userID, productID int64, rating int, comment *string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	var reviewID int64

	err := database.Transact(ctx, a.DB, nil, func(tx *sql.Tx) error {
		var exists int64
		err := tx.QueryRowContext(ctx, "SELECT id FROM products WHERE id = ?", productID).Scan(&exists)
		if err == sql.ErrNoRows {
			return ErrProductNotFound
		}
		if err != nil {
			return err
		}

		err = tx.QueryRowContext(ctx,
			"SELECT id FROM reviews WHERE user_id = ? AND product_id = ?",
			userID, productID,
		).Scan(&exists)
		if err == nil {
			return ErrDuplicateReview
		}
		if err != sql.ErrNoRows {
			return err
		}

		res, err := tx.ExecContext(ctx,
			"INSERT INTO reviews (user_id, product_id, rating, comment) VALUES (?, ?, ?, ?)",
			userID, productID, rating, comment,
		)
		if err != nil {
			return err
		}
		reviewID, err = res.LastInsertId()
		if err != nil {
			return err
		}

		return recomputeAggregates(ctx, tx, productID)
	})
	if err != nil {
		return nil, err
	}

	var r models.Review
	err = a.DB.QueryRowContext(ctx,
		"SELECT id, user_id, product_id, rating, comment, created_at FROM reviews WHERE id = ?",
		reviewID,
	).Scan(&r.ID, &r.UserID, &r.ProductID, &r.Rating, &r.Comment, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteReview removes a review owned by the requester (admins may remove
// any) and refreshes the product aggregates in the same transaction.
func (a *Aggregator) DeleteReview(ctx context.Context, reviewID, requesterID int64, isAdmin bool) error {
	return database.Transact(ctx, a.DB, nil, func(tx *sql.Tx) error {
		var ownerID, productID int64
		err := tx.QueryRowContext(ctx,
			"SELECT user_id, product_id FROM reviews WHERE id = ?",
			reviewID,
		).Scan(&ownerID, &productID)
		if err == sql.ErrNoRows {
			return ErrReviewNotFound
		}
		if err != nil {
			return err
		}

		if ownerID != requesterID && !isAdmin {
			return ErrForbidden
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM reviews WHERE id = ?", reviewID); err != nil {
			return err
		}

		return recomputeAggregates(ctx, tx, productID)
	})
}

// recomputeAggregates reloads every rating for the product and writes the
// derived mean (one decimal place) and count. Zero reviews reset the
// rating to 0.
func recomputeAggregates(ctx context.Context, tx *sql.Tx, productID int64) error {
	rows, err := tx.QueryContext(ctx, "SELECT rating FROM reviews WHERE product_id = ?", productID)
	if err != nil {
		return err
	}
	defer rows.Close()

	var ratings []int
	for rows.Next() {
		var r int
		if err := rows.Scan(&r); err != nil {
			return err
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	avg := AverageRating(ratings)

	_, err = tx.ExecContext(ctx,
		"UPDATE products SET rating = ?, reviews_count = ? WHERE id = ?",
		avg.StringFixed(1), len(ratings), productID,
	)
	return err
}

// AverageRating is the mean of ratings rounded to one decimal place, or 0
// when there are none.
func AverageRating(ratings []int) decimal.Decimal {
	if len(ratings) == 0 {
		return decimal.Zero
	}

	sum := decimal.Zero
	for _, r := range ratings {
		sum = sum.Add(decimal.NewFromInt(int64(r)))
	}
	return sum.Div(decimal.NewFromInt(int64(len(ratings)))).Round(1)
}
