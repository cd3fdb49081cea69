package repos

import (
	"bookcourier/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ReviewRepo struct{ db *sqlx.DB }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) Create(rv domain.Review) error {
	_, err := r.db.Exec(`
	  INSERT INTO reviews(id, book_id, email, rating, comment, created_at)
	  VALUES(?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, rv.ID, rv.BookID, rv.Email, rv.Rating, rv.Comment)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *ReviewRepo) ListByBook(bookID string) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.Select(&out, `
	  SELECT id, book_id, email, rating, COALESCE(comment,'') AS comment, created_at
	  FROM reviews
	  WHERE book_id = ?
	  ORDER BY datetime(created_at) DESC`, bookID)
	return out, err
}
