package repos

import (
	"bookcourier/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type WishlistRepo struct{ db *sqlx.DB }

func NewWishlistRepo(db *sqlx.DB) *WishlistRepo { return &WishlistRepo{db: db} }

func (r *WishlistRepo) Add(email, bookID string) error {
	_, err := r.db.Exec(`
	  INSERT INTO wishlist(id, email, book_id, created_at)
	  VALUES(?, ?, ?, CURRENT_TIMESTAMP)
	`, uuid.NewString(), email, bookID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *WishlistRepo) Remove(email, bookID string) error {
	_, err := r.db.Exec(`DELETE FROM wishlist WHERE email=? AND book_id=?`, email, bookID)
	return err
}

func (r *WishlistRepo) Exists(email, bookID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM wishlist WHERE email=? AND book_id=?`, email, bookID)
	return n > 0, err
}

// ListBooks resolves the caller's wishlist into full catalog rows.
func (r *WishlistRepo) ListBooks(email string) ([]domain.Book, error) {
	var out []domain.Book
	err := r.db.Select(&out, `
	  SELECT `+bookCols+` FROM books
	  WHERE id IN (SELECT book_id FROM wishlist WHERE email = ?)
	  ORDER BY created_at DESC`, email)
	return out, err
}
