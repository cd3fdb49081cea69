package repos

import (
	"bookcourier/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type SellerRequestRepo struct{ db *sqlx.DB }

func NewSellerRequestRepo(db *sqlx.DB) *SellerRequestRepo { return &SellerRequestRepo{db: db} }

func (r *SellerRequestRepo) Create(email string) error {
	_, err := r.db.Exec(`
	  INSERT INTO seller_requests(id, email, created_at)
	  VALUES(?, ?, CURRENT_TIMESTAMP)
	`, uuid.NewString(), email)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *SellerRequestRepo) List() ([]domain.SellerRequest, error) {
	var out []domain.SellerRequest
	err := r.db.Select(&out, `
	  SELECT id, email, created_at FROM seller_requests
	  ORDER BY datetime(created_at) ASC`)
	return out, err
}

// DeleteByEmail drops any pending request; approving or denying both end here.
func (r *SellerRequestRepo) DeleteByEmail(email string) error {
	_, err := r.db.Exec(`DELETE FROM seller_requests WHERE email=?`, email)
	return err
}
