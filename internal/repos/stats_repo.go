package repos

import (
	"bookcourier/internal/domain"

	"github.com/jmoiron/sqlx"
)

type StatsRepo struct{ db *sqlx.DB }

func NewStatsRepo(db *sqlx.DB) *StatsRepo { return &StatsRepo{db: db} }

// Summary computes the public marketplace totals in one pass per table.
// Revenue counts delivered orders only.
func (r *StatsRepo) Summary() (domain.Stats, error) {
	var s domain.Stats

	if err := r.db.Get(&s.TotalBooks, `SELECT COUNT(*) FROM books`); err != nil {
		return s, err
	}
	if err := r.db.Get(&s.TotalCustomers, `SELECT COUNT(*) FROM users WHERE role='customer'`); err != nil {
		return s, err
	}
	if err := r.db.Get(&s.TotalSellers, `SELECT COUNT(*) FROM users WHERE role='seller'`); err != nil {
		return s, err
	}
	if err := r.db.Get(&s.TotalOrders, `SELECT COUNT(*) FROM orders WHERE status='delivered'`); err != nil {
		return s, err
	}
	if err := r.db.Get(&s.TotalRevenue, `
	  SELECT COALESCE(SUM(price),0) FROM orders WHERE status='delivered'`); err != nil {
		return s, err
	}
	if err := r.db.Select(&s.Categories, `
	  SELECT category, COUNT(*) AS count FROM books
	  GROUP BY category
	  ORDER BY count DESC`); err != nil {
		return s, err
	}

	return s, nil
}
