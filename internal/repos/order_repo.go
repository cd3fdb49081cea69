package repos

import (
	"database/sql"

	"bookcourier/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `
  id, book_id, transaction_id, customer_email, status,
  COALESCE(name,'') AS name, COALESCE(category,'') AS category, price,
  COALESCE(image,'') AS image,
  COALESCE(seller_name,'')  AS "seller.name",
  COALESCE(seller_email,'') AS "seller.email",
  COALESCE(seller_image,'') AS "seller.image",
  quantity, created_at`

// Materialize creates the durable order and takes one unit of stock in a
// single transaction. The decrement is conditional on quantity > 0, and the
// insert hits the unique transaction_id index, so two concurrent confirms of
// the same payment can never double-write: the loser sees ErrDuplicate.
func (r *OrderRepo) Materialize(o domain.Order) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
	  UPDATE books SET quantity = quantity - 1
	  WHERE id = ? AND quantity > 0
	`, o.BookID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSoldOut
	}

	if _, err := tx.Exec(`
	  INSERT INTO orders(id, book_id, transaction_id, customer_email, status,
	    name, category, price, image, seller_name, seller_email, seller_image,
	    quantity, created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, o.ID, o.BookID, o.TransactionID, o.Customer, o.Status,
		o.Name, o.Category, o.Price, o.Image,
		o.Seller.Name, o.Seller.Email, o.Seller.Image, o.Quantity); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}

	return tx.Commit()
}

func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id = ?`, id)
	return o, err
}

// ByTransaction looks an order up by its payment-intent identifier.
// Returns nil, nil when none exists.
func (r *OrderRepo) ByTransaction(txnID string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE transaction_id = ?`, txnID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) ListByCustomer(email string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT `+orderCols+` FROM orders
	  WHERE customer_email = ?
	  ORDER BY datetime(created_at) DESC`, email)
	return out, err
}

func (r *OrderRepo) ListBySeller(email string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT `+orderCols+` FROM orders
	  WHERE seller_email = ?
	  ORDER BY datetime(created_at) DESC`, email)
	return out, err
}

func (r *OrderRepo) ListAll() ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT `+orderCols+` FROM orders
	  ORDER BY datetime(created_at) DESC`)
	return out, err
}

// HasConfirmed reports whether the customer holds any order for the book
// (review eligibility and the /orders/check endpoint).
func (r *OrderRepo) HasConfirmed(email, bookID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*) FROM orders
	  WHERE customer_email = ? AND book_id = ?`, email, bookID)
	return n > 0, err
}

// UpdateStatusFrom flips the status only when the current value still equals
// "from", so a stale admin view cannot skip a transition check. Returns the
// number of rows changed.
func (r *OrderRepo) UpdateStatusFrom(id, from, to string) (int64, error) {
	res, err := r.db.Exec(`
	  UPDATE orders SET status = ? WHERE id = ? AND status = ?`, to, id, from)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *OrderRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM orders WHERE id = ?`, id)
	return err
}
