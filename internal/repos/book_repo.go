package repos

import (
	"time"

	"bookcourier/internal/domain"

	"github.com/jmoiron/sqlx"
)

type BookRepo struct{ db *sqlx.DB }

func NewBookRepo(db *sqlx.DB) *BookRepo { return &BookRepo{db: db} }

const bookCols = `
  id, name, COALESCE(description,'') AS description, category, price, quantity,
  COALESCE(image,'') AS image,
  COALESCE(seller_name,'')  AS "seller.name",
  seller_email              AS "seller.email",
  COALESCE(seller_image,'') AS "seller.image",
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *BookRepo) Create(b domain.Book) error {
	_, err := r.db.Exec(`
	  INSERT INTO books(id,name,description,category,price,quantity,image,
	    seller_name,seller_email,seller_image,created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, b.ID, b.Name, b.Description, b.Category, b.Price, b.Quantity, b.Image,
		b.Seller.Name, b.Seller.Email, b.Seller.Image)
	return err
}

func (r *BookRepo) Get(id string) (domain.Book, error) {
	var b domain.Book
	err := r.db.Get(&b, `SELECT `+bookCols+` FROM books WHERE id = ?`, id)
	return b, err
}

// List returns the catalog, optionally filtered by category and/or seller.
func (r *BookRepo) List(category, sellerEmail string) ([]domain.Book, error) {
	where := `1=1`
	args := []any{}
	if category != "" {
		where += ` AND category = ?`
		args = append(args, category)
	}
	if sellerEmail != "" {
		where += ` AND seller_email = ?`
		args = append(args, sellerEmail)
	}

	var out []domain.Book
	err := r.db.Select(&out, `
	  SELECT `+bookCols+` FROM books
	  WHERE `+where+`
	  ORDER BY created_at DESC`, args...)
	return out, err
}

// BookUpdate carries the mutable fields; nil means leave unchanged.
type BookUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	Image       *string  `json:"image"`
}

func (r *BookRepo) Update(id string, upd BookUpdate) error {
	set := []string{}
	args := []any{}
	add := func(col string, v any) {
		set = append(set, col+" = ?")
		args = append(args, v)
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Category != nil {
		add("category", *upd.Category)
	}
	if upd.Price != nil {
		add("price", *upd.Price)
	}
	if upd.Quantity != nil {
		add("quantity", *upd.Quantity)
	}
	if upd.Image != nil {
		add("image", *upd.Image)
	}
	if len(set) == 0 {
		return nil
	}
	add("updated_at", time.Now().UTC().Format(time.RFC3339))

	args = append(args, id)
	q := `UPDATE books SET `
	for i, s := range set {
		if i > 0 {
			q += ", "
		}
		q += s
	}
	q += ` WHERE id = ?`
	_, err := r.db.Exec(q, args...)
	return err
}

func (r *BookRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM books WHERE id = ?`, id)
	return err
}

func (r *BookRepo) ByIDs(ids []string) ([]domain.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q, args, err := sqlx.In(`SELECT `+bookCols+` FROM books WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	var out []domain.Book
	err = r.db.Select(&out, q, args...)
	return out, err
}
