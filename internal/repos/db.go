package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Demo accounts and a starter catalog (idempotent; safe on every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}
	if err := seedBooks(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Books (catalog items, seller descriptor denormalized)
CREATE TABLE IF NOT EXISTS books(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  category TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
  image TEXT,
  seller_name TEXT,
  seller_email TEXT NOT NULL,
  seller_image TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_books_category ON books(category);
CREATE INDEX IF NOT EXISTS idx_books_seller   ON books(seller_email);

-- Orders. transaction_id is the gateway payment-intent and doubles as the
-- idempotency key: the unique index makes duplicate materialization a
-- constraint violation instead of a race.
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  book_id TEXT NOT NULL,
  transaction_id TEXT NOT NULL,
  customer_email TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending'
    CHECK (status IN ('pending','in-progress','delivered','cancelled')),
  name TEXT,
  category TEXT,
  price NUMERIC NOT NULL,
  image TEXT,
  seller_name TEXT,
  seller_email TEXT,
  seller_image TEXT,
  quantity INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_txn      ON orders(transaction_id);
CREATE INDEX IF NOT EXISTS idx_orders_customer        ON orders(customer_email);
CREATE INDEX IF NOT EXISTS idx_orders_seller          ON orders(seller_email);

-- Accounts (email is the lookup key everywhere)
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT,
  image TEXT,
  role TEXT NOT NULL CHECK (role IN ('customer','seller','admin')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_login TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

-- One pending escalation request per account
CREATE TABLE IF NOT EXISTS seller_requests(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Wishlist, one row per (email, book)
CREATE TABLE IF NOT EXISTS wishlist(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  book_id TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(email, book_id)
);

-- Reviews, one per account per book
CREATE TABLE IF NOT EXISTS reviews(
  id TEXT PRIMARY KEY,
  book_id TEXT NOT NULL,
  email TEXT NOT NULL,
  rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
  comment TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(book_id, email)
);
CREATE INDEX IF NOT EXISTS idx_reviews_book ON reviews(book_id);
`
	_, err := db.Exec(schema)
	return err
}

// seedUsers ensures the demo accounts exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role string
	}
	users := []u{
		{"u-admin", "admin@bookcourier.com", "Admin", "admin"},
		{"u-seller", "seller@bookcourier.com", "Seller", "seller"},
		{"u-customer", "customer@bookcourier.com", "Customer", "customer"},
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,role)
			VALUES(?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// seedBooks inserts a small starter catalog if the table is empty.
func seedBooks(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM books`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo books")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO books(id,name,description,category,price,quantity,image,seller_name,seller_email,seller_image) VALUES
	  ('bk-kafka','The Trial','Kafka paperback, good condition','Fiction',12.50,6,'books/bk-kafka.jpg','Seller','seller@bookcourier.com',''),
	  ('bk-sicp','Structure and Interpretation of Computer Programs','Second edition hardcover','Technology',39.00,3,'books/bk-sicp.jpg','Seller','seller@bookcourier.com',''),
	  ('bk-atlas','Historical World Atlas','Large format, minor shelf wear','History',24.99,2,'books/bk-atlas.jpg','Seller','seller@bookcourier.com','')`)
	return tx.Commit()
}
