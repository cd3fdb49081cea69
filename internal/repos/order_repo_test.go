package repos_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"bookcourier/internal/domain"
	"bookcourier/internal/repos"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	// Shared-cache in-memory DB so every pooled connection sees one store.
	db, err := sqlx.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	schema := `
	CREATE TABLE books(id TEXT PRIMARY KEY, name TEXT, description TEXT, category TEXT,
	  price NUMERIC, quantity INTEGER CHECK (quantity >= 0), image TEXT,
	  seller_name TEXT, seller_email TEXT, seller_image TEXT, created_at TEXT, updated_at TEXT);
	CREATE TABLE orders(id TEXT PRIMARY KEY, book_id TEXT, transaction_id TEXT,
	  customer_email TEXT, status TEXT, name TEXT, category TEXT, price NUMERIC,
	  image TEXT, seller_name TEXT, seller_email TEXT, seller_image TEXT,
	  quantity INTEGER, created_at TEXT);
	CREATE UNIQUE INDEX idx_orders_txn ON orders(transaction_id);

	INSERT INTO books(id,name,category,price,quantity,seller_email,created_at)
	  VALUES ('b1','The Trial','Fiction',20,3,'s@x.com','now');
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testOrder(txn string) domain.Order {
	return domain.Order{
		ID:            "o-" + txn,
		BookID:        "b1",
		TransactionID: txn,
		Customer:      "c@x.com",
		Status:        domain.StatusPending,
		Name:          "The Trial",
		Category:      "Fiction",
		Price:         20,
		Quantity:      1,
	}
}

func bookQty(t *testing.T, db *sqlx.DB, id string) int {
	t.Helper()
	var qty int
	if err := db.Get(&qty, `SELECT quantity FROM books WHERE id=?`, id); err != nil {
		t.Fatal(err)
	}
	return qty
}

func TestMaterialize_DecrementsOnce(t *testing.T) {
	db := memdb(t)
	orders := repos.NewOrderRepo(db)

	if err := orders.Materialize(testOrder("pi_1")); err != nil {
		t.Fatal(err)
	}
	if qty := bookQty(t, db, "b1"); qty != 2 {
		t.Fatalf("want qty=2, got %d", qty)
	}

	// Same payment-intent again: unique index rejects, nothing decremented.
	dup := testOrder("pi_1")
	dup.ID = "o-other"
	if err := orders.Materialize(dup); err != repos.ErrDuplicate {
		t.Fatalf("want ErrDuplicate, got %v", err)
	}
	if qty := bookQty(t, db, "b1"); qty != 2 {
		t.Fatalf("duplicate confirm changed stock: qty=%d", qty)
	}

	winner, err := orders.ByTransaction("pi_1")
	if err != nil {
		t.Fatal(err)
	}
	if winner == nil || winner.ID != "o-pi_1" {
		t.Fatalf("want original order back, got %+v", winner)
	}
}

func TestMaterialize_SoldOut(t *testing.T) {
	db := memdb(t)
	orders := repos.NewOrderRepo(db)

	for i, txn := range []string{"pi_a", "pi_b", "pi_c"} {
		if err := orders.Materialize(testOrder(txn)); err != nil {
			t.Fatalf("sale %d: %v", i+1, err)
		}
	}
	if qty := bookQty(t, db, "b1"); qty != 0 {
		t.Fatalf("want qty=0, got %d", qty)
	}

	// Fourth sale must fail and write no order.
	if err := orders.Materialize(testOrder("pi_d")); err != repos.ErrSoldOut {
		t.Fatalf("want ErrSoldOut, got %v", err)
	}
	if o, _ := orders.ByTransaction("pi_d"); o != nil {
		t.Fatalf("sold-out confirm materialized an order: %+v", o)
	}
}

func TestUpdateStatusFrom(t *testing.T) {
	db := memdb(t)
	orders := repos.NewOrderRepo(db)

	if err := orders.Materialize(testOrder("pi_1")); err != nil {
		t.Fatal(err)
	}

	n, err := orders.UpdateStatusFrom("o-pi_1", domain.StatusPending, domain.StatusInProgress)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("want 1 row changed, got %d", n)
	}

	// Stale "from" value matches nothing.
	n, err = orders.UpdateStatusFrom("o-pi_1", domain.StatusPending, domain.StatusCancelled)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("stale transition changed %d rows", n)
	}
}
