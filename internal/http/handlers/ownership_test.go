package handlers_test

import (
	"net/http"
	"testing"
)

func TestBookOwnershipEnforced(t *testing.T) {
	app, db, _ := newTestApp(t)

	// A second seller with no books of their own.
	db.MustExec(`INSERT INTO users(id,email,name,role) VALUES('u-t','t@x.com','Tess','seller')`)

	// t@x.com cannot delete seller@bookcourier.com's seeded book.
	resp := request(t, app, "DELETE", "/books/bk-kafka", "t@x.com", nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("want 403 deleting another seller's book, got %d", resp.StatusCode)
	}

	// Book is still present.
	resp = request(t, app, "GET", "/books/bk-kafka", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("book vanished after denied delete: %d", resp.StatusCode)
	}

	// Nor update it.
	resp = request(t, app, "PATCH", "/books/bk-kafka", "t@x.com", map[string]any{"price": 0.01})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("want 403 updating another seller's book, got %d", resp.StatusCode)
	}

	// The owner can.
	resp = request(t, app, "PATCH", "/books/bk-kafka", "seller@bookcourier.com", map[string]any{"price": 14.00})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("owner update failed: %d", resp.StatusCode)
	}
	var book struct {
		Price float64 `json:"price"`
	}
	resp = request(t, app, "GET", "/books/bk-kafka", "", nil)
	decode(t, resp, &book)
	if book.Price != 14.00 {
		t.Fatalf("want price 14.00 after update, got %v", book.Price)
	}

	resp = request(t, app, "DELETE", "/books/bk-kafka", "seller@bookcourier.com", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("owner delete failed: %d", resp.StatusCode)
	}
	resp = request(t, app, "GET", "/books/bk-kafka", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404 after delete, got %d", resp.StatusCode)
	}
}

func TestOrderCancelOwnership(t *testing.T) {
	app, _, gate := newTestApp(t)

	// Buy a book as c@x.com.
	resp := request(t, app, "POST", "/create-checkout-session", "c@x.com", map[string]any{"bookId": "bk-kafka"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("checkout: %d", resp.StatusCode)
	}
	gate.complete("cs_1", "pi_1")
	var confirmed struct {
		OrderID string `json:"orderId"`
	}
	resp = request(t, app, "POST", "/payment-success", "", map[string]any{"sessionId": "cs_1"})
	decode(t, resp, &confirmed)
	if confirmed.OrderID == "" {
		t.Fatal("no order materialized")
	}

	// A stranger cannot cancel it.
	resp = request(t, app, "DELETE", "/orders/"+confirmed.OrderID, "other@x.com", nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("want 403 cancelling another customer's order, got %d", resp.StatusCode)
	}

	// The owner can.
	resp = request(t, app, "DELETE", "/orders/"+confirmed.OrderID, "c@x.com", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("owner cancel failed: %d", resp.StatusCode)
	}
}
