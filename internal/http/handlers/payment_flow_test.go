package handlers_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"bookcourier/internal/http/handlers"
)

func bookQuantity(t *testing.T, app *fiber.App, id string) int {
	t.Helper()
	req := httptest.NewRequest("GET", "/books/"+id, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	var book struct {
		Quantity int `json:"quantity"`
	}
	decode(t, resp, &book)
	return book.Quantity
}

func TestPaymentFlowIdempotentOverHTTP(t *testing.T) {
	app, _, gate := newTestApp(t)

	// Checkout requires a credential.
	resp := request(t, app, "POST", "/create-checkout-session", "", map[string]any{"bookId": "bk-kafka"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401 for anonymous checkout, got %d", resp.StatusCode)
	}

	resp = request(t, app, "POST", "/create-checkout-session", "c@x.com", map[string]any{"bookId": "bk-kafka"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("checkout: %d", resp.StatusCode)
	}
	var created struct {
		URL string `json:"url"`
	}
	decode(t, resp, &created)
	if created.URL == "" {
		t.Fatal("no redirect URL")
	}

	before := bookQuantity(t, app, "bk-kafka")
	gate.complete("cs_1", "pi_1")

	var first struct {
		TransactionID string `json:"transactionId"`
		OrderID       string `json:"orderId"`
	}
	resp = request(t, app, "POST", "/payment-success", "", map[string]any{"sessionId": "cs_1"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("confirm: %d", resp.StatusCode)
	}
	decode(t, resp, &first)
	if first.TransactionID != "pi_1" || first.OrderID == "" {
		t.Fatalf("bad confirm body: %+v", first)
	}
	if got := bookQuantity(t, app, "bk-kafka"); got != before-1 {
		t.Fatalf("want quantity %d after sale, got %d", before-1, got)
	}

	// Redirect replay: same order, no further decrement.
	var second struct {
		OrderID string `json:"orderId"`
	}
	resp = request(t, app, "POST", "/payment-success", "", map[string]any{"sessionId": "cs_1"})
	decode(t, resp, &second)
	if second.OrderID != first.OrderID {
		t.Fatalf("replay produced different order: %s vs %s", second.OrderID, first.OrderID)
	}
	if got := bookQuantity(t, app, "bk-kafka"); got != before-1 {
		t.Fatalf("replay changed stock: %d", got)
	}

	// Buyer can now see the order and passes the review-eligibility check.
	var check struct {
		Ordered bool `json:"ordered"`
	}
	resp = request(t, app, "GET", "/orders/check?bookId=bk-kafka", "c@x.com", nil)
	decode(t, resp, &check)
	if !check.Ordered {
		t.Fatal("orders/check should report true after purchase")
	}

	resp = request(t, app, "POST", "/reviews", "c@x.com", map[string]any{
		"bookId": "bk-kafka", "rating": 5, "review": "fast delivery",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("buyer review rejected: %d", resp.StatusCode)
	}

	// A non-buyer cannot review.
	resp = request(t, app, "POST", "/reviews", "lurker@x.com", map[string]any{
		"bookId": "bk-kafka", "rating": 1, "review": "never bought it",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("want 403 for non-buyer review, got %d", resp.StatusCode)
	}
}

func TestWebhookSignature(t *testing.T) {
	app, _, gate := newTestApp(t)

	resp := request(t, app, "POST", "/create-checkout-session", "c@x.com", map[string]any{"bookId": "bk-kafka"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("checkout: %d", resp.StatusCode)
	}
	gate.complete("cs_1", "pi_1")

	body, _ := json.Marshal(map[string]any{"sessionId": "cs_1"})

	// Unsigned and mis-signed callbacks are rejected.
	req := httptest.NewRequest("POST", "/payment-webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401 for unsigned webhook, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("POST", "/payment-webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(handlers.SignatureHeader, "deadbeef")
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401 for bad signature, got %d", resp.StatusCode)
	}

	// A correctly signed callback confirms the payment.
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write(body)
	req = httptest.NewRequest("POST", "/payment-webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(handlers.SignatureHeader, hex.EncodeToString(mac.Sum(nil)))
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200 for signed webhook, got %d", resp.StatusCode)
	}
	var confirmed struct {
		OrderID string `json:"orderId"`
	}
	decode(t, resp, &confirmed)
	if confirmed.OrderID == "" {
		t.Fatal("signed webhook did not materialize order")
	}
}
