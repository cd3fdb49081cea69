package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"bookcourier/internal/config"
	"bookcourier/internal/http/handlers"
	"bookcourier/internal/identity"
	"bookcourier/internal/payments"
	"bookcourier/internal/repos"
)

const webhookSecret = "whsec-test"

// stubVerifier treats the bearer token itself as the verified email, so
// tests authenticate as anyone by sending their address.
type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, token string) (string, error) {
	if !strings.Contains(token, "@") {
		return "", identity.ErrInvalidToken
	}
	return token, nil
}

type stubGateway struct {
	sessions map[string]*payments.Session
	created  int
}

func newStubGateway() *stubGateway {
	return &stubGateway{sessions: map[string]*payments.Session{}}
}

func (g *stubGateway) CreateSession(_ context.Context, p payments.SessionParams) (*payments.Session, error) {
	g.created++
	id := fmt.Sprintf("cs_%d", g.created)
	s := &payments.Session{
		ID:          id,
		URL:         "https://pay.example/" + id,
		Status:      "open",
		AmountTotal: p.Item.UnitAmount * int64(p.Item.Quantity),
		Metadata:    p.Metadata,
	}
	g.sessions[id] = s
	return s, nil
}

func (g *stubGateway) RetrieveSession(_ context.Context, id string) (*payments.Session, error) {
	s, ok := g.sessions[id]
	if !ok {
		return nil, fmt.Errorf("gateway: no such session %s", id)
	}
	return s, nil
}

func (g *stubGateway) complete(id, paymentIntent string) {
	s := g.sessions[id]
	s.Status = payments.SessionComplete
	s.PaymentIntent = paymentIntent
}

// newTestApp boots the real route table on a seeded in-memory store. The
// seed provides admin/seller/customer demo accounts and a starter catalog
// owned by seller@bookcourier.com.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB, *stubGateway) {
	t.Helper()
	db, err := repos.OpenDB("file:" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Config{
		ClientOrigin:  "http://localhost:5173",
		WebhookSecret: webhookSecret,
		RoleOverrides: map[string]string{"admin@bookcourier.com": "admin"},
	}
	gate := newStubGateway()
	deps := handlers.NewDeps(db, cfg, stubVerifier{}, gate)

	app := fiber.New()
	app.Use(requestid.New())
	handlers.Routes(app, deps)
	return app, db, gate
}

// request sends an optionally authenticated JSON request through the app.
func request(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatal(err)
	}
}
