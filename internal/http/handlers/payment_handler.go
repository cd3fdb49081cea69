package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	applog "bookcourier/internal/log"
	"bookcourier/internal/services"
	"bookcourier/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw webhook body.
const SignatureHeader = "X-Webhook-Signature"

type PaymentHandler struct {
	Checkout      *services.CheckoutService
	WebhookSecret string
}

// POST /create-checkout-session (authenticated). The buyer is the verified
// caller; item fields come from the store, so the body only names the book.
func (h *PaymentHandler) CreateCheckoutSession(c *fiber.Ctx) error {
	var body struct {
		BookID string `json:"bookId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid body")
	}
	bookID, ok := validate.ID(body.BookID)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "Missing bookId")
	}

	url, err := h.Checkout.Initiate(c.Context(), bookID, tokenEmail(c))
	switch {
	case err == nil:
		applog.Info(c, "checkout.initiate", map[string]any{"book_id": bookID})
		return c.JSON(fiber.Map{"url": url})
	case errors.Is(err, services.ErrNotFound):
		return jsonError(c, fiber.StatusNotFound, "Book not found")
	case errors.Is(err, services.ErrSoldOut):
		return jsonError(c, fiber.StatusConflict, "Book is out of stock")
	default:
		applog.Error(c, "checkout.initiate.fail", err, map[string]any{"book_id": bookID})
		return jsonError(c, fiber.StatusInternalServerError, "Payment service unavailable")
	}
}

// POST /payment-success. Deliberately credential-free: the redirect back
// from the gateway cannot carry a bearer token. The server-side session
// retrieval is the authenticity check, and materialization is idempotent.
func (h *PaymentHandler) PaymentSuccess(c *fiber.Ctx) error {
	var body struct {
		SessionID string `json:"sessionId"`
	}
	if err := c.BodyParser(&body); err != nil || body.SessionID == "" {
		return jsonError(c, fiber.StatusBadRequest, "Missing sessionId")
	}
	return h.confirm(c, body.SessionID)
}

// POST /payment-webhook. Gateway callbacks must sign the raw body.
func (h *PaymentHandler) Webhook(c *fiber.Ctx) error {
	if !h.validSignature(c.Body(), c.Get(SignatureHeader)) {
		applog.Security(c, "webhook.signature.reject", nil)
		return jsonError(c, fiber.StatusUnauthorized, "Invalid signature")
	}
	var body struct {
		SessionID string `json:"sessionId"`
	}
	if err := c.BodyParser(&body); err != nil || body.SessionID == "" {
		return jsonError(c, fiber.StatusBadRequest, "Missing sessionId")
	}
	return h.confirm(c, body.SessionID)
}

func (h *PaymentHandler) confirm(c *fiber.Ctx, sessionID string) error {
	res, err := h.Checkout.Confirm(c.Context(), sessionID)
	switch {
	case err == nil:
		applog.Audit(c, "checkout.confirm", map[string]any{"order_id": res.OrderID})
		return c.JSON(res)
	case errors.Is(err, services.ErrSoldOut):
		return jsonError(c, fiber.StatusConflict, "Book is out of stock")
	default:
		applog.Error(c, "checkout.confirm.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Payment service unavailable")
	}
}

func (h *PaymentHandler) validSignature(body []byte, header string) bool {
	if h.WebhookSecret == "" || header == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(h.WebhookSecret))
	mac.Write(body)
	want := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(want), []byte(header))
}
