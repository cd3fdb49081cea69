package services

import (
	"context"
	"database/sql"
	"errors"

	"bookcourier/internal/domain"
	"bookcourier/internal/payments"
	"bookcourier/internal/repos"

	"github.com/google/uuid"
)

// CheckoutService is the order workflow engine: it opens checkout sessions
// with the gateway and idempotently materializes orders when payment
// confirmation arrives.
type CheckoutService struct {
	Books        *repos.BookRepo
	Orders       *repos.OrderRepo
	Gate         payments.Gateway
	ClientOrigin string
}

func NewCheckoutService(books *repos.BookRepo, orders *repos.OrderRepo, gate payments.Gateway, origin string) *CheckoutService {
	return &CheckoutService{Books: books, Orders: orders, Gate: gate, ClientOrigin: origin}
}

// Initiate creates a gateway session for one unit of the book and returns
// the redirect URL. Item fields are re-read from the store, never taken from
// the caller, so the checkout page always shows the current catalog price.
// Nothing is written locally; the session lives entirely at the gateway
// until confirmation.
func (s *CheckoutService) Initiate(ctx context.Context, bookID, customerEmail string) (string, error) {
	book, err := s.Books.Get(bookID)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if book.Quantity <= 0 {
		return "", ErrSoldOut
	}

	sess, err := s.Gate.CreateSession(ctx, payments.SessionParams{
		Item: payments.LineItem{
			Name:        book.Name,
			Description: book.Description,
			Image:       book.Image,
			UnitAmount:  payments.MinorUnits(book.Price),
			Quantity:    1,
		},
		CustomerEmail: customerEmail,
		Metadata: map[string]string{
			"bookId":   book.ID,
			"customer": customerEmail,
		},
		SuccessURL: s.ClientOrigin + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  s.ClientOrigin + "/book/" + book.ID,
	})
	if err != nil {
		return "", err
	}
	return sess.URL, nil
}

type ConfirmResult struct {
	TransactionID string `json:"transactionId"`
	OrderID       string `json:"orderId,omitempty"`
}

// Confirm resolves a checkout session and materializes the order exactly
// once. Repeat calls (page reloads, duplicated callbacks, racing confirms)
// converge on the first order: the unique transaction_id index makes the
// losing insert a no-op that reads back the winner.
func (s *CheckoutService) Confirm(ctx context.Context, sessionID string) (ConfirmResult, error) {
	sess, err := s.Gate.RetrieveSession(ctx, sessionID)
	if err != nil {
		return ConfirmResult{}, err
	}
	res := ConfirmResult{TransactionID: sess.PaymentIntent}

	book, err := s.Books.Get(sess.Metadata["bookId"])
	bookMissing := err == sql.ErrNoRows
	if err != nil && !bookMissing {
		return res, err
	}

	existing, err := s.Orders.ByTransaction(sess.PaymentIntent)
	if err != nil {
		return res, err
	}

	if sess.Status != payments.SessionComplete || bookMissing || existing != nil {
		// Already materialized, unpaid, or unfulfillable: report what we
		// know and write nothing.
		if existing != nil {
			res.OrderID = existing.ID
		}
		return res, nil
	}

	order := domain.Order{
		ID:            uuid.NewString(),
		BookID:        book.ID,
		TransactionID: sess.PaymentIntent,
		Customer:      sess.Metadata["customer"],
		Status:        domain.StatusPending,
		Name:          book.Name,
		Category:      book.Category,
		// The captured session total prices the order, not whatever the
		// client showed at initiation.
		Price:    payments.MajorUnits(sess.AmountTotal),
		Image:    book.Image,
		Seller:   book.Seller,
		Quantity: 1,
	}

	switch err := s.Orders.Materialize(order); {
	case err == nil:
		res.OrderID = order.ID
		return res, nil
	case errors.Is(err, repos.ErrDuplicate):
		// Lost the race to a concurrent confirm; same idempotent outcome.
		winner, err := s.Orders.ByTransaction(sess.PaymentIntent)
		if err != nil {
			return res, err
		}
		if winner != nil {
			res.OrderID = winner.ID
		}
		return res, nil
	case errors.Is(err, repos.ErrSoldOut):
		return res, ErrSoldOut
	default:
		return res, err
	}
}

// Cancel deletes the order after an ownership check. Stock is deliberately
// not restored; a cancelled sale does not restock the shelf.
func (s *CheckoutService) Cancel(orderID, callerEmail string) error {
	order, err := s.Orders.Get(orderID)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if order.Customer != callerEmail {
		return ErrForbidden
	}
	return s.Orders.Delete(orderID)
}

// SetStatus applies an admin status change through the transition table.
func (s *CheckoutService) SetStatus(orderID, status string) error {
	if !domain.ValidStatus(status) {
		return ErrBadTransition
	}
	order, err := s.Orders.Get(orderID)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if !domain.CanTransition(order.Status, status) {
		return ErrBadTransition
	}
	n, err := s.Orders.UpdateStatusFrom(orderID, order.Status, status)
	if err != nil {
		return err
	}
	if n == 0 {
		// Status moved underneath us; re-reading would just re-run the
		// same check, so reject and let the admin refresh.
		return ErrBadTransition
	}
	return nil
}
