// Package payments talks to the external checkout processor. The processor
// is opaque: we create a session, hand the buyer its redirect URL, and later
// read the session back to learn its status and payment-intent identifier.
package payments

import (
	"context"

	"github.com/shopspring/decimal"
)

// SessionComplete is the status a paid-up session reports.
const SessionComplete = "complete"

// Session mirrors the gateway's checkout-session record.
type Session struct {
	ID            string
	URL           string
	Status        string
	PaymentIntent string
	// AmountTotal is the captured total in minor currency units.
	AmountTotal int64
	Metadata    map[string]string
}

type LineItem struct {
	Name        string
	Description string
	Image       string
	// UnitAmount is the unit price in minor currency units.
	UnitAmount int64
	Quantity   int
}

type SessionParams struct {
	Item          LineItem
	CustomerEmail string
	Metadata      map[string]string
	SuccessURL    string
	CancelURL     string
}

type Gateway interface {
	CreateSession(ctx context.Context, p SessionParams) (*Session, error)
	RetrieveSession(ctx context.Context, id string) (*Session, error)
}

// MinorUnits converts a catalog price to integer minor units without float
// drift (19.99 must become 1999, never 1998).
func MinorUnits(price float64) int64 {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// MajorUnits converts a captured gateway total back to the catalog unit.
func MajorUnits(amount int64) float64 {
	f, _ := decimal.NewFromInt(amount).Div(decimal.NewFromInt(100)).Float64()
	return f
}
