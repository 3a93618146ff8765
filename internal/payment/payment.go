// Package payment creates hosted checkout sessions with a payment gateway.
package payment

import "context"

// CheckoutRequest describes a single-item card checkout.
type CheckoutRequest struct {
	ClientReferenceID string
	CustomerEmail     string
	SuccessURL        string
	CancelURL         string
	ProductName       string
	Description       string
	Images            []string
	// Amount is in the smallest currency unit (cents).
	Amount   int64
	Currency string
	Quantity int64
}

// Session is the gateway's checkout session as returned to clients.
type Session struct {
	ID                string `json:"id"`
	Object            string `json:"object"`
	URL               string `json:"url"`
	Mode              string `json:"mode"`
	Status            string `json:"status,omitempty"`
	PaymentStatus     string `json:"payment_status,omitempty"`
	AmountTotal       int64  `json:"amount_total"`
	Currency          string `json:"currency"`
	CustomerEmail     string `json:"customer_email"`
	ClientReferenceID string `json:"client_reference_id"`
	SuccessURL        string `json:"success_url"`
	CancelURL         string `json:"cancel_url"`
}

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks tour-booking/internal/payment Gateway

// Gateway creates checkout sessions.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*Session, error)
}

// AmountInCents converts a price in currency units to cents.
func AmountInCents(price float64) int64 {
	if price < 0 {
		return 0
	}
	return int64(price*100 + 0.5)
}
