//go:build api

package testserver

import (
	"context"
	"fmt"
	"sync"

	apperrors "tour-booking/internal/errors"
	"tour-booking/internal/mailer"
	"tour-booking/internal/payment"
)

var (
	_ mailer.Sender   = (*RecordingSender)(nil)
	_ payment.Gateway = (*FakeGateway)(nil)
)

// RecordingSender captures outgoing email instead of delivering it.
type RecordingSender struct {
	mu       sync.Mutex
	messages []mailer.Message
	err      error
}

// Send implements mailer.Sender.
func (s *RecordingSender) Send(_ context.Context, msg mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.messages = append(s.messages, msg)
	return nil
}

// FailWith makes every following Send return err. Pass nil to recover.
func (s *RecordingSender) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// To returns the messages sent to one address, oldest first.
func (s *RecordingSender) To(addr string) []mailer.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []mailer.Message
	for _, m := range s.messages {
		if m.To == addr {
			out = append(out, m)
		}
	}
	return out
}

// Reset forgets captured messages and clears any injected failure.
func (s *RecordingSender) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.err = nil
}

// FakeGateway returns canned checkout sessions and records each request.
type FakeGateway struct {
	mu       sync.Mutex
	requests []payment.CheckoutRequest
	err      error
}

// CreateCheckoutSession implements payment.Gateway.
func (g *FakeGateway) CreateCheckoutSession(_ context.Context, req payment.CheckoutRequest) (*payment.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrCheckoutFailed, g.err)
	}
	g.requests = append(g.requests, req)

	id := fmt.Sprintf("cs_test_%d", len(g.requests))
	return &payment.Session{
		ID:                id,
		Object:            "checkout.session",
		URL:               "https://checkout.stripe.test/pay/" + id,
		Mode:              "payment",
		Status:            "open",
		PaymentStatus:     "unpaid",
		AmountTotal:       req.Amount * req.Quantity,
		Currency:          req.Currency,
		CustomerEmail:     req.CustomerEmail,
		ClientReferenceID: req.ClientReferenceID,
		SuccessURL:        req.SuccessURL,
		CancelURL:         req.CancelURL,
	}, nil
}

// FailWith makes every following session request fail the way the gateway reports errors.
func (g *FakeGateway) FailWith(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.err = err
}

// Requests returns the checkout requests seen so far.
func (g *FakeGateway) Requests() []payment.CheckoutRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]payment.CheckoutRequest(nil), g.requests...)
}

// Reset forgets recorded requests and clears any injected failure.
func (g *FakeGateway) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = nil
	g.err = nil
}
