package payment

import (
	"context"
	"errors"
	"fmt"

	apperrors "tour-booking/internal/errors"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeGateway creates Stripe Checkout sessions.
type StripeGateway struct {
	api *client.API
}

var (
	_ Gateway = (*StripeGateway)(nil)
	_ Gateway = Disabled{}
)

// NewStripeGateway creates a gateway for the given secret key. backends may
// be nil to use Stripe's default endpoints.
func NewStripeGateway(secretKey string, backends *stripe.Backends) *StripeGateway {
	return &StripeGateway{api: client.New(secretKey, backends)}
}

// CreateCheckoutSession implements Gateway.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
		CustomerEmail:      stripe.String(req.CustomerEmail),
		ClientReferenceID:  stripe.String(req.ClientReferenceID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(req.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(req.ProductName),
						Description: stripe.String(req.Description),
						Images:      stripe.StringSlice(req.Images),
					},
				},
				Quantity: stripe.Int64(req.Quantity),
			},
		},
	}
	params.Context = ctx

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return nil, fmt.Errorf("%w: stripe %s (%d): %s", apperrors.ErrCheckoutFailed, stripeErr.Code, stripeErr.HTTPStatusCode, stripeErr.Msg)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrCheckoutFailed, err)
	}

	return &Session{
		ID:                s.ID,
		Object:            s.Object,
		URL:               s.URL,
		Mode:              string(s.Mode),
		Status:            string(s.Status),
		PaymentStatus:     string(s.PaymentStatus),
		AmountTotal:       s.AmountTotal,
		Currency:          string(s.Currency),
		CustomerEmail:     s.CustomerEmail,
		ClientReferenceID: s.ClientReferenceID,
		SuccessURL:        s.SuccessURL,
		CancelURL:         s.CancelURL,
	}, nil
}

// Disabled rejects every checkout. Used when no Stripe key is configured.
type Disabled struct{}

// CreateCheckoutSession implements Gateway.
func (Disabled) CreateCheckoutSession(context.Context, CheckoutRequest) (*Session, error) {
	return nil, apperrors.ErrPaymentDisabled
}
