package service

import (
	"context"
	"errors"
	"fmt"

	"medibook/config"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/refund"
)

// ErrProcessorUnavailable is returned when the external payment processor
// call fails or times out. No local state is committed in that case.
var ErrProcessorUnavailable = errors.New("payment processor call failed")

const appointmentIDMetadataKey = "appointment_id"

// CheckoutSession is the processor-neutral view of a hosted checkout session.
type CheckoutSession struct {
	ID              string
	URL             string
	PaymentIntentID string
	Paid            bool
	AppointmentID   string
}

// Refund is the processor-neutral view of a refund result.
type Refund struct {
	ID     string
	Status string
}

// PaymentGateway is the narrow seam to the external payment processor. The
// settlement engine depends only on this interface; tests use a fake.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, appointmentID uuid.UUID, productName string, amount int64) (*CheckoutSession, error)
	RetrieveCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
	CreateRefund(ctx context.Context, paymentIntentID string) (*Refund, error)
}

type stripeGateway struct {
	currency    string
	frontendURL string
}

// NewStripeGateway wires the Stripe-hosted checkout implementation.
func NewStripeGateway(cfg config.StripeConfig, frontendURL string) PaymentGateway {
	stripe.Key = cfg.SecretKey
	return &stripeGateway{
		currency:    cfg.Currency,
		frontendURL: frontendURL,
	}
}

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, appointmentID uuid.UUID, productName string, amount int64) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(g.currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(productName),
					},
					UnitAmount: stripe.Int64(amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(fmt.Sprintf("%s/payment/success?session_id={CHECKOUT_SESSION_ID}", g.frontendURL)),
		CancelURL:  stripe.String(fmt.Sprintf("%s/payment/cancel", g.frontendURL)),
	}
	params.Context = ctx
	params.AddMetadata(appointmentIDMetadataKey, appointmentID.String())

	s, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessorUnavailable, err)
	}

	return checkoutSessionFromStripe(s), nil
}

func (g *stripeGateway) RetrieveCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := session.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessorUnavailable, err)
	}

	return checkoutSessionFromStripe(s), nil
}

func (g *stripeGateway) CreateRefund(ctx context.Context, paymentIntentID string) (*Refund, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
	}
	params.Context = ctx

	r, err := refund.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessorUnavailable, err)
	}

	return &Refund{ID: r.ID, Status: string(r.Status)}, nil
}

func checkoutSessionFromStripe(s *stripe.CheckoutSession) *CheckoutSession {
	cs := &CheckoutSession{
		ID:   s.ID,
		URL:  s.URL,
		Paid: s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
	}
	if s.PaymentIntent != nil {
		cs.PaymentIntentID = s.PaymentIntent.ID
	}
	if s.Metadata != nil {
		cs.AppointmentID = s.Metadata[appointmentIDMetadataKey]
	}
	return cs
}
