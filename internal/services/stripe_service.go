package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"ticket-booking/internal/logger"
	"ticket-booking/internal/models"
)

// StripeService backs order creation with Stripe PaymentIntents: the
// intent ID is the order ID the client completes payment against.
type StripeService struct {
	client *client.API
	log    *logger.Logger
}

func NewStripeService(secretKey string, backends *stripe.Backends, log *logger.Logger) (*StripeService, error) {
	if secretKey == "" {
		log.Error("STRIPE", "STRIPE_SECRET_KEY environment variable not set")
		return nil, ErrGatewayInitFailed
	}

	sc := client.New(secretKey, backends)
	if sc == nil {
		log.Error("STRIPE", "Failed to initialize Stripe client")
		return nil, ErrGatewayInitFailed
	}

	log.Info("STRIPE", "Stripe client initialized successfully")
	return &StripeService{
		client: sc,
		log:    log,
	}, nil
}

func (s *StripeService) CreateOrder(ctx context.Context, req *models.GatewayOrderRequest) (*models.GatewayOrder, error) {
	s.log.LogPayment("CREATE_ORDER", req.Receipt, fmt.Sprintf("Creating payment intent for %d %s", req.Amount, req.Currency))

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(strings.ToLower(req.Currency)),
		Metadata: map[string]string{"receipt": req.Receipt},
	}
	params.Context = ctx

	pi, err := s.client.PaymentIntents.New(params)
	if err != nil {
		s.log.Error("STRIPE", fmt.Sprintf("Failed to create payment intent: %v", err))
		return nil, fmt.Errorf("%w: %v", ErrGatewayAPIError, err)
	}

	s.log.LogPayment("ORDER_CREATED", pi.ID, fmt.Sprintf("Payment intent status: %s", pi.Status))
	return &models.GatewayOrder{
		ID:       pi.ID,
		Amount:   pi.Amount,
		Currency: strings.ToUpper(string(pi.Currency)),
		Receipt:  req.Receipt,
		Status:   string(pi.Status),
	}, nil
}
