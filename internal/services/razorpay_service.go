package services

import (
	"context"
	"fmt"
	"strings"

	razorpay "github.com/razorpay/razorpay-go"

	"ticket-booking/internal/config"
	"ticket-booking/internal/logger"
	"ticket-booking/internal/models"
)

// RazorpayService creates orders through the Razorpay Orders API.
type RazorpayService struct {
	client *razorpay.Client
	log    *logger.Logger
}

func NewRazorpayService(cfg config.GatewayConfig, log *logger.Logger) (*RazorpayService, error) {
	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		log.Error("RAZORPAY", "RAZORPAY_KEY_ID or RAZORPAY_KEY_SECRET not set")
		return nil, ErrGatewayInitFailed
	}

	client := razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	if base := strings.TrimRight(cfg.RazorpayBaseURL, "/"); base != "" {
		client.Order.Request.BaseURL = base
	}

	log.Info("RAZORPAY", "Razorpay client initialized successfully")
	return &RazorpayService{
		client: client,
		log:    log,
	}, nil
}

// CreateOrder calls the Orders API. The SDK takes no context, so ctx only
// short-circuits requests that were already cancelled.
func (s *RazorpayService) CreateOrder(ctx context.Context, req *models.GatewayOrderRequest) (*models.GatewayOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.log.LogPayment("CREATE_ORDER", req.Receipt, fmt.Sprintf("Creating Razorpay order for %d %s", req.Amount, req.Currency))

	body, err := s.client.Order.Create(map[string]interface{}{
		"amount":   req.Amount,
		"currency": req.Currency,
		"receipt":  req.Receipt,
	}, nil)
	if err != nil {
		s.log.Error("RAZORPAY", fmt.Sprintf("Order creation failed for receipt %s: %v", req.Receipt, err))
		return nil, fmt.Errorf("%w: %v", ErrGatewayAPIError, err)
	}

	order := &models.GatewayOrder{
		ID:       stringField(body, "id"),
		Amount:   int64Field(body, "amount"),
		Currency: stringField(body, "currency"),
		Receipt:  stringField(body, "receipt"),
		Status:   stringField(body, "status"),
	}
	if order.ID == "" {
		return nil, fmt.Errorf("%w: order response without id", ErrGatewayAPIError)
	}

	s.log.LogPayment("ORDER_CREATED", order.ID, fmt.Sprintf("Razorpay order status: %s", order.Status))
	return order, nil
}

func stringField(body map[string]interface{}, key string) string {
	v, _ := body[key].(string)
	return v
}

func int64Field(body map[string]interface{}, key string) int64 {
	switch v := body[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}
