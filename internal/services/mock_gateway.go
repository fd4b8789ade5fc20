package services

import (
	"context"
	"fmt"

	"ticket-booking/internal/logger"
	"ticket-booking/internal/models"
	"ticket-booking/internal/utils"
)

// MockGatewayService issues fake order IDs for local development.
type MockGatewayService struct {
	log *logger.Logger
}

func NewMockGatewayService(log *logger.Logger) *MockGatewayService {
	log.Warn("GATEWAY", "Using mock payment gateway - no real orders are created")
	return &MockGatewayService{log: log}
}

func (s *MockGatewayService) CreateOrder(ctx context.Context, req *models.GatewayOrderRequest) (*models.GatewayOrder, error) {
	order := &models.GatewayOrder{
		ID:       utils.GenerateMockOrderID(),
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   "created",
	}
	s.log.LogPayment("MOCK_ORDER", order.ID, fmt.Sprintf("Mock order for %d %s", req.Amount, req.Currency))
	return order, nil
}
