package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-booking/internal/config"
	"ticket-booking/internal/models"
)

func newTestRazorpay(t *testing.T, handler http.HandlerFunc) *RazorpayService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := NewRazorpayService(config.GatewayConfig{
		RazorpayKeyID:     "rzp_test_key",
		RazorpayKeySecret: "rzp_test_secret",
		RazorpayBaseURL:   srv.URL + "/",
	}, quietLogger())
	require.NoError(t, err)
	return svc
}

func TestRazorpayCreateOrder(t *testing.T) {
	svc := newTestRazorpay(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "rzp_test_secret", pass)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(50000), body["amount"])
		assert.Equal(t, "INR", body["currency"])
		assert.Equal(t, "order_rcptid_1", body["receipt"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_EKwxwAgItmmXdp","entity":"order","amount":50000,"currency":"INR","receipt":"order_rcptid_1","status":"created","created_at":1582628071}`))
	})

	order, err := svc.CreateOrder(context.Background(), &models.GatewayOrderRequest{
		Amount:   50000,
		Currency: "INR",
		Receipt:  "order_rcptid_1",
	})
	require.NoError(t, err)
	assert.Equal(t, "order_EKwxwAgItmmXdp", order.ID)
	assert.Equal(t, int64(50000), order.Amount)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, "created", order.Status)
}

func TestRazorpayCreateOrderAPIError(t *testing.T) {
	svc := newTestRazorpay(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"The amount must be atleast INR 1.00","source":"business","step":"payment_initiation","reason":"input_validation_failed","field":"amount"}}`))
	})

	_, err := svc.CreateOrder(context.Background(), &models.GatewayOrderRequest{Amount: 0, Currency: "INR", Receipt: "r"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGatewayAPIError)
	assert.ErrorContains(t, err, "atleast INR 1.00")
}

func TestRazorpayCreateOrderWithoutID(t *testing.T) {
	svc := newTestRazorpay(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"entity":"order","status":"created"}`))
	})

	_, err := svc.CreateOrder(context.Background(), &models.GatewayOrderRequest{Amount: 100, Currency: "INR", Receipt: "r"})
	assert.ErrorIs(t, err, ErrGatewayAPIError)
}

func TestRazorpayCreateOrderCancelledContext(t *testing.T) {
	called := false
	svc := newTestRazorpay(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.CreateOrder(ctx, &models.GatewayOrderRequest{Amount: 100, Currency: "INR", Receipt: "r"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestNewRazorpayServiceRequiresKeys(t *testing.T) {
	_, err := NewRazorpayService(config.GatewayConfig{RazorpayKeyID: "only-id"}, quietLogger())
	assert.ErrorIs(t, err, ErrGatewayInitFailed)
}
