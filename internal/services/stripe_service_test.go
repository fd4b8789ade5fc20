package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"

	"ticket-booking/internal/models"
)

func newTestStripe(t *testing.T, handler http.HandlerFunc) *StripeService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		MaxNetworkRetries: stripe.Int64(0),
	})
	svc, err := NewStripeService("sk_test_123", &stripe.Backends{API: backend, Connect: backend, Uploads: backend}, quietLogger())
	require.NoError(t, err)
	return svc
}

func TestStripeCreateOrder(t *testing.T) {
	svc := newTestStripe(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "50000", r.PostForm.Get("amount"))
		assert.Equal(t, "inr", r.PostForm.Get("currency"))
		assert.Equal(t, "order_rcptid_1", r.PostForm.Get("metadata[receipt]"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_123","object":"payment_intent","amount":50000,"currency":"inr","status":"requires_payment_method"}`))
	})

	order, err := svc.CreateOrder(context.Background(), &models.GatewayOrderRequest{
		Amount:   50000,
		Currency: "INR",
		Receipt:  "order_rcptid_1",
	})
	require.NoError(t, err)
	assert.Equal(t, "pi_123", order.ID)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, "requires_payment_method", order.Status)
}

func TestStripeCreateOrderError(t *testing.T) {
	svc := newTestStripe(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"Invalid API Key provided"}}`))
	})

	_, err := svc.CreateOrder(context.Background(), &models.GatewayOrderRequest{Amount: 100, Currency: "INR", Receipt: "r"})
	assert.ErrorIs(t, err, ErrGatewayAPIError)
}

func TestNewStripeServiceRequiresKey(t *testing.T) {
	_, err := NewStripeService("", nil, quietLogger())
	assert.ErrorIs(t, err, ErrGatewayInitFailed)
}
