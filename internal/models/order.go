package models

// CreateOrderRequest is the payload of POST /create-order. Only Amount is
// used; the customer fields are accepted for client compatibility.
type CreateOrderRequest struct {
	Amount      *float64 `json:"amount"`
	Name        string   `json:"name,omitempty"`
	Email       string   `json:"email,omitempty"`
	Mobile      string   `json:"mobile,omitempty"`
	ShowTime    string   `json:"showTime,omitempty"`
	PersonCount *int     `json:"personCount,omitempty"`
}

type CreateOrderResponse struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
}

// GatewayOrderRequest is what a payment gateway receives. Amount is in minor
// currency units.
type GatewayOrderRequest struct {
	Amount   int64
	Currency string
	Receipt  string
}

type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}
