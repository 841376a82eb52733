package gateway

import "context"

// Order is the gateway's reservation of a charge, later confirmed via a
// signed callback. Amount is in minor currency units (paise for INR).
type Order struct {
	ID       string         `json:"id"`
	Amount   int64          `json:"amount"`
	Currency string         `json:"currency"`
	Receipt  string         `json:"receipt"`
	Raw      map[string]any `json:"raw,omitempty"`
}

// PaymentGateway creates orders upstream and verifies signed confirmation
// callbacks against the shared secret.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}
