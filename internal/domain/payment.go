package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// Payment amounts are whole currency units; the gateway order is created in
// minor units (amount x 100). Amount, InsuranceFee and PlatformFee are
// immutable after creation.
type Payment struct {
	ID               string        `json:"id"`
	BookingID        string        `json:"booking_id"`
	UserID           string        `json:"user_id"`
	Amount           int64         `json:"amount"`
	InsuranceFee     int64         `json:"insurance_fee"`
	PlatformFee      int64         `json:"platform_fee"`
	GatewayOrderID   string        `json:"gateway_order_id"`
	GatewayPaymentID *string       `json:"gateway_payment_id,omitempty"`
	Status           PaymentStatus `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}
