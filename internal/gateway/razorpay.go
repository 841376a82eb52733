package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

type razorpayGateway struct {
	client *razorpay.Client
	secret string
}

// NewRazorpayGateway builds the Razorpay-backed gateway. The client timeout
// bounds every upstream call.
func NewRazorpayGateway(keyID, keySecret string, timeoutSeconds int) PaymentGateway {
	client := razorpay.NewClient(keyID, keySecret)
	client.SetTimeout(int16(timeoutSeconds))
	return &razorpayGateway{
		client: client,
		secret: keySecret,
	}
}

func (g *razorpayGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*Order, error) {
	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create failed: %w", err)
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("razorpay order create returned no id")
	}

	return &Order{
		ID:       id,
		Amount:   amountMinor,
		Currency: currency,
		Receipt:  receipt,
		Raw:      body,
	}, nil
}

// VerifySignature recomputes HMAC-SHA256 over "orderID|paymentID" with the
// shared secret and compares it to the callback signature in constant time.
func (g *razorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(orderID, paymentID, signature, g.secret)
}

// VerifySignature checks a Razorpay-style callback signature against secret.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
