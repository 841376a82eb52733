package http

import (
	"net/http"

	"rentivo-backend/internal/service"
)

// PaymentHandler serves payment intent creation and callback confirmation.
type PaymentHandler struct {
	payments service.PaymentService
}

func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type createPaymentRequest struct {
	BookingID    string `json:"bookingid" validate:"required"`
	UserID       string `json:"userid"`
	Amount       int64  `json:"amount" validate:"required"`
	InsuranceFee int64  `json:"insurancefee"`
	PlatformFee  int64  `json:"platformfee"`
}

type confirmPaymentRequest struct {
	PaymentID        string `json:"paymentid" validate:"required"`
	GatewayPaymentID string `json:"gatewaypaymentid" validate:"required"`
	GatewayOrderID   string `json:"gatewayorderid" validate:"required"`
	Signature        string `json:"signature" validate:"required"`
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = ClaimsFrom(r.Context()).UserID
	}

	payment, order, err := h.payments.CreatePaymentIntent(r.Context(), req.BookingID, userID,
		req.Amount, req.InsuranceFee, req.PlatformFee)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"payment": payment, "gatewayOrder": order})
}

func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	payment, err := h.payments.ConfirmPayment(r.Context(), req.PaymentID,
		req.GatewayPaymentID, req.GatewayOrderID, req.Signature)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "payment": payment})
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	payments, err := h.payments.ListPayments(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"payments": payments})
}
