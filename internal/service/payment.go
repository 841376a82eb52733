package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"rentivo-backend/internal/domain"
	"rentivo-backend/internal/gateway"
	"rentivo-backend/internal/notify"
	"rentivo-backend/internal/repository"
	"rentivo-backend/internal/utils"
)

type paymentService struct {
	paymentRepo repository.PaymentRepository
	bookingRepo repository.BookingRepository
	itemRepo    repository.ItemRepository
	userRepo    repository.UserRepository
	gw          gateway.PaymentGateway
	notifier    notify.Notifier
	currency    string
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	bookingRepo repository.BookingRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	gw gateway.PaymentGateway,
	notifier notify.Notifier,
	currency string,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		gw:          gw,
		notifier:    notifier,
		currency:    currency,
	}
}

func (s *paymentService) CreatePaymentIntent(ctx context.Context, bookingID, userID string, amount, insuranceFee, platformFee int64) (*domain.Payment, *gateway.Order, error) {
	if bookingID == "" || userID == "" {
		return nil, nil, domain.Errf(domain.CodeValidation, "bookingid and userid are required")
	}
	if amount <= 0 {
		return nil, nil, domain.Errf(domain.CodeValidation, "amount must be positive")
	}
	if insuranceFee < 0 || platformFee < 0 {
		return nil, nil, domain.Errf(domain.CodeValidation, "fees must not be negative")
	}

	if _, err := s.bookingRepo.GetByID(ctx, bookingID); err != nil {
		return nil, nil, err
	}

	// The gateway order covers the full charge in minor units. The payment
	// row is only created once the order exists, so a gateway failure leaves
	// no partial state behind.
	total := utils.TotalCharge(amount, insuranceFee, platformFee)
	order, err := s.gw.CreateOrder(ctx, utils.ToMinorUnits(total), s.currency, bookingID)
	if err != nil {
		return nil, nil, domain.WrapErr(domain.CodeGateway, err, "payment gateway order creation failed")
	}

	payment := &domain.Payment{
		ID:             uuid.NewString(),
		BookingID:      bookingID,
		UserID:         userID,
		Amount:         amount,
		InsuranceFee:   insuranceFee,
		PlatformFee:    platformFee,
		GatewayOrderID: order.ID,
		Status:         domain.PaymentStatusPending,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, nil, err
	}
	return payment, order, nil
}

func (s *paymentService) ConfirmPayment(ctx context.Context, paymentID, gatewayPaymentID, gatewayOrderID, signature string) (*domain.Payment, error) {
	if paymentID == "" || gatewayPaymentID == "" || gatewayOrderID == "" || signature == "" {
		return nil, domain.Errf(domain.CodeValidation,
			"paymentid, gatewaypaymentid, gatewayorderid and signature are required")
	}

	// Signature check happens before any read or write; a forged callback
	// must not learn whether the payment exists.
	if !s.gw.VerifySignature(gatewayOrderID, gatewayPaymentID, signature) {
		return nil, domain.Errf(domain.CodeSignatureMismatch, "payment verification failed")
	}

	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.GatewayOrderID != gatewayOrderID {
		// The callback is well-formed and verified but names a different
		// order than the one this payment was opened with.
		return nil, domain.Errf(domain.CodeAlreadyConfirmed,
			"order id does not match the order opened for payment %s", paymentID)
	}

	switch payment.Status {
	case domain.PaymentStatusPaid:
		// Idempotent duplicate delivery of the same callback.
		if payment.GatewayPaymentID != nil && *payment.GatewayPaymentID == gatewayPaymentID {
			return payment, nil
		}
		return nil, domain.Errf(domain.CodeAlreadyConfirmed,
			"payment %s was already confirmed with a different gateway payment id", paymentID)
	case domain.PaymentStatusFailed:
		return nil, domain.Errf(domain.CodeInvalidTransition, "payment %s has failed and cannot be confirmed", paymentID)
	}

	ok, err := s.paymentRepo.MarkPaid(ctx, paymentID, gatewayPaymentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost to a concurrent confirmation; re-read and apply the same
		// idempotency rule.
		payment, err = s.paymentRepo.GetByID(ctx, paymentID)
		if err != nil {
			return nil, err
		}
		if payment.Status == domain.PaymentStatusPaid &&
			payment.GatewayPaymentID != nil && *payment.GatewayPaymentID == gatewayPaymentID {
			return payment, nil
		}
		return nil, domain.Errf(domain.CodeAlreadyConfirmed,
			"payment %s was already confirmed with a different gateway payment id", paymentID)
	}

	payment.Status = domain.PaymentStatusPaid
	payment.GatewayPaymentID = &gatewayPaymentID

	s.notifySettled(ctx, payment)
	return payment, nil
}

// notifySettled fans payment-settled notifications out to the renter and the
// item owner. Everything here is best-effort: lookup failures are logged and
// the confirmation response is never affected.
func (s *paymentService) notifySettled(ctx context.Context, payment *domain.Payment) {
	booking, err := s.bookingRepo.GetByID(ctx, payment.BookingID)
	if err != nil {
		return
	}
	item, err := s.itemRepo.GetByID(ctx, booking.ItemID)
	if err != nil {
		return
	}

	if renter, err := s.userRepo.GetByID(ctx, booking.RenterID); err == nil {
		s.notifier.NotifyUser(ctx, renter, "Payment Received",
			fmt.Sprintf("Your payment of %d for %s has been received.", payment.Amount, item.Title))
	}
	if owner, err := s.userRepo.GetByID(ctx, item.OwnerID); err == nil {
		s.notifier.NotifyUser(ctx, owner, "Payment Completed",
			fmt.Sprintf("You received a payment of %d for your item %s.", payment.Amount, item.Title))
	}
}

func (s *paymentService) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	return s.paymentRepo.List(ctx)
}
