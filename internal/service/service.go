package service

import (
	"context"
	"time"

	"rentivo-backend/internal/domain"
	"rentivo-backend/internal/gateway"
)

type BookingService interface {
	Create(ctx context.Context, itemID, renterID string, startDate, endDate time.Time) (*domain.Booking, error)
	Get(ctx context.Context, bookingID string) (*domain.Booking, error)
	ListByRenter(ctx context.Context, renterID string) ([]domain.Booking, error)
	RecordHandover(ctx context.Context, bookingID, actorID, photoRef, notes string) (*domain.Booking, error)
	RecordReturn(ctx context.Context, bookingID, actorID, photoRef, notes string) (*domain.Booking, error)
	Extend(ctx context.Context, bookingID, actorID string, newEndDate time.Time) (*domain.Booking, error)
	AddAvailabilityWindow(ctx context.Context, itemID string, startDate, endDate time.Time) (*domain.AvailabilityWindow, error)
	ListAvailabilityWindows(ctx context.Context, itemID string) ([]domain.AvailabilityWindow, error)
}

type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, bookingID, userID string, amount, insuranceFee, platformFee int64) (*domain.Payment, *gateway.Order, error)
	ConfirmPayment(ctx context.Context, paymentID, gatewayPaymentID, gatewayOrderID, signature string) (*domain.Payment, error)
	ListPayments(ctx context.Context) ([]domain.Payment, error)
}

type IssueService interface {
	RaiseIssue(ctx context.Context, bookingID, reporterID, description string, photos []string) (*domain.Issue, error)
	ResolveIssue(ctx context.Context, issueID, adminID string, newStatus domain.IssueStatus, resolutionNote string, deductAmount int64) (*domain.Issue, *domain.InsurancePool, error)
	ListIssues(ctx context.Context, callerID string) ([]domain.Issue, error)
	GetInsurancePool(ctx context.Context, callerID string) (*domain.InsurancePool, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

type NotificationService interface {
	RegisterDevice(ctx context.Context, userID, token, platform string) (*domain.Device, error)
	ListNotifications(ctx context.Context, userID string) ([]domain.Notification, error)
}
