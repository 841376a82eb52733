package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"rentivo-backend/internal/domain"
	"rentivo-backend/internal/gateway"
)

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByRenter(ctx context.Context, renterID string) ([]domain.Booking, error) {
	args := m.Called(ctx, renterID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) RecordHandover(ctx context.Context, id, photo, notes string) (bool, error) {
	args := m.Called(ctx, id, photo, notes)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) RecordReturn(ctx context.Context, id, photo, notes string) (bool, error) {
	args := m.Called(ctx, id, photo, notes)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) SetExtension(ctx context.Context, id string, until time.Time) error {
	args := m.Called(ctx, id, until)
	return args.Error(0)
}
func (m *MockBookingRepo) AddAvailability(ctx context.Context, window *domain.AvailabilityWindow) error {
	args := m.Called(ctx, window)
	return args.Error(0)
}
func (m *MockBookingRepo) ListAvailability(ctx context.Context, itemID string) ([]domain.AvailabilityWindow, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).([]domain.AvailabilityWindow), args.Error(1)
}
func (m *MockBookingRepo) ListOverdueOngoing(ctx context.Context, asOf time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) List(ctx context.Context) ([]domain.Payment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) MarkPaid(ctx context.Context, id, gatewayPaymentID string) (bool, error) {
	args := m.Called(ctx, id, gatewayPaymentID)
	return args.Bool(0), args.Error(1)
}
func (m *MockPaymentRepo) MarkFailed(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockIssueRepo
type MockIssueRepo struct {
	mock.Mock
}

func (m *MockIssueRepo) Create(ctx context.Context, issue *domain.Issue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}
func (m *MockIssueRepo) GetByID(ctx context.Context, id string) (*domain.Issue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Issue), args.Error(1)
}
func (m *MockIssueRepo) ListAll(ctx context.Context) ([]domain.Issue, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Issue), args.Error(1)
}
func (m *MockIssueRepo) ListByReporter(ctx context.Context, reporterID string) ([]domain.Issue, error) {
	args := m.Called(ctx, reporterID)
	return args.Get(0).([]domain.Issue), args.Error(1)
}
func (m *MockIssueRepo) Resolve(ctx context.Context, issue *domain.Issue, deduct int64) (*domain.InsurancePool, error) {
	args := m.Called(ctx, issue, deduct)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InsurancePool), args.Error(1)
}
func (m *MockIssueRepo) GetPool(ctx context.Context) (*domain.InsurancePool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InsurancePool), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockItemRepo
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

// MockDeviceRepo
type MockDeviceRepo struct {
	mock.Mock
}

func (m *MockDeviceRepo) Create(ctx context.Context, device *domain.Device) error {
	args := m.Called(ctx, device)
	return args.Error(0)
}
func (m *MockDeviceRepo) ListTokensByUser(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]string), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) ListByUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Notification), args.Error(1)
}

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*gateway.Order, error) {
	args := m.Called(ctx, amountMinor, currency, receipt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Order), args.Error(1)
}
func (m *MockGateway) VerifySignature(orderID, paymentID, signature string) bool {
	args := m.Called(orderID, paymentID, signature)
	return args.Bool(0)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyUser(ctx context.Context, user *domain.User, title, message string) {
	m.Called(ctx, user, title, message)
}
