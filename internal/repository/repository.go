package repository

import (
	"context"
	"time"

	"rentivo-backend/internal/domain"
)

// Repositories return coded domain errors for missing rows; status-guarded
// transition methods report whether a row in the required prior state was
// updated, so services can distinguish a lost race from a missing entity.

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByRenter(ctx context.Context, renterID string) ([]domain.Booking, error)

	// RecordHandover transitions PENDING -> ONGOING. Returns false when no
	// PENDING row matched.
	RecordHandover(ctx context.Context, id, photo, notes string) (bool, error)
	// RecordReturn transitions ONGOING -> COMPLETED. Returns false when no
	// ONGOING row matched.
	RecordReturn(ctx context.Context, id, photo, notes string) (bool, error)
	SetExtension(ctx context.Context, id string, until time.Time) error

	AddAvailability(ctx context.Context, window *domain.AvailabilityWindow) error
	ListAvailability(ctx context.Context, itemID string) ([]domain.AvailabilityWindow, error)

	ListOverdueOngoing(ctx context.Context, asOf time.Time) ([]domain.Booking, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	List(ctx context.Context) ([]domain.Payment, error)

	// MarkPaid transitions PENDING -> PAID and stores the gateway payment id.
	// Returns false when no PENDING row matched.
	MarkPaid(ctx context.Context, id, gatewayPaymentID string) (bool, error)
	MarkFailed(ctx context.Context, id string) (bool, error)
}

type IssueRepository interface {
	Create(ctx context.Context, issue *domain.Issue) error
	GetByID(ctx context.Context, id string) (*domain.Issue, error)
	ListAll(ctx context.Context) ([]domain.Issue, error)
	ListByReporter(ctx context.Context, reporterID string) ([]domain.Issue, error)

	// Resolve atomically applies the terminal status carried on issue and,
	// when deduct > 0 and the status is APPROVED, debits the insurance pool
	// inside the same transaction (clamped at zero, pool created lazily).
	// The returned pool is nil when no debit took place.
	Resolve(ctx context.Context, issue *domain.Issue, deduct int64) (*domain.InsurancePool, error)

	GetPool(ctx context.Context) (*domain.InsurancePool, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ItemRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Item, error)
}

type DeviceRepository interface {
	Create(ctx context.Context, device *domain.Device) error
	ListTokensByUser(ctx context.Context, userID string) ([]string, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	ListByUser(ctx context.Context, userID string) ([]domain.Notification, error)
}
