package postgres

import (
	"database/sql"

	"rentivo-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.BookingRepository
	repository.PaymentRepository
	repository.IssueRepository
	repository.UserRepository
	repository.ItemRepository
	repository.DeviceRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		BookingRepository:      NewBookingRepository(db),
		PaymentRepository:      NewPaymentRepository(db),
		IssueRepository:        NewIssueRepository(db),
		UserRepository:         NewUserRepository(db),
		ItemRepository:         NewItemRepository(db),
		DeviceRepository:       NewDeviceRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
