package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rentivo-backend/internal/domain"
	"rentivo-backend/internal/repository"
)

type bookingService struct {
	bookingRepo repository.BookingRepository
	itemRepo    repository.ItemRepository
}

func NewBookingService(bookingRepo repository.BookingRepository, itemRepo repository.ItemRepository) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		itemRepo:    itemRepo,
	}
}

func (s *bookingService) Create(ctx context.Context, itemID, renterID string, startDate, endDate time.Time) (*domain.Booking, error) {
	if itemID == "" || renterID == "" || startDate.IsZero() || endDate.IsZero() {
		return nil, domain.Errf(domain.CodeValidation, "itemid, renterid, startdate and enddate are required")
	}
	if !startDate.Before(endDate) {
		return nil, domain.Errf(domain.CodeValidation, "startdate must be before enddate")
	}

	booking := &domain.Booking{
		ID:        uuid.NewString(),
		ItemID:    itemID,
		RenterID:  renterID,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    domain.BookingStatusPending,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) Get(ctx context.Context, bookingID string) (*domain.Booking, error) {
	return s.bookingRepo.GetByID(ctx, bookingID)
}

func (s *bookingService) ListByRenter(ctx context.Context, renterID string) ([]domain.Booking, error) {
	return s.bookingRepo.ListByRenter(ctx, renterID)
}

func (s *bookingService) RecordHandover(ctx context.Context, bookingID, actorID, photoRef, notes string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	item, err := s.itemRepo.GetByID(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != actorID {
		return nil, domain.Errf(domain.CodeForbidden, "only the item owner can record a handover")
	}

	if booking.Status != domain.BookingStatusPending {
		return nil, domain.Errf(domain.CodeInvalidTransition,
			"booking %s cannot be handed over from status %s", bookingID, booking.Status)
	}

	ok, err := s.bookingRepo.RecordHandover(ctx, bookingID, photoRef, notes)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost a race: the status moved between read and write.
		return nil, domain.Errf(domain.CodeInvalidTransition, "booking %s is no longer pending", bookingID)
	}

	return s.bookingRepo.GetByID(ctx, bookingID)
}

func (s *bookingService) RecordReturn(ctx context.Context, bookingID, actorID, photoRef, notes string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusOngoing {
		return nil, domain.Errf(domain.CodeInvalidTransition,
			"booking %s cannot be returned from status %s", bookingID, booking.Status)
	}

	ok, err := s.bookingRepo.RecordReturn(ctx, bookingID, photoRef, notes)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.Errf(domain.CodeInvalidTransition, "booking %s is no longer ongoing", bookingID)
	}

	return s.bookingRepo.GetByID(ctx, bookingID)
}

// Extend is allowed in any status; it moves the extended-until marker and
// never touches the booking status.
func (s *bookingService) Extend(ctx context.Context, bookingID, actorID string, newEndDate time.Time) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !newEndDate.After(booking.EffectiveEndDate()) {
		return nil, domain.Errf(domain.CodeValidation,
			"extension date must be after the current end date %s", booking.EffectiveEndDate().Format("2006-01-02"))
	}

	if err := s.bookingRepo.SetExtension(ctx, bookingID, newEndDate); err != nil {
		return nil, err
	}
	return s.bookingRepo.GetByID(ctx, bookingID)
}

func (s *bookingService) AddAvailabilityWindow(ctx context.Context, itemID string, startDate, endDate time.Time) (*domain.AvailabilityWindow, error) {
	if itemID == "" || startDate.IsZero() || endDate.IsZero() {
		return nil, domain.Errf(domain.CodeValidation, "itemid, startdate and enddate are required")
	}
	if !startDate.Before(endDate) {
		return nil, domain.Errf(domain.CodeValidation, "startdate must be before enddate")
	}

	// Windows are append-only; overlaps against bookings or other windows are
	// not checked.
	window := &domain.AvailabilityWindow{
		ID:        uuid.NewString(),
		ItemID:    itemID,
		StartDate: startDate,
		EndDate:   endDate,
	}
	if err := s.bookingRepo.AddAvailability(ctx, window); err != nil {
		return nil, err
	}
	return window, nil
}

func (s *bookingService) ListAvailabilityWindows(ctx context.Context, itemID string) ([]domain.AvailabilityWindow, error) {
	return s.bookingRepo.ListAvailability(ctx, itemID)
}
