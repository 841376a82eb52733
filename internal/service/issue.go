package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"rentivo-backend/internal/domain"
	"rentivo-backend/internal/notify"
	"rentivo-backend/internal/repository"
)

type issueService struct {
	issueRepo   repository.IssueRepository
	bookingRepo repository.BookingRepository
	itemRepo    repository.ItemRepository
	userRepo    repository.UserRepository
	notifier    notify.Notifier
}

func NewIssueService(
	issueRepo repository.IssueRepository,
	bookingRepo repository.BookingRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	notifier notify.Notifier,
) IssueService {
	return &issueService{
		issueRepo:   issueRepo,
		bookingRepo: bookingRepo,
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

func (s *issueService) RaiseIssue(ctx context.Context, bookingID, reporterID, description string, photos []string) (*domain.Issue, error) {
	if bookingID == "" || reporterID == "" || description == "" {
		return nil, domain.Errf(domain.CodeValidation, "bookingid, reporterid and description are required")
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	item, err := s.itemRepo.GetByID(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != reporterID {
		return nil, domain.Errf(domain.CodeForbidden, "only the item owner can raise an issue")
	}

	if booking.Status != domain.BookingStatusCompleted {
		return nil, domain.Errf(domain.CodeInvalidTransition,
			"issues can only be raised against completed bookings, booking %s is %s", bookingID, booking.Status)
	}

	issue := &domain.Issue{
		ID:          uuid.NewString(),
		BookingID:   bookingID,
		ReporterID:  reporterID,
		Description: description,
		Photos:      photos,
		Status:      domain.IssueStatusOpen,
	}
	if err := s.issueRepo.Create(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

func (s *issueService) ResolveIssue(ctx context.Context, issueID, adminID string, newStatus domain.IssueStatus, resolutionNote string, deductAmount int64) (*domain.Issue, *domain.InsurancePool, error) {
	admin, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, nil, err
	}
	if admin.Role != domain.RoleAdmin {
		return nil, nil, domain.Errf(domain.CodeForbidden, "only an admin can resolve issues")
	}

	switch newStatus {
	case domain.IssueStatusApproved, domain.IssueStatusRejected, domain.IssueStatusResolved:
	default:
		return nil, nil, domain.Errf(domain.CodeValidation, "invalid resolution status %q", newStatus)
	}
	if deductAmount < 0 {
		return nil, nil, domain.Errf(domain.CodeValidation, "deduction amount must not be negative")
	}

	issue, err := s.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		return nil, nil, err
	}
	if issue.Status != domain.IssueStatusOpen {
		return nil, nil, domain.Errf(domain.CodeInvalidTransition, "issue %s is already %s", issueID, issue.Status)
	}

	issue.Status = newStatus
	issue.ResolutionNote = resolutionNote
	issue.ResolvedBy = &adminID

	// The status update and the pool debit commit or roll back together.
	pool, err := s.issueRepo.Resolve(ctx, issue, deductAmount)
	if err != nil {
		return nil, nil, err
	}

	s.notifyResolved(ctx, issue)
	return issue, pool, nil
}

// notifyResolved informs the reporting owner and the booking's renter of the
// adjudication, best-effort.
func (s *issueService) notifyResolved(ctx context.Context, issue *domain.Issue) {
	message := fmt.Sprintf("Issue for booking %s was %s.", issue.BookingID, issue.Status)
	if issue.ResolutionNote != "" {
		message = fmt.Sprintf("%s Note: %s", message, issue.ResolutionNote)
	}

	if owner, err := s.userRepo.GetByID(ctx, issue.ReporterID); err == nil {
		s.notifier.NotifyUser(ctx, owner, "Issue Resolved", message)
	}
	if booking, err := s.bookingRepo.GetByID(ctx, issue.BookingID); err == nil {
		if renter, err := s.userRepo.GetByID(ctx, booking.RenterID); err == nil {
			s.notifier.NotifyUser(ctx, renter, "Issue Resolved", message)
		}
	}
}

func (s *issueService) ListIssues(ctx context.Context, callerID string) ([]domain.Issue, error) {
	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if caller.Role == domain.RoleAdmin {
		return s.issueRepo.ListAll(ctx)
	}
	return s.issueRepo.ListByReporter(ctx, callerID)
}

func (s *issueService) GetInsurancePool(ctx context.Context, callerID string) (*domain.InsurancePool, error) {
	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if caller.Role != domain.RoleAdmin {
		return nil, domain.Errf(domain.CodeForbidden, "only an admin can view the insurance pool")
	}
	return s.issueRepo.GetPool(ctx)
}
