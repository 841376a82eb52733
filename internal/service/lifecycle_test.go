package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentivo-backend/internal/domain"
	"rentivo-backend/internal/gateway"
)

// In-memory fakes backing the full-lifecycle test below. They implement the
// same transition guards as the SQL repositories.

type fakeStore struct {
	bookings map[string]*domain.Booking
	payments map[string]*domain.Payment
	issues   map[string]*domain.Issue
	users    map[string]*domain.User
	items    map[string]*domain.Item
	pool     *domain.InsurancePool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bookings: map[string]*domain.Booking{},
		payments: map[string]*domain.Payment{},
		issues:   map[string]*domain.Issue{},
		users:    map[string]*domain.User{},
		items:    map[string]*domain.Item{},
		pool:     &domain.InsurancePool{ID: "pool-1", Balance: 1000},
	}
}

func (s *fakeStore) Create(ctx context.Context, b *domain.Booking) error {
	copied := *b
	s.bookings[b.ID] = &copied
	return nil
}
func (s *fakeStore) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.Errf(domain.CodeNotFound, "booking %s not found", id)
	}
	copied := *b
	return &copied, nil
}
func (s *fakeStore) ListByRenter(ctx context.Context, renterID string) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range s.bookings {
		if b.RenterID == renterID {
			out = append(out, *b)
		}
	}
	return out, nil
}
func (s *fakeStore) RecordHandover(ctx context.Context, id, photo, notes string) (bool, error) {
	b, ok := s.bookings[id]
	if !ok || b.Status != domain.BookingStatusPending {
		return false, nil
	}
	b.Status = domain.BookingStatusOngoing
	b.HandoverPhoto = photo
	b.HandoverNotes = notes
	return true, nil
}
func (s *fakeStore) RecordReturn(ctx context.Context, id, photo, notes string) (bool, error) {
	b, ok := s.bookings[id]
	if !ok || b.Status != domain.BookingStatusOngoing {
		return false, nil
	}
	b.Status = domain.BookingStatusCompleted
	b.ReturnPhoto = photo
	b.ReturnNotes = notes
	return true, nil
}
func (s *fakeStore) SetExtension(ctx context.Context, id string, until time.Time) error {
	b, ok := s.bookings[id]
	if !ok {
		return domain.Errf(domain.CodeNotFound, "booking %s not found", id)
	}
	b.ExtendedUntil = &until
	return nil
}
func (s *fakeStore) AddAvailability(ctx context.Context, w *domain.AvailabilityWindow) error {
	return nil
}
func (s *fakeStore) ListAvailability(ctx context.Context, itemID string) ([]domain.AvailabilityWindow, error) {
	return nil, nil
}
func (s *fakeStore) ListOverdueOngoing(ctx context.Context, asOf time.Time) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range s.bookings {
		if b.Status == domain.BookingStatusOngoing && b.EffectiveEndDate().Before(asOf) {
			out = append(out, *b)
		}
	}
	return out, nil
}

type fakePaymentRepo struct{ s *fakeStore }

func (r *fakePaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	copied := *p
	r.s.payments[p.ID] = &copied
	return nil
}
func (r *fakePaymentRepo) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	p, ok := r.s.payments[id]
	if !ok {
		return nil, domain.Errf(domain.CodeNotFound, "payment %s not found", id)
	}
	copied := *p
	return &copied, nil
}
func (r *fakePaymentRepo) List(ctx context.Context) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range r.s.payments {
		out = append(out, *p)
	}
	return out, nil
}
func (r *fakePaymentRepo) MarkPaid(ctx context.Context, id, gatewayPaymentID string) (bool, error) {
	p, ok := r.s.payments[id]
	if !ok || p.Status != domain.PaymentStatusPending {
		return false, nil
	}
	p.Status = domain.PaymentStatusPaid
	p.GatewayPaymentID = &gatewayPaymentID
	return true, nil
}
func (r *fakePaymentRepo) MarkFailed(ctx context.Context, id string) (bool, error) {
	p, ok := r.s.payments[id]
	if !ok || p.Status != domain.PaymentStatusPending {
		return false, nil
	}
	p.Status = domain.PaymentStatusFailed
	return true, nil
}

type fakeIssueRepo struct{ s *fakeStore }

func (r *fakeIssueRepo) Create(ctx context.Context, issue *domain.Issue) error {
	copied := *issue
	r.s.issues[issue.ID] = &copied
	return nil
}
func (r *fakeIssueRepo) GetByID(ctx context.Context, id string) (*domain.Issue, error) {
	issue, ok := r.s.issues[id]
	if !ok {
		return nil, domain.Errf(domain.CodeNotFound, "issue %s not found", id)
	}
	copied := *issue
	return &copied, nil
}
func (r *fakeIssueRepo) ListAll(ctx context.Context) ([]domain.Issue, error) {
	var out []domain.Issue
	for _, issue := range r.s.issues {
		out = append(out, *issue)
	}
	return out, nil
}
func (r *fakeIssueRepo) ListByReporter(ctx context.Context, reporterID string) ([]domain.Issue, error) {
	var out []domain.Issue
	for _, issue := range r.s.issues {
		if issue.ReporterID == reporterID {
			out = append(out, *issue)
		}
	}
	return out, nil
}
func (r *fakeIssueRepo) Resolve(ctx context.Context, issue *domain.Issue, deduct int64) (*domain.InsurancePool, error) {
	stored, ok := r.s.issues[issue.ID]
	if !ok || stored.Status != domain.IssueStatusOpen {
		return nil, domain.Errf(domain.CodeInvalidTransition, "issue %s is not open", issue.ID)
	}
	*stored = *issue

	if issue.Status != domain.IssueStatusApproved || deduct <= 0 {
		return nil, nil
	}
	debit := deduct
	if debit > r.s.pool.Balance {
		debit = r.s.pool.Balance
	}
	r.s.pool.Balance -= debit
	stored.DeductionAmount = debit
	stored.InsurancePoolID = &r.s.pool.ID
	issue.DeductionAmount = debit
	issue.InsurancePoolID = &r.s.pool.ID
	copied := *r.s.pool
	return &copied, nil
}
func (r *fakeIssueRepo) GetPool(ctx context.Context) (*domain.InsurancePool, error) {
	copied := *r.s.pool
	return &copied, nil
}

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.Errf(domain.CodeNotFound, "user %s not found", id)
	}
	return u, nil
}
func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.Errf(domain.CodeNotFound, "user not found")
}

type fakeItemRepo struct{ s *fakeStore }

func (r *fakeItemRepo) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	item, ok := r.s.items[id]
	if !ok {
		return nil, domain.Errf(domain.CodeNotFound, "item %s not found", id)
	}
	return item, nil
}

type fakeGateway struct{ orders int }

func (g *fakeGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*gateway.Order, error) {
	g.orders++
	return &gateway.Order{
		ID:       fmt.Sprintf("order_%d", g.orders),
		Amount:   amountMinor,
		Currency: currency,
		Receipt:  receipt,
	}, nil
}
func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return signature == "valid-"+orderID+"-"+paymentID
}

type noopNotifier struct{ count int }

func (n *noopNotifier) NotifyUser(ctx context.Context, user *domain.User, title, message string) {
	n.count++
}

func TestFullRentalLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.users["owner-1"] = &domain.User{ID: "owner-1", Email: "owner@test.com", Role: domain.RoleUser}
	store.users["renter-1"] = &domain.User{ID: "renter-1", Email: "renter@test.com", Role: domain.RoleUser}
	store.users["admin-1"] = &domain.User{ID: "admin-1", Email: "admin@test.com", Role: domain.RoleAdmin}
	store.items["item-1"] = &domain.Item{ID: "item-1", Title: "DSLR Camera", OwnerID: "owner-1"}

	gw := &fakeGateway{}
	notifier := &noopNotifier{}
	paymentRepo := &fakePaymentRepo{s: store}
	issueRepo := &fakeIssueRepo{s: store}
	userRepo := &fakeUserRepo{s: store}
	itemRepo := &fakeItemRepo{s: store}

	bookingSvc := NewBookingService(store, itemRepo)
	paymentSvc := NewPaymentService(paymentRepo, store, itemRepo, userRepo, gw, notifier, "INR")
	issueSvc := NewIssueService(issueRepo, store, itemRepo, userRepo, notifier)

	// Book
	booking, err := bookingSvc.Create(ctx, "item-1", "renter-1", date("2026-09-01"), date("2026-09-05"))
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusPending, booking.Status)

	// Pay
	payment, order, err := paymentSvc.CreatePaymentIntent(ctx, booking.ID, "renter-1", 1000, 200, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(130000), order.Amount)

	// Handover
	booking, err = bookingSvc.RecordHandover(ctx, booking.ID, "owner-1", "handover.jpg", "pristine")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusOngoing, booking.Status)

	// Settle the gateway callback, twice; the duplicate is a no-op.
	sig := "valid-" + order.ID + "-pay_1"
	payment, err = paymentSvc.ConfirmPayment(ctx, payment.ID, "pay_1", order.ID, sig)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, payment.Status)
	settled := notifier.count

	payment, err = paymentSvc.ConfirmPayment(ctx, payment.ID, "pay_1", order.ID, sig)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, payment.Status)
	assert.Equal(t, settled, notifier.count)

	// Return
	booking, err = bookingSvc.RecordReturn(ctx, booking.ID, "renter-1", "return.jpg", "scratched lens")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCompleted, booking.Status)

	// Dispute
	issue, err := issueSvc.RaiseIssue(ctx, booking.ID, "owner-1", "scratched lens", []string{"damage.jpg"})
	require.NoError(t, err)

	// Adjudicate: 200 comes out of the 1000 pool.
	issue, pool, err := issueSvc.ResolveIssue(ctx, issue.ID, "admin-1", domain.IssueStatusApproved, "damage confirmed", 200)
	require.NoError(t, err)
	assert.Equal(t, domain.IssueStatusApproved, issue.Status)
	assert.Equal(t, int64(200), issue.DeductionAmount)
	assert.Equal(t, int64(800), pool.Balance)

	// A second resolution attempt hits the terminal guard.
	_, _, err = issueSvc.ResolveIssue(ctx, issue.ID, "admin-1", domain.IssueStatusRejected, "", 0)
	assertCode(t, err, domain.CodeInvalidTransition)
}

func TestPoolDebitClampsAtZero(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.pool.Balance = 150
	store.users["admin-1"] = &domain.User{ID: "admin-1", Role: domain.RoleAdmin}
	store.users["owner-1"] = &domain.User{ID: "owner-1", Role: domain.RoleUser}
	store.items["item-1"] = &domain.Item{ID: "item-1", Title: "Drill", OwnerID: "owner-1"}
	store.bookings["bk-1"] = &domain.Booking{
		ID: "bk-1", ItemID: "item-1", RenterID: "renter-1",
		Status: domain.BookingStatusCompleted,
	}

	issueRepo := &fakeIssueRepo{s: store}
	issueSvc := NewIssueService(issueRepo, store, &fakeItemRepo{s: store}, &fakeUserRepo{s: store}, &noopNotifier{})

	issue, err := issueSvc.RaiseIssue(ctx, "bk-1", "owner-1", "broken chuck", nil)
	require.NoError(t, err)

	issue, pool, err := issueSvc.ResolveIssue(ctx, issue.ID, "admin-1", domain.IssueStatusApproved, "", 500)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pool.Balance)
	assert.Equal(t, int64(150), issue.DeductionAmount)
}
