package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"rentivo-backend/internal/domain"
)

func TestPaymentRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentRepository(db)
	ctx := context.Background()

	p := &domain.Payment{
		ID:             "pm-1",
		BookingID:      "bk-1",
		UserID:         "renter-1",
		Amount:         1000,
		InsuranceFee:   200,
		PlatformFee:    100,
		GatewayOrderID: "order_1",
		Status:         domain.PaymentStatusPending,
	}

	mock.ExpectExec("INSERT INTO payments").
		WithArgs(p.ID, p.BookingID, p.UserID, p.Amount, p.InsuranceFee, p.PlatformFee,
			p.GatewayOrderID, p.Status, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(ctx, p)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		gpid := "pay_1"
		rows := sqlmock.NewRows([]string{
			"id", "booking_id", "user_id", "amount", "insurance_fee", "platform_fee",
			"gateway_order_id", "gateway_payment_id", "status", "created_at", "updated_at",
		}).AddRow("pm-1", "bk-1", "renter-1", 1000, 200, 100, "order_1", gpid,
			domain.PaymentStatusPaid, time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM payments WHERE id").
			WithArgs("pm-1").
			WillReturnRows(rows)

		p, err := repo.GetByID(ctx, "pm-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPaid, p.Status)
		if assert.NotNil(t, p.GatewayPaymentID) {
			assert.Equal(t, "pay_1", *p.GatewayPaymentID)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM payments WHERE id").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, "missing")
		var de *domain.Error
		assert.ErrorAs(t, err, &de)
		assert.Equal(t, domain.CodeNotFound, de.Code)
	})
}

func TestPaymentRepository_MarkPaid(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentRepository(db)
	ctx := context.Background()

	t.Run("Pending Row Matched", func(t *testing.T) {
		mock.ExpectExec("UPDATE payments SET status").
			WithArgs(domain.PaymentStatusPaid, "pay_1", sqlmock.AnyArg(), "pm-1", domain.PaymentStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.MarkPaid(ctx, "pm-1", "pay_1")
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Already Settled", func(t *testing.T) {
		mock.ExpectExec("UPDATE payments SET status").
			WithArgs(domain.PaymentStatusPaid, "pay_1", sqlmock.AnyArg(), "pm-1", domain.PaymentStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.MarkPaid(ctx, "pm-1", "pay_1")
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestPaymentRepository_MarkFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentRepository(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE payments SET status").
		WithArgs(domain.PaymentStatusFailed, sqlmock.AnyArg(), "pm-1", domain.PaymentStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.MarkFailed(ctx, "pm-1")
	assert.NoError(t, err)
	assert.True(t, ok)
}
