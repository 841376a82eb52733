package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentivo-backend/internal/domain"
	"rentivo-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, booking_id, user_id, amount, insurance_fee, platform_fee,
	gateway_order_id, gateway_payment_id, status, created_at, updated_at`

func scanPayment(row interface{ Scan(...any) error }) (*domain.Payment, error) {
	p := &domain.Payment{}
	err := row.Scan(&p.ID, &p.BookingID, &p.UserID, &p.Amount, &p.InsuranceFee, &p.PlatformFee,
		&p.GatewayOrderID, &p.GatewayPaymentID, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (id, booking_id, user_id, amount, insurance_fee, platform_fee,
	          gateway_order_id, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, query, p.ID, p.BookingID, p.UserID, p.Amount, p.InsuranceFee,
		p.PlatformFee, p.GatewayOrderID, p.Status, now, now)
	return err
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	p, err := scanPayment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.Errf(domain.CodeNotFound, "payment %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) MarkPaid(ctx context.Context, id, gatewayPaymentID string) (bool, error) {
	query := `UPDATE payments SET status = $1, gateway_payment_id = $2, updated_at = $3
	          WHERE id = $4 AND status = $5`
	res, err := r.db.ExecContext(ctx, query, domain.PaymentStatusPaid, gatewayPaymentID, time.Now(),
		id, domain.PaymentStatusPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *paymentRepository) MarkFailed(ctx context.Context, id string) (bool, error) {
	query := `UPDATE payments SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`
	res, err := r.db.ExecContext(ctx, query, domain.PaymentStatusFailed, time.Now(),
		id, domain.PaymentStatusPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
