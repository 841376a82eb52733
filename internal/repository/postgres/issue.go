package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"rentivo-backend/internal/domain"
	"rentivo-backend/internal/repository"
)

type issueRepository struct {
	db *sql.DB
}

func NewIssueRepository(db *sql.DB) repository.IssueRepository {
	return &issueRepository{db: db}
}

const issueColumns = `id, booking_id, reporter_id, description, photos, status,
	COALESCE(resolution_note, ''), resolved_by, deduction_amount, insurance_pool_id, created_at, updated_at`

func scanIssue(row interface{ Scan(...any) error }) (*domain.Issue, error) {
	i := &domain.Issue{}
	err := row.Scan(&i.ID, &i.BookingID, &i.ReporterID, &i.Description, pq.Array(&i.Photos),
		&i.Status, &i.ResolutionNote, &i.ResolvedBy, &i.DeductionAmount, &i.InsurancePoolID,
		&i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return i, nil
}

func (r *issueRepository) Create(ctx context.Context, i *domain.Issue) error {
	query := `INSERT INTO issues (id, booking_id, reporter_id, description, photos, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	now := time.Now()
	i.CreatedAt = now
	i.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, query, i.ID, i.BookingID, i.ReporterID, i.Description,
		pq.Array(i.Photos), i.Status, now, now)
	return err
}

func (r *issueRepository) GetByID(ctx context.Context, id string) (*domain.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues WHERE id = $1`
	i, err := scanIssue(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.Errf(domain.CodeNotFound, "issue %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return i, nil
}

func (r *issueRepository) ListAll(ctx context.Context) ([]domain.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues ORDER BY created_at DESC`
	return r.listIssues(ctx, query)
}

func (r *issueRepository) ListByReporter(ctx context.Context, reporterID string) ([]domain.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues WHERE reporter_id = $1 ORDER BY created_at DESC`
	return r.listIssues(ctx, query, reporterID)
}

func (r *issueRepository) listIssues(ctx context.Context, query string, args ...any) ([]domain.Issue, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var issues []domain.Issue
	for rows.Next() {
		i, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		issues = append(issues, *i)
	}
	return issues, rows.Err()
}

// Resolve commits the terminal issue status and, for an approved issue with a
// positive deduction, the clamped insurance-pool debit as one transaction.
// The pool row is locked for the duration of the balance update so two
// concurrent resolutions serialize.
func (r *issueRepository) Resolve(ctx context.Context, issue *domain.Issue, deduct int64) (*domain.InsurancePool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.ExecContext(ctx,
		`UPDATE issues SET status = $1, resolution_note = $2, resolved_by = $3, updated_at = $4
		 WHERE id = $5 AND status = $6`,
		issue.Status, issue.ResolutionNote, issue.ResolvedBy, now, issue.ID, domain.IssueStatusOpen)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.Errf(domain.CodeInvalidTransition, "issue %s is not open", issue.ID)
	}
	issue.UpdatedAt = now

	var pool *domain.InsurancePool
	if issue.Status == domain.IssueStatusApproved && deduct > 0 {
		pool, err = r.debitPool(ctx, tx, issue, deduct)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit issue resolution: %w", err)
	}
	return pool, nil
}

func (r *issueRepository) debitPool(ctx context.Context, tx *sql.Tx, issue *domain.Issue, deduct int64) (*domain.InsurancePool, error) {
	pool := &domain.InsurancePool{}
	err := tx.QueryRowContext(ctx,
		`SELECT id, balance, created_at, updated_at FROM insurance_pools ORDER BY created_at LIMIT 1 FOR UPDATE`).
		Scan(&pool.ID, &pool.Balance, &pool.CreatedAt, &pool.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// First debit ever: create the pool with a zero balance.
		pool.ID = uuid.NewString()
		pool.CreatedAt = time.Now()
		pool.UpdatedAt = pool.CreatedAt
		_, err = tx.ExecContext(ctx,
			`INSERT INTO insurance_pools (id, balance, created_at, updated_at) VALUES ($1, 0, $2, $3)`,
			pool.ID, pool.CreatedAt, pool.UpdatedAt)
	}
	if err != nil {
		return nil, err
	}

	// Clamp so the balance never goes negative.
	debit := deduct
	if debit > pool.Balance {
		debit = pool.Balance
	}
	pool.Balance -= debit
	pool.UpdatedAt = time.Now()

	if _, err := tx.ExecContext(ctx,
		`UPDATE insurance_pools SET balance = $1, updated_at = $2 WHERE id = $3`,
		pool.Balance, pool.UpdatedAt, pool.ID); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE issues SET deduction_amount = $1, insurance_pool_id = $2 WHERE id = $3`,
		debit, pool.ID, issue.ID); err != nil {
		return nil, err
	}
	issue.DeductionAmount = debit
	issue.InsurancePoolID = &pool.ID

	return pool, nil
}

func (r *issueRepository) GetPool(ctx context.Context) (*domain.InsurancePool, error) {
	pool := &domain.InsurancePool{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, balance, created_at, updated_at FROM insurance_pools ORDER BY created_at LIMIT 1`).
		Scan(&pool.ID, &pool.Balance, &pool.CreatedAt, &pool.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.Errf(domain.CodeNotFound, "insurance pool not found")
	}
	if err != nil {
		return nil, err
	}
	return pool, nil
}
