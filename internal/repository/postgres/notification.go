package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentivo-backend/internal/domain"
	"rentivo-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `INSERT INTO notifications (id, user_id, title, message, created_at) VALUES ($1, $2, $3, $4, $5)`
	n.CreatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query, n.ID, n.UserID, n.Title, n.Message, n.CreatedAt)
	return err
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	query := `SELECT id, user_id, title, message, created_at FROM notifications
	          WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

type deviceRepository struct {
	db *sql.DB
}

func NewDeviceRepository(db *sql.DB) repository.DeviceRepository {
	return &deviceRepository{db: db}
}

func (r *deviceRepository) Create(ctx context.Context, d *domain.Device) error {
	// Re-registering the same token moves it to its current user.
	query := `INSERT INTO devices (id, user_id, token, platform, created_at)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (token) DO UPDATE SET user_id = EXCLUDED.user_id, platform = EXCLUDED.platform`
	d.CreatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query, d.ID, d.UserID, d.Token, d.Platform, d.CreatedAt)
	return err
}

func (r *deviceRepository) ListTokensByUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT token FROM devices WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}
