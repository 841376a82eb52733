package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rentivo-backend/internal/domain"
	"rentivo-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, email, COALESCE(phone, ''), password_hash, role, created_at`

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id), id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email), email)
}

func (r *userRepository) scanUser(row *sql.Row, key string) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.Errf(domain.CodeNotFound, "user %s not found", key)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

type itemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	query := `SELECT id, title, owner_id, created_at FROM items WHERE id = $1`
	i := &domain.Item{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&i.ID, &i.Title, &i.OwnerID, &i.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.Errf(domain.CodeNotFound, "item %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return i, nil
}
