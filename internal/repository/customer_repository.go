package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/car-rental-reservation/internal/model"
	"github.com/iliyamo/car-rental-reservation/internal/utils"
)

// CustomerRepo persists customer accounts.
type CustomerRepo struct{ DB *sql.DB }

func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{DB: db} }

var ErrHandleExists = errors.New("handle already exists")

// Create inserts a customer with a bcrypt-hashed credential and returns
// its ID. A duplicate handle maps to ErrHandleExists.
func (r *CustomerRepo) Create(ctx context.Context, name, handle, password string, cost int) (uint64, error) {
	handle = strings.ToLower(strings.TrimSpace(handle))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO customers (name, handle, password_hash) VALUES (?,?,?)",
		name, handle, hash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrHandleExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByHandle fetches a customer by normalized handle.
func (r *CustomerRepo) GetByHandle(ctx context.Context, handle string) (model.Customer, error) {
	handle = strings.ToLower(strings.TrimSpace(handle))
	var c model.Customer
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,handle,password_hash,created_at,updated_at FROM customers WHERE handle=? LIMIT 1",
		handle).Scan(&c.ID, &c.Name, &c.Handle, &c.PasswordHash, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// GetByID fetches a customer by id.
func (r *CustomerRepo) GetByID(ctx context.Context, id uint64) (model.Customer, error) {
	var c model.Customer
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,handle,password_hash,created_at,updated_at FROM customers WHERE id=? LIMIT 1",
		id).Scan(&c.ID, &c.Name, &c.Handle, &c.PasswordHash, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
