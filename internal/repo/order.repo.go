package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"stitchpress/internal/domain"
)

type OrderRepo interface {
	FindById(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	CreateOrder(ctx context.Context, tx *sql.Tx, order *domain.Order) error
	UpdateOrderStatus(ctx context.Context, tx *sql.Tx, order *domain.Order) error
}

type orderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepo {
	return &orderRepo{db: db}
}

func (r *orderRepo) FindById(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var order domain.Order
	err := r.db.QueryRowContext(ctx,
		"SELECT id, customer_id, total_price, status, created_at, updated_at FROM orders WHERE id = $1", id,
	).Scan(
		&order.ID,
		&order.CustomerID,
		&order.TotalPrice,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err // system error
	}
	return &order, nil
}

func (r *orderRepo) CreateOrder(ctx context.Context, tx *sql.Tx, order *domain.Order) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO orders (id, customer_id, total_price, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)",
		order.ID, order.CustomerID, order.TotalPrice, order.Status, order.CreatedAt, order.UpdatedAt,
	)
	return err
}

func (r *orderRepo) UpdateOrderStatus(ctx context.Context, tx *sql.Tx, order *domain.Order) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3",
		order.Status, time.Now(), order.ID,
	)
	return err
}
