package repo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"stitchpress/internal/domain"
)

type DesignRepo interface {
	Create(ctx context.Context, design *domain.Design) error
	FindById(ctx context.Context, id uuid.UUID) (*domain.Design, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Design, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type designRepo struct {
	db *sql.DB
}

func NewDesignRepo(db *sql.DB) DesignRepo {
	return &designRepo{db: db}
}

func (r *designRepo) Create(ctx context.Context, design *domain.Design) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO designs (id, customer_id, description, file_path, file_type, created_at) VALUES ($1, $2, $3, $4, $5, $6)",
		design.ID, design.CustomerID, design.Description, design.FilePath, design.FileType, design.CreatedAt,
	)
	return err
}

func (r *designRepo) FindById(ctx context.Context, id uuid.UUID) (*domain.Design, error) {
	var d domain.Design
	err := r.db.QueryRowContext(ctx,
		"SELECT id, customer_id, description, file_path, file_type, created_at FROM designs WHERE id = $1", id,
	).Scan(
		&d.ID,
		&d.CustomerID,
		&d.Description,
		&d.FilePath,
		&d.FileType,
		&d.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *designRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Design, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, customer_id, description, file_path, file_type, created_at FROM designs WHERE customer_id = $1 ORDER BY created_at DESC",
		customerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var designs []domain.Design
	for rows.Next() {
		var d domain.Design
		if err := rows.Scan(&d.ID, &d.CustomerID, &d.Description, &d.FilePath, &d.FileType, &d.CreatedAt); err != nil {
			return nil, err
		}
		designs = append(designs, d)
	}
	return designs, rows.Err()
}

func (r *designRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM designs WHERE id = $1", id)
	return err
}
