package repo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"stitchpress/internal/domain"
)

type MockupRepo interface {
	FindByKey(ctx context.Context, designID uuid.UUID, color, size string) (*domain.Mockup, error)

	// InsertIfAbsent inserts the mockup unless a row for the same
	// (design, color, size) already exists, and reports whether the insert
	// happened. Concurrent identical previews converge on one row.
	InsertIfAbsent(ctx context.Context, mockup *domain.Mockup) (bool, error)

	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Mockup, error)
}

type mockupRepo struct {
	db *sql.DB
}

func NewMockupRepo(db *sql.DB) MockupRepo {
	return &mockupRepo{db: db}
}

func (r *mockupRepo) FindByKey(ctx context.Context, designID uuid.UUID, color, size string) (*domain.Mockup, error) {
	var m domain.Mockup
	err := r.db.QueryRowContext(ctx,
		"SELECT id, design_id, color, size, image_path, created_at FROM mockups WHERE design_id = $1 AND color = $2 AND size = $3",
		designID, color, size,
	).Scan(
		&m.ID,
		&m.DesignID,
		&m.Color,
		&m.Size,
		&m.ImagePath,
		&m.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mockupRepo) InsertIfAbsent(ctx context.Context, mockup *domain.Mockup) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO mockups (id, design_id, color, size, image_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (design_id, color, size) DO NOTHING`,
		mockup.ID, mockup.DesignID, mockup.Color, mockup.Size, mockup.ImagePath, mockup.CreatedAt,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *mockupRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Mockup, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id, m.design_id, m.color, m.size, m.image_path, m.created_at
		FROM mockups m
		JOIN designs d ON d.id = m.design_id
		WHERE d.customer_id = $1
		ORDER BY m.created_at DESC`,
		customerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mockups []domain.Mockup
	for rows.Next() {
		var m domain.Mockup
		if err := rows.Scan(&m.ID, &m.DesignID, &m.Color, &m.Size, &m.ImagePath, &m.CreatedAt); err != nil {
			return nil, err
		}
		mockups = append(mockups, m)
	}
	return mockups, rows.Err()
}
