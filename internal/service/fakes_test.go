package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"stitchpress/internal/domain"
)

type fakeOrderRepo struct {
	orders map[uuid.UUID]*domain.Order
}

func newFakeOrderRepo(orders ...*domain.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: map[uuid.UUID]*domain.Order{}}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) FindById(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return r.orders[id], nil
}

func (r *fakeOrderRepo) CreateOrder(ctx context.Context, tx *sql.Tx, order *domain.Order) error {
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) UpdateOrderStatus(ctx context.Context, tx *sql.Tx, order *domain.Order) error {
	r.orders[order.ID] = order
	return nil
}

type fakePaymentRepo struct {
	payments []*domain.Payment
}

func (r *fakePaymentRepo) CreatePayment(ctx context.Context, tx *sql.Tx, payment *domain.Payment) error {
	cp := *payment
	r.payments = append(r.payments, &cp)
	return nil
}

func (r *fakePaymentRepo) UpdatePaymentStatus(ctx context.Context, tx *sql.Tx, id uuid.UUID, status domain.PaymentStatus, receiptID *string) error {
	for _, p := range r.payments {
		if p.ID == id {
			p.Status = status
			if receiptID != nil {
				p.ReceiptID = receiptID
			}
		}
	}
	return nil
}

func (r *fakePaymentRepo) FindByTransactionID(ctx context.Context, customerID uuid.UUID, transactionID string) (*domain.Payment, error) {
	for _, p := range r.payments {
		if p.TransactionID == transactionID && p.CustomerID == customerID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) FindCompletedByReceiptID(ctx context.Context, customerID uuid.UUID, receiptID string) (*domain.Payment, error) {
	for _, p := range r.payments {
		if p.ReceiptID != nil && *p.ReceiptID == receiptID &&
			p.CustomerID == customerID && p.Status == domain.PaymentCompleted {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range r.payments {
		if p.CustomerID == customerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) CountAll(ctx context.Context) (int, error) {
	return len(r.payments), nil
}

func (r *fakePaymentRepo) FindProcessingBefore(ctx context.Context, before time.Time, limit int) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range r.payments {
		if p.Status == domain.PaymentProcessing && p.CreatedAt.Before(before) && len(out) < limit {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeDesignRepo struct {
	designs map[uuid.UUID]*domain.Design
}

func newFakeDesignRepo(designs ...*domain.Design) *fakeDesignRepo {
	r := &fakeDesignRepo{designs: map[uuid.UUID]*domain.Design{}}
	for _, d := range designs {
		r.designs[d.ID] = d
	}
	return r
}

func (r *fakeDesignRepo) Create(ctx context.Context, design *domain.Design) error {
	r.designs[design.ID] = design
	return nil
}

func (r *fakeDesignRepo) FindById(ctx context.Context, id uuid.UUID) (*domain.Design, error) {
	return r.designs[id], nil
}

func (r *fakeDesignRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Design, error) {
	var out []domain.Design
	for _, d := range r.designs {
		if d.CustomerID == customerID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDesignRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.designs, id)
	return nil
}

type fakeMockupRepo struct {
	mockups []*domain.Mockup
}

func (r *fakeMockupRepo) FindByKey(ctx context.Context, designID uuid.UUID, color, size string) (*domain.Mockup, error) {
	for _, m := range r.mockups {
		if m.DesignID == designID && m.Color == color && m.Size == size {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMockupRepo) InsertIfAbsent(ctx context.Context, mockup *domain.Mockup) (bool, error) {
	if existing, _ := r.FindByKey(ctx, mockup.DesignID, mockup.Color, mockup.Size); existing != nil {
		return false, nil
	}
	cp := *mockup
	r.mockups = append(r.mockups, &cp)
	return true, nil
}

func (r *fakeMockupRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Mockup, error) {
	var out []domain.Mockup
	for _, m := range r.mockups {
		out = append(out, *m)
	}
	return out, nil
}
