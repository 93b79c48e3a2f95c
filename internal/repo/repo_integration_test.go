package repo_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"stitchpress/internal/database"
	"stitchpress/internal/domain"
	"stitchpress/internal/repo"
)

func setupPostgres(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	ctx := context.Background()
	pg, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("stitchpress_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(ctx, db))
	return db
}

func createDesign(t *testing.T, db *sql.DB, customer uuid.UUID) *domain.Design {
	t.Helper()
	design := &domain.Design{
		ID:          uuid.New(),
		CustomerID:  customer,
		Description: "integration design",
		CreatedAt:   time.Now(),
	}
	require.NoError(t, repo.NewDesignRepo(db).Create(context.Background(), design))
	return design
}

func TestMockupInsertIfAbsent(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	mockups := repo.NewMockupRepo(db)

	design := createDesign(t, db, uuid.New())

	first := &domain.Mockup{
		ID:        uuid.New(),
		DesignID:  design.ID,
		Color:     "red",
		Size:      "m",
		ImagePath: "mockups/a.png",
		CreatedAt: time.Now(),
	}
	inserted, err := mockups.InsertIfAbsent(ctx, first)
	require.NoError(t, err)
	assert.True(t, inserted)

	// Same (design, color, size): the insert must lose silently.
	second := &domain.Mockup{
		ID:        uuid.New(),
		DesignID:  design.ID,
		Color:     "red",
		Size:      "m",
		ImagePath: "mockups/b.png",
		CreatedAt: time.Now(),
	}
	inserted, err = mockups.InsertIfAbsent(ctx, second)
	require.NoError(t, err)
	assert.False(t, inserted)

	got, err := mockups.FindByKey(ctx, design.ID, "red", "m")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "mockups/a.png", got.ImagePath)

	// A different size is a different mockup.
	third := &domain.Mockup{
		ID: uuid.New(), DesignID: design.ID, Color: "red", Size: "l",
		ImagePath: "mockups/c.png", CreatedAt: time.Now(),
	}
	inserted, err = mockups.InsertIfAbsent(ctx, third)
	require.NoError(t, err)
	assert.True(t, inserted)
}

func TestPaymentRepoScopedLookups(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	orders := repo.NewOrderRepo(db)
	payments := repo.NewPaymentRepo(db)

	owner := uuid.New()
	stranger := uuid.New()

	order := &domain.Order{
		ID: uuid.New(), CustomerID: owner, TotalPrice: 42.50,
		Status: domain.OrderPending, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, orders.CreateOrder(ctx, tx, order))
	require.NoError(t, tx.Commit())

	payment := &domain.Payment{
		ID:            uuid.New(),
		OrderID:       order.ID,
		CustomerID:    owner,
		Method:        domain.MethodCreditCard,
		Status:        domain.PaymentProcessing,
		Amount:        order.TotalPrice,
		TransactionID: "TXN-0011AABBCCDD",
		CardDetails:   &domain.CardDetails{MaskedNumber: "XXXX-XXXX-XXXX-1111", Expiry: "12/2030"},
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	tx, err = db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, payments.CreatePayment(ctx, tx, payment))
	require.NoError(t, tx.Commit())

	got, err := payments.FindByTransactionID(ctx, owner, payment.TransactionID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.PaymentProcessing, got.Status)
	require.NotNil(t, got.CardDetails)
	assert.Equal(t, "XXXX-XXXX-XXXX-1111", got.CardDetails.MaskedNumber)

	// Scoping: the same transaction id under another customer is invisible.
	got, err = payments.FindByTransactionID(ctx, stranger, payment.TransactionID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Receipt lookup only answers for completed payments.
	receipt := "RCPT-00AA11BB22"
	got, err = payments.FindCompletedByReceiptID(ctx, owner, receipt)
	require.NoError(t, err)
	assert.Nil(t, got)

	tx, err = db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, payments.UpdatePaymentStatus(ctx, tx, payment.ID, domain.PaymentCompleted, &receipt))
	require.NoError(t, tx.Commit())

	got, err = payments.FindCompletedByReceiptID(ctx, owner, receipt)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, payment.TransactionID, got.TransactionID)

	got, err = payments.FindCompletedByReceiptID(ctx, stranger, receipt)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindProcessingBefore(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	orders := repo.NewOrderRepo(db)
	payments := repo.NewPaymentRepo(db)

	owner := uuid.New()
	order := &domain.Order{
		ID: uuid.New(), CustomerID: owner, TotalPrice: 10,
		Status: domain.OrderPending, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, orders.CreateOrder(ctx, tx, order))
	require.NoError(t, tx.Commit())

	mkPayment := func(txn string, status domain.PaymentStatus, age time.Duration) {
		p := &domain.Payment{
			ID: uuid.New(), OrderID: order.ID, CustomerID: owner,
			Method: domain.MethodCash, Status: status, Amount: 10,
			TransactionID: txn,
			CreatedAt:     time.Now().Add(-age),
			UpdatedAt:     time.Now().Add(-age),
		}
		tx, err := db.BeginTx(ctx, nil)
		require.NoError(t, err)
		require.NoError(t, payments.CreatePayment(ctx, tx, p))
		require.NoError(t, tx.Commit())
	}

	mkPayment("TXN-AAAAAAAAAAAA", domain.PaymentProcessing, time.Hour)
	mkPayment("TXN-BBBBBBBBBBBB", domain.PaymentProcessing, 0)
	mkPayment("TXN-CCCCCCCCCCCC", domain.PaymentCompleted, time.Hour)

	stuck, err := payments.FindProcessingBefore(ctx, time.Now().Add(-30*time.Minute), 10)
	require.NoError(t, err)
	require.Len(t, stuck, 1)
	assert.Equal(t, "TXN-AAAAAAAAAAAA", stuck[0].TransactionID)
}
