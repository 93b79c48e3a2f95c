package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stitchpress/internal/database"
	"stitchpress/internal/domain"
	"stitchpress/internal/infrastructure/gateway"
	"stitchpress/internal/repo"
	"stitchpress/internal/service"
)

// Drives N payment initiations against the real processor and reports the
// observed approval rate, which should hover around the 0.8 weighting.
func main() {
	n := flag.Int("n", 1000, "number of payments to initiate")
	seed := flag.Uint64("seed", 1, "decider seed for a reproducible run")
	flag.Parse()

	ctx := context.Background()
	db := database.NewPostgres()
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	logger := zap.NewNop()
	orderRepo := repo.NewOrderRepo(db)
	paymentRepo := repo.NewPaymentRepo(db)
	decider := gateway.NewSeededDecider(rand.New(rand.NewPCG(*seed, 0)))
	payments := service.NewPaymentService(db, orderRepo, paymentRepo, decider, logger)

	customer := uuid.New()
	fmt.Printf("--- SIMULATING %d PAYMENTS (seed %d) ---\n", *n, *seed)

	completed, failed := 0, 0
	for i := 0; i < *n; i++ {
		order, err := createOrder(ctx, db, orderRepo, customer)
		if err != nil {
			log.Fatalf("create order: %v", err)
		}

		result, err := payments.Initiate(ctx, customer, service.InitiatePaymentRequest{
			OrderID:     order.ID,
			Method:      domain.MethodCreditCard,
			CardNumber:  "4111111111111111",
			ExpiryMonth: "12",
			ExpiryYear:  "2030",
			CVV:         "123",
		})
		if err != nil {
			log.Fatalf("initiate: %v", err)
		}

		switch result.Status {
		case "success":
			completed++
		default:
			failed++
		}
	}

	fmt.Printf("completed: %d\n", completed)
	fmt.Printf("failed:    %d\n", failed)
	fmt.Printf("observed approval rate: %.3f (weighting: 0.800)\n", float64(completed)/float64(*n))
}

func createOrder(ctx context.Context, db *sql.DB, orders repo.OrderRepo, customer uuid.UUID) (*domain.Order, error) {
	order := &domain.Order{
		ID:         uuid.New(),
		CustomerID: customer,
		TotalPrice: rand.Float64() * 200,
		Status:     domain.OrderPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := orders.CreateOrder(ctx, tx, order); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return order, nil
}
