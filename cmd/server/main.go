package main

import (
	"context"
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"stitchpress/internal/database"
	"stitchpress/internal/handler"
	"stitchpress/internal/infrastructure/assets"
	"stitchpress/internal/infrastructure/blob"
	"stitchpress/internal/infrastructure/gateway"
	"stitchpress/internal/infrastructure/imagegen"
	"stitchpress/internal/repo"
	"stitchpress/internal/service"
	"stitchpress/internal/worker"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()
	db := database.NewPostgres()
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}

	blobs, err := blob.NewStore(envOr("MEDIA_ROOT", "media"))
	if err != nil {
		log.Fatal("media root unavailable", zap.Error(err))
	}
	templates := assets.NewTemplateStore(os.DirFS(envOr("TEMPLATE_DIR", "static/tshirt_templates")))

	designRepo := repo.NewDesignRepo(db)
	mockupRepo := repo.NewMockupRepo(db)
	paymentRepo := repo.NewPaymentRepo(db)
	orderRepo := repo.NewOrderRepo(db)

	designs := service.NewDesignService(designRepo, blobs, log)
	mockups := service.NewMockupService(designRepo, mockupRepo, templates, blobs, log)
	payments := service.NewPaymentService(db, orderRepo, paymentRepo, gateway.NewWeightedDecider(), log)
	images := service.NewImageGenService(
		imagegen.NewStabilityClient(os.Getenv("STABLE_DIFFUSION_API_KEY"), http.DefaultClient),
		imagegen.NewWhisperClient(os.Getenv("LEMONFOX_API_KEY"), http.DefaultClient),
		blobs,
		log,
	)

	sweeper := worker.NewPaymentSweeper(db, paymentRepo, 5*time.Minute, 1*time.Minute, log)
	go sweeper.Run(ctx)

	h := handler.New(designs, mockups, payments, images, database.New(), log)
	addr := ":" + envOr("PORT", "8080")
	log.Info("listening", zap.String("addr", addr))
	if err := h.Router().Run(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
