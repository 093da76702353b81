package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"logomarket/internal/config"
	"logomarket/internal/database"
	"logomarket/internal/entitlement"
	"logomarket/internal/infrastructure/payment"
	"logomarket/internal/rate"
	"logomarket/internal/repo"
	"logomarket/internal/service"
	httptransport "logomarket/internal/transport/http"
)

func main() {
	cfg := config.Load()

	var log *zap.Logger
	var err error
	if cfg.DevMode() {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	if !cfg.GatewayConfigured() {
		// The service still starts so the health endpoint can report the
		// misconfiguration, but every create-order call will be refused.
		log.Error("razorpay credentials missing; order creation disabled")
	}

	catalogRepo := repo.NewCatalogRepo(db)
	purchaseRepo := repo.NewPurchaseRepo(db)
	gateway := payment.NewRazorpayGateway(cfg.Gateway)
	orders := service.NewOrderService(cfg.Gateway, gateway)
	verifier := service.NewVerifyService(cfg.Gateway.KeySecret, log)
	entitlements := entitlement.NewStore()

	var limiter *rate.Limiter
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiter = rate.NewLimiter(rate.NewRedisWindowStore(rdb), 30)
		log.Info("order rate limiting enabled", zap.String("redis", cfg.Redis.Addr))
	}

	payments := httptransport.NewPaymentHandler(cfg, orders, verifier, limiter, log)
	catalog := httptransport.NewCatalogHandler(catalogRepo, purchaseRepo, entitlements, log)
	purchases := httptransport.NewPurchaseHandler(repo.NewSink(catalogRepo, purchaseRepo), log)
	router := httptransport.NewRouter(cfg, payments, catalog, purchases, database.New(db), log)

	log.Info("logomarket listening", zap.String("addr", cfg.HTTP.Addr))
	if err := httptransport.Serve(ctx, cfg.HTTP, router, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
