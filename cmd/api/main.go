package main

import (
	"context"
	"log"

	catalogapp "github.com/farrdeeen/FastOrderLogic/internal/application/catalog"
	customerapp "github.com/farrdeeen/FastOrderLogic/internal/application/customer"
	invoiceapp "github.com/farrdeeen/FastOrderLogic/internal/application/invoice"
	orderapp "github.com/farrdeeen/FastOrderLogic/internal/application/order"
	"github.com/farrdeeen/FastOrderLogic/internal/application/wixsync"
	"github.com/farrdeeen/FastOrderLogic/internal/config"
	ginserver "github.com/farrdeeen/FastOrderLogic/internal/infrastructure/http/gin"
	"github.com/farrdeeen/FastOrderLogic/internal/infrastructure/http/wix"
	"github.com/farrdeeen/FastOrderLogic/internal/infrastructure/http/zoho"
	kafkainfra "github.com/farrdeeen/FastOrderLogic/internal/infrastructure/messaging/kafka"
	"github.com/farrdeeen/FastOrderLogic/internal/infrastructure/persistence/postgres"
	"github.com/farrdeeen/FastOrderLogic/internal/interfaces/http/handler"
	"github.com/farrdeeen/FastOrderLogic/internal/interfaces/http/middleware"
	"github.com/farrdeeen/FastOrderLogic/internal/interfaces/http/router"
	"github.com/farrdeeen/FastOrderLogic/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	zlog, err := logger.NewZapLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer zlog.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(cfg.DB)
	if err != nil {
		zlog.Fatal("postgres connection failed", logger.Error(err))
	}
	defer pool.Close()

	if err := postgres.CreateSchema(ctx, pool); err != nil {
		zlog.Fatal("schema bootstrap failed", logger.Error(err))
	}

	orderRepo := postgres.NewOrderRepository(pool)
	serialRepo := postgres.NewSerialNumberRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	addressRepo := postgres.NewAddressRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stateRepo := postgres.NewStateRepository(pool)

	producer := kafkainfra.NewProducer(cfg.Kafka)
	defer producer.Close(ctx)

	wixClient := wix.NewClient(cfg.Wix, zlog)
	tokenStore := zoho.NewTokenStore(cfg.Zoho.TokensFile)
	zohoClient := zoho.NewClient(cfg.Zoho, tokenStore, zlog)

	orderService := orderapp.NewService(orderRepo, serialRepo, customerRepo, addressRepo, producer, zlog)
	customerService := customerapp.NewService(customerRepo, addressRepo, stateRepo, zlog)
	catalogService := catalogapp.NewService(productRepo, stateRepo, zlog)
	syncService := wixsync.NewService(wixClient, orderRepo, customerRepo, addressRepo, productRepo, stateRepo, producer, zlog, cfg.Wix)
	invoiceService := invoiceapp.NewService(zohoClient, orderRepo, customerRepo, productRepo, zlog)

	consumer := kafkainfra.NewOrderConsumer(cfg.Kafka, syncService, zlog)
	go func() {
		if err := consumer.Start(ctx); err != nil {
			zlog.Warn("kafka consumer stopped", logger.Error(err))
		}
	}()
	defer consumer.Close()

	auth, err := middleware.NewAuth(cfg.Auth, zlog)
	if err != nil {
		zlog.Fatal("auth middleware init failed", logger.Error(err))
	}

	engine := ginserver.NewEngine(cfg.Server)
	router.RegisterRoutes(engine, router.Handlers{
		Orders:    handler.NewOrderHandler(orderService),
		Customers: handler.NewCustomerHandler(customerService),
		Catalog:   handler.NewCatalogHandler(catalogService),
		Sync:      handler.NewSyncHandler(syncService),
		Zoho:      handler.NewZohoHandler(zohoClient, invoiceService),
	}, auth)

	zlog.Info("starting http server", logger.String("addr", cfg.Server.Address()))
	server := ginserver.NewServer(cfg.Server, engine)
	if err := server.Run(); err != nil {
		zlog.Fatal("server run failed", logger.Error(err))
	}
}
