package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"online-bookstore/internal/config"
	"online-bookstore/internal/db"
	"online-bookstore/internal/events"
	"online-bookstore/internal/httpserver"
	"online-bookstore/internal/logging"
	"online-bookstore/internal/middleware"
	"online-bookstore/internal/repo"
	"online-bookstore/internal/search"
	"online-bookstore/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET is required")
	}

	logger := logging.New(cfg.LOG_LEVEL).With("service", "bookstore")
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	database, err := db.Open(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	producer := events.NewProducer(cfg.KAFKA_ADDRESS)
	defer producer.Close()

	gormRepo := &repo.GormRepo{DB: database}

	catalogSvc := &service.CatalogService{
		Repo:     gormRepo,
		Producer: producer,
		ESIndex:  cfg.ES_INDEX,
	}
	if cfg.ES_URL != "" {
		esClient, err := search.NewClient(cfg)
		if err != nil {
			logger.Warn("elasticsearch unavailable, falling back to db search", "error", err)
		} else {
			catalogSvc.ES = esClient
		}
	}

	authSvc := &service.AuthService{
		Repo:      gormRepo,
		Producer:  producer,
		JWTSecret: []byte(cfg.JWT_SECRET),
		TokenTTL:  cfg.TOKEN_TTL,
	}
	cartSvc := &service.CartService{Repo: gormRepo, Producer: producer}

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpserver.NewValidator()
	e.HTTPErrorHandler = httpserver.NewHTTPErrorHandler(logger)
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{Svc: authSvc},
		CartHandler: &httpserver.CartHTTP{Svc: cartSvc},
		BookHandler: &httpserver.BookHTTP{Svc: catalogSvc, UploadDir: cfg.UPLOAD_DIR},
		JWTSecret:   []byte(cfg.JWT_SECRET),
		UploadDir:   cfg.UPLOAD_DIR,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.SERVER_PORT,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("bookstore listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("bookstore stopped")
}
