package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"

	"github.com/naandi/platform/internal/adapter/blob"
	"github.com/naandi/platform/internal/adapter/fanout"
	"github.com/naandi/platform/internal/adapter/fsm"
	"github.com/naandi/platform/internal/adapter/notify"
	"github.com/naandi/platform/internal/adapter/sqlite"
	"github.com/naandi/platform/internal/app"
	"github.com/naandi/platform/internal/domain"

	handler "github.com/naandi/platform/internal/adapter/http"
	oteladapter "github.com/naandi/platform/internal/adapter/otel"
	riveradapter "github.com/naandi/platform/internal/adapter/river"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("naandid: %v", err)
	}
}

func run() error {
	ctx := context.Background()

	port := envOrDefault("PORT", "8080")
	dbPath := envOrDefault("DATABASE_PATH", "naandi.db")
	uploadsDir := envOrDefault("UPLOADS_DIR", "uploads")
	adminSecret := envOrDefault("ADMIN_SIGNUP_SECRET", "Naandi@123")
	smsGateway := os.Getenv("SMS_GATEWAY_URL")

	registrationTTL, err := time.ParseDuration(envOrDefault("REGISTRATION_TTL", "24h"))
	if err != nil {
		return fmt.Errorf("parsing REGISTRATION_TTL: %w", err)
	}

	// --- Observability ---
	providers, err := oteladapter.Setup(ctx, oteladapter.ConfigFromEnv())
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			slog.Warn("otel shutdown", "error", err)
		}
	}()

	// --- Adapters (out) ---
	db, err := oteladapter.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}

	store, err := sqlite.NewFromDB(db)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer store.Close()

	blobs, err := blob.NewLocalStore(uploadsDir)
	if err != nil {
		return fmt.Errorf("blob store: %w", err)
	}

	hub := fanout.NewHub()
	publisher := oteladapter.NewTracingPublisher(hub)
	vendors := oteladapter.NewTracingVendorRepository(store.Vendors())

	var notifier domain.Notifier
	if smsGateway != "" {
		notifier = notify.NewGateway(smsGateway)
	} else {
		notifier = notify.NewLog()
	}

	validator := fsm.New()

	// --- Application ---
	registrations := app.NewRegistrationService(store.Registrations(), vendors, publisher)
	vendorSvc := app.NewVendorService(vendors, store.Bookings(), store.Availability(), validator, publisher, notifier)
	bookingSvc := app.NewBookingService(store.Bookings(), vendors, validator, publisher, notifier)
	authSvc := app.NewAuthService(store.Users(), vendors, adminSecret)

	// --- Background jobs ---
	jobs, err := riveradapter.Setup(ctx, db, registrations, registrationTTL)
	if err != nil {
		return fmt.Errorf("river: %w", err)
	}
	if err := jobs.Start(ctx); err != nil {
		return fmt.Errorf("starting river: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := jobs.Stop(stopCtx); err != nil {
			slog.Warn("river shutdown", "error", err)
		}
	}()

	// --- Adapters (in) ---
	router := chi.NewMux()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(otelchi.Middleware("naandi", otelchi.WithChiRoutes(router)))

	router.Handle(blob.URLPrefix+"/*",
		http.StripPrefix(blob.URLPrefix+"/", http.FileServer(http.Dir(blobs.Dir()))))

	api := humachi.New(router, huma.DefaultConfig("naandi", "0.1.0"))
	handler.Register(api, handler.Services{
		Registrations: registrations,
		Vendors:       vendorSvc,
		Bookings:      bookingSvc,
		Auth:          authSvc,
		Blobs:         blobs,
		Hub:           hub,
	})

	// --- Server ---
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("naandi listening", "port", port)
		slog.Info("API docs", "url", "http://localhost:"+port+"/docs")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-done:
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	slog.Info("stopped")
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
