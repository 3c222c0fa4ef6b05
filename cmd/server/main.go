package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"excursion-booking-platform/internal/config"
	"excursion-booking-platform/internal/database"
	"excursion-booking-platform/internal/flow"
	"excursion-booking-platform/internal/handlers"
	"excursion-booking-platform/internal/middleware"
	"excursion-booking-platform/internal/repositories"
	"excursion-booking-platform/internal/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewConnection(database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	sessionStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   cfg.Server.Env == "production",
		SameSite: http.SameSiteLaxMode,
	}

	// Repositories
	settingsRepo := repositories.NewSettingsRepository(db.DB)
	seatRepo := repositories.NewSeatRepository(db.DB)
	passengerRepo := repositories.NewPassengerRepository(db.DB)
	reservationRepo := repositories.NewReservationRepository(db.DB)
	bookingRepo := repositories.NewBookingRepository(db.DB)

	// Storage: R2 when configured and reachable, local disk otherwise
	var storage services.StorageService
	if r2, err := services.NewR2Service(cfg.R2); err != nil {
		log.Printf("Storage: R2 unavailable (%v), using local fallback", err)
		storage = services.NewFallbackStorageService(cfg.Uploads.Dir, cfg.Uploads.BaseURL)
	} else if err := r2.HealthCheck(context.Background()); err != nil {
		log.Printf("Storage: R2 health check failed (%v), using local fallback", err)
		storage = services.NewFallbackStorageService(cfg.Uploads.Dir, cfg.Uploads.BaseURL)
	} else {
		log.Println("Storage: using Cloudflare R2")
		storage = r2
	}

	// Services
	imageService := services.NewImageService()
	settingsService := services.NewSettingsService(settingsRepo, storage, imageService)
	adminService := services.NewAdminService(settingsRepo, reservationRepo, passengerRepo)
	bookingService := services.NewBookingService(seatRepo, bookingRepo, settingsService)
	paymentService := services.NewMockPaymentService()

	// Prime the caches before accepting traffic
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := settingsRepo.InitializeDefaultSettings(ctx); err != nil {
		log.Fatalf("Failed to initialize settings: %v", err)
	}
	if err := settingsService.Load(ctx); err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	if err := bookingService.LoadSeats(ctx); err != nil {
		log.Fatalf("Failed to load seats: %v", err)
	}
	adminService.Refresh(ctx)

	machine := flow.NewMachine()

	// Handlers
	flowHandler := handlers.NewFlowHandler(machine, sessionStore, bookingService)
	bookingHandler := handlers.NewBookingHandler(bookingService, paymentService, reservationRepo)
	adminHandler := handlers.NewAdminHandler(adminService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.SecureHeadersMiddleware)
	r.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigin))

	r.Route("/api", func(r chi.Router) {
		r.Route("/flow", func(r chi.Router) {
			r.Get("/", flowHandler.State)
			r.Post("/advance", flowHandler.Advance)
			r.Post("/restart", flowHandler.Restart)
			r.Post("/admin/enter", flowHandler.EnterAdmin)
			r.Post("/admin/exit", flowHandler.ExitAdmin)
		})

		r.Get("/excursion", flowHandler.Excursion)

		r.Route("/booking", func(r chi.Router) {
			r.Get("/seats", bookingHandler.SeatMap)
			r.Post("/seats/{seatID}/toggle", bookingHandler.ToggleSeat)
			r.Post("/passenger", bookingHandler.SubmitPassenger)
			r.Post("/payment", bookingHandler.SubmitPayment)
			r.Get("/confirmation", bookingHandler.Confirmation)
			r.Get("/reservations/{code}", bookingHandler.LookupReservation)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/dashboard", adminHandler.Dashboard)
			r.Post("/refresh", adminHandler.Refresh)
			r.Get("/reservations", adminHandler.Reservations)
			r.Get("/passengers", adminHandler.Passengers)
			r.Get("/settings", settingsHandler.Get)
			r.Post("/settings", settingsHandler.Update)
		})
	})

	// Serve locally stored uploads when the fallback storage is active
	if _, ok := storage.(*services.FallbackStorageService); ok {
		fileServer := http.FileServer(http.Dir(cfg.Uploads.Dir))
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", fileServer))
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
