package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"talentflow/api/rest/handlers"
	"talentflow/api/rest/routes"
	"talentflow/config"
	"talentflow/core/repository"
	"talentflow/core/seed"
	"talentflow/core/transport"

	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()

	profile, err := config.LoadProfile(cfg.ProfilePath)
	if err != nil {
		log.Fatalf("Failed to load profile: %v", err)
	}

	// Initialize record store
	db, err := repository.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to migrate record store: %v", err)
	}
	log.Println("Record store ready")

	// Seed fixtures on first run
	seeder := seed.NewSeeder(db)
	if err := seeder.Run(ctx, profile.Seed, handlers.HashPassword("password")); err != nil {
		log.Fatalf("Failed to seed record store: %v", err)
	}

	r := newRouter(db, profile.FaultPolicy())

	// Start server
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Starting server on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := server.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}

// newRouter builds the HTTP surface. The health check sits on the
// parent router: probes must not inherit the chaos latency, so only the
// API subrouter goes through the fault injector.
func newRouter(db *repository.DB, policy transport.FaultPolicy) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	api := r.PathPrefix("/").Subrouter()
	injector := transport.NewFaultInjector(policy)
	api.Use(injector.Middleware)
	routes.SetupRoutes(api, db)

	return r
}
