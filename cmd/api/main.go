package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/invtally/invtally/internal/buildinfo"
	"github.com/invtally/invtally/internal/config"
	"github.com/invtally/invtally/internal/database"
	"github.com/invtally/invtally/internal/handlers"
	"github.com/invtally/invtally/internal/models"
	"github.com/invtally/invtally/internal/reconcile"
	"github.com/invtally/invtally/internal/services/catalog"
	"github.com/invtally/invtally/internal/store"
	"github.com/invtally/invtally/internal/websocket"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (detects embedded vs external automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in shutdown handler below

	// 3. Auto-migrate schema
	log.Println("🚀 Synchronizing database schema...")
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	// 4. Wire up the application
	productStore := store.NewGormStore(db.DB)
	reconciler := reconcile.New(productStore)
	catalogService := catalog.NewService(productStore)

	hub := websocket.NewHub()
	go hub.Run()

	router := handlers.NewRouter(productStore, catalogService, reconciler, hub, cfg.Labels)

	// 5. Start server with graceful shutdown
	server := &http.Server{
		Addr:    "localhost:" + cfg.Port,
		Handler: router,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		log.Printf("🚀 Server starting on port %s (build %s, started %s)\n",
			cfg.Port, buildinfo.CommitHash, buildinfo.StartTime)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Close database (this also stops embedded PostgreSQL)
	log.Println("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}
