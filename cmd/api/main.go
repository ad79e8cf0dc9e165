package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"statlab/adapters/gonumdist"
	"statlab/adapters/postgres"
	"statlab/adapters/store"
	"statlab/app"
	"statlab/internal/api"
	"statlab/internal/config"
	"statlab/ports"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	source := store.NewFileSource(cfg.Paths.SamplesDir)
	service := app.NewAnalysisService(gonumdist.New())

	var repo ports.AnalysisRepository
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("Failed to prepare database schema: %v", err)
		}
		repo = postgres.NewAnalysisRepository(db)
	}

	handler := api.NewHandler(source, service, repo)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("Listening on :%s", cfg.Server.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed: %v", err)
	}
}
