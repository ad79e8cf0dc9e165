package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"statlab/adapters/gonumdist"
	"statlab/adapters/postgres"
	"statlab/adapters/store"
	"statlab/app"
	"statlab/domain/sample"
	"statlab/internal/config"
	"statlab/internal/render"
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
	repo := initRepository(ctx, cfg)

	record, err := selectSample(ctx, source)
	if err != nil {
		log.Fatalf("Failed to load sample: %v", err)
	}

	report, err := service.Analyze(record)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	render.NewConsole(os.Stdout).Render(report)

	if repo != nil {
		if err := repo.Save(ctx, report); err != nil {
			log.Printf("Warning: failed to persist analysis: %v", err)
		}
	}
}

// initRepository connects the optional Postgres-backed run history.
func initRepository(ctx context.Context, cfg *config.Config) ports.AnalysisRepository {
	if cfg.Database.URL == "" {
		return nil
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Printf("Warning: database unavailable, skipping persistence: %v", err)
		return nil
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Printf("Warning: failed to prepare schema, skipping persistence: %v", err)
		return nil
	}
	return postgres.NewAnalysisRepository(db)
}

// selectSample lists the available samples and prompts until a valid index
// is chosen.
func selectSample(ctx context.Context, source *store.FileSource) (*sample.Record, error) {
	names, err := source.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no samples found")
	}

	fmt.Println("Available samples:")
	for i, name := range names {
		fmt.Printf("[%d] %s\n", i+1, name)
	}

	reader := bufio.NewReader(os.Stdin)
	index := -1
	for index < 0 || index >= len(names) {
		fmt.Print("Choose sample: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("failed to read selection: %w", err)
		}
		parsed, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			continue
		}
		index = parsed - 1
	}

	return source.Load(ctx, names[index])
}
