package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jengzang/fox-tracks-go/internal/api"
	"github.com/jengzang/fox-tracks-go/internal/config"
	"github.com/jengzang/fox-tracks-go/internal/database"
	"github.com/jengzang/fox-tracks-go/internal/repository"
	"github.com/jengzang/fox-tracks-go/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.CSVPath != "" {
		if err := importOnce(ctx, cfg.CSVPath); err != nil {
			log.Fatal("Failed to import startup CSV:", err)
		}
	}

	server := &http.Server{
		Addr:    cfg.Port,
		Handler: api.SetupRouter(cfg, database.GetDB()),
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

// importOnce loads path unless an import of the same file is already stored
func importOnce(ctx context.Context, path string) error {
	conn := database.GetDB()
	observations := repository.NewObservationRepository(conn)
	imports := service.NewImportService(observations, repository.NewImportRepository(conn))

	source := filepath.Base(path)
	existing, err := imports.ListImports(ctx)
	if err != nil {
		return err
	}
	for _, imp := range existing {
		if imp.Source == source {
			log.Printf("Skipping %s: already imported as %s", source, imp.ID)
			return nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = imports.ImportCSV(ctx, source, f)
	return err
}
