package main

import (
	"context"
	"log"
	"net/http"

	webAdapter "syncolow/internal/adapters/web"
	"syncolow/internal/app"
	"syncolow/internal/config"
	"syncolow/internal/core"
	"syncolow/internal/db"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	synonyms := core.DefaultSynonyms()
	if cfg.SynonymsFile != "" {
		overrides, err := config.LoadSynonyms(cfg.SynonymsFile)
		if err != nil {
			log.Fatalf("synonyms: %v", err)
		}
		synonyms.Extend(overrides)
	}

	svc := app.NewAppService(pool, synonyms)
	handler := webAdapter.NewHandler(svc, cfg.AllowedOrigins)

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := http.ListenAndServe(":"+cfg.ServerPort, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
