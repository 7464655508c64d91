package main

import (
	"context"
	"log"
	"os"

	"syncolow/internal/adapters/cli"
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

	root := cli.NewRootCmd(app.NewAppService(pool, synonyms))
	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
