package main

import (
	"context"
	"flag"
	"log"
	"time"

	"project-compass/internal/app"
	"project-compass/internal/config"
	"project-compass/internal/ingest"
)

func main() {
	source := flag.String("source", "devto", "ingest source")
	pages := flag.Int("pages", 2, "listing pages per tag")
	workers := flag.Int("workers", 4, "concurrent fetchers")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	c, err := app.NewContainer(cfg, log.Default())
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	// One ingest at a time across all replicas.
	lockCtx, lockCancel := context.WithTimeout(context.Background(), 5*time.Second)
	acquired, err := c.Cache.SetIfNotExists(lockCtx, "ingest:lock:"+*source, "1", 30*time.Minute)
	lockCancel()
	if err == nil && !acquired && c.Cache.Ping(context.Background()) == nil {
		log.Fatalf("another ingest run for source %q is in progress", *source)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = c.Cache.Delete(ctx, "ingest:lock:"+*source)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	switch *source {
	case "devto":
		fetcher := ingest.NewDevtoFetcher(c.DB)
		if err := fetcher.Fetch(ctx, *pages, *workers); err != nil {
			log.Fatalf("ingest failed: %v", err)
		}
	default:
		log.Fatalf("unknown source %q", *source)
	}

	// The server process picks this up through the activity feed.
	recCtx, recCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer recCancel()
	if err := ingest.RecordIngestActivity(recCtx, c.DB, *source, ""); err != nil {
		log.Printf("record ingest activity failed: %v", err)
	}
	log.Printf("ingest finished source=%s", *source)
}
