package main

import (
	"log"
	"os"
	"time"

	"CurveWatch/internal/config"
	"CurveWatch/internal/pipeline"
	"CurveWatch/internal/scheduler"
	"CurveWatch/internal/server"
	"CurveWatch/internal/session"
	"CurveWatch/internal/source"
	"CurveWatch/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] CurveWatch starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher source.Fetcher
	if cfg.DataSource.DataDir != "" {
		fetcher = source.NewFileFetcher(cfg.DataSource.DataDir)
	} else {
		fetcher = source.NewJSDAFetcher(cfg.DataSource.BaseURL, cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init session cache
	cache := session.NewTableCache(time.Duration(cfg.Cache.TTLMinutes) * time.Minute)

	// Init payload store
	var st store.Store
	if cfg.Database.SQLitePath != "" {
		ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using noop: %v", err)
			st = store.NewNoopStore()
		} else {
			st = ss
			defer ss.Close()
		}
	} else {
		st = store.NewNoopStore()
	}

	// Init pipeline
	p := pipeline.New(fetcher, cache, st)

	// Init prefetch scheduler
	sched := scheduler.NewScheduler(p)
	if err := sched.Register(cfg.Schedule.PrefetchCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: warm today's table on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, prefetching today's file")
		go func() {
			if err := p.Warm(time.Now()); err != nil {
				log.Printf("[WARN] startup prefetch: %v", err)
			}
		}()
	}

	// Serve the API; blocks until the process is stopped.
	srv := server.New(p)
	if err := srv.ListenAndServe(cfg.Server.ListenAddr); err != nil {
		log.Fatalf("[FATAL] http server: %v", err)
	}
}
