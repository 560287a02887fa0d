package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/xtding233/gamerand/internal/config"
	"github.com/xtding233/gamerand/internal/server"
)

func main() {
	cfgPath := flag.String("config", "gamerand.yaml", "path to YAML config (optional)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	engine, err := cfg.NewEngine()
	if err != nil {
		log.Fatalf("build engine: %v", err)
	}
	log.Printf("engine=%s seed=%s", cfg.Engine, cfg.Seed.Strategy)

	srv, err := server.New(cfg, engine)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.WatchInterval > 0 {
		if _, err := os.Stat(*cfgPath); err == nil {
			w := config.NewFileWatcher([]string{*cfgPath}, cfg.WatchInterval, func(path string) {
				if err := srv.Reload(path); err != nil {
					log.Printf("reload %s: %v", path, err)
				}
			})
			w.Start()
			defer w.Stop()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.Serve(ctx); err != nil {
		log.Fatal(err)
	}
}
