package main

import (
	"context"
	"log"

	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/bootstrap"
	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/shared/config"
	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/shared/server"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	app.StartBackground(ctx)

	addr := server.Addr(cfg.Port)
	log.Printf("Starting MDoc API server on %s", addr)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
