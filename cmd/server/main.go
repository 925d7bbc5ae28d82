// Command server runs the LeafLink backend.
//
// Usage:
//
//	server
//
// Configuration comes from config.yaml (CONFIG_PATH overrides the location)
// and environment variables. With DATABASE_DSN set the server runs in remote
// mode against PostgreSQL; without it the server keeps the garden in a local
// on-device store under the fixed demo identity.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/leaflink/leaflink-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
