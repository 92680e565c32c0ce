package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/GregMSThompson/flight-events/internal/bootstrap"
	"github.com/GregMSThompson/flight-events/internal/config"
	"github.com/GregMSThompson/flight-events/internal/services"
	"github.com/GregMSThompson/flight-events/internal/store"
	"github.com/GregMSThompson/flight-events/pkg/logger"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

// seed upserts the event code, phase and aerodrome catalog into Firestore.
func main() {
	cfg, err := config.New()
	exitOnError("config failed", err, slog.Default())

	ctx := context.Background()
	bs, err := bootstrap.Run(ctx, cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	cserv := services.NewCatalogService(
		store.NewEventCodeStore(bs.Firestore),
		store.NewPhaseStore(bs.Firestore),
		store.NewAerodromeStore(bs.Firestore),
	)

	ctx = logger.ToContext(ctx, bs.Log.With("command", "seed"))
	err = cserv.Seed(ctx, bs.Catalog)
	if err != nil {
		bs.Close()
	}
	exitOnError("seed failed", err, bs.Log)
}
