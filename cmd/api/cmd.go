package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/GregMSThompson/flight-events/internal/bootstrap"
	"github.com/GregMSThompson/flight-events/internal/config"
	"github.com/GregMSThompson/flight-events/internal/handlers"
	"github.com/GregMSThompson/flight-events/internal/middleware"
	"github.com/GregMSThompson/flight-events/internal/response"
	"github.com/GregMSThompson/flight-events/internal/router"
	"github.com/GregMSThompson/flight-events/internal/services"
	"github.com/GregMSThompson/flight-events/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// config
	cfg, err := config.New()
	exitOnError("config failed", err, slog.Default())

	// bootstrap
	bs, err := bootstrap.Run(context.Background(), cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	fstore := store.NewFlightStore(bs.Firestore)
	etstore := store.NewEventTimeStore(bs.Firestore)
	ecstore := store.NewEventCodeStore(bs.Firestore)
	phstore := store.NewPhaseStore(bs.Firestore)
	mstore := store.NewMessageStore(bs.Firestore)
	astore := store.NewAerodromeStore(bs.Firestore)

	// services
	fserv := services.NewFlightService(fstore)
	ecserv := services.NewEventCodeService(ecstore)
	aserv := services.NewAerodromeService(astore)
	nserv := services.NewNotificationService(mstore)
	etserv := services.NewEventTimeService(fstore, etstore, ecstore, mstore, nserv, aserv, bs.Location, cfg.TimeLayout)
	phserv := services.NewPhaseService(fstore, phstore, etstore)

	// response handler
	rh := response.New(bs.Log)

	// dependencies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.FlightSvc = fserv
	deps.EventCodeSvc = ecserv
	deps.AerodromeSvc = aserv
	deps.EventTimeSvc = etserv
	deps.PhaseSvc = phserv
	deps.NotificationSvc = nserv

	// router
	r := router.NewRouter(deps, middleware.NewMiddleware(bs.Firebase))
	bs.Log.Info("listening", "addr", cfg.Addr())
	err = http.ListenAndServe(cfg.Addr(), r)
	exitOnError("server start failed", err, bs.Log)
}
