package handlers

import (
	"log/slog"

	"github.com/GregMSThompson/flight-events/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	FlightSvc       flightService
	EventCodeSvc    eventCodeService
	AerodromeSvc    aerodromeService
	EventTimeSvc    eventTimeService
	PhaseSvc        phaseService
	NotificationSvc notificationService
}
