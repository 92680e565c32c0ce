package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/flight-events/internal/catalog"
	"github.com/GregMSThompson/flight-events/internal/config"
	"github.com/GregMSThompson/flight-events/pkg/logger"
)

type Bootstrap struct {
	Log       *slog.Logger
	Firestore *firestore.Client
	Firebase  *auth.Client
	Location  *time.Location
	Catalog   *catalog.Catalog
}

// Run builds the shared clients. The returned Bootstrap always carries a
// usable logger, even when err is non-nil.
func Run(ctx context.Context, cfg *config.Config) (*Bootstrap, error) {
	var err error
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	slog.SetDefault(bs.Log)

	bs.Location, err = cfg.Location()
	if err != nil {
		return bs, err
	}
	bs.Catalog, err = LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return bs, err
	}
	bs.Firestore, err = InitFirestore(ctx, cfg.ProjectID)
	if err != nil {
		return bs, err
	}
	bs.Firebase, err = InitFirebase(ctx, cfg.ProjectID)
	if err != nil {
		return bs, err
	}

	bs.Log.Info("bootstrap complete",
		"project_id", cfg.ProjectID,
		"time_zone", bs.Location.String(),
		"event_codes", len(bs.Catalog.EventCodes))
	return bs, nil
}

func (bs *Bootstrap) Close() {
	if bs.Firestore != nil {
		if err := bs.Firestore.Close(); err != nil {
			bs.Log.Error("failed to close firestore client", "error", err)
		}
	}
}

// LoadCatalog reads path, or the built-in catalog when path is empty.
func LoadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}
