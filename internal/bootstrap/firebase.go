package bootstrap

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
)

// InitFirebase returns the auth client used to verify ID tokens. The project
// is set explicitly so the auth emulator works without credentials.
func InitFirebase(ctx context.Context, projectID string) (*auth.Client, error) {
	var cfg *firebase.Config
	if projectID != "" {
		cfg = &firebase.Config{ProjectID: projectID}
	}
	app, err := firebase.NewApp(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return app.Auth(ctx)
}
