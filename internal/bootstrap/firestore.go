package bootstrap

import (
	"context"

	"cloud.google.com/go/firestore"
)

// InitFirestore connects to the default database. An empty projectID lets
// the client detect it from the environment.
func InitFirestore(ctx context.Context, projectID string) (*firestore.Client, error) {
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	return firestore.NewClient(ctx, projectID)
}
