package firestore

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/firestore"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

// SetupFirestore enables Firestore, creates the default database and the
// composite index the event time queries need.
func SetupFirestore(ctx *pulumi.Context, prov *gcp.Provider) (*firestore.Database, error) {
	svc, err := enableFireStore(ctx, prov)
	if err != nil {
		return nil, err
	}

	db, err := createDatabase(ctx, prov, svc)
	if err != nil {
		return nil, err
	}

	if err := createEventTimeIndex(ctx, prov, db); err != nil {
		return nil, err
	}
	return db, nil
}

func enableFireStore(ctx *pulumi.Context, prov *gcp.Provider) (*projects.Service, error) {
	return projects.NewService(ctx, "firestore", &projects.ServiceArgs{
		Service: pulumi.String("firestore.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
}

func createDatabase(ctx *pulumi.Context, prov *gcp.Provider, res ...pulumi.Resource) (*firestore.Database, error) {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")
	region := gcpCfg.Require("region")

	return firestore.NewDatabase(ctx, "firestoreDatabase", &firestore.DatabaseArgs{
		Name:       pulumi.String("(default)"),
		Project:    pulumi.String(projectID),
		LocationId: pulumi.String(region),
		Type:       pulumi.String("FIRESTORE_NATIVE"),
	},
		pulumi.Provider(prov),
		pulumi.DependsOn(res),
	)
}

// event_times are listed per flight by code then kind.
func createEventTimeIndex(ctx *pulumi.Context, prov *gcp.Provider, db *firestore.Database) error {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")

	_, err := firestore.NewIndex(ctx, "eventTimesByCodeAndKind", &firestore.IndexArgs{
		Project:    pulumi.String(projectID),
		Database:   db.Name,
		Collection: pulumi.String("event_times"),
		Fields: firestore.IndexFieldArray{
			&firestore.IndexFieldArgs{
				FieldPath: pulumi.String("codeId"),
				Order:     pulumi.String("ASCENDING"),
			},
			&firestore.IndexFieldArgs{
				FieldPath: pulumi.String("timeKind"),
				Order:     pulumi.String("ASCENDING"),
			},
		},
	},
		pulumi.Provider(prov),
		pulumi.DependsOn([]pulumi.Resource{db}),
	)
	return err
}
