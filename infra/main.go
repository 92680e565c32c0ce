package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/GregMSThompson/flight-events/infra/cloudrun"
	"github.com/GregMSThompson/flight-events/infra/docker"
	"github.com/GregMSThompson/flight-events/infra/firestore"
	"github.com/GregMSThompson/flight-events/infra/identity"
	"github.com/GregMSThompson/flight-events/infra/provider"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// firebase sign-in for the editors of event times
		ident, err := identity.SetupIdentity(ctx, prov)
		if err != nil {
			return err
		}

		db, err := firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		repo, err := docker.CreateCloudrunRepo(ctx, prov)
		if err != nil {
			return err
		}

		_, err = cloudrun.SetupCloudRun(ctx, prov, ident, db, repo)
		return err
	})
}
