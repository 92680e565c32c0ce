package identity

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/identityplatform"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

// SetupIdentity enables Identity Platform with email sign-in. The API
// verifies the resulting Firebase ID tokens on every write.
func SetupIdentity(ctx *pulumi.Context, prov *gcp.Provider) (*identityplatform.Config, error) {
	return identityplatform.NewConfig(ctx,
		"identityPlatformConfig",
		&identityplatform.ConfigArgs{
			SignIn: &identityplatform.ConfigSignInArgs{
				Email: &identityplatform.ConfigSignInEmailArgs{
					Enabled: pulumi.Bool(true),
				},
			},
		},
		pulumi.Provider(prov),
	)
}
