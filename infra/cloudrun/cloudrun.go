package cloudrun

import (
	"fmt"
	"strconv"

	"github.com/pulumi/pulumi-docker/sdk/v4/go/docker"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/cloudrun"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/cloudrunv2"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/serviceaccount"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"

	"github.com/GregMSThompson/flight-events/infra/common"
	infradocker "github.com/GregMSThompson/flight-events/infra/docker"
)

// appEnv is the environment shared by the API service and the seed job.
type appEnv struct {
	projectID  string
	logLevel   string
	timeZone   string
	timeLayout string
}

func loadAppEnv(ctx *pulumi.Context) appEnv {
	gcpCfg := config.New(ctx, "gcp")
	crCfg := config.New(ctx, "cloudrun")
	appCfg := config.New(ctx, "flightevents")

	env := appEnv{
		projectID:  gcpCfg.Require("project"),
		logLevel:   crCfg.Require("logLevel"),
		timeZone:   appCfg.Get("timeZone"),
		timeLayout: appCfg.Get("timeLayout"),
	}
	if env.timeZone == "" {
		env.timeZone = "UTC"
	}
	return env
}

type envVar struct {
	name  string
	value string
}

// vars keeps a stable order so deployments do not show spurious diffs.
func (e appEnv) vars() []envVar {
	vars := []envVar{
		{"PROJECTID", e.projectID},
		{"LOGLEVEL", e.logLevel},
		{"TIMEZONE", e.timeZone},
	}
	if e.timeLayout != "" {
		vars = append(vars, envVar{"TIMELAYOUT", e.timeLayout})
	}
	return vars
}

func SetupCloudRun(ctx *pulumi.Context, prov *gcp.Provider, res ...pulumi.Resource) (*serviceaccount.Account, error) {
	hash, err := common.GenerateHash("../")
	if err != nil {
		return nil, err
	}

	apiImg, err := buildImage(ctx, "apiImage", "api", hash, res...)
	if err != nil {
		return nil, err
	}
	seedImg, err := buildImage(ctx, "seedImage", "seed", hash, res...)
	if err != nil {
		return nil, err
	}

	srv, err := enableCloudRun(ctx, prov)
	if err != nil {
		return nil, err
	}

	apiSA, err := createServiceAccount(ctx, prov)
	if err != nil {
		return nil, err
	}

	env := loadAppEnv(ctx)

	svc, err := createCloudRunService(ctx, apiImg, apiSA, env, prov, srv)
	if err != nil {
		return nil, err
	}

	if err := createSeedJob(ctx, seedImg, apiSA, env, prov, srv); err != nil {
		return nil, err
	}

	err = setIAMAccessPolicy(ctx, svc, prov)
	if err != nil {
		return nil, err
	}

	return apiSA, nil
}

// buildImage builds cmd/<name>/Dockerfile from the repo root.
func buildImage(ctx *pulumi.Context, resourceName, name, hash string, res ...pulumi.Resource) (*docker.Image, error) {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")
	region := gcpCfg.Require("region")

	return docker.NewImage(ctx, resourceName, &docker.ImageArgs{
		Build: docker.DockerBuildArgs{
			Platform:   pulumi.String("linux/amd64"),
			Context:    pulumi.String(".."),
			Dockerfile: pulumi.String(fmt.Sprintf("../cmd/%s/Dockerfile", name)),
		},
		ImageName: pulumi.String(fmt.Sprintf("%s-docker.pkg.dev/%s/%s/flight-%s:%s",
			region, projectID, infradocker.RepositoryID, name, hash)),
	},
		pulumi.DependsOn(res),
	)
}

func enableCloudRun(ctx *pulumi.Context, prov *gcp.Provider) (*projects.Service, error) {
	return projects.NewService(ctx, "cloudRunService", &projects.ServiceArgs{
		Service: pulumi.String("run.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
}

func createServiceAccount(ctx *pulumi.Context, prov *gcp.Provider) (*serviceaccount.Account, error) {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")

	apiSA, err := serviceaccount.NewAccount(ctx, "apiServiceAccount", &serviceaccount.AccountArgs{
		AccountId:   pulumi.String("flight-events-api"),
		DisplayName: pulumi.String("Flight Events API"),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	_, err = projects.NewIAMMember(ctx, "firestoreAccess", &projects.IAMMemberArgs{
		Role: pulumi.String("roles/datastore.user"),
		Member: apiSA.Email.ApplyT(func(email string) string {
			return fmt.Sprintf("serviceAccount:%s", email)
		}).(pulumi.StringOutput),
		Project: pulumi.String(projectID),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	return apiSA, nil
}

func createCloudRunService(ctx *pulumi.Context,
	img *docker.Image,
	apiSA *serviceaccount.Account,
	env appEnv,
	prov *gcp.Provider,
	res ...pulumi.Resource) (*cloudrun.Service, error) {
	gcpCfg := config.New(ctx, "gcp")
	crCfg := config.New(ctx, "cloudrun")

	region := gcpCfg.Require("region")
	minScale := crCfg.Require("minScale")
	maxScale := crCfg.Require("maxScale")
	cpu := crCfg.Require("cpu")
	memory := crCfg.Require("memory")
	concurrency := crCfg.Require("concurrency")
	timeout, _ := strconv.Atoi(crCfg.Require("timeout"))

	envs := cloudrun.ServiceTemplateSpecContainerEnvArray{}
	for _, v := range env.vars() {
		envs = append(envs, &cloudrun.ServiceTemplateSpecContainerEnvArgs{
			Name:  pulumi.String(v.name),
			Value: pulumi.String(v.value),
		})
	}

	return cloudrun.NewService(ctx, "apiService", &cloudrun.ServiceArgs{
		Location: pulumi.String(region),

		Template: &cloudrun.ServiceTemplateArgs{
			Metadata: &cloudrun.ServiceTemplateMetadataArgs{
				Annotations: pulumi.StringMap{
					"autoscaling.knative.dev/minScale": pulumi.String(minScale),
					"autoscaling.knative.dev/maxScale": pulumi.String(maxScale),

					"run.googleapis.com/cpu":    pulumi.String(cpu),
					"run.googleapis.com/memory": pulumi.String(memory),

					"run.googleapis.com/cpu-throttling": pulumi.String("true"),

					// cell locks are per instance; concurrency stays inside one container
					"run.googleapis.com/container-concurrency": pulumi.String(concurrency),
				},
			},

			Spec: &cloudrun.ServiceTemplateSpecArgs{
				ServiceAccountName: apiSA.Email,
				TimeoutSeconds:     pulumi.Int(timeout),

				Containers: cloudrun.ServiceTemplateSpecContainerArray{
					&cloudrun.ServiceTemplateSpecContainerArgs{
						Image: img.ImageName,
						Ports: cloudrun.ServiceTemplateSpecContainerPortArray{
							&cloudrun.ServiceTemplateSpecContainerPortArgs{
								ContainerPort: pulumi.Int(8080),
							},
						},
						Envs: envs,
					},
				},
			},
		},
	},
		pulumi.Provider(prov),
		pulumi.DependsOn(res),
	)
}

// createSeedJob registers cmd/seed as a Cloud Run job; it is executed by
// hand after catalog changes.
func createSeedJob(ctx *pulumi.Context,
	img *docker.Image,
	apiSA *serviceaccount.Account,
	env appEnv,
	prov *gcp.Provider,
	res ...pulumi.Resource) error {
	gcpCfg := config.New(ctx, "gcp")
	region := gcpCfg.Require("region")

	envs := cloudrunv2.JobTemplateTemplateContainerEnvArray{}
	for _, v := range env.vars() {
		envs = append(envs, &cloudrunv2.JobTemplateTemplateContainerEnvArgs{
			Name:  pulumi.String(v.name),
			Value: pulumi.String(v.value),
		})
	}

	_, err := cloudrunv2.NewJob(ctx, "seedJob", &cloudrunv2.JobArgs{
		Name:     pulumi.String("flight-events-seed"),
		Location: pulumi.String(region),
		Template: &cloudrunv2.JobTemplateArgs{
			Template: &cloudrunv2.JobTemplateTemplateArgs{
				ServiceAccount: apiSA.Email,
				MaxRetries:     pulumi.Int(1),
				Containers: cloudrunv2.JobTemplateTemplateContainerArray{
					&cloudrunv2.JobTemplateTemplateContainerArgs{
						Image: img.ImageName,
						Envs:  envs,
					},
				},
			},
		},
	},
		pulumi.Provider(prov),
		pulumi.DependsOn(res),
	)
	return err
}

// Anonymous callers may read matrices; the API checks Firebase tokens itself.
func setIAMAccessPolicy(ctx *pulumi.Context, svc *cloudrun.Service, prov *gcp.Provider) error {
	gcpCfg := config.New(ctx, "gcp")
	region := gcpCfg.Require("region")

	_, err := cloudrun.NewIamMember(ctx, "publicInvoker", &cloudrun.IamMemberArgs{
		Service:  svc.Name,
		Location: pulumi.String(region),
		Role:     pulumi.String("roles/run.invoker"),
		Member:   pulumi.String("allUsers"),
	},
		pulumi.Provider(prov),
	)
	return err
}
