package steps

import (
	"fmt"

	"github.com/digitalocean/gradient-agent-templates/internal/provisioning"
)

// Bucket ensures the deployment has Spaces credentials and a bucket, and
// assigns the bucket to the configured project.
//
// When the configuration carries no Spaces key, a full-access key is
// generated for the run and registered as ephemeral, so it is deleted when
// the pipeline exits. A caller-supplied key is registered non-ephemeral and
// survives the run.
func Bucket() provisioning.Step {
	return provisioning.Step{
		Name: StepBucket,
		Run: func(ctx *provisioning.Context) (provisioning.StepResult, error) {
			cfg := ctx.Config

			accessKey := cfg.SpacesAccessKey
			secretKey := cfg.SpacesSecretKey
			keyName := ""

			if cfg.HasSpacesKey() {
				ctx.Credentials.Register("spaces key (caller-supplied)", false, nil)
			} else {
				keyName = fmt.Sprintf("%s-deploy-key", cfg.BucketName)
				provisioning.LogResourceCreating(ctx.Observer, StepBucket, "spaces key", keyName)
				key, err := ctx.Cloud.CreateSpacesKey(ctx, keyName)
				if err != nil {
					return provisioning.StepResult{}, fmt.Errorf("failed to create spaces key: %w", err)
				}
				accessKey = key.AccessKey
				secretKey = key.SecretKey
				generatedAccess := key.AccessKey
				ctx.Credentials.Register(keyName, true, func() error {
					return ctx.Cloud.DeleteSpacesKey(ctx, generatedAccess)
				})
			}

			store, err := ctx.NewStorage(cfg.SpacesEndpoint(), cfg.Region, accessKey, secretKey)
			if err != nil {
				return provisioning.StepResult{}, fmt.Errorf("failed to build storage client: %w", err)
			}
			ctx.Storage = store

			exists, err := store.BucketExists(ctx, cfg.BucketName)
			if err != nil {
				return provisioning.StepResult{}, fmt.Errorf("failed to check bucket %s: %w", cfg.BucketName, err)
			}
			if exists {
				provisioning.LogResourceExists(ctx.Observer, StepBucket, "bucket", cfg.BucketName, cfg.BucketName)
			} else {
				provisioning.LogResourceCreating(ctx.Observer, StepBucket, "bucket", cfg.BucketName)
				if err := store.CreateBucket(ctx, cfg.BucketName); err != nil {
					return provisioning.StepResult{}, fmt.Errorf("failed to create bucket %s: %w", cfg.BucketName, err)
				}
				provisioning.LogResourceCreated(ctx.Observer, StepBucket, "bucket", cfg.BucketName, cfg.BucketName)
			}

			if err := ctx.Cloud.AssignBucket(ctx, cfg.ProjectID, cfg.BucketName); err != nil {
				return provisioning.StepResult{}, fmt.Errorf("failed to assign bucket to project: %w", err)
			}

			return provisioning.StepResult{
				ID:  cfg.BucketName,
				Aux: map[string]string{auxKeyName: keyName},
			}, nil
		},
	}
}
