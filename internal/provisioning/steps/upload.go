package steps

import (
	"fmt"

	"github.com/digitalocean/gradient-agent-templates/internal/provisioning"
)

// Upload copies the configured data directory into the deployment bucket,
// preserving relative paths.
func Upload() provisioning.Step {
	return provisioning.Step{
		Name:     StepUpload,
		Requires: []string{StepBucket},
		Run: func(ctx *provisioning.Context) (provisioning.StepResult, error) {
			cfg := ctx.Config
			bucket := ctx.MustResult(StepBucket).ID

			if cfg.DataPath == "" {
				ctx.Observer.Printf("no data path configured; skipping upload")
				return provisioning.StepResult{ID: bucket}, nil
			}

			err := ctx.Storage.UploadDir(ctx, bucket, cfg.DataPath, "", func(current, total int) {
				ctx.Observer.Progress(StepUpload, current, total)
			})
			if err != nil {
				return provisioning.StepResult{}, fmt.Errorf("failed to upload %s: %w", cfg.DataPath, err)
			}

			return provisioning.StepResult{ID: bucket}, nil
		},
	}
}
