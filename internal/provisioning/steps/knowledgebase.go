package steps

import (
	"fmt"

	"github.com/digitalocean/gradient-agent-templates/internal/platform/gradient"
	"github.com/digitalocean/gradient-agent-templates/internal/provisioning"
)

// KnowledgeBase creates a knowledge base over the uploaded bucket data.
// When no existing search database is configured, the API provisions one and
// its ID lands in the step result for the database wait.
func KnowledgeBase() provisioning.Step {
	return provisioning.Step{
		Name:     StepKnowledgeBase,
		Requires: []string{StepUpload},
		Run: func(ctx *provisioning.Context) (provisioning.StepResult, error) {
			cfg := ctx.Config
			bucket := ctx.MustResult(StepUpload).ID

			name := cfg.KnowledgeBaseName
			if name == "" {
				name = fmt.Sprintf("%s-kb", cfg.Template)
			}

			provisioning.LogResourceCreating(ctx.Observer, StepKnowledgeBase, "knowledge base", name)
			kb, err := ctx.Cloud.CreateKnowledgeBase(ctx, &gradient.KnowledgeBaseCreateRequest{
				Name:               name,
				DatabaseID:         cfg.DatabaseID,
				EmbeddingModelUUID: cfg.EmbeddingModelUUID,
				ProjectID:          cfg.ProjectID,
				Region:             cfg.Region,
				DataSources: []gradient.DataSource{
					{
						SpacesDataSource: &gradient.SpacesDataSource{
							BucketName: bucket,
							ItemPath:   "",
							Region:     cfg.Region,
						},
					},
				},
			})
			if err != nil {
				return provisioning.StepResult{}, fmt.Errorf("failed to create knowledge base: %w", err)
			}
			provisioning.LogResourceCreated(ctx.Observer, StepKnowledgeBase, "knowledge base", name, kb.UUID)

			databaseID := kb.DatabaseID
			if databaseID == "" {
				databaseID = cfg.DatabaseID
			}

			return provisioning.StepResult{
				ID:  kb.UUID,
				Aux: map[string]string{auxDatabaseID: databaseID},
			}, nil
		},
	}
}

// DatabaseWait blocks until the knowledge base's search database reports
// online. A new database typically takes several minutes to provision; until
// it is online, indexing cannot make progress.
//
// On timeout the policy decides: ContinueDegraded proceeds so the remaining
// resources still get created (indexing can be retriggered later), Abort
// halts the pipeline. A database in a terminal error state always halts.
func DatabaseWait(onTimeout TimeoutPolicy) provisioning.Step {
	return provisioning.Step{
		Name:     StepDatabaseWait,
		Requires: []string{StepKnowledgeBase},
		Run: func(ctx *provisioning.Context) (provisioning.StepResult, error) {
			databaseID := ctx.MustResult(StepKnowledgeBase).AuxValue(auxDatabaseID)
			if databaseID == "" {
				ctx.Observer.Printf("no database ID reported; skipping readiness wait")
				return provisioning.StepResult{}, nil
			}

			outcome := provisioning.Wait(ctx, provisioning.PollSpec{
				Name: "search database",
				Check: func() (provisioning.Status, error) {
					status, err := ctx.Cloud.DatabaseStatus(ctx, databaseID)
					if err != nil {
						return provisioning.StatusPending, err
					}
					switch status {
					case gradient.DatabaseStatusOnline:
						return provisioning.StatusReady, nil
					case gradient.DatabaseStatusError:
						return provisioning.StatusFailed, nil
					default:
						return provisioning.StatusPending, nil
					}
				},
				Interval: ctx.Timeouts.DatabaseInterval,
				Timeout:  ctx.Timeouts.DatabaseWait,
			})

			switch outcome {
			case provisioning.Ready:
				return provisioning.StepResult{ID: databaseID}, nil
			case provisioning.Failed:
				return provisioning.StepResult{}, fmt.Errorf("database %s entered an error state", databaseID)
			default:
				if onTimeout == Abort {
					return provisioning.StepResult{}, fmt.Errorf("database %s not online after %v", databaseID, ctx.Timeouts.DatabaseWait)
				}
				provisioning.LogDegraded(ctx.Observer, StepDatabaseWait, "search database", outcome)
				return provisioning.StepResult{ID: databaseID}, nil
			}
		},
	}
}

// Indexing starts an indexing job over every data source of the knowledge
// base. A failure here is soft: the knowledge base indexes automatically
// once its database is ready, so the deployment continues.
func Indexing() provisioning.Step {
	return provisioning.Step{
		Name:     StepIndexing,
		Requires: []string{StepKnowledgeBase, StepDatabaseWait},
		Run: func(ctx *provisioning.Context) (provisioning.StepResult, error) {
			kbUUID := ctx.MustResult(StepKnowledgeBase).ID

			err := ctx.Cloud.CreateIndexingJob(ctx, &gradient.IndexingJobCreateRequest{
				KnowledgeBaseUUID: kbUUID,
				DataSourceUUIDs:   []string{},
			})
			if err != nil {
				ctx.Observer.Printf("failed to start indexing job: %v; indexing will start automatically once the database is ready", err)
				return provisioning.StepResult{
					ID:  kbUUID,
					Aux: map[string]string{auxIndexing: "false"},
				}, nil
			}

			return provisioning.StepResult{
				ID:  kbUUID,
				Aux: map[string]string{auxIndexing: "true"},
			}, nil
		},
	}
}
