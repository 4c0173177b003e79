package steps

import (
	"time"

	"github.com/digitalocean/gradient-agent-templates/internal/provisioning"
)

// Step names, used as result keys and in Requires declarations.
const (
	StepBucket        = "bucket"
	StepUpload        = "upload"
	StepKnowledgeBase = "knowledge-base"
	StepDatabaseWait  = "database-wait"
	StepDatabaseUser  = "database-user"
	StepIndexing      = "indexing"
	StepAgent         = "agent"
	StepNamespace     = "namespace"
	StepFunctions     = "functions"
	StepAttach        = "attach"
)

// Auxiliary result keys.
const (
	auxDatabaseID = "database_id"
	auxAPIHost    = "api_host"
	auxKeyName    = "key_name"
	auxIndexing   = "indexing_started"
	auxAccessKey  = "access_key"
	auxDBUser     = "db_user"
	auxDBPassword = "db_password"
)

// TimeoutPolicy decides what a step does when a readiness wait times out.
type TimeoutPolicy int

const (
	// ContinueDegraded logs the missed readiness guarantee and proceeds.
	// Later operations may fail or produce an incomplete resource.
	ContinueDegraded TimeoutPolicy = iota

	// Abort fails the step, halting the pipeline.
	Abort
)

// settle pauses between dependent API operations, honoring cancellation.
func settle(ctx *provisioning.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
