// Package serverless drives the doctl CLI for function deployment:
// authenticate, connect a local function package to a namespace, and deploy
// the package. Each operation is a blocking external process invocation.
package serverless

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/digitalocean/gradient-agent-templates/internal/util/retry"
)

// Commander executes an external command and returns its combined output.
// It exists so tests can substitute a fake process runner.
type Commander interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExecCommander runs commands with os/exec.
type ExecCommander struct{}

// Run implements Commander.
func (ExecCommander) Run(ctx context.Context, name string, args ...string) (string, error) {
	// #nosec G204 - name and args are built from internal constants and config
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// Runner deploys function packages through the serverless CLI.
type Runner interface {
	// CheckPrerequisites verifies the doctl binary is available.
	CheckPrerequisites() error

	// Login authenticates doctl with the API token.
	Login(ctx context.Context, token string) error

	// Connect attaches the local serverless state to a function namespace.
	Connect(ctx context.Context, namespaceID, token string) error

	// Deploy builds and deploys the function package directory.
	Deploy(ctx context.Context, dir string) error
}

// CLIRunner implements Runner by shelling out to doctl.
type CLIRunner struct {
	cmd         Commander
	authContext string

	// connectRetries bounds retries of the connect call, which can fail
	// transiently right after namespace creation.
	connectRetries int
	connectDelay   time.Duration
}

var _ Runner = (*CLIRunner)(nil)

// NewCLIRunner creates a runner using the real doctl binary. The retry
// bounds apply to the connect call and normally come from the configured
// timeouts.
func NewCLIRunner(connectRetries int, connectDelay time.Duration) *CLIRunner {
	return NewCLIRunnerWith(ExecCommander{}, connectRetries, connectDelay)
}

// NewCLIRunnerWith creates a runner with a custom Commander.
func NewCLIRunnerWith(cmd Commander, connectRetries int, connectDelay time.Duration) *CLIRunner {
	return &CLIRunner{
		cmd:            cmd,
		authContext:    "default",
		connectRetries: connectRetries,
		connectDelay:   connectDelay,
	}
}

// CheckPrerequisites implements Runner.
func (r *CLIRunner) CheckPrerequisites() error {
	if _, err := exec.LookPath("doctl"); err != nil {
		return fmt.Errorf("doctl not found in PATH; install it from https://docs.digitalocean.com/reference/doctl/how-to/install/")
	}
	return nil
}

// Login implements Runner.
func (r *CLIRunner) Login(ctx context.Context, token string) error {
	output, err := r.cmd.Run(ctx, "doctl",
		"auth", "init",
		"-t", token,
		"--context", r.authContext,
		"--interactive", "false")
	if err != nil {
		return fmt.Errorf("doctl login failed: %w\nOutput: %s", err, redact(output, token))
	}
	return nil
}

// Connect implements Runner. A namespace may not be connectable for a short
// window after creation, so transient failures are retried.
func (r *CLIRunner) Connect(ctx context.Context, namespaceID, token string) error {
	err := retry.WithExponentialBackoff(ctx, func() error {
		output, err := r.cmd.Run(ctx, "doctl", "serverless", "connect", namespaceID, "-t", token)
		if err != nil {
			return fmt.Errorf("doctl serverless connect failed: %w\nOutput: %s", err, redact(output, token))
		}
		return nil
	}, retry.WithMaxRetries(r.connectRetries), retry.WithInitialDelay(r.connectDelay))
	if err != nil {
		return err
	}
	return nil
}

// Deploy implements Runner.
func (r *CLIRunner) Deploy(ctx context.Context, dir string) error {
	output, err := r.cmd.Run(ctx, "doctl", "serverless", "deploy", dir)
	if err != nil {
		return fmt.Errorf("doctl serverless deploy failed: %w\nOutput: %s", err, output)
	}
	return nil
}

// redact strips the API token from CLI output before it reaches logs.
func redact(output, token string) string {
	if token == "" {
		return output
	}
	return strings.ReplaceAll(output, token, "[redacted]")
}
