package steps

import (
	"fmt"

	"github.com/digitalocean/gradient-agent-templates/internal/platform/database"
	"github.com/digitalocean/gradient-agent-templates/internal/provisioning"
	"github.com/digitalocean/gradient-agent-templates/internal/secrets"
)

// DefaultAgentUser is the database account the SQL tools connect as.
const DefaultAgentUser = "ai_agent"

// Secret keys holding the administrator connection for user provisioning.
// The admin password never reaches the deployed function environment.
const (
	SecretDBHost          = "DB_HOST"
	SecretDBPort          = "DB_PORT"
	SecretDBName          = "DB_NAME"
	SecretDBAdminUser     = "DB_ADMIN_USER"
	SecretDBAdminPassword = "DB_ADMIN_PASSWORD"
)

// DatabaseUser creates a read-only database user with a generated password
// for the template's query tools. The admin connection comes from the
// configured secrets; the agent user name may be overridden with
// DB_AGENT_USER.
func DatabaseUser() provisioning.Step {
	return provisioning.Step{
		Name: StepDatabaseUser,
		Run: func(ctx *provisioning.Context) (provisioning.StepResult, error) {
			cfg := ctx.Config

			admin := database.AdminConfig{
				Host:     cfg.Secrets[SecretDBHost],
				Port:     cfg.Secrets[SecretDBPort],
				Name:     cfg.Secrets[SecretDBName],
				User:     cfg.Secrets[SecretDBAdminUser],
				Password: cfg.Secrets[SecretDBAdminPassword],
			}
			if err := admin.Validate(); err != nil {
				return provisioning.StepResult{}, fmt.Errorf("database secrets missing: %w", err)
			}

			user := cfg.Secrets["DB_AGENT_USER"]
			if user == "" {
				user = DefaultAgentUser
			}
			password, err := secrets.Token(16)
			if err != nil {
				return provisioning.StepResult{}, err
			}

			provisioning.LogResourceCreating(ctx.Observer, StepDatabaseUser, "database user", user)
			if err := ctx.Database.CreateReadOnlyUser(ctx, admin, user, password); err != nil {
				return provisioning.StepResult{}, err
			}
			provisioning.LogResourceCreated(ctx.Observer, StepDatabaseUser, "database user", user, user)

			return provisioning.StepResult{
				ID: user,
				Aux: map[string]string{
					auxDBUser:     user,
					auxDBPassword: password,
				},
			}, nil
		},
	}
}

// DatabaseEnv returns the connection entries the query tools read: host,
// port, and database name copied from the secrets, plus the provisioned
// read-only user and its generated password.
func DatabaseEnv(ctx *provisioning.Context) map[string]string {
	result := ctx.MustResult(StepDatabaseUser)
	cfg := ctx.Config
	return map[string]string{
		"DB_HOST":           cfg.Secrets[SecretDBHost],
		"DB_PORT":           cfg.Secrets[SecretDBPort],
		"DB_NAME":           cfg.Secrets[SecretDBName],
		"DB_AGENT_USER":     result.AuxValue(auxDBUser),
		"DB_AGENT_PASSWORD": result.AuxValue(auxDBPassword),
	}
}
