// Package config defines the deployment configuration, validation, and
// env-overridable timeout settings for agent template deployments.
package config

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Default model identifiers used when a deployment does not pin its own.
const (
	// DefaultModelUUID is the Llama 3.3 70B Instruct serving model.
	DefaultModelUUID = "d754f2d7-d1f0-11ef-bd40-4e013e2ddde4"

	// DefaultEmbeddingModelUUID is the GTE Large EN v1.5 embedding model.
	DefaultEmbeddingModelUUID = "22653204-79ed-11ef-bf8f-4e013e2ddde4"

	// DefaultRegion is the region used when none is configured.
	DefaultRegion = "tor1"
)

// Deployment holds everything needed to deploy one agent template.
type Deployment struct {
	// Template names the agent template to deploy (e.g. "sql", "logs-assistant").
	Template string `mapstructure:"template" yaml:"template"`

	// Token is the cloud API token.
	Token string `mapstructure:"token" yaml:"token"`

	// ProjectID is the project that receives every created resource.
	ProjectID string `mapstructure:"project_id" yaml:"project_id"`

	// Region is the region for buckets, databases, and namespaces.
	Region string `mapstructure:"region" yaml:"region"`

	// AgentName overrides the template's default agent name.
	AgentName string `mapstructure:"agent_name" yaml:"agent_name"`

	// KnowledgeBaseName names the knowledge base. Required for templates
	// that provision one.
	KnowledgeBaseName string `mapstructure:"kb_name" yaml:"kb_name"`

	// BucketName names the Spaces bucket for knowledge-base data. When
	// empty, a name is derived from the template with a random suffix.
	BucketName string `mapstructure:"bucket_name" yaml:"bucket_name"`

	// DataPath is the local directory uploaded into the bucket.
	DataPath string `mapstructure:"data_path" yaml:"data_path"`

	// ModelUUID selects the serving model for the agent.
	ModelUUID string `mapstructure:"model_uuid" yaml:"model_uuid"`

	// EmbeddingModelUUID selects the embedding model for the knowledge base.
	EmbeddingModelUUID string `mapstructure:"embedding_model" yaml:"embedding_model"`

	// DatabaseID points at an existing search database. When empty, the
	// knowledge base provisions a new one and the pipeline waits for it.
	DatabaseID string `mapstructure:"database_id" yaml:"database_id"`

	// SpacesAccessKey and SpacesSecretKey are existing full-access Spaces
	// credentials. When both are empty, a key is generated for the run and
	// deleted when the pipeline exits.
	SpacesAccessKey string `mapstructure:"spaces_access_key" yaml:"spaces_access_key"`
	SpacesSecretKey string `mapstructure:"spaces_secret_key" yaml:"spaces_secret_key"`

	// NamespaceLabel labels the function namespace. Defaults to
	// "<template>-agent-tools".
	NamespaceLabel string `mapstructure:"namespace_label" yaml:"namespace_label"`

	// ToolsDir is the local function package directory deployed to the
	// namespace. Defaults to "./tools".
	ToolsDir string `mapstructure:"tools_dir" yaml:"tools_dir"`

	// Secrets are externally supplied secrets copied verbatim into the
	// function runtime environment (API keys, database credentials).
	Secrets map[string]string `mapstructure:"secrets" yaml:"secrets"`
}

// SpacesEndpoint returns the object-storage endpoint for the configured region.
func (d *Deployment) SpacesEndpoint() string {
	return fmt.Sprintf("https://%s.digitaloceanspaces.com", d.Region)
}

// HasSpacesKey reports whether the caller supplied Spaces credentials.
func (d *Deployment) HasSpacesKey() bool {
	return d.SpacesAccessKey != "" && d.SpacesSecretKey != ""
}

// ApplyDefaults fills in derived and defaulted fields.
func (d *Deployment) ApplyDefaults() {
	if d.Region == "" {
		d.Region = DefaultRegion
	}
	if d.ModelUUID == "" {
		d.ModelUUID = DefaultModelUUID
	}
	if d.EmbeddingModelUUID == "" {
		d.EmbeddingModelUUID = DefaultEmbeddingModelUUID
	}
	if d.NamespaceLabel == "" && d.Template != "" {
		d.NamespaceLabel = fmt.Sprintf("%s-agent-tools", d.Template)
	}
	if d.ToolsDir == "" {
		d.ToolsDir = "./tools"
	}
	if d.BucketName == "" && d.Template != "" {
		// Bucket names are global per region, so a random suffix avoids
		// collisions between deployments of the same template.
		d.BucketName = fmt.Sprintf("%s-data-%s", d.Template, uuid.NewString()[:8])
	}
	if d.Secrets == nil {
		d.Secrets = make(map[string]string)
	}
}

// Validate checks that required fields are present.
func (d *Deployment) Validate() error {
	var missing []string
	if d.Template == "" {
		missing = append(missing, "template")
	}
	if d.Token == "" {
		missing = append(missing, "token")
	}
	if d.ProjectID == "" {
		missing = append(missing, "project_id")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if (d.SpacesAccessKey == "") != (d.SpacesSecretKey == "") {
		return fmt.Errorf("spaces_access_key and spaces_secret_key must be set together, or both left empty to generate a key")
	}
	return nil
}
