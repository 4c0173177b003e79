package config

import (
	"fmt"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// envBindings maps environment variables onto Deployment fields. Environment
// values only fill fields still empty after file loading, so precedence is
// config file over environment.
var envBindings = []struct {
	env   string
	field func(*Deployment) *string
}{
	{"DIGITALOCEAN_TOKEN", func(d *Deployment) *string { return &d.Token }},
	{"PROJECT_ID", func(d *Deployment) *string { return &d.ProjectID }},
	{"REGION", func(d *Deployment) *string { return &d.Region }},
	{"AGENT_NAME", func(d *Deployment) *string { return &d.AgentName }},
	{"KB_NAME", func(d *Deployment) *string { return &d.KnowledgeBaseName }},
	{"BUCKET_NAME", func(d *Deployment) *string { return &d.BucketName }},
	{"DATA_PATH", func(d *Deployment) *string { return &d.DataPath }},
	{"MODEL_UUID", func(d *Deployment) *string { return &d.ModelUUID }},
	{"EMBEDDING_MODEL", func(d *Deployment) *string { return &d.EmbeddingModelUUID }},
	{"DATABASE_ID", func(d *Deployment) *string { return &d.DatabaseID }},
	{"SPACES_ACCESS_KEY", func(d *Deployment) *string { return &d.SpacesAccessKey }},
	{"SPACES_SECRET_KEY", func(d *Deployment) *string { return &d.SpacesSecretKey }},
	{"NAMESPACE_LABEL", func(d *Deployment) *string { return &d.NamespaceLabel }},
	{"TOOLS_DIR", func(d *Deployment) *string { return &d.ToolsDir }},
}

// LoadFile reads and parses a deployment configuration from a YAML file,
// fills unset fields from the environment, and validates the result.
func LoadFile(path string) (*Deployment, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var d Deployment
	if err := mapstructure.Decode(rawConfig, &d); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return finish(&d)
}

// FromEnv builds a deployment configuration entirely from the environment.
func FromEnv(template string) (*Deployment, error) {
	d := &Deployment{Template: template}
	return finish(d)
}

// LoadEnvFile loads variables from a dotenv file into the process
// environment without overriding values already set.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func finish(d *Deployment) (*Deployment, error) {
	for _, b := range envBindings {
		p := b.field(d)
		if *p != "" {
			continue
		}
		if v := os.Getenv(b.env); v != "" {
			*p = v
		}
	}

	d.ApplyDefaults()

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return d, nil
}
