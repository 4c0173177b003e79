package gradient

// AgentCreateRequest is the typed body for creating an agent.
type AgentCreateRequest struct {
	Name               string   `json:"name"`
	Description        string   `json:"description,omitempty"`
	Instruction        string   `json:"instruction"`
	ModelUUID          string   `json:"model_uuid"`
	ProjectID          string   `json:"project_id"`
	Region             string   `json:"region"`
	KnowledgeBaseUUIDs []string `json:"knowledge_base_uuid,omitempty"`
}

// RetrievalUpdateRequest tunes an existing agent's retrieval behavior.
// Creation does not accept these fields, so they are applied as an update.
type RetrievalUpdateRequest struct {
	ProvideCitations bool    `json:"provide_citations"`
	RetrievalMethod  string  `json:"retrieval_method"`
	Temperature      float64 `json:"temperature"`
	K                int     `json:"k"`
	MaxTokens        int     `json:"max_tokens"`
}

// DefaultRetrievalSettings mirrors the retrieval tuning applied to every
// template agent after creation.
func DefaultRetrievalSettings() *RetrievalUpdateRequest {
	return &RetrievalUpdateRequest{
		ProvideCitations: true,
		RetrievalMethod:  "RETRIEVAL_METHOD_SUB_QUERIES",
		Temperature:      0.6,
		K:                10,
		MaxTokens:        1024,
	}
}

// AgentDeployment is the deployment sub-resource of an agent.
type AgentDeployment struct {
	Status string `json:"status"`
	URL    string `json:"url"`
}

// Agent deployment status values reported by the API.
const (
	DeploymentStatusRunning = "STATUS_RUNNING"
	DeploymentStatusFailed  = "STATUS_FAILED"
)

// Agent is the subset of the agent resource the pipeline consumes.
type Agent struct {
	UUID       string           `json:"uuid"`
	Name       string           `json:"name"`
	Deployment *AgentDeployment `json:"deployment,omitempty"`
}

// SpacesDataSource points a knowledge base at a Spaces bucket.
type SpacesDataSource struct {
	BucketName string `json:"bucket_name"`
	ItemPath   string `json:"item_path"`
	Region     string `json:"region"`
}

// DataSource wraps the supported knowledge-base data source kinds.
type DataSource struct {
	SpacesDataSource *SpacesDataSource `json:"spaces_data_source,omitempty"`
}

// KnowledgeBaseCreateRequest is the typed body for creating a knowledge base.
// Leaving DatabaseID empty provisions a new search database, which the
// pipeline then has to wait for.
type KnowledgeBaseCreateRequest struct {
	Name               string       `json:"name"`
	DatabaseID         string       `json:"database_id,omitempty"`
	EmbeddingModelUUID string       `json:"embedding_model_uuid"`
	ProjectID          string       `json:"project_id"`
	Region             string       `json:"region"`
	DataSources        []DataSource `json:"datasources"`
}

// KnowledgeBase is the subset of the knowledge-base resource the pipeline
// consumes.
type KnowledgeBase struct {
	UUID       string `json:"uuid"`
	Name       string `json:"name"`
	DatabaseID string `json:"database_id"`
}

// IndexingJobCreateRequest starts indexing of a knowledge base. An empty
// DataSourceUUIDs list indexes every attached data source.
type IndexingJobCreateRequest struct {
	KnowledgeBaseUUID string   `json:"knowledge_base_uuid"`
	DataSourceUUIDs   []string `json:"data_source_uuids"`
}

// FunctionLinkRequest attaches one deployed function to an agent as a tool.
type FunctionLinkRequest struct {
	AgentUUID     string         `json:"agent_uuid"`
	Description   string         `json:"description"`
	FaasName      string         `json:"faas_name"`
	FaasNamespace string         `json:"faas_namespace"`
	FunctionName  string         `json:"function_name"`
	InputSchema   map[string]any `json:"input_schema"`
	OutputSchema  map[string]any `json:"output_schema"`
}

// SpacesKey is a generated object-storage access key pair.
type SpacesKey struct {
	Name      string `json:"name"`
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
}

// Namespace is a serverless function namespace.
type Namespace struct {
	ID      string `json:"namespace"`
	Label   string `json:"label"`
	Region  string `json:"region"`
	APIHost string `json:"api_host"`
}

// Database cluster status values the readiness wait cares about.
const (
	DatabaseStatusOnline   = "online"
	DatabaseStatusCreating = "creating"
	DatabaseStatusError    = "error"
)
