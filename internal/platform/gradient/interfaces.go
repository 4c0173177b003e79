package gradient

import "context"

// AgentManager defines the interface for managing agents.
type AgentManager interface {
	// CreateAgent creates an agent and returns it with its UUID populated.
	CreateAgent(ctx context.Context, req *AgentCreateRequest) (*Agent, error)

	// GetAgent fetches an agent, including its deployment status.
	GetAgent(ctx context.Context, agentUUID string) (*Agent, error)

	// UpdateAgentRetrieval applies retrieval settings to an existing agent.
	UpdateAgentRetrieval(ctx context.Context, agentUUID string, req *RetrievalUpdateRequest) error

	// AttachFunction attaches a deployed function to an agent as a tool.
	AttachFunction(ctx context.Context, req *FunctionLinkRequest) error

	// CreateAgentAPIKey creates a named API key for programmatic access to
	// an agent's endpoint and returns its secret.
	CreateAgentAPIKey(ctx context.Context, agentUUID, name string) (string, error)
}

// KnowledgeBaseManager defines the interface for managing knowledge bases.
type KnowledgeBaseManager interface {
	// CreateKnowledgeBase creates a knowledge base. When the request carries
	// no database ID, a new search database is provisioned and its ID is
	// reported on the returned knowledge base.
	CreateKnowledgeBase(ctx context.Context, req *KnowledgeBaseCreateRequest) (*KnowledgeBase, error)

	// CreateIndexingJob starts indexing all data sources of a knowledge base.
	CreateIndexingJob(ctx context.Context, req *IndexingJobCreateRequest) error
}

// DatabaseManager reports status of managed database clusters.
type DatabaseManager interface {
	// DatabaseStatus returns the cluster status string (online, creating, error).
	DatabaseStatus(ctx context.Context, clusterID string) (string, error)
}

// KeyManager manages generated Spaces access keys.
type KeyManager interface {
	// CreateSpacesKey creates a full-access key for bucket operations.
	// Full-access keys cannot be narrowed after creation, so generated keys
	// are deleted once the deployment no longer needs them.
	CreateSpacesKey(ctx context.Context, name string) (*SpacesKey, error)

	// DeleteSpacesKey deletes a key by its access-key identifier.
	DeleteSpacesKey(ctx context.Context, accessKey string) error
}

// NamespaceManager manages serverless function namespaces.
type NamespaceManager interface {
	// CreateNamespace creates a function namespace in the given region.
	CreateNamespace(ctx context.Context, label, region string) (*Namespace, error)
}

// ProjectManager assigns created resources into a project.
type ProjectManager interface {
	// AssignBucket moves a Spaces bucket out of the default project.
	AssignBucket(ctx context.Context, projectID, bucketName string) error
}

// Client bundles every API concern a deployment pipeline may touch.
type Client interface {
	AgentManager
	KnowledgeBaseManager
	DatabaseManager
	KeyManager
	NamespaceManager
	ProjectManager
}
