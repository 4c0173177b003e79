package gradient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/digitalocean/godo"
	"golang.org/x/oauth2"

	"github.com/digitalocean/gradient-agent-templates/internal/config"
)

// RealClient implements Client on top of godo.
type RealClient struct {
	godo *godo.Client
}

var _ Client = (*RealClient)(nil)

// NewRealClient creates a client authenticated with the given API token.
// Transient API failures and rate limits are retried per the configured
// retry bounds.
func NewRealClient(token string, timeouts *config.Timeouts) (*RealClient, error) {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client, err := godo.New(oauth2.NewClient(context.Background(), src),
		godo.WithRetryAndBackoffs(godo.RetryConfig{
			RetryMax:     timeouts.RetryMaxAttempts,
			RetryWaitMin: godo.PtrTo(timeouts.RetryInitialDelay.Seconds()),
		}))
	if err != nil {
		return nil, fmt.Errorf("failed to build API client: %w", err)
	}
	return &RealClient{godo: client}, nil
}

// NewRealClientFrom wraps an existing godo client, mainly for tests that
// point godo at a local server.
func NewRealClientFrom(client *godo.Client) *RealClient {
	return &RealClient{godo: client}
}

// do issues a gen-ai request through godo's request machinery. The typed
// gen-ai services are still catching up with the API, so these endpoints are
// called with the request structs defined in this package.
func (c *RealClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	req, err := c.godo.NewRequest(ctx, method, path, body)
	if err != nil {
		return fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	if _, err := c.godo.Do(ctx, req, out); err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	return nil
}

type agentRoot struct {
	Agent *Agent `json:"agent"`
}

type knowledgeBaseRoot struct {
	KnowledgeBase *KnowledgeBase `json:"knowledge_base"`
}

// CreateAgent implements AgentManager.
func (c *RealClient) CreateAgent(ctx context.Context, req *AgentCreateRequest) (*Agent, error) {
	var root agentRoot
	if err := c.do(ctx, http.MethodPost, "/v2/gen-ai/agents", req, &root); err != nil {
		return nil, err
	}
	if root.Agent == nil || root.Agent.UUID == "" {
		return nil, fmt.Errorf("agent creation response carried no agent UUID")
	}
	return root.Agent, nil
}

// GetAgent implements AgentManager.
func (c *RealClient) GetAgent(ctx context.Context, agentUUID string) (*Agent, error) {
	var root agentRoot
	path := fmt.Sprintf("/v2/gen-ai/agents/%s", agentUUID)
	if err := c.do(ctx, http.MethodGet, path, nil, &root); err != nil {
		return nil, err
	}
	if root.Agent == nil {
		return nil, fmt.Errorf("agent %s not present in response", agentUUID)
	}
	return root.Agent, nil
}

// UpdateAgentRetrieval implements AgentManager.
func (c *RealClient) UpdateAgentRetrieval(ctx context.Context, agentUUID string, req *RetrievalUpdateRequest) error {
	path := fmt.Sprintf("/v2/gen-ai/agents/%s", agentUUID)
	return c.do(ctx, http.MethodPut, path, req, nil)
}

// AttachFunction implements AgentManager.
func (c *RealClient) AttachFunction(ctx context.Context, req *FunctionLinkRequest) error {
	path := fmt.Sprintf("/v2/gen-ai/agents/%s/functions", req.AgentUUID)
	return c.do(ctx, http.MethodPost, path, req, nil)
}

type apiKeyRoot struct {
	APIKeyInfo *struct {
		SecretKey string `json:"secret_key"`
	} `json:"api_key_info"`
}

// CreateAgentAPIKey implements AgentManager.
func (c *RealClient) CreateAgentAPIKey(ctx context.Context, agentUUID, name string) (string, error) {
	var root apiKeyRoot
	path := fmt.Sprintf("/v2/gen-ai/agents/%s/api_keys", agentUUID)
	body := map[string]string{"agent_uuid": agentUUID, "name": name}
	if err := c.do(ctx, http.MethodPost, path, body, &root); err != nil {
		return "", err
	}
	if root.APIKeyInfo == nil || root.APIKeyInfo.SecretKey == "" {
		return "", fmt.Errorf("API key creation for agent %s returned no secret key", agentUUID)
	}
	return root.APIKeyInfo.SecretKey, nil
}

// CreateKnowledgeBase implements KnowledgeBaseManager.
func (c *RealClient) CreateKnowledgeBase(ctx context.Context, req *KnowledgeBaseCreateRequest) (*KnowledgeBase, error) {
	var root knowledgeBaseRoot
	if err := c.do(ctx, http.MethodPost, "/v2/gen-ai/knowledge_bases", req, &root); err != nil {
		return nil, err
	}
	if root.KnowledgeBase == nil || root.KnowledgeBase.UUID == "" {
		return nil, fmt.Errorf("knowledge base creation response carried no UUID")
	}
	return root.KnowledgeBase, nil
}

// CreateIndexingJob implements KnowledgeBaseManager.
func (c *RealClient) CreateIndexingJob(ctx context.Context, req *IndexingJobCreateRequest) error {
	return c.do(ctx, http.MethodPost, "/v2/gen-ai/indexing_jobs", req, nil)
}

// DatabaseStatus implements DatabaseManager.
func (c *RealClient) DatabaseStatus(ctx context.Context, clusterID string) (string, error) {
	db, _, err := c.godo.Databases.Get(ctx, clusterID)
	if err != nil {
		return "", fmt.Errorf("failed to get database cluster %s: %w", clusterID, err)
	}
	return db.Status, nil
}

// CreateSpacesKey implements KeyManager.
func (c *RealClient) CreateSpacesKey(ctx context.Context, name string) (*SpacesKey, error) {
	key, _, err := c.godo.SpacesKeys.Create(ctx, &godo.SpacesKeyCreateRequest{
		Name: name,
		Grants: []*godo.Grant{
			{Bucket: "", Permission: godo.SpacesKeyFullAccess},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create spaces key %s: %w", name, err)
	}
	return &SpacesKey{
		Name:      key.Name,
		AccessKey: key.AccessKey,
		SecretKey: key.SecretKey,
	}, nil
}

// DeleteSpacesKey implements KeyManager.
func (c *RealClient) DeleteSpacesKey(ctx context.Context, accessKey string) error {
	if _, err := c.godo.SpacesKeys.Delete(ctx, accessKey); err != nil {
		return fmt.Errorf("failed to delete spaces key: %w", err)
	}
	return nil
}

// CreateNamespace implements NamespaceManager.
func (c *RealClient) CreateNamespace(ctx context.Context, label, region string) (*Namespace, error) {
	ns, _, err := c.godo.Functions.CreateNamespace(ctx, &godo.FunctionsNamespaceCreateRequest{
		Label:  label,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create namespace %s in %s: %w", label, region, err)
	}
	if ns.Namespace == "" {
		return nil, fmt.Errorf("namespace creation for %s returned no namespace ID", label)
	}
	return &Namespace{
		ID:      ns.Namespace,
		Label:   ns.Label,
		Region:  ns.Region,
		APIHost: ns.ApiHost,
	}, nil
}

// AssignBucket implements ProjectManager. Buckets land in the default
// project on creation and have to be moved next to the agent and database.
func (c *RealClient) AssignBucket(ctx context.Context, projectID, bucketName string) error {
	urn := fmt.Sprintf("do:space:%s", bucketName)
	if _, _, err := c.godo.Projects.AssignResources(ctx, projectID, urn); err != nil {
		return fmt.Errorf("failed to assign bucket %s to project %s: %w", bucketName, projectID, err)
	}
	return nil
}
