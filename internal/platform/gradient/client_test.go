package gradient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/digitalocean/godo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServerClient(t *testing.T, handler http.HandlerFunc) *RealClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := godo.New(http.DefaultClient, godo.SetBaseURL(srv.URL))
	require.NoError(t, err)
	return NewRealClientFrom(client)
}

func TestCreateAgent(t *testing.T) {
	t.Parallel()

	client := testServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/gen-ai/agents", r.URL.Path)

		var req AgentCreateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "SQL Agent", req.Name)
		assert.Equal(t, "proj-1", req.ProjectID)

		fmt.Fprint(w, `{"agent": {"uuid": "agent-123", "name": "SQL Agent"}}`)
	})

	agent, err := client.CreateAgent(context.Background(), &AgentCreateRequest{
		Name:      "SQL Agent",
		ModelUUID: "model-1",
		ProjectID: "proj-1",
		Region:    "tor1",
	})
	require.NoError(t, err)
	assert.Equal(t, "agent-123", agent.UUID)
}

func TestCreateAgentRejectsEmptyUUID(t *testing.T) {
	t.Parallel()

	client := testServerClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"agent": {}}`)
	})

	_, err := client.CreateAgent(context.Background(), &AgentCreateRequest{Name: "x"})
	require.Error(t, err)
}

func TestGetAgentDeploymentStatus(t *testing.T) {
	t.Parallel()

	client := testServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/gen-ai/agents/agent-123", r.URL.Path)
		fmt.Fprint(w, `{"agent": {
			"uuid": "agent-123",
			"deployment": {"status": "STATUS_RUNNING", "url": "https://agent.example.com"}
		}}`)
	})

	agent, err := client.GetAgent(context.Background(), "agent-123")
	require.NoError(t, err)
	require.NotNil(t, agent.Deployment)
	assert.Equal(t, DeploymentStatusRunning, agent.Deployment.Status)
	assert.Equal(t, "https://agent.example.com", agent.Deployment.URL)
}

func TestUpdateAgentRetrieval(t *testing.T) {
	t.Parallel()

	client := testServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/v2/gen-ai/agents/agent-123", r.URL.Path)

		var req RetrievalUpdateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "RETRIEVAL_METHOD_SUB_QUERIES", req.RetrievalMethod)
		assert.True(t, req.ProvideCitations)
		assert.InDelta(t, 0.6, req.Temperature, 0.001)

		fmt.Fprint(w, `{}`)
	})

	err := client.UpdateAgentRetrieval(context.Background(), "agent-123", DefaultRetrievalSettings())
	require.NoError(t, err)
}

func TestAttachFunction(t *testing.T) {
	t.Parallel()

	client := testServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/gen-ai/agents/agent-123/functions", r.URL.Path)

		var req FunctionLinkRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "sql/execute_query", req.FaasName)
		assert.Equal(t, "ns-1", req.FaasNamespace)

		fmt.Fprint(w, `{}`)
	})

	err := client.AttachFunction(context.Background(), &FunctionLinkRequest{
		AgentUUID:     "agent-123",
		FaasName:      "sql/execute_query",
		FaasNamespace: "ns-1",
		FunctionName:  "execute_query",
	})
	require.NoError(t, err)
}

func TestCreateKnowledgeBaseReportsDatabaseID(t *testing.T) {
	t.Parallel()

	client := testServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/gen-ai/knowledge_bases", r.URL.Path)

		var req KnowledgeBaseCreateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.DataSources, 1)
		assert.Equal(t, "docs-bucket", req.DataSources[0].SpacesDataSource.BucketName)

		fmt.Fprint(w, `{"knowledge_base": {"uuid": "kb-1", "database_id": "db-9"}}`)
	})

	kb, err := client.CreateKnowledgeBase(context.Background(), &KnowledgeBaseCreateRequest{
		Name: "docs",
		DataSources: []DataSource{
			{SpacesDataSource: &SpacesDataSource{BucketName: "docs-bucket", Region: "tor1"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "kb-1", kb.UUID)
	assert.Equal(t, "db-9", kb.DatabaseID)
}

func TestDatabaseStatus(t *testing.T) {
	t.Parallel()

	client := testServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/databases/db-9", r.URL.Path)
		fmt.Fprint(w, `{"database": {"id": "db-9", "status": "online"}}`)
	})

	status, err := client.DatabaseStatus(context.Background(), "db-9")
	require.NoError(t, err)
	assert.Equal(t, DatabaseStatusOnline, status)
}

func TestAssignBucketBuildsSpaceURN(t *testing.T) {
	t.Parallel()

	client := testServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/projects/proj-1/resources", r.URL.Path)

		var req struct {
			Resources []string `json:"resources"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"do:space:docs-bucket"}, req.Resources)

		fmt.Fprint(w, `{"resources": [{"urn": "do:space:docs-bucket"}]}`)
	})

	err := client.AssignBucket(context.Background(), "proj-1", "docs-bucket")
	require.NoError(t, err)
}

func TestCreateAgentAPIKey(t *testing.T) {
	t.Parallel()

	client := testServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/gen-ai/agents/agent-123/api_keys", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "agent-123", req["agent_uuid"])
		assert.Equal(t, "Auditor Agent Key", req["name"])

		fmt.Fprint(w, `{"api_key_info": {"secret_key": "sk-xyz"}}`)
	})

	key, err := client.CreateAgentAPIKey(context.Background(), "agent-123", "Auditor Agent Key")
	require.NoError(t, err)
	assert.Equal(t, "sk-xyz", key)
}

func TestCreateAgentAPIKeyRejectsEmptySecret(t *testing.T) {
	t.Parallel()

	client := testServerClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"api_key_info": {}}`)
	})

	_, err := client.CreateAgentAPIKey(context.Background(), "agent-123", "key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no secret key")
}
