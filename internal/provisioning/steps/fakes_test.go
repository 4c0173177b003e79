package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/digitalocean/gradient-agent-templates/internal/platform/database"
	"github.com/digitalocean/gradient-agent-templates/internal/platform/gradient"
	"github.com/digitalocean/gradient-agent-templates/internal/platform/spaces"
	"github.com/digitalocean/gradient-agent-templates/internal/provisioning"
)

// nullObserver drops all output.
type nullObserver struct{}

func (nullObserver) Printf(string, ...interface{}) {}
func (nullObserver) Event(provisioning.Event)      {}
func (nullObserver) Progress(string, int, int)     {}

func (o nullObserver) WithFields(map[string]string) provisioning.Observer { return o }

// fakeCloud is an in-memory gradient.Client.
type fakeCloud struct {
	mu sync.Mutex

	createdKeys    []string
	deletedKeys    []string
	assignedBucket string

	kbUUID     string
	databaseID string
	dbStatuses []string
	dbChecks   int

	indexingErr     error
	indexingStarted bool

	agentUUID        string
	deploymentStatus string
	deploymentURL    string
	retrievalApplied bool
	apiKeyNames      []string
	apiKeyErr        error

	namespaceID string
	attached    []*gradient.FunctionLinkRequest
}

var _ gradient.Client = (*fakeCloud)(nil)

func newFakeCloud() *fakeCloud {
	return &fakeCloud{
		kbUUID:           "kb-uuid",
		databaseID:       "db-id",
		dbStatuses:       []string{gradient.DatabaseStatusOnline},
		agentUUID:        "agent-uuid",
		deploymentStatus: gradient.DeploymentStatusRunning,
		deploymentURL:    "https://agent.example.com",
		namespaceID:      "fn-ns-id",
	}
}

func (f *fakeCloud) CreateAgent(_ context.Context, req *gradient.AgentCreateRequest) (*gradient.Agent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &gradient.Agent{UUID: f.agentUUID, Name: req.Name}, nil
}

func (f *fakeCloud) GetAgent(_ context.Context, agentUUID string) (*gradient.Agent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &gradient.Agent{
		UUID: agentUUID,
		Deployment: &gradient.AgentDeployment{
			Status: f.deploymentStatus,
			URL:    f.deploymentURL,
		},
	}, nil
}

func (f *fakeCloud) UpdateAgentRetrieval(_ context.Context, _ string, _ *gradient.RetrievalUpdateRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.retrievalApplied = true
	return nil
}

func (f *fakeCloud) AttachFunction(_ context.Context, req *gradient.FunctionLinkRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attached = append(f.attached, req)
	return nil
}

func (f *fakeCloud) CreateAgentAPIKey(_ context.Context, agentUUID, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.apiKeyErr != nil {
		return "", f.apiKeyErr
	}
	f.apiKeyNames = append(f.apiKeyNames, name)
	return "agent-key-" + agentUUID, nil
}

func (f *fakeCloud) CreateKnowledgeBase(_ context.Context, req *gradient.KnowledgeBaseCreateRequest) (*gradient.KnowledgeBase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	dbID := req.DatabaseID
	if dbID == "" {
		dbID = f.databaseID
	}
	return &gradient.KnowledgeBase{UUID: f.kbUUID, Name: req.Name, DatabaseID: dbID}, nil
}

func (f *fakeCloud) CreateIndexingJob(_ context.Context, _ *gradient.IndexingJobCreateRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.indexingErr != nil {
		return f.indexingErr
	}
	f.indexingStarted = true
	return nil
}

func (f *fakeCloud) DatabaseStatus(_ context.Context, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.dbChecks
	if i >= len(f.dbStatuses) {
		i = len(f.dbStatuses) - 1
	}
	f.dbChecks++
	return f.dbStatuses[i], nil
}

func (f *fakeCloud) CreateSpacesKey(_ context.Context, name string) (*gradient.SpacesKey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdKeys = append(f.createdKeys, name)
	return &gradient.SpacesKey{Name: name, AccessKey: "generated-access", SecretKey: "generated-secret"}, nil
}

func (f *fakeCloud) DeleteSpacesKey(_ context.Context, accessKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedKeys = append(f.deletedKeys, accessKey)
	return nil
}

func (f *fakeCloud) CreateNamespace(_ context.Context, label, region string) (*gradient.Namespace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &gradient.Namespace{ID: f.namespaceID, Label: label, Region: region, APIHost: "https://faas.example.com"}, nil
}

func (f *fakeCloud) AssignBucket(_ context.Context, _, bucketName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assignedBucket = bucketName
	return nil
}

// fakeStore is an in-memory spaces.ObjectStore.
type fakeStore struct {
	mu       sync.Mutex
	buckets  map[string]bool
	objects  map[string][]byte
	uploaded []string
}

var _ spaces.ObjectStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{buckets: map[string]bool{}, objects: map[string][]byte{}}
}

func (s *fakeStore) CreateBucket(_ context.Context, bucketName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets[bucketName] = true
	return nil
}

func (s *fakeStore) BucketExists(_ context.Context, bucketName string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buckets[bucketName], nil
}

func (s *fakeStore) UploadDir(_ context.Context, bucketName, dir, _ string, progress spaces.ProgressFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploaded = append(s.uploaded, fmt.Sprintf("%s:%s", bucketName, dir))
	if progress != nil {
		progress(1, 1)
	}
	return nil
}

func (s *fakeStore) ListObjects(_ context.Context, _, _ string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	return keys, nil
}

func (s *fakeStore) PutObject(_ context.Context, _, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *fakeStore) GetObject(_ context.Context, _, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("no such key %s", key)
	}
	return data, nil
}

// fakeRunner records doctl invocations and captures the deployed .env.
type fakeRunner struct {
	mu          sync.Mutex
	loggedIn    bool
	connectedTo string
	deployedDir string
	deployedEnv string
}

func (r *fakeRunner) CheckPrerequisites() error { return nil }

func (r *fakeRunner) Login(_ context.Context, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loggedIn = true
	return nil
}

func (r *fakeRunner) Connect(_ context.Context, namespaceID, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connectedTo = namespaceID
	return nil
}

func (r *fakeRunner) Deploy(_ context.Context, dir string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deployedDir = dir
	// The staged copy is removed after the step; capture the env now.
	data, err := os.ReadFile(filepath.Join(dir, ".env"))
	if err == nil {
		r.deployedEnv = string(data)
	}
	return nil
}

// fakeUserManager records database user provisioning.
type fakeUserManager struct {
	mu       sync.Mutex
	admin    database.AdminConfig
	user     string
	password string
	err      error
}

var _ database.UserManager = (*fakeUserManager)(nil)

func (f *fakeUserManager) CreateReadOnlyUser(_ context.Context, admin database.AdminConfig, user, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.admin = admin
	f.user = user
	f.password = password
	return nil
}
