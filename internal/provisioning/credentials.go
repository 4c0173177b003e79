package provisioning

import "sync"

// credential is a secret created transiently in order to perform a step.
type credential struct {
	name      string
	ephemeral bool
	release   func() error
	released  bool
}

// CredentialRegistry tracks credentials generated during a pipeline run.
// Ephemeral credentials are released in reverse creation order when the
// pipeline exits, regardless of outcome. Release failures are logged rather
// than raised so they never mask the error that stopped the pipeline.
type CredentialRegistry struct {
	mu    sync.Mutex
	creds []*credential
}

// NewCredentialRegistry creates an empty registry.
func NewCredentialRegistry() *CredentialRegistry {
	return &CredentialRegistry{}
}

// Register records a generated credential. Credentials supplied by the
// caller (not generated) should be registered with ephemeral=false so they
// survive the run.
func (r *CredentialRegistry) Register(name string, ephemeral bool, release func() error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creds = append(r.creds, &credential{name: name, ephemeral: ephemeral, release: release})
}

// ReleaseAll releases every ephemeral credential, last created first. Each
// credential is released at most once; calling ReleaseAll again is a no-op
// for already-released entries.
func (r *CredentialRegistry) ReleaseAll(obs Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.creds) - 1; i >= 0; i-- {
		c := r.creds[i]
		if !c.ephemeral || c.released {
			continue
		}
		c.released = true
		LogCredentialReleasing(obs, c.name)
		if c.release == nil {
			continue
		}
		if err := c.release(); err != nil {
			obs.Printf("failed to release credential %s: %v", c.name, err)
		}
	}
}
