package csvdata

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digitalocean/gradient-agent-templates/internal/platform/spaces"
)

type memStore struct {
	objects map[string][]byte
}

var _ spaces.ObjectStore = (*memStore)(nil)

func (s *memStore) CreateBucket(context.Context, string) error { return nil }

func (s *memStore) BucketExists(context.Context, string) (bool, error) { return true, nil }

func (s *memStore) UploadDir(context.Context, string, string, string, spaces.ProgressFunc) error {
	return nil
}

func (s *memStore) ListObjects(context.Context, string, string) ([]string, error) {
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	return keys, nil
}

func (s *memStore) PutObject(_ context.Context, _, key string, data []byte) error {
	s.objects[key] = data
	return nil
}

func (s *memStore) GetObject(_ context.Context, _, key string) ([]byte, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("no such key %s", key)
	}
	return data, nil
}

func testStore(objects map[string][]byte) *Store {
	return &Store{Bucket: "bucket", Region: "tor1", Client: &memStore{objects: objects}}
}

func TestReadCSVBoundsRows(t *testing.T) {
	t.Parallel()

	csv := "name,age\nalice,30\nbob,41\ncarol,28\n"
	store := testStore(map[string][]byte{"people.csv": []byte(csv)})

	header, rows, err := store.readCSV(context.Background(), "people.csv", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age"}, header)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"alice", "30"}, rows[0])
}

func TestReadCSVRejectsEmptyFile(t *testing.T) {
	t.Parallel()

	store := testStore(map[string][]byte{"empty.csv": []byte("")})
	_, _, err := store.readCSV(context.Background(), "empty.csv", 10)
	require.Error(t, err)
}

func TestReadCSVRejectsMissingFile(t *testing.T) {
	t.Parallel()

	store := testStore(map[string][]byte{})
	_, _, err := store.readCSV(context.Background(), "nope.csv", 10)
	require.Error(t, err)
}

func TestInferType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		sample []string
		want   string
	}{
		{"integers", []string{"1", "42", "-7"}, "integer"},
		{"floats", []string{"1.5", "2", "-0.25"}, "float"},
		{"booleans", []string{"true", "false", "1"}, "boolean"},
		{"strings", []string{"alice", "bob"}, "string"},
		{"mixed", []string{"1", "alice"}, "string"},
		{"empty sample", nil, "string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, inferType(tt.sample))
		})
	}
}
