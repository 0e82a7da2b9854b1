package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Snapshot is the session-scoped CSV snapshot path handed to the dashboard
// generator. Each session gets a unique filename so concurrent sessions
// sharing a working directory cannot overwrite each other; each Write
// replaces the previous request's contents.
type Snapshot struct {
	path string
}

// NewSnapshot reserves a unique snapshot path under dir. An empty dir means
// the OS temp directory.
func NewSnapshot(dir string) (*Snapshot, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("snapshot dir: %w", err)
	}
	name := fmt.Sprintf("sales-%s.csv", uuid.NewString())
	return &Snapshot{path: filepath.Join(dir, name)}, nil
}

// Path returns the snapshot's filesystem path.
func (s *Snapshot) Path() string { return s.path }

// Write replaces the snapshot contents with the given table.
func (s *Snapshot) Write(t *Table) error {
	return t.WriteCSV(s.path)
}

// Close removes the snapshot file. Best effort: a snapshot that was never
// written is not an error.
func (s *Snapshot) Close() error {
	err := os.Remove(s.path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
