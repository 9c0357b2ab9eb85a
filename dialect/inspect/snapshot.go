package inspect

import (
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/scaffold/compiler/load"
)

// Snapshot caches an inspected schema description on disk so repeated
// generation runs can skip the database round trips.
type Snapshot struct {
	// Path of the snapshot file.
	Path string
}

// Load reads the cached description. A missing snapshot returns nil
// without error; a corrupt one fails.
func (s *Snapshot) Load() (*load.SchemaDescription, error) {
	buf, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read schema snapshot: %w", err)
	}
	var d load.SchemaDescription
	if err := msgpack.Unmarshal(buf, &d); err != nil {
		return nil, fmt.Errorf("decode schema snapshot %s: %w", s.Path, err)
	}
	return &d, nil
}

// Store writes the description to the snapshot file.
func (s *Snapshot) Store(d *load.SchemaDescription) error {
	buf, err := msgpack.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode schema snapshot: %w", err)
	}
	if err := os.WriteFile(s.Path, buf, 0o644); err != nil {
		return fmt.Errorf("write schema snapshot: %w", err)
	}
	return nil
}
