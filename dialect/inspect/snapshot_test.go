package inspect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.snapshot")
	s := &Snapshot{Path: path}

	t.Run("missing snapshot is not an error", func(t *testing.T) {
		d, err := s.Load()
		require.NoError(t, err)
		assert.Nil(t, d)
	})

	t.Run("round trip", func(t *testing.T) {
		want := buildDescription("blogging", blogTables(), "")
		require.NoError(t, s.Store(want))

		got, err := s.Load()
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, want, got)
	})

	t.Run("corrupt snapshot fails", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("not msgpack"), 0o644))
		_, err := s.Load()
		assert.Error(t, err)
	})
}
