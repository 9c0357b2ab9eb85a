package gen

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, err := NewConfig()
		require.NoError(t, err)
		assert.Empty(t, c.Target)
		assert.Empty(t, c.Namespace)
		assert.False(t, c.DataAnnotations)
		assert.Equal(t, runtime.GOMAXPROCS(0), c.Workers)
	})

	t.Run("options applied in order", func(t *testing.T) {
		c, err := NewConfig(
			WithTarget("out"),
			WithNamespace("Blogging.Models"),
			WithDataAnnotations(true),
			WithHeader("// generated\n"),
			WithWorkers(2),
		)
		require.NoError(t, err)
		assert.Equal(t, "out", c.Target)
		assert.Equal(t, "Blogging.Models", c.Namespace)
		assert.True(t, c.DataAnnotations)
		assert.Equal(t, "// generated\n", c.Header)
		assert.Equal(t, 2, c.Workers)
	})

	t.Run("first failing option wins", func(t *testing.T) {
		c, err := NewConfig(WithTarget(""), WithNamespace(""))
		assert.Nil(t, c)
		require.Error(t, err)
		var cerr *ConfigError
		require.True(t, errors.As(err, &cerr))
		assert.Equal(t, "Target", cerr.Option)
	})
}

func TestOptionValidation(t *testing.T) {
	tests := []struct {
		name   string
		opt    Option
		option string
	}{
		{name: "empty target", opt: WithTarget(""), option: "Target"},
		{name: "empty namespace", opt: WithNamespace(""), option: "Namespace"},
		{name: "zero workers", opt: WithWorkers(0), option: "Workers"},
		{name: "negative workers", opt: WithWorkers(-1), option: "Workers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opt(&Config{})
			require.Error(t, err)
			assert.True(t, IsConfigError(err))
			var cerr *ConfigError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tt.option, cerr.Option)
		})
	}
}
