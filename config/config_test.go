package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/boxphys/engine"
	"github.com/lixenwraith/boxphys/parameter"
)

const fullConfig = `
scene = "scenes/pile.yaml"

[domain]
x = 10
y = 20
width = 800
height = 600

[physics]
gravity = 500
damping = 1.0
restitution = 0.5
boundary_restitution = 0.25
rest_threshold = 0
max_delta_time = 0.05

[broadphase]
spatial_hash = false
cell_size = 32
`

func TestParseFull(t *testing.T) {
	s, err := Parse([]byte(fullConfig))
	require.NoError(t, err)

	cfg := s.Engine
	assert.Equal(t, "scenes/pile.yaml", s.Scene)
	assert.Equal(t, 10.0, cfg.Domain.X)
	assert.Equal(t, 20.0, cfg.Domain.Y)
	assert.Equal(t, 800.0, cfg.Domain.Width)
	assert.Equal(t, 600.0, cfg.Domain.Height)
	assert.Equal(t, 500.0, cfg.Gravity)
	assert.Equal(t, 1.0, cfg.Damping)
	assert.Equal(t, 0.5, cfg.Restitution)
	assert.Equal(t, 0.25, cfg.BoundaryRestitution)
	assert.Equal(t, 0.0, cfg.RestThreshold)
	assert.Equal(t, 0.05, cfg.MaxDeltaTime)
	assert.False(t, cfg.SpatialHash.EnableOptimization)
	assert.Equal(t, 32.0, cfg.SpatialHash.CellSize)
}

func TestParseAppliesDefaults(t *testing.T) {
	s, err := Parse([]byte("[domain]\nwidth = 100\nheight = 50\n"))
	require.NoError(t, err)

	cfg := s.Engine
	assert.Equal(t, parameter.DefaultGravity, cfg.Gravity)
	assert.Equal(t, parameter.DefaultDamping, cfg.Damping)
	assert.Equal(t, parameter.DefaultRestitution, cfg.Restitution)
	assert.Equal(t, parameter.MaxDeltaTime, cfg.MaxDeltaTime)
	assert.True(t, cfg.SpatialHash.EnableOptimization)
	assert.Empty(t, s.Scene)
}

func TestParseMissingFields(t *testing.T) {
	tests := []struct {
		name string
		data string
		key  string
	}{
		{"no domain", "[physics]\ngravity = 1\n", "[domain]"},
		{"no width", "[domain]\nheight = 10\n", "domain.width"},
		{"no height", "[domain]\nwidth = 10\n", "domain.height"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.ErrorIs(t, err, ErrMissingField)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestParseRejects(t *testing.T) {
	_, err := Parse([]byte("[domain]\nwidth = 10\nheight = 10\nbogus = 1\n"))
	assert.Error(t, err, "unknown keys must fail")

	_, err = Parse([]byte("[domain\nwidth = 10"))
	assert.Error(t, err, "malformed TOML must fail")

	_, err = Parse([]byte("[domain]\nwidth = 10\nheight = 10\n[physics]\ndamping = 2\n"))
	assert.ErrorIs(t, err, engine.ErrInvalidConfig)

	_, err = Parse([]byte("[domain]\nwidth = 0\nheight = 10\n"))
	assert.ErrorIs(t, err, engine.ErrInvalidConfig)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxsim.toml")
	require.NoError(t, os.WriteFile(path, []byte(fullConfig), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 500.0, s.Engine.Gravity)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxsim.toml")
	require.NoError(t, os.WriteFile(path, []byte(fullConfig), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan Settings, 4)
	require.NoError(t, Watch(ctx, path, func(s Settings, err error) {
		if err == nil {
			changes <- s
		}
	}))

	require.NoError(t, os.WriteFile(path, []byte("[domain]\nwidth = 300\nheight = 200\n[physics]\ngravity = 42\n"), 0o644))

	select {
	case s := <-changes:
		assert.Equal(t, 42.0, s.Engine.Gravity)
		assert.Equal(t, 300.0, s.Engine.Domain.Width)
	case <-time.After(3 * time.Second):
		t.Fatal("Timed out waiting for reload")
	}
}
