package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"snake-autopilot/game/types"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 30, cfg.GridSize)
	assert.Equal(t, types.BreadthFirst, cfg.Algorithm)
	assert.Equal(t, 25, cfg.Speed)
	assert.False(t, cfg.Autopilot)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
grid_size: 20
algorithm: hamiltonian
speed: 75
autopilot: true
seed: 99
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.GridSize)
	assert.Equal(t, types.Hamiltonian, cfg.Algorithm)
	assert.Equal(t, 75, cfg.Speed)
	assert.True(t, cfg.Autopilot)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, DefaultScoresFile, cfg.ScoresFile)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	badSize := filepath.Join(dir, "size.yaml")
	require.NoError(t, os.WriteFile(badSize, []byte("grid_size: 15\n"), 0644))
	_, err = Load(badSize)
	assert.True(t, errors.Is(err, ErrInvalidGridSize))

	badSpeed := filepath.Join(dir, "speed.yaml")
	require.NoError(t, os.WriteFile(badSpeed, []byte("speed: 60\n"), 0644))
	_, err = Load(badSpeed)
	assert.True(t, errors.Is(err, ErrInvalidSpeed))

	badAlg := filepath.Join(dir, "alg.yaml")
	require.NoError(t, os.WriteFile(badAlg, []byte("algorithm: dijkstra\n"), 0644))
	_, err = Load(badAlg)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"defaults", func(c *Config) {}, nil},
		{"largest board", func(c *Config) { c.GridSize = 50 }, nil},
		{"fastest", func(c *Config) { c.Speed = 100 }, nil},
		{"zero size", func(c *Config) { c.GridSize = 0 }, ErrInvalidGridSize},
		{"odd size", func(c *Config) { c.GridSize = 25 }, ErrInvalidGridSize},
		{"speed off the table", func(c *Config) { c.Speed = 30 }, ErrInvalidSpeed},
		{"negative speed", func(c *Config) { c.Speed = -25 }, ErrInvalidSpeed},
		{"no scores file", func(c *Config) { c.ScoresFile = "" }, ErrNoScoresFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestValidGridSize(t *testing.T) {
	for _, n := range GridSizes {
		assert.True(t, ValidGridSize(n), "size %d", n)
	}
	for _, n := range []int{-10, 0, 3, 15, 60} {
		assert.False(t, ValidGridSize(n), "size %d", n)
	}
}

func TestDifficulty(t *testing.T) {
	tests := []struct {
		speed int
		want  string
	}{
		{0, "Very Easy"},
		{25, "Easy"},
		{50, "Medium"},
		{75, "Hard"},
		{100, "Inhuman"},
		{60, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Difficulty(tt.speed), "speed %d", tt.speed)
	}
}

func TestTickInterval(t *testing.T) {
	assert.Equal(t, 100*time.Millisecond, TickInterval(0))
	assert.Equal(t, 75*time.Millisecond, TickInterval(25))
	assert.Equal(t, time.Millisecond, TickInterval(100))
	assert.Equal(t, time.Millisecond, TickInterval(150))
}

func TestStep(t *testing.T) {
	assert.Equal(t, 50, Step(Speeds, 25, 1))
	assert.Equal(t, 0, Step(Speeds, 0, -1))
	assert.Equal(t, 100, Step(Speeds, 100, 1))
	assert.Equal(t, 40, Step(GridSizes, 50, -1))
	assert.Equal(t, 10, Step(GridSizes, 33, 1))
}
