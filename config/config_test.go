package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crillab/gophermachine/machine"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, machine.CountersStrategy, cfg.Strategy)
	assert.Equal(t, 1, cfg.Workers)
	assert.Zero(t, cfg.MaxStates)
	assert.NoError(t, cfg.Validate())
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte("strategy: integer\nworkers: 8\nmax_states: 100000\n"))
	require.NoError(t, err)
	assert.Equal(t, machine.IntegerStrategy, cfg.Strategy)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 100000, cfg.MaxStates)

	cfg, err = Parse([]byte("strategy: lights\n"))
	require.NoError(t, err)
	assert.Equal(t, machine.LightsStrategy, cfg.Strategy)
	assert.Equal(t, 1, cfg.Workers, "missing fields keep their default")
}

func TestParseErrors(t *testing.T) {
	inputs := []string{
		"strategy: astar\n",
		"workers: 0\n",
		"workers: 1000\n",
		"max_states: -1\n",
		"workers: [1\n",
	}
	for _, input := range inputs {
		_, err := Parse([]byte(input))
		assert.Error(t, err, "input %q", input)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gophermachine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strategy: joint\nworkers: 2\n"), 0o600))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, machine.JointStrategy, cfg.Strategy)
	assert.Equal(t, 2, cfg.Workers)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
