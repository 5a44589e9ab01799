package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}
[...#.] (0,2,3,4) (2,3) (0,4) (0,1,2) (1,2,3,4) {7,5,12,7,2}
[.###.#] (0,1,2,3,4) (0,3,4) (0,1,2,4,5) (1,2) {10,11,11,5,10,5}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSolveCommand(t *testing.T) {
	path := writeFile(t, "machines.txt", sample)
	out, err := run(t, "solve", "--strategy", "lights", path)
	require.NoError(t, err)
	assert.Equal(t, "machine 0: 2\nmachine 1: 3\nmachine 2: 2\ntotal: 7\n", out)

	out, err = run(t, "solve", "-s", "integer", "-w", "3", path)
	require.NoError(t, err)
	assert.Contains(t, out, "total: 33\n")
}

func TestSolveCommandConfig(t *testing.T) {
	path := writeFile(t, "machines.txt", sample)
	cfg := writeFile(t, "config.yaml", "strategy: counters\nworkers: 2\n")
	out, err := run(t, "solve", "--config", cfg, path)
	require.NoError(t, err)
	assert.Contains(t, out, "total: 33\n")

	// Flags override the configuration file.
	out, err = run(t, "solve", "--config", cfg, "--strategy", "lights", path)
	require.NoError(t, err)
	assert.Contains(t, out, "total: 7\n")
}

func TestSolveCommandFailures(t *testing.T) {
	path := writeFile(t, "machines.txt", "[###] (0) {1,0,0}\n[#.] (0,1) (0) {3,2}\n")
	metrics := filepath.Join(t.TempDir(), "metrics.prom")
	out, err := run(t, "solve", "--strategy", "lights", "--metrics-file", metrics, path)
	assert.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "machine 0: unreachable:")
	assert.Contains(t, out, "machine 1: 1\n")
	assert.Contains(t, out, "total: 1\nfailed: 1/2\n")

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), `gophermachine_machines_total{outcome="unreachable",strategy="lights"} 1`)
}

func TestSolveCommandErrors(t *testing.T) {
	path := writeFile(t, "machines.txt", sample)
	_, err := run(t, "solve", "--strategy", "astar", path)
	assert.Error(t, err)
	_, err = run(t, "solve", "--workers", "0", path)
	assert.Error(t, err)
	_, err = run(t, "solve", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
	_, err = run(t, "solve")
	assert.Error(t, err)
}

func TestCheckCommand(t *testing.T) {
	out, err := run(t, "check", writeFile(t, "machines.txt", sample))
	require.NoError(t, err)
	assert.Equal(t, "3 machines OK\n", out)

	_, err = run(t, "check", writeFile(t, "bad.txt", "[#] (1) {1}\n"))
	assert.ErrorContains(t, err, "line 1")
}
