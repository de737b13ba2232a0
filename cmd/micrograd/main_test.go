package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const runFile = `
model {
  layers = [1, 1]
  seed   = 3
}

training {
  epochs        = 300
  learning_rate = 0.1
}

sample {
  inputs = [-1]
  target = -2
}

sample {
  inputs = [0]
  target = 1
}

sample {
  inputs = [1]
  target = 4
}
`

func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err = run(context.Background(), &out, &errOut, args)
	return out.String(), errOut.String(), err
}

func TestRun_Version(t *testing.T) {
	out, _, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "micrograd "+version+"\n", out)
}

func TestRun_Demo(t *testing.T) {
	out, _, err := runCLI(t, "demo")
	require.NoError(t, err)
	assert.Equal(t,
		"Value(a, data=-4, grad=2)\nValue(b, data=2, grad=8)\nValue(d, data=0, grad=1)\n",
		out)
}

func TestRun_Graph(t *testing.T) {
	out, _, err := runCLI(t, "graph", "-rankdir", "TB")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "digraph demo {"))
	assert.Contains(t, out, "rankdir=TB")
	assert.Contains(t, out, "grad 8.0000")

	path := filepath.Join(t.TempDir(), "demo.dot")
	_, logs, err := runCLI(t, "graph", "-o", path, "-backward=false")
	require.NoError(t, err)
	assert.Contains(t, logs, "Graph written.")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "{ b | data 2.0000 | grad 0.0000 }")
}

func TestRun_TrainAndEval(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "run.hcl")
	ckptPath := filepath.Join(dir, "model.mgrd")
	require.NoError(t, os.WriteFile(cfgPath, []byte(runFile), 0o600))

	out, logs, err := runCLI(t, "-log-level", "debug", "train", "-config", cfgPath, "-save", ckptPath)
	require.NoError(t, err)
	assert.Contains(t, out, "final loss:")
	assert.Contains(t, logs, "Epoch finished.")
	assert.Contains(t, logs, "Checkpoint saved.")

	out, _, err = runCLI(t, "eval", "-config", cfgPath, "-checkpoint", ckptPath)
	require.NoError(t, err)
	// y = 3x + 1 is learned exactly by a single linear neuron.
	assert.Contains(t, out, "sample 2: target 4 predicted 4\n")
	assert.Contains(t, out, "loss: ")
}

func TestRun_JSONLogs(t *testing.T) {
	_, logs, err := runCLI(t, "-log-format", "json", "graph", "-o", filepath.Join(t.TempDir(), "g.dot"))
	require.NoError(t, err)
	assert.Contains(t, logs, `"msg":"Graph written."`)
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"serve"}},
		{"bad level", []string{"-log-level", "loud", "version"}},
		{"bad format", []string{"-log-format", "xml", "version"}},
		{"bad flag", []string{"-nope"}},
		{"train without config", []string{"train"}},
		{"eval without checkpoint", []string{"eval", "-config", "x.hcl"}},
		{"bad rankdir", []string{"graph", "-rankdir", "RL"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			var exitErr *ExitError
			require.True(t, errors.As(err, &exitErr), "got %v", err)
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}

func TestRun_EvalLayerMismatch(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "run.hcl")
	ckptPath := filepath.Join(dir, "model.mgrd")
	require.NoError(t, os.WriteFile(cfgPath, []byte(runFile), 0o600))
	_, _, err := runCLI(t, "train", "-config", cfgPath, "-save", ckptPath)
	require.NoError(t, err)

	other := strings.Replace(runFile, "layers = [1, 1]", "layers = [1, 2, 1]", 1)
	require.NoError(t, os.WriteFile(cfgPath, []byte(other), 0o600))

	_, _, err = runCLI(t, "eval", "-config", cfgPath, "-checkpoint", ckptPath)
	assert.ErrorContains(t, err, "do not match")
}
