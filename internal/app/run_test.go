package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/pipeweld/internal/declfile"
	"github.com/vk/pipeweld/internal/hcladapter"
)

func writeDecl(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestConfig(t *testing.T, path string) *Config {
	t.Helper()
	cfg, err := NewConfig(Config{DeclPath: path, LogFormat: "text", LogLevel: "error"})
	require.NoError(t, err)
	return cfg
}

func TestRun_ValidPipelinePrintsGraph(t *testing.T) {
	path := writeDecl(t, "users.yaml", `
sources:
  - name: read
    connector: kafka
    options: {topic: users}
transforms:
  - name: clean
    op: drop_columns
    options: {columns: [name]}
sinks:
  - name: write
    connector: bigquery
    options: {table: out}
pipelines:
  - name: users
    stages: [read, clean, write]
`)
	var out bytes.Buffer
	a := NewApp(&out, newTestConfig(t, path), declfile.NewLoader())

	require.NoError(t, a.Run(context.Background()))

	var rendered struct {
		Pipeline string `json:"pipeline"`
		Graph    struct {
			BuildID string                     `json:"build_id"`
			Entries map[string]json.RawMessage `json:"entries"`
		} `json:"graph"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &rendered))
	assert.Equal(t, "users", rendered.Pipeline)
	assert.NotEmpty(t, rendered.Graph.BuildID)
	assert.Len(t, rendered.Graph.Entries, 3)
	assert.Contains(t, rendered.Graph.Entries, "read")
	assert.Contains(t, rendered.Graph.Entries, "clean")
	assert.Contains(t, rendered.Graph.Entries, "write")

	graph, ok := a.graphs.Get("users")
	require.True(t, ok)
	assert.Equal(t, "clean", graph.Entries["read"].Next)
}

func TestRun_HCLDeclaration(t *testing.T) {
	path := writeDecl(t, "direct.hcl", `
source "file" "in" {
  options = { path = "/tmp/in.csv" }
}

sink "stdout" "out" {}

pipeline "copy" {
  stages = ["in", "out"]
}
`)
	var out bytes.Buffer
	a := NewApp(&out, newTestConfig(t, path), hcladapter.NewLoader())

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), `"pipeline": "copy"`)
}

func TestRun_StructurallyInvalidPipeline(t *testing.T) {
	// Sink before transform: an illegal succession.
	path := writeDecl(t, "bad.yaml", `
sources:
  - name: s1
    connector: kafka
transforms:
  - name: t1
    op: drop_columns
sinks:
  - name: k1
    connector: bigquery
pipelines:
  - name: broken
    stages: [s1, k1, t1]
`)
	var out bytes.Buffer
	a := NewApp(&out, newTestConfig(t, path), declfile.NewLoader())

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
	assert.Contains(t, out.String(), "sink cannot be followed by transform")
}

func TestRun_NoPipelinesIsNotAnError(t *testing.T) {
	path := writeDecl(t, "stages-only.yaml", `
sources:
  - name: read
    connector: kafka
`)
	var out bytes.Buffer
	a := NewApp(&out, newTestConfig(t, path), declfile.NewLoader())

	require.NoError(t, a.Run(context.Background()))
	assert.Empty(t, out.String())
}

func TestNewApp_UnknownConnectorPanics(t *testing.T) {
	path := writeDecl(t, "mystery.yaml", `
sources:
  - name: read
    connector: telepathy
`)
	assert.Panics(t, func() {
		NewApp(&bytes.Buffer{}, newTestConfig(t, path), declfile.NewLoader())
	})
}

func TestNewApp_MalformedDeclarationPanics(t *testing.T) {
	path := writeDecl(t, "broken.yaml", "sources: [oops")
	assert.Panics(t, func() {
		NewApp(&bytes.Buffer{}, newTestConfig(t, path), declfile.NewLoader())
	})
}
