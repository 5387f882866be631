// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/issuer"
	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/pkiconf"
	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/store"
)

// newTestConfig builds a configuration rooted in a temp directory.
func newTestConfig(t *testing.T) *pkiconf.Config {
	t.Helper()
	t.Setenv(pkiconf.EnvConfigFile, "")

	dir := t.TempDir()
	cfg, err := pkiconf.Load("")
	require.NoError(t, err)
	cfg.StoreDir = filepath.Join(dir, "certs")
	cfg.ManifestPath = filepath.Join(dir, "clients.txt")
	return cfg
}

// provisionCA issues a CA into the config's store.
func provisionCA(t *testing.T, cfg *pkiconf.Config) {
	t.Helper()
	st := store.New(cfg.StoreDir)
	require.NoError(t, st.EnsureDirs())
	_, err := issuer.New(cfg, st).IssueCA("", 0)
	require.NoError(t, err)
}

// callRequest builds a tool call with the given arguments.
func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

// resultText extracts the text payload from a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func TestHandleIssueClient(t *testing.T) {
	cfg := newTestConfig(t)
	provisionCA(t, cfg)

	request := callRequest("issue_client", map[string]any{"common_name": "alice@example.com"})
	result, err := handleIssueClient(request, cfg)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var summary map[string]string
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &summary))
	assert.Equal(t, "alice@example.com", summary["commonName"])
	assert.Equal(t, "alice_example.com", summary["sanitized"])
	assert.FileExists(t, summary["bundlePath"])
}

func TestHandleIssueClient_MissingParameter(t *testing.T) {
	cfg := newTestConfig(t)

	result, err := handleIssueClient(callRequest("issue_client", nil), cfg)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleIssueClient_MissingCA(t *testing.T) {
	cfg := newTestConfig(t)

	request := callRequest("issue_client", map[string]any{"common_name": "alice"})
	result, err := handleIssueClient(request, cfg)
	require.NoError(t, err)
	require.True(t, result.IsError)

	// The remediation hint travels with the error text.
	assert.Contains(t, resultText(t, result), "issue ca")
}

func TestHandleVerifyStore(t *testing.T) {
	cfg := newTestConfig(t)
	provisionCA(t, cfg)

	result, err := handleVerifyStore(callRequest("verify_store", nil), cfg)
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "CA certificate")
	assert.Contains(t, text, "server certificate")
}

func TestHandleListStore(t *testing.T) {
	cfg := newTestConfig(t)
	provisionCA(t, cfg)
	require.NoError(t, os.WriteFile(cfg.ManifestPath, []byte("alice\nbob\n"), 0644))

	request := callRequest("issue_client", map[string]any{"common_name": "alice"})
	result, err := handleIssueClient(request, cfg)
	require.NoError(t, err)
	require.False(t, result.IsError)

	result, err = handleListStore(callRequest("list_store", nil), cfg)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var listing struct {
		Manifest []string `json:"manifest"`
		Bundles  []string `json:"bundles"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &listing))
	assert.Equal(t, []string{"alice", "bob"}, listing.Manifest)
	assert.Equal(t, []string{"alice"}, listing.Bundles)
}

func TestHandleListStore_NoManifest(t *testing.T) {
	cfg := newTestConfig(t)

	result, err := handleListStore(callRequest("list_store", nil), cfg)
	require.NoError(t, err)
	assert.False(t, result.IsError)
}

func TestGetVersion(t *testing.T) {
	assert.NotEmpty(t, GetVersion())
}
