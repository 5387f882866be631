// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/fault"
	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/issuer"
	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/manifest"
	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/pkiconf"
	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/store"
	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/verify"
)

// toolError formats a classified error for the MCP caller, carrying the
// remediation hint when one is attached.
func toolError(err error) *mcp.CallToolResult {
	if hint := fault.Remediation(err); hint != "" {
		return mcp.NewToolResultError(fmt.Sprintf("%v (hint: %s)", err, hint))
	}
	return mcp.NewToolResultError(err.Error())
}

// handleIssueClient issues one client credential bundle.
//
// The CA must already exist in the store; the handler never creates one.
func handleIssueClient(request mcp.CallToolRequest, config *pkiconf.Config) (*mcp.CallToolResult, error) {
	commonName, err := request.RequireString("common_name")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("common_name parameter required: %v", err)), nil
	}

	st := store.New(config.StoreDir)
	if err := st.EnsureDirs(); err != nil {
		return toolError(err), nil
	}

	result, err := issuer.New(config, st).IssueClient(commonName)
	if err != nil {
		return toolError(err), nil
	}

	summary, err := json.MarshalIndent(map[string]string{
		"commonName": result.CommonName,
		"sanitized":  result.Sanitized,
		"bundlePath": result.BundlePath,
	}, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(summary)), nil
}

// handleVerifyStore verifies every artifact in the certificate store and
// returns the rendered report. A failing store is a successful tool call
// with a failing report, not a tool error.
func handleVerifyStore(request mcp.CallToolRequest, config *pkiconf.Config) (*mcp.CallToolResult, error) {
	report, err := verify.Run(store.New(config.StoreDir))
	if err != nil {
		return toolError(err), nil
	}

	return mcp.NewToolResultText(report.RenderTable()), nil
}

// handleListStore lists the client manifest entries and the bundles present
// in the store.
func handleListStore(request mcp.CallToolRequest, config *pkiconf.Config) (*mcp.CallToolResult, error) {
	st := store.New(config.StoreDir)

	// Listing tolerates a missing manifest; bundles may have been issued
	// one at a time.
	entries, err := manifest.Load(config.ManifestPath)
	if err != nil && !errors.Is(err, fault.ErrPrerequisiteMissing) {
		return toolError(err), nil
	}

	bundles, err := st.Bundles()
	if err != nil {
		return toolError(err), nil
	}

	listing, err := json.MarshalIndent(map[string]any{
		"manifest": entries,
		"bundles":  bundles,
	}, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode listing: %v", err)), nil
	}

	return mcp.NewToolResultText(string(listing)), nil
}
