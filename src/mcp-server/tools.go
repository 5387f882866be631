// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/pkiconf"
)

// registerTools defines the certificate store tools and binds their handlers
// to the resolved configuration.
func registerTools(s *server.MCPServer, config *pkiconf.Config) {
	issueClientTool := mcp.NewTool("issue_client",
		mcp.WithDescription("Issue a client credential bundle signed by the store's CA"),
		mcp.WithString("common_name",
			mcp.Required(),
			mcp.Description("Client common name, e.g. an email address or device identifier"),
		),
	)

	verifyStoreTool := mcp.NewTool("verify_store",
		mcp.WithDescription("Verify every artifact in the certificate store and report per-check results"),
	)

	listStoreTool := mcp.NewTool("list_store",
		mcp.WithDescription("List client manifest entries and issued credential bundles"),
	)

	s.AddTool(issueClientTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleIssueClient(request, config)
	})
	s.AddTool(verifyStoreTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleVerifyStore(request, config)
	})
	s.AddTool(listStoreTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListStore(request, config)
	})
}
