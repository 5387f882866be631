// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/pkiconf"
)

// loadConfig resolves the certificate store configuration for the MCP server.
//
// Configuration priority:
//  1. The configPath argument (from MCP_TUNNEL_PKI_CONFIG_FILE)
//  2. The CLI's TUNNEL_PKI_CONFIG_FILE environment variable
//  3. Built-in defaults
//
// The server reuses the CLI's configuration schema so both frontends always
// point at the same store layout.
func loadConfig(configPath string) (*pkiconf.Config, error) {
	return pkiconf.Load(configPath)
}
