// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/tunnel-pki/src/logger"
	verpkg "github.com/H0llyW00dzZ/tunnel-pki/src/version"
)

var serverName = "Tunnel PKI" // MCP server name
var appVersion = verpkg.Version

// EnvConfigFile names the environment variable holding the configuration
// file path for the MCP server. When unset, the CLI's own configuration
// lookup (including its environment variable) applies.
const EnvConfigFile = "MCP_TUNNEL_PKI_CONFIG_FILE"

// GetVersion returns the current version of the MCP server.
//
// The version defaults to the version package value and is overridden when
// Run is called with an explicit version string.
func GetVersion() string {
	return appVersion
}

// Run starts the MCP server exposing certificate store operations over stdio.
//
// The server registers three tools:
//   - issue_client: issue one client credential bundle
//   - verify_store: verify every artifact in the certificate store
//   - list_store:   list manifest entries and issued bundles
//
// Issuance of the CA and server identity stays CLI-only; handing those
// operations to an automated caller risks silently replacing the trust root.
func Run(version string) error {
	appVersion = version

	// Stdout carries the MCP transport; structured log entries go to stderr.
	log := logger.NewMCPLogger(os.Stderr, false)

	config, err := loadConfig(os.Getenv(EnvConfigFile))
	if err != nil {
		log.Errorf("failed to load config: %v", err)
		return fmt.Errorf("failed to load config: %w", err)
	}

	log.Printf("starting %s %s (store: %s)", serverName, appVersion, config.StoreDir)

	s := server.NewMCPServer(
		serverName,
		appVersion,
		server.WithToolCapabilities(true),
	)

	registerTools(s, config)

	return server.ServeStdio(s)
}
