// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver exposes the certificate store over the Model Context
// Protocol so agent frontends can issue client bundles and inspect store
// health without shelling out to the CLI.
//
// The server speaks MCP over stdio and shares the CLI's configuration
// schema; set MCP_TUNNEL_PKI_CONFIG_FILE to point it at a configuration
// file. Trust-root operations (issuing or replacing the CA and the server
// identity) are deliberately not exposed as tools.
package mcpserver
