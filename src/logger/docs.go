// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package logger provides logging abstractions for the tunnel PKI credential
// manager. It offers two implementations behind one interface: a CLI logger
// for human-readable terminal output, and an MCP logger that emits structured
// JSON (or stays silent) so it never corrupts the MCP stdio protocol.
package logger
