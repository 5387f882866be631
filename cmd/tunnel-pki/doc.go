// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

// tunnel-pki is a command-line tool for managing the private certificate
// hierarchy of a reverse-tunnel proxy deployment: a root CA, a server
// identity, and per-client credential bundles.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/tunnel-pki/cmd/tunnel-pki@latest
//
// # Usage
//
//	tunnel-pki COMMAND [FLAGS]
//
// # Commands
//
//	issue ca            Issue the root certificate authority
//	issue server        Issue the server identity
//	issue client CN     Issue one client credential bundle
//	issue all-clients   Issue bundles for every manifest entry
//	issue all           Provision the full hierarchy
//	verify              Verify every artifact in the store
//	list                List manifest entries and issued bundles
//	clean --yes         Delete the certificate store
//
// # Flags
//
//	-c, --config   Configuration file (JSON or YAML)
//	-s, --store    Certificate store directory (overrides config)
//
// # Examples
//
// Provision a complete hierarchy from a manifest:
//
//	tunnel-pki issue all --config pki.yaml
//
// Issue one client bundle into an explicit store:
//
//	tunnel-pki issue client alice@example.com --store ./certs
//
// Issue the server identity with custom SANs:
//
//	tunnel-pki issue server --sans DNS:vpn.example.com,IP:203.0.113.7
//
// Verify the store and inspect a bundle with OpenSSL:
//
//	tunnel-pki verify --store ./certs
//	tar xzf certs/clients/alice_example.com.tar.gz
//	openssl verify -CAfile ca.crt alice_example.com.crt
package main
