// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli implements the tunnel-pki command-line interface.
//
// The command tree mirrors the lifecycle of the certificate store:
//
//	tunnel-pki issue ca            issue the root certificate authority
//	tunnel-pki issue server        issue the server identity
//	tunnel-pki issue client CN     issue one client credential bundle
//	tunnel-pki issue all-clients   issue bundles for every manifest entry
//	tunnel-pki issue all           provision the full hierarchy
//	tunnel-pki verify              verify every artifact in the store
//	tunnel-pki list                list manifest entries and issued bundles
//	tunnel-pki clean --yes         delete the certificate store
//
// The global --config flag points at a JSON or YAML configuration file and
// --store overrides the configured store directory. Subcommands return
// classified errors; remediation hints travel with the error and are printed
// alongside it.
package cli
