// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package issuer implements the certificate hierarchy issuance workflow: a
// self-signed root CA, one server identity, and per-client credential
// bundles, each derived through the cfssl PKI engine (key generation, typed
// CSR construction, CA signing with store-managed serials, SANs applied
// authoritatively at signing time).
//
// Single-identity operations fail fast on the first error; batch issuance
// over a client manifest is best-effort per entry with an aggregate report.
package issuer
