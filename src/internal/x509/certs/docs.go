// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs provides encoding and decoding of X.509 certificates in
// PEM and DER formats, plus helpers for telling end-entity certificates apart
// from CA certificates inside extracted credential bundles.
package x509certs
