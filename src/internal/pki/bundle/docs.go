// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package bundle packages one client identity's artifacts (key, certificate,
// combined PEM, PKCS12, CA certificate copy, install instructions) into a
// single distributable tar.gz archive named after the sanitized common name,
// and extracts such archives for verification. Assembly always stages files
// in a scoped temporary workspace removed on every exit path.
package bundle
