// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package pkiconf loads and validates the explicit configuration object for
// the certificate hierarchy manager: store location, client manifest path,
// subject defaults, and the validity periods of CA, server, and client
// certificates. Configuration comes from an optional YAML or JSON file with
// defaults for anything unset; operations receive the object explicitly and
// never read ambient globals.
package pkiconf
