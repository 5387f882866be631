// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package verify performs read-only verification of a certificate store: CA
// material presence and readability, server identity chain validation, and
// per-bundle chain validation of every client archive, extracted into
// ephemeral workspaces with guaranteed cleanup. Results aggregate into a
// single report; invalid certificates are reported outcomes, not errors.
package verify
