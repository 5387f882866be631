// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package store owns the on-disk certificate store: path layout, the
// monotonic CA serial counter, the sanitized-name client index, bundle
// enumeration, and destructive cleanup. Exactly one active CA lives in a
// store; every issued identity chains to it.
package store
