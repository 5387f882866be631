// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package fault defines the error taxonomy for certificate hierarchy
// operations: prerequisite-missing, invalid-input, engine-failure, and
// store-I/O. Every domain error wraps exactly one of the four sentinel kinds
// so callers classify failures with errors.Is, and may carry a remediation
// hint that the CLI prints before exiting non-zero.
package fault
