// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package manifest parses the plain-text client manifest: one common name per
// line, '#' comments and blank lines ignored, file order preserved.
package manifest
