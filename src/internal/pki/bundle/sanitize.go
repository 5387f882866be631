// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package bundle

import "regexp"

var unsafeRunes = regexp.MustCompile(`[^A-Za-z0-9.-]`)

// Sanitize maps a common name to a filesystem-safe bundle identifier by
// replacing every character outside [A-Za-z0-9.-] with '_'.
//
// Sanitize is a pure function: equal inputs always yield equal outputs. Two
// distinct CNs can collide on the same sanitized name; the store's client
// index flags that instead of overwriting.
func Sanitize(cn string) string {
	return unsafeRunes.ReplaceAllString(cn, "_")
}
