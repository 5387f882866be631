// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package manifest

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/fault"
)

// Parse reads client common names from r, one per line, in order.
// Blank lines and lines whose first non-space character is '#' are skipped.
// Entries are not deduplicated; aliasing is caught later by the client index.
func Parse(r io.Reader) ([]string, error) {
	var entries []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fault.StoreIO(err, "failed to read client manifest")
	}

	return entries, nil
}

// Load parses the manifest file at path.
// A missing manifest is a prerequisite failure: batch issuance cannot start
// without it.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fault.Prerequisite(
				"create a manifest file with one client common name per line",
				"client manifest not found at %s", path)
		}
		return nil, fault.StoreIO(err, "failed to open client manifest %s", path)
	}
	defer f.Close()

	return Parse(f)
}
