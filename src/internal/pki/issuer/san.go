// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package issuer

import (
	"net"
	"strings"

	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/fault"
)

// ParseSANs normalizes a subject-alternative-name list into the bare host
// values the signer consumes. Entries may carry openssl-style type prefixes
// ("DNS:localhost", "IP:127.0.0.1", "EMAIL:ops@example.com",
// "URI:spiffe://node") or be bare names; prefixes are matched
// case-insensitively and stripped. The signer re-detects each value's type
// when it applies the SAN extension at signing time.
func ParseSANs(entries []string) ([]string, error) {
	var hosts []string

	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		value := entry
		if prefix, rest, ok := strings.Cut(entry, ":"); ok {
			switch strings.ToUpper(prefix) {
			case "DNS", "EMAIL":
				value = rest
			case "IP":
				if net.ParseIP(rest) == nil {
					return nil, fault.Invalid("malformed IP SAN %q", entry)
				}
				value = rest
			case "URI":
				value = rest
			default:
				// No recognized prefix; treat the whole entry as a bare
				// name (it may itself contain a colon, e.g. an IPv6
				// literal).
			}
		}

		if value == "" {
			return nil, fault.Invalid("empty SAN entry %q", entry)
		}
		hosts = append(hosts, value)
	}

	if len(hosts) == 0 {
		return nil, fault.Invalid("SAN list is empty")
	}

	return hosts, nil
}

// ParseSANList splits a comma-separated SAN flag value and normalizes it
// with ParseSANs.
func ParseSANList(list string) ([]string, error) {
	return ParseSANs(strings.Split(list, ","))
}
