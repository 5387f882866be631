// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package issuer

import (
	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/manifest"
)

// BatchFailure records one manifest entry that could not be issued.
type BatchFailure struct {
	CommonName string
	Err        error
}

// BatchResult aggregates a best-effort batch issuance run.
type BatchResult struct {
	Issued   []*ClientResult
	Failures []BatchFailure
}

// OK reports whether every manifest entry was issued.
func (r *BatchResult) OK() bool { return len(r.Failures) == 0 }

// IssueAllClients issues a bundle for every manifest entry, in file order.
//
// Batch issuance is best-effort per entry: a malformed CN or a failed signing
// is recorded and the remaining entries are still attempted. Only a missing
// or unreadable manifest fails the whole operation.
func (i *Issuer) IssueAllClients(manifestPath string) (*BatchResult, error) {
	if manifestPath == "" {
		manifestPath = i.cfg.ManifestPath
	}

	entries, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{}
	for _, cn := range entries {
		client, err := i.IssueClient(cn)
		if err != nil {
			result.Failures = append(result.Failures, BatchFailure{CommonName: cn, Err: err})
			continue
		}
		result.Issued = append(result.Issued, client)
	}

	return result, nil
}
