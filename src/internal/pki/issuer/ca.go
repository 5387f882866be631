// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package issuer

import (
	"fmt"

	"github.com/cloudflare/cfssl/csr"
	"github.com/cloudflare/cfssl/initca"

	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/fault"
)

// CAResult describes a freshly issued certificate authority.
type CAResult struct {
	CommonName   string
	ValidityDays int
	CertPath     string
	// ReplacedExisting is true when a previous CA was overwritten. Every
	// identity issued under the old CA no longer chain-verifies; there is
	// no revocation bookkeeping.
	ReplacedExisting bool
	// OrphanedServer is true when a server identity issued by the replaced
	// CA remains in the store.
	OrphanedServer bool
}

// IssueCA self-signs a new root certificate authority and persists it.
//
// Re-invocation overwrites the existing CA key and certificate in place (no
// versioning) and resets the serial counter; the result flags what was
// invalidated so callers can warn the operator.
func (i *Issuer) IssueCA(commonName string, validityDays int) (*CAResult, error) {
	if commonName == "" {
		commonName = i.cfg.CA.CommonName
	}
	if validityDays <= 0 {
		validityDays = i.cfg.CA.ValidityDays
	}
	if validityDays <= i.cfg.Server.ValidityDays {
		return nil, fault.Invalid("CA validity (%d days) must exceed server validity (%d days)",
			validityDays, i.cfg.Server.ValidityDays)
	}

	result := &CAResult{
		CommonName:       commonName,
		ValidityDays:     validityDays,
		CertPath:         i.st.CACertPath(),
		ReplacedExisting: i.st.HasCA(),
		OrphanedServer:   i.st.HasCA() && i.st.HasServer(),
	}

	req := &csr.CertificateRequest{
		CN:         commonName,
		Names:      []csr.Name{i.subjectName()},
		KeyRequest: csr.NewKeyRequest(),
		CA: &csr.CAConfig{
			Expiry: fmt.Sprintf("%dh", validityDays*24),
		},
	}

	certPEM, _, keyPEM, err := initca.New(req)
	if err != nil {
		return nil, fault.Engine(err, "failed to self-sign CA %q", commonName)
	}

	if err := i.st.EnsureDirs(); err != nil {
		return nil, err
	}
	if err := i.st.WriteKey(i.st.CAKeyPath(), keyPEM); err != nil {
		return nil, err
	}
	if err := i.st.WriteCert(i.st.CACertPath(), certPEM); err != nil {
		return nil, err
	}
	if err := i.st.InitSerial(); err != nil {
		return nil, err
	}

	return result, nil
}
