// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package issuer

import (
	"strings"

	"github.com/cloudflare/cfssl/helpers"

	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/bundle"
	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/fault"
)

// clientUsages are the key usages signed into client certificates.
var clientUsages = []string{"signing", "key encipherment", "client auth"}

// ClientResult describes one issued client credential bundle.
type ClientResult struct {
	CommonName string
	Sanitized  string
	BundlePath string
}

// IssueClient issues one client identity and packages it into a
// distributable bundle archive named after the sanitized common name.
//
// The SAN is fixed to a single DNS entry equal to the CN, and the
// certificate is shorter-lived than the server's per the rotation policy.
// Re-issuing the same CN replaces its bundle; a different CN whose sanitized
// name collides with an existing bundle is refused.
func (i *Issuer) IssueClient(commonName string) (*ClientResult, error) {
	commonName = strings.TrimSpace(commonName)
	if commonName == "" {
		return nil, fault.Invalid("client common name must not be empty")
	}

	if err := i.requireCA(); err != nil {
		return nil, err
	}

	sanitized := bundle.Sanitize(commonName)

	// Reserve the sanitized name before the engine runs. A colliding CN is
	// rejected here, and a failed issuance leaves only a harmless
	// reservation that the same CN's retry reuses.
	if err := i.st.RecordClient(sanitized, commonName); err != nil {
		return nil, err
	}

	hosts := []string{commonName}
	csrPEM, keyPEM, err := i.generateKeyAndCSR(commonName, hosts)
	if err != nil {
		return nil, err
	}

	certPEM, err := i.signCSR(csrPEM, hosts, signingProfile(i.cfg.Client.ValidityDays, clientUsages))
	if err != nil {
		return nil, err
	}

	cert, err := helpers.ParseCertificatePEM(certPEM)
	if err != nil {
		return nil, fault.Engine(err, "failed to parse issued client certificate for %q", commonName)
	}

	p12, err := i.exportPKCS12(certPEM, keyPEM)
	if err != nil {
		return nil, err
	}

	_, caPEM, err := i.caCertificate()
	if err != nil {
		return nil, err
	}

	archivePath := i.st.BundlePath(sanitized)
	err = bundle.Build(archivePath, bundle.Identity{
		CommonName: commonName,
		KeyPEM:     keyPEM,
		CertPEM:    certPEM,
		CACertPEM:  caPEM,
		PKCS12:     p12,
		NotAfter:   cert.NotAfter,
	})
	if err != nil {
		return nil, err
	}

	return &ClientResult{
		CommonName: commonName,
		Sanitized:  sanitized,
		BundlePath: archivePath,
	}, nil
}
