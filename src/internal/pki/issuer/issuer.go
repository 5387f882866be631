// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package issuer

import (
	"crypto/x509"
	"fmt"
	"os"
	"time"

	"github.com/cloudflare/cfssl/config"
	"github.com/cloudflare/cfssl/csr"
	"github.com/cloudflare/cfssl/helpers"
	"github.com/cloudflare/cfssl/signer"
	"github.com/cloudflare/cfssl/signer/local"

	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/fault"
	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/pkiconf"
	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/store"
)

// Issuer derives identities from the store's certificate authority. All
// cryptographic operations are delegated to the cfssl PKI engine; the Issuer
// owns sequencing, store bookkeeping, and bundling.
type Issuer struct {
	cfg *pkiconf.Config
	st  *store.Store
}

// New creates an Issuer over the given configuration and store.
func New(cfg *pkiconf.Config, st *store.Store) *Issuer {
	return &Issuer{cfg: cfg, st: st}
}

// Store exposes the underlying certificate store.
func (i *Issuer) Store() *store.Store { return i.st }

// subjectName maps the configured distinguished-name defaults into the
// engine's typed request structure. No text templating is involved, so
// escaping hazards in subject fields cannot arise.
func (i *Issuer) subjectName() csr.Name {
	return csr.Name{
		C:  i.cfg.Subject.Country,
		ST: i.cfg.Subject.State,
		L:  i.cfg.Subject.Locality,
		O:  i.cfg.Subject.Organization,
	}
}

// requireCA fails with the prerequisite-missing kind when no CA exists.
func (i *Issuer) requireCA() error {
	if !i.st.HasCA() {
		return fault.Prerequisite(
			"generate a CA first with 'issue ca'",
			"no certificate authority in store %s", i.st.Root())
	}
	return nil
}

// signingProfile builds the one-profile signing policy for an identity class.
// ClientProvidesSerialNumbers routes serial assignment through the store's
// persisted monotonic counter instead of the engine's random serials.
func signingProfile(validityDays int, usages []string) *config.Signing {
	expiry := time.Duration(validityDays) * 24 * time.Hour
	return &config.Signing{
		Default: &config.SigningProfile{
			Usage:                       usages,
			Expiry:                      expiry,
			ExpiryString:                fmt.Sprintf("%dh", validityDays*24),
			ClientProvidesSerialNumbers: true,
		},
	}
}

// signCSR signs csrPEM with the store's CA key. The hosts list is passed to
// the signer so the SAN extension in the final certificate comes from the
// sign request, authoritative at signing time, not merely from the CSR.
func (i *Issuer) signCSR(csrPEM []byte, hosts []string, policy *config.Signing) ([]byte, error) {
	engine, err := local.NewSignerFromFile(i.st.CACertPath(), i.st.CAKeyPath(), policy)
	if err != nil {
		return nil, fault.Engine(err, "failed to load CA signer from %s", i.st.Root())
	}

	serial, err := i.st.NextSerial()
	if err != nil {
		return nil, err
	}

	certPEM, err := engine.Sign(signer.SignRequest{
		Request: string(csrPEM),
		Hosts:   hosts,
		Serial:  serial,
	})
	if err != nil {
		return nil, fault.Engine(err, "failed to sign certificate request")
	}

	return certPEM, nil
}

// generateKeyAndCSR produces a fresh key pair and CSR for one identity. The
// key and the certificate signed from this CSR are always a matched pair.
func (i *Issuer) generateKeyAndCSR(commonName string, hosts []string) (csrPEM, keyPEM []byte, err error) {
	req := &csr.CertificateRequest{
		CN:         commonName,
		Names:      []csr.Name{i.subjectName()},
		Hosts:      hosts,
		KeyRequest: csr.NewKeyRequest(),
	}

	csrPEM, keyPEM, err = csr.ParseRequest(req)
	if err != nil {
		return nil, nil, fault.Engine(err, "failed to generate key and CSR for %q", commonName)
	}

	return csrPEM, keyPEM, nil
}

// caCertificate loads and parses the CA certificate from the store.
func (i *Issuer) caCertificate() (*x509.Certificate, []byte, error) {
	caPEM, err := os.ReadFile(i.st.CACertPath())
	if err != nil {
		return nil, nil, fault.StoreIO(err, "failed to read CA certificate %s", i.st.CACertPath())
	}

	caCert, err := helpers.ParseCertificatePEM(caPEM)
	if err != nil {
		return nil, nil, fault.Engine(err, "failed to parse CA certificate %s", i.st.CACertPath())
	}

	return caCert, caPEM, nil
}
