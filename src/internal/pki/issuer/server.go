// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package issuer

import (
	"crypto/rand"
	"crypto/x509"

	"github.com/cloudflare/cfssl/helpers"
	pkcs12 "software.sslmate.com/src/go-pkcs12"

	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/fault"
)

// serverUsages are the key usages signed into the server certificate. The
// reverse-tunnel server both terminates client connections and dials
// upstream, so it carries server and client auth.
var serverUsages = []string{"signing", "key encipherment", "server auth", "client auth"}

// ServerResult describes a freshly issued server identity.
type ServerResult struct {
	CommonName string
	SANs       []string
	CertPath   string
	P12Path    string
}

// IssueServer issues the server identity: key pair, CSR, CA-signed
// certificate carrying the requested SANs, combined cert+key PEM, and a
// password-less PKCS12 archive bundling certificate, key, and CA chain.
//
// Any prior server materials are overwritten without archival.
func (i *Issuer) IssueServer(sans []string) (*ServerResult, error) {
	if err := i.requireCA(); err != nil {
		return nil, err
	}

	if len(sans) == 0 {
		sans = i.cfg.Server.SANs
	}
	hosts, err := ParseSANs(sans)
	if err != nil {
		return nil, err
	}

	commonName := i.cfg.Server.CommonName
	csrPEM, keyPEM, err := i.generateKeyAndCSR(commonName, hosts)
	if err != nil {
		return nil, err
	}

	certPEM, err := i.signCSR(csrPEM, hosts, signingProfile(i.cfg.Server.ValidityDays, serverUsages))
	if err != nil {
		return nil, err
	}

	p12, err := i.exportPKCS12(certPEM, keyPEM)
	if err != nil {
		return nil, err
	}

	if err := i.st.WriteKey(i.st.ServerKeyPath(), keyPEM); err != nil {
		return nil, err
	}
	if err := i.st.WriteCert(i.st.ServerCertPath(), certPEM); err != nil {
		return nil, err
	}
	if err := i.st.WriteKey(i.st.ServerCombinedPath(), combinedPEM(certPEM, keyPEM)); err != nil {
		return nil, err
	}
	if err := i.st.WriteKey(i.st.ServerP12Path(), p12); err != nil {
		return nil, err
	}

	cert, err := helpers.ParseCertificatePEM(certPEM)
	if err != nil {
		return nil, fault.Engine(err, "failed to parse issued server certificate")
	}

	return &ServerResult{
		CommonName: cert.Subject.CommonName,
		SANs:       hosts,
		CertPath:   i.st.ServerCertPath(),
		P12Path:    i.st.ServerP12Path(),
	}, nil
}

// exportPKCS12 packages a certificate, its private key, and the CA chain
// into a password-less PKCS12 archive.
func (i *Issuer) exportPKCS12(certPEM, keyPEM []byte) ([]byte, error) {
	cert, err := helpers.ParseCertificatePEM(certPEM)
	if err != nil {
		return nil, fault.Engine(err, "failed to parse certificate for PKCS12 export")
	}

	key, err := helpers.ParsePrivateKeyPEM(keyPEM)
	if err != nil {
		return nil, fault.Engine(err, "failed to parse private key for PKCS12 export")
	}

	caCert, _, err := i.caCertificate()
	if err != nil {
		return nil, err
	}

	data, err := pkcs12.Encode(rand.Reader, key, cert, []*x509.Certificate{caCert}, "")
	if err != nil {
		return nil, fault.Engine(err, "failed to encode PKCS12 archive")
	}

	return data, nil
}

// combinedPEM concatenates certificate and key into one PEM document,
// certificate first.
func combinedPEM(certPEM, keyPEM []byte) []byte {
	combined := make([]byte, 0, len(certPEM)+len(keyPEM)+1)
	combined = append(combined, certPEM...)
	if len(certPEM) > 0 && certPEM[len(certPEM)-1] != '\n' {
		combined = append(combined, '\n')
	}
	return append(combined, keyPEM...)
}
