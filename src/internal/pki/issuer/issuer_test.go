// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package issuer_test

import (
	"crypto/x509"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/cloudflare/cfssl/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pkcs12 "software.sslmate.com/src/go-pkcs12"

	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/bundle"
	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/fault"
	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/issuer"
	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/pkiconf"
	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/store"
)

func newIssuer(t *testing.T) (*issuer.Issuer, *store.Store, *pkiconf.Config) {
	t.Helper()

	cfg, err := pkiconf.Load("")
	require.NoError(t, err)
	cfg.StoreDir = filepath.Join(t.TempDir(), "certs")
	// Short-lived test hierarchy, same relative ordering as production.
	cfg.CA.ValidityDays = 30
	cfg.Server.ValidityDays = 14
	cfg.Client.ValidityDays = 7

	st := store.New(cfg.StoreDir)
	return issuer.New(cfg, st), st, cfg
}

func issueCA(t *testing.T, i *issuer.Issuer) *issuer.CAResult {
	t.Helper()
	result, err := i.IssueCA("ca.example.com", 0)
	require.NoError(t, err)
	return result
}

func loadCert(t *testing.T, path string) *x509.Certificate {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	cert, err := helpers.ParseCertificatePEM(data)
	require.NoError(t, err)
	return cert
}

func chainVerifies(t *testing.T, cert, ca *x509.Certificate) bool {
	t.Helper()
	roots := x509.NewCertPool()
	roots.AddCert(ca)
	_, err := cert.Verify(x509.VerifyOptions{
		Roots:     roots,
		KeyUsages: []x509.ExtKeyUsage{x509.ExtKeyUsageAny},
	})
	return err == nil
}

func TestIssueCA(t *testing.T) {
	i, st, _ := newIssuer(t)

	result := issueCA(t, i)
	assert.Equal(t, "ca.example.com", result.CommonName)
	assert.False(t, result.ReplacedExisting)

	require.True(t, st.HasCA())
	ca := loadCert(t, st.CACertPath())
	assert.Equal(t, "ca.example.com", ca.Subject.CommonName)
	assert.Equal(t, ca.Subject.CommonName, ca.Issuer.CommonName, "CA is self-signed")
	assert.True(t, ca.IsCA)

	// The serial counter is initialized alongside the CA.
	serial, err := st.NextSerial()
	require.NoError(t, err)
	assert.Equal(t, 0, serial.Cmp(big.NewInt(1)))
}

func TestIssueCA_ReplacementFlags(t *testing.T) {
	i, _, _ := newIssuer(t)

	issueCA(t, i)
	_, err := i.IssueServer(nil)
	require.NoError(t, err)

	result := issueCA(t, i)
	assert.True(t, result.ReplacedExisting)
	assert.True(t, result.OrphanedServer)
}

func TestIssueCA_MustOutliveServer(t *testing.T) {
	i, _, cfg := newIssuer(t)

	_, err := i.IssueCA("short-ca", cfg.Server.ValidityDays)
	assert.ErrorIs(t, err, fault.ErrInvalidInput)
}

func TestIssueServer_RequiresCA(t *testing.T) {
	i, _, _ := newIssuer(t)

	_, err := i.IssueServer(nil)
	assert.ErrorIs(t, err, fault.ErrPrerequisiteMissing)
	assert.NotEmpty(t, fault.Remediation(err))
}

func TestIssueServer(t *testing.T) {
	i, st, _ := newIssuer(t)
	issueCA(t, i)

	result, err := i.IssueServer([]string{"DNS:localhost", "IP:127.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"localhost", "127.0.0.1"}, result.SANs)

	cert := loadCert(t, st.ServerCertPath())

	// SANs must appear in the final certificate's extensions, not only in
	// the request.
	assert.Equal(t, []string{"localhost"}, cert.DNSNames)
	require.Len(t, cert.IPAddresses, 1)
	assert.True(t, cert.IPAddresses[0].Equal(net.ParseIP("127.0.0.1")))

	ca := loadCert(t, st.CACertPath())
	assert.True(t, chainVerifies(t, cert, ca))

	// Combined PEM carries certificate then key.
	combined, err := os.ReadFile(st.ServerCombinedPath())
	require.NoError(t, err)
	assert.Contains(t, string(combined), "CERTIFICATE")
	assert.Contains(t, string(combined), "PRIVATE KEY")

	// Password-less PKCS12 round-trips with the CA in the chain.
	p12, err := os.ReadFile(st.ServerP12Path())
	require.NoError(t, err)
	_, p12Cert, caCerts, err := pkcs12.DecodeChain(p12, "")
	require.NoError(t, err)
	assert.Equal(t, cert.Subject.CommonName, p12Cert.Subject.CommonName)
	require.Len(t, caCerts, 1)
	assert.Equal(t, ca.Subject.CommonName, caCerts[0].Subject.CommonName)
}

func TestIssueServer_InvalidSAN(t *testing.T) {
	i, _, _ := newIssuer(t)
	issueCA(t, i)

	_, err := i.IssueServer([]string{"IP:not-an-ip"})
	assert.ErrorIs(t, err, fault.ErrInvalidInput)
}

func TestSerials_MonotonicAcrossIdentities(t *testing.T) {
	i, st, _ := newIssuer(t)
	issueCA(t, i)

	_, err := i.IssueServer(nil)
	require.NoError(t, err)
	server := loadCert(t, st.ServerCertPath())
	assert.Equal(t, 0, server.SerialNumber.Cmp(big.NewInt(1)))

	client, err := i.IssueClient("node1.example.com")
	require.NoError(t, err)
	leaf := extractLeaf(t, client.BundlePath)
	assert.Equal(t, 0, leaf.SerialNumber.Cmp(big.NewInt(2)))
}

func TestIssueClient_Preconditions(t *testing.T) {
	i, _, _ := newIssuer(t)

	_, err := i.IssueClient("   ")
	assert.ErrorIs(t, err, fault.ErrInvalidInput)

	_, err = i.IssueClient("node1.example.com")
	assert.ErrorIs(t, err, fault.ErrPrerequisiteMissing)
}

func TestIssueClient(t *testing.T) {
	i, st, cfg := newIssuer(t)
	issueCA(t, i)

	result, err := i.IssueClient("node1.example.com")
	require.NoError(t, err)
	assert.Equal(t, "node1.example.com", result.CommonName)
	assert.Equal(t, "node1.example.com", result.Sanitized)
	assert.Equal(t, st.BundlePath("node1.example.com"), result.BundlePath)

	leaf := extractLeaf(t, result.BundlePath)
	assert.Equal(t, "node1.example.com", leaf.Subject.CommonName)

	// SAN is fixed to a single DNS entry equal to the CN.
	assert.Equal(t, []string{"node1.example.com"}, leaf.DNSNames)

	ca := loadCert(t, st.CACertPath())
	assert.True(t, chainVerifies(t, leaf, ca))

	// Client lifetime honors the rotation policy relative to the server.
	_, err = i.IssueServer(nil)
	require.NoError(t, err)
	serverCert := loadCert(t, st.ServerCertPath())
	assert.True(t, leaf.NotAfter.Before(serverCert.NotAfter),
		"client (%d days) must expire before server (%d days)",
		cfg.Client.ValidityDays, cfg.Server.ValidityDays)
}

func TestIssueClient_ReissueReplacesBundle(t *testing.T) {
	i, st, _ := newIssuer(t)
	issueCA(t, i)

	first, err := i.IssueClient("node1.example.com")
	require.NoError(t, err)
	firstLeaf := extractLeaf(t, first.BundlePath)

	second, err := i.IssueClient("node1.example.com")
	require.NoError(t, err)
	secondLeaf := extractLeaf(t, second.BundlePath)

	// Same archive path, replaced contents, still chain-valid: no
	// dual-valid-bundle accumulation.
	assert.Equal(t, first.BundlePath, second.BundlePath)
	assert.NotEqual(t, firstLeaf.SerialNumber, secondLeaf.SerialNumber)

	bundles, err := st.Bundles()
	require.NoError(t, err)
	assert.Equal(t, []string{"node1.example.com"}, bundles)

	ca := loadCert(t, st.CACertPath())
	assert.True(t, chainVerifies(t, secondLeaf, ca))
}

func TestIssueClient_SanitizedCollisionFlagged(t *testing.T) {
	i, _, _ := newIssuer(t)
	issueCA(t, i)

	_, err := i.IssueClient("node?1.example.com")
	require.NoError(t, err)

	_, err = i.IssueClient("node!1.example.com")
	assert.ErrorIs(t, err, fault.ErrInvalidInput)
}

func TestReissueCA_InvalidatesPriorIdentities(t *testing.T) {
	i, st, _ := newIssuer(t)
	issueCA(t, i)

	client, err := i.IssueClient("node1.example.com")
	require.NoError(t, err)
	oldLeaf := extractLeaf(t, client.BundlePath)
	oldCA := loadCert(t, st.CACertPath())
	require.True(t, chainVerifies(t, oldLeaf, oldCA))

	issueCA(t, i)
	newCA := loadCert(t, st.CACertPath())

	// No silent cross-validity after the trust root rolls.
	assert.False(t, chainVerifies(t, oldLeaf, newCA))
}

func TestIssueAllClients(t *testing.T) {
	i, _, _ := newIssuer(t)
	issueCA(t, i)

	// One valid entry, one comment, one blank line.
	manifestPath := filepath.Join(t.TempDir(), "clients.txt")
	content := "node1.example.com\n# disabled: node2\n\n"
	require.NoError(t, os.WriteFile(manifestPath, []byte(content), 0644))

	result, err := i.IssueAllClients(manifestPath)
	require.NoError(t, err)
	assert.True(t, result.OK())
	require.Len(t, result.Issued, 1)
	assert.Equal(t, "node1.example.com", result.Issued[0].CommonName)
}

func TestIssueAllClients_BestEffort(t *testing.T) {
	i, _, _ := newIssuer(t)
	issueCA(t, i)

	// The second entry collides with the first on the sanitized name and
	// must fail without stopping the batch; the third still issues.
	manifestPath := filepath.Join(t.TempDir(), "clients.txt")
	content := "node?1.example.com\nnode!1.example.com\nnode3.example.com\n"
	require.NoError(t, os.WriteFile(manifestPath, []byte(content), 0644))

	result, err := i.IssueAllClients(manifestPath)
	require.NoError(t, err)
	assert.False(t, result.OK())

	require.Len(t, result.Issued, 2)
	assert.Equal(t, "node?1.example.com", result.Issued[0].CommonName)
	assert.Equal(t, "node3.example.com", result.Issued[1].CommonName)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "node!1.example.com", result.Failures[0].CommonName)
	assert.ErrorIs(t, result.Failures[0].Err, fault.ErrInvalidInput)
}

func TestIssueAllClients_MissingManifest(t *testing.T) {
	i, _, _ := newIssuer(t)
	issueCA(t, i)

	_, err := i.IssueAllClients(filepath.Join(t.TempDir(), "absent.txt"))
	assert.ErrorIs(t, err, fault.ErrPrerequisiteMissing)
}

// extractLeaf unpacks a bundle and returns its end-entity certificate.
func extractLeaf(t *testing.T, archivePath string) *x509.Certificate {
	t.Helper()

	destDir := t.TempDir()
	paths, err := bundle.Extract(archivePath, destDir)
	require.NoError(t, err)

	for _, p := range paths {
		if filepath.Base(p) == "ca.crt" || filepath.Ext(p) != ".crt" {
			continue
		}
		return loadCert(t, p)
	}

	t.Fatalf("no leaf certificate in %s", archivePath)
	return nil
}
