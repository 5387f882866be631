// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package verify

import (
	"crypto/x509"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudflare/cfssl/helpers"

	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/bundle"
	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/fault"
	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/store"
	x509certs "github.com/H0llyW00dzZ/tunnel-pki/src/internal/x509/certs"
)

// Check is one verification outcome in a report.
type Check struct {
	Name   string
	OK     bool
	Detail string
}

// Report aggregates every check attempted against a store. An invalid
// certificate is a reported outcome, never a raised error, so one report
// always covers all checks even over an empty store.
type Report struct {
	Checks         []Check
	ClientsValid   int
	ClientsInvalid int
}

// OK reports whether every check passed.
func (r *Report) OK() bool {
	for _, c := range r.Checks {
		if !c.OK {
			return false
		}
	}
	return true
}

func (r *Report) add(name string, ok bool, format string, v ...any) {
	r.Checks = append(r.Checks, Check{Name: name, OK: ok, Detail: fmt.Sprintf(format, v...)})
}

// Run verifies the entire store read-only: CA material, server identity and
// its chain, and every client bundle found on disk. A missing CA fails the
// dependent checks rather than aborting, so the report stays complete.
//
// The returned error covers only the inability to enumerate the store at
// all; everything else is a reported outcome.
func Run(st *store.Store) (*Report, error) {
	report := &Report{}

	caCert := checkCA(st, report)
	checkServer(st, report, caCert)
	if err := checkClients(st, report, caCert); err != nil {
		return nil, err
	}

	return report, nil
}

// checkCA verifies CA key and certificate presence and readability, and
// reports the subject, issuer, and validity window. Returns the parsed CA
// certificate, or nil when any part is missing or unreadable.
func checkCA(st *store.Store, report *Report) *x509.Certificate {
	keyPEM, err := os.ReadFile(st.CAKeyPath())
	if err != nil {
		report.add("CA key", false, "missing or unreadable: %s", st.CAKeyPath())
	} else if _, err := helpers.ParsePrivateKeyPEM(keyPEM); err != nil {
		report.add("CA key", false, "unparsable: %v", err)
	} else {
		report.add("CA key", true, "%s", st.CAKeyPath())
	}

	certPEM, err := os.ReadFile(st.CACertPath())
	if err != nil {
		report.add("CA certificate", false, "missing or unreadable: %s", st.CACertPath())
		return nil
	}

	caCert, err := helpers.ParseCertificatePEM(certPEM)
	if err != nil {
		report.add("CA certificate", false, "unparsable: %v", err)
		return nil
	}

	report.add("CA certificate", true, "subject=%s issuer=%s valid %s to %s",
		caCert.Subject.CommonName, caCert.Issuer.CommonName,
		caCert.NotBefore.Format("2006-01-02"), caCert.NotAfter.Format("2006-01-02"))

	return caCert
}

// checkServer verifies the server identity's presence, reports its subject,
// validity, and SANs, and chain-verifies it against the CA.
func checkServer(st *store.Store, report *Report, caCert *x509.Certificate) {
	certPEM, err := os.ReadFile(st.ServerCertPath())
	if err != nil {
		report.add("server certificate", false, "missing or unreadable: %s", st.ServerCertPath())
		return
	}

	cert, err := helpers.ParseCertificatePEM(certPEM)
	if err != nil {
		report.add("server certificate", false, "unparsable: %v", err)
		return
	}

	report.add("server certificate", true, "subject=%s valid %s to %s SANs=%s",
		cert.Subject.CommonName,
		cert.NotBefore.Format("2006-01-02"), cert.NotAfter.Format("2006-01-02"),
		strings.Join(sanStrings(cert), ","))

	if caCert == nil {
		report.add("server chain", false, "no CA certificate to verify against")
		return
	}
	if err := chainVerify(cert, caCert); err != nil {
		report.add("server chain", false, "%v", err)
		return
	}
	report.add("server chain", true, "verifies against %s", caCert.Subject.CommonName)
}

// checkClients extracts each client bundle into an ephemeral workspace,
// locates the end-entity certificate inside it, and chain-verifies it.
func checkClients(st *store.Store, report *Report, caCert *x509.Certificate) error {
	names, err := st.Bundles()
	if err != nil {
		return err
	}

	for _, name := range names {
		ok, detail := checkBundle(st.BundlePath(name), caCert)
		report.add("client "+name, ok, "%s", detail)
		if ok {
			report.ClientsValid++
		} else {
			report.ClientsInvalid++
		}
	}

	if len(names) == 0 {
		// A store without a CA has nothing valid in it; a healthy store
		// may simply have no clients issued yet.
		report.add("client bundles", caCert != nil, "none found in %s", st.ClientsDir())
	}

	return nil
}

// checkBundle verifies a single bundle archive. The extraction workspace is
// removed on every exit path.
func checkBundle(archivePath string, caCert *x509.Certificate) (bool, string) {
	workDir, err := os.MkdirTemp("", "tunnel-pki-verify-*")
	if err != nil {
		return false, fault.StoreIO(err, "failed to create verification workspace").Error()
	}
	defer os.RemoveAll(workDir)

	paths, err := bundle.Extract(archivePath, workDir)
	if err != nil {
		return false, err.Error()
	}

	leaf, err := findBundleLeaf(paths)
	if err != nil {
		return false, err.Error()
	}

	if caCert == nil {
		return false, "no CA certificate to verify against"
	}
	if err := chainVerify(leaf, caCert); err != nil {
		return false, err.Error()
	}

	return true, fmt.Sprintf("subject=%s valid to %s",
		leaf.Subject.CommonName, leaf.NotAfter.Format("2006-01-02"))
}

// findBundleLeaf locates the end-entity certificate among extracted bundle
// files, skipping the CA copy, keys, and other members.
func findBundleLeaf(paths []string) (*x509.Certificate, error) {
	decoder := x509certs.New()

	for _, path := range paths {
		if filepath.Base(path) == store.CACertFile || !strings.HasSuffix(path, ".crt") {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fault.StoreIO(err, "failed to read extracted certificate %s", path)
		}

		certs, err := decoder.DecodeMultiple(data)
		if err != nil {
			continue
		}
		if leaf, err := decoder.FindLeaf(certs); err == nil {
			return leaf, nil
		}
	}

	return nil, fmt.Errorf("no end-entity certificate found in bundle")
}

// chainVerify confirms cert was signed by caCert and is otherwise valid
// (dates, extensions) using standard chain validation.
func chainVerify(cert, caCert *x509.Certificate) error {
	roots := x509.NewCertPool()
	roots.AddCert(caCert)

	_, err := cert.Verify(x509.VerifyOptions{
		Roots:     roots,
		KeyUsages: []x509.ExtKeyUsage{x509.ExtKeyUsageAny},
	})
	return err
}

// sanStrings flattens a certificate's subject alternative names.
func sanStrings(cert *x509.Certificate) []string {
	var sans []string
	for _, dns := range cert.DNSNames {
		sans = append(sans, "DNS:"+dns)
	}
	for _, ip := range cert.IPAddresses {
		sans = append(sans, "IP:"+ip.String())
	}
	for _, email := range cert.EmailAddresses {
		sans = append(sans, "EMAIL:"+email)
	}
	for _, uri := range cert.URIs {
		sans = append(sans, "URI:"+uri.String())
	}
	return sans
}
