// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package bundle

import (
	"fmt"
	"text/template"
	"time"

	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/helper/gc"
)

// readmeTemplate renders the human-readable install instructions shipped in
// every client bundle. Typed template rendering, not string substitution, so
// odd characters in a CN cannot corrupt the document.
var readmeTemplate = template.Must(template.New("readme").Parse(`Client credential bundle for {{.CommonName}}
Generated {{.Generated}} by tunnel-pki.

Files
-----
{{.Name}}.key            Private key. Keep it on the client host only, mode 0600.
{{.Name}}.crt            Client certificate, valid until {{.NotAfter}}.
{{.Name}}-combined.pem   Certificate and key concatenated, for software that
                         expects a single PEM file.
{{.Name}}.p12            PKCS12 archive (no password) bundling key, certificate,
                         and the CA certificate.
ca.crt                   The issuing CA certificate. Install it as the trust
                         root on the client.

Install
-------
1. Copy this bundle to the client host and unpack it:
     tar -xzf {{.Name}}.tar.gz
2. Point the tunnel client at {{.Name}}.crt, {{.Name}}.key, and ca.crt
   (or at {{.Name}}.p12 if it consumes PKCS12).
3. Verify the certificate chains to the CA:
     openssl verify -CAfile ca.crt {{.Name}}.crt
`))

// readmeData feeds readmeTemplate.
type readmeData struct {
	CommonName string
	Name       string
	Generated  string
	NotAfter   string
}

// renderReadme produces the README.txt contents for a client identity.
func renderReadme(cn, sanitized string, notAfter time.Time) ([]byte, error) {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	data := readmeData{
		CommonName: cn,
		Name:       sanitized,
		Generated:  time.Now().UTC().Format(time.RFC3339),
		NotAfter:   notAfter.UTC().Format("2006-01-02"),
	}
	if err := readmeTemplate.Execute(buf, data); err != nil {
		return nil, fmt.Errorf("bundle: failed to render README: %w", err)
	}

	out := make([]byte, len(buf.Bytes()))
	copy(out, buf.Bytes())
	return out, nil
}
