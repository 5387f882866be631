// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package bundle

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/fault"
)

// Identity carries the artifacts of one issued client identity, ready for
// packaging. All fields are in-memory; the bundle stages them in a scoped
// temporary workspace during assembly.
type Identity struct {
	CommonName string
	KeyPEM     []byte
	CertPEM    []byte
	CACertPEM  []byte
	PKCS12     []byte
	NotAfter   time.Time
}

// Build assembles a client credential bundle archive at archivePath.
//
// The archive contains, named by the sanitized identifier:
//
//	<name>.key, <name>.crt, <name>-combined.pem, <name>.p12, ca.crt, README.txt
//
// Assembly stages the files in a temporary workspace that is removed on every
// exit path, success or failure. A pre-existing archive for the same name is
// overwritten; superseded bundles are replaced, never merged.
func Build(archivePath string, id Identity) (err error) {
	sanitized := Sanitize(id.CommonName)

	workDir, err := os.MkdirTemp("", "tunnel-pki-bundle-*")
	if err != nil {
		return fault.StoreIO(err, "failed to create bundle workspace")
	}
	defer os.RemoveAll(workDir)

	readme, err := renderReadme(id.CommonName, sanitized, id.NotAfter)
	if err != nil {
		return fault.StoreIO(err, "failed to generate bundle instructions for %s", id.CommonName)
	}

	combined := combinePEM(id.CertPEM, id.KeyPEM)

	members := []struct {
		name string
		data []byte
		mode int64
	}{
		{sanitized + ".key", id.KeyPEM, 0600},
		{sanitized + ".crt", id.CertPEM, 0644},
		{sanitized + "-combined.pem", combined, 0600},
		{sanitized + ".p12", id.PKCS12, 0600},
		{"ca.crt", id.CACertPEM, 0644},
		{"README.txt", readme, 0644},
	}

	for _, m := range members {
		if err := os.WriteFile(filepath.Join(workDir, m.name), m.data, os.FileMode(m.mode)); err != nil {
			return fault.StoreIO(err, "failed to stage %s for %s", m.name, id.CommonName)
		}
	}

	out, err := os.Create(archivePath)
	if err != nil {
		return fault.StoreIO(err, "failed to create bundle archive %s", archivePath)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fault.StoreIO(cerr, "failed to finalize bundle archive %s", archivePath)
		}
	}()

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	now := time.Now()
	for _, m := range members {
		hdr := &tar.Header{
			Name:    m.name,
			Mode:    m.mode,
			Size:    int64(len(m.data)),
			ModTime: now,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return fault.StoreIO(err, "failed to write archive header for %s", m.name)
		}
		if err := copyMember(tw, filepath.Join(workDir, m.name)); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return fault.StoreIO(err, "failed to close bundle archive %s", archivePath)
	}
	if err := gz.Close(); err != nil {
		return fault.StoreIO(err, "failed to compress bundle archive %s", archivePath)
	}

	return nil
}

// copyMember streams one staged file into the tar writer through a pooled
// buffer, so batch issuance of many bundles reuses memory.
func copyMember(tw *tar.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fault.StoreIO(err, "failed to open staged file %s", path)
	}
	defer f.Close()

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	if _, err := buf.ReadFrom(f); err != nil {
		return fault.StoreIO(err, "failed to read staged file %s", path)
	}
	if _, err := tw.Write(buf.Bytes()); err != nil {
		return fault.StoreIO(err, "failed to archive %s", path)
	}

	return nil
}

// combinePEM concatenates certificate and key PEM into one document,
// certificate first, with a single separating newline guaranteed.
func combinePEM(certPEM, keyPEM []byte) []byte {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	buf.Write(certPEM)
	if len(certPEM) > 0 && certPEM[len(certPEM)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.Write(keyPEM)

	out := make([]byte, len(buf.Bytes()))
	copy(out, buf.Bytes())
	return out
}

// Extract unpacks a bundle archive into destDir and returns the extracted
// file paths. Entry names are confined to destDir; anything traversing
// outside it is rejected.
func Extract(archivePath, destDir string) ([]string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, fault.StoreIO(err, "failed to open bundle archive %s", archivePath)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fault.StoreIO(err, "failed to decompress bundle archive %s", archivePath)
	}
	defer gz.Close()

	var paths []string
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fault.StoreIO(err, "failed to read bundle archive %s", archivePath)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		name := filepath.Clean(hdr.Name)
		if strings.HasPrefix(name, "..") || filepath.IsAbs(name) {
			return nil, fault.StoreIO(nil, "bundle archive %s contains unsafe entry %q", archivePath, hdr.Name)
		}

		dest := filepath.Join(destDir, name)
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return nil, fault.StoreIO(err, "failed to create extraction directory for %s", name)
		}

		out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(hdr.Mode&0777))
		if err != nil {
			return nil, fault.StoreIO(err, "failed to extract %s", name)
		}
		if _, err := io.Copy(out, tr); err != nil {
			out.Close()
			return nil, fault.StoreIO(err, "failed to extract %s", name)
		}
		if err := out.Close(); err != nil {
			return nil, fault.StoreIO(err, "failed to extract %s", name)
		}

		paths = append(paths, dest)
	}

	return paths, nil
}
