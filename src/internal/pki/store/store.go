// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package store

import (
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/fault"
)

// Store file names inside the root directory.
const (
	CAKeyFile          = "ca.key"
	CACertFile         = "ca.crt"
	SerialFile         = "ca.srl"
	ServerKeyFile      = "server.key"
	ServerCertFile     = "server.crt"
	ServerCombinedFile = "server-combined.pem"
	ServerP12File      = "server.p12"
	ClientsDirName     = "clients"
	IndexFile          = "index.yaml"
)

// Store owns the on-disk certificate store layout:
//
//	<root>/ca.key, ca.crt, ca.srl
//	<root>/server.key, server.crt, server-combined.pem, server.p12
//	<root>/clients/<sanitized>.tar.gz
//	<root>/clients/index.yaml
//
// The serial counter and client index updates are serialized with an
// in-process mutex so concurrent signings (MCP server mode) cannot corrupt
// them. Cross-process locking is not provided; the CLI is single-process.
type Store struct {
	root string

	mu sync.Mutex
}

// New creates a Store rooted at dir. No filesystem access happens until an
// operation needs it.
func New(dir string) *Store {
	return &Store{root: dir}
}

// Root returns the store root directory.
func (s *Store) Root() string { return s.root }

// CAKeyPath returns the path of the CA private key.
func (s *Store) CAKeyPath() string { return filepath.Join(s.root, CAKeyFile) }

// CACertPath returns the path of the CA certificate.
func (s *Store) CACertPath() string { return filepath.Join(s.root, CACertFile) }

// SerialPath returns the path of the persisted serial counter.
func (s *Store) SerialPath() string { return filepath.Join(s.root, SerialFile) }

// ServerKeyPath returns the path of the server private key.
func (s *Store) ServerKeyPath() string { return filepath.Join(s.root, ServerKeyFile) }

// ServerCertPath returns the path of the server certificate.
func (s *Store) ServerCertPath() string { return filepath.Join(s.root, ServerCertFile) }

// ServerCombinedPath returns the path of the server combined cert+key PEM.
func (s *Store) ServerCombinedPath() string { return filepath.Join(s.root, ServerCombinedFile) }

// ServerP12Path returns the path of the server PKCS12 archive.
func (s *Store) ServerP12Path() string { return filepath.Join(s.root, ServerP12File) }

// ClientsDir returns the directory holding client bundle archives.
func (s *Store) ClientsDir() string { return filepath.Join(s.root, ClientsDirName) }

// BundlePath returns the archive path for a sanitized client name.
func (s *Store) BundlePath(sanitized string) string {
	return filepath.Join(s.ClientsDir(), sanitized+".tar.gz")
}

// IndexPath returns the path of the client index file.
func (s *Store) IndexPath() string { return filepath.Join(s.ClientsDir(), IndexFile) }

// HasCA reports whether both the CA key and certificate are present.
func (s *Store) HasCA() bool {
	if _, err := os.Stat(s.CAKeyPath()); err != nil {
		return false
	}
	if _, err := os.Stat(s.CACertPath()); err != nil {
		return false
	}
	return true
}

// HasServer reports whether both the server key and certificate are present.
func (s *Store) HasServer() bool {
	if _, err := os.Stat(s.ServerKeyPath()); err != nil {
		return false
	}
	if _, err := os.Stat(s.ServerCertPath()); err != nil {
		return false
	}
	return true
}

// EnsureDirs creates the store root and clients directory if absent.
func (s *Store) EnsureDirs() error {
	if err := os.MkdirAll(s.ClientsDir(), 0755); err != nil {
		return fault.StoreIO(err, "failed to create store directory %s", s.root)
	}
	return nil
}

// WriteKey writes private key material with owner-only permissions.
func (s *Store) WriteKey(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fault.StoreIO(err, "failed to write key %s", path)
	}
	return nil
}

// WriteCert writes certificate material world-readable.
func (s *Store) WriteCert(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fault.StoreIO(err, "failed to write certificate %s", path)
	}
	return nil
}

// InitSerial resets the persisted serial counter. Called at CA issuance; the
// CA's own self-signed certificate does not consume a counter value.
func (s *Store) InitSerial() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.SerialPath(), []byte("1\n"), 0644); err != nil {
		return fault.StoreIO(err, "failed to initialize serial counter %s", s.SerialPath())
	}
	return nil
}

// NextSerial returns the next serial number and persists the incremented
// counter. Serials are monotonic for the lifetime of one CA.
func (s *Store) NextSerial() (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.SerialPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fault.Prerequisite(
				"generate a CA first with 'issue ca'",
				"serial counter missing at %s", s.SerialPath())
		}
		return nil, fault.StoreIO(err, "failed to read serial counter %s", s.SerialPath())
	}

	serial, ok := new(big.Int).SetString(strings.TrimSpace(string(data)), 10)
	if !ok {
		return nil, fault.StoreIO(nil, "corrupt serial counter %s", s.SerialPath())
	}

	next := new(big.Int).Add(serial, big.NewInt(1))
	if err := os.WriteFile(s.SerialPath(), []byte(next.String()+"\n"), 0644); err != nil {
		return nil, fault.StoreIO(err, "failed to persist serial counter %s", s.SerialPath())
	}

	return serial, nil
}

// Bundles returns the sanitized names of all client bundle archives, sorted.
func (s *Store) Bundles() ([]string, error) {
	entries, err := os.ReadDir(s.ClientsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fault.StoreIO(err, "failed to read clients directory %s", s.ClientsDir())
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name, ok := strings.CutSuffix(entry.Name(), ".tar.gz"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	return names, nil
}

// Clean irreversibly removes the entire store: CA, server identity, and all
// client bundles. Callers gate this behind explicit operator consent.
func (s *Store) Clean() error {
	if err := os.RemoveAll(s.root); err != nil {
		return fault.StoreIO(err, "failed to remove store %s", s.root)
	}
	return nil
}
