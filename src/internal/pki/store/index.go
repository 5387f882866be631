// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package store

import (
	"os"

	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/fault"
	"gopkg.in/yaml.v3"
)

// Index maps sanitized bundle names to the original common names they were
// issued for. Two distinct CNs can sanitize to the same filesystem name; the
// index is what makes that collision detectable instead of a silent
// overwrite.
type Index map[string]string

// LoadIndex reads the client index. A missing index is an empty one.
func (s *Store) LoadIndex() (Index, error) {
	data, err := os.ReadFile(s.IndexPath())
	if err != nil {
		if os.IsNotExist(err) {
			return Index{}, nil
		}
		return nil, fault.StoreIO(err, "failed to read client index %s", s.IndexPath())
	}

	idx := Index{}
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return nil, fault.StoreIO(err, "corrupt client index %s", s.IndexPath())
	}

	return idx, nil
}

// RecordClient registers sanitized -> cn in the index, refusing to alias an
// existing entry issued for a different common name.
func (s *Store) RecordClient(sanitized, cn string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.LoadIndex()
	if err != nil {
		return err
	}

	if existing, ok := idx[sanitized]; ok && existing != cn {
		return fault.Invalid("bundle name %q already issued for %q; refusing to overwrite it for %q",
			sanitized, existing, cn)
	}

	idx[sanitized] = cn

	data, err := yaml.Marshal(idx)
	if err != nil {
		return fault.StoreIO(err, "failed to encode client index")
	}
	if err := os.WriteFile(s.IndexPath(), data, 0644); err != nil {
		return fault.StoreIO(err, "failed to write client index %s", s.IndexPath())
	}

	return nil
}
