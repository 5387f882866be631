// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package issuer_test

import (
	"testing"

	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/fault"
	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/issuer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSANs(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []string
		wantErr bool
	}{
		{
			name:  "openssl style prefixes",
			input: []string{"DNS:localhost", "IP:127.0.0.1"},
			want:  []string{"localhost", "127.0.0.1"},
		},
		{
			name:  "bare names pass through",
			input: []string{"localhost", "tunnel.example.com"},
			want:  []string{"localhost", "tunnel.example.com"},
		},
		{
			name:  "prefixes are case-insensitive",
			input: []string{"dns:node.example.com", "ip:192.0.2.1"},
			want:  []string{"node.example.com", "192.0.2.1"},
		},
		{
			name:  "email and uri entries",
			input: []string{"EMAIL:ops@example.com", "URI:spiffe://cluster/node"},
			want:  []string{"ops@example.com", "spiffe://cluster/node"},
		},
		{
			name:  "bare IPv6 literal is not mistaken for a prefix",
			input: []string{"::1"},
			want:  []string{"::1"},
		},
		{
			name:  "whitespace and empty entries skipped",
			input: []string{" DNS:localhost ", "", "  "},
			want:  []string{"localhost"},
		},
		{
			name:    "malformed IP rejected",
			input:   []string{"IP:999.999.1.1"},
			wantErr: true,
		},
		{
			name:    "empty value rejected",
			input:   []string{"DNS:"},
			wantErr: true,
		},
		{
			name:    "all-empty list rejected",
			input:   []string{"", " "},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := issuer.ParseSANs(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, fault.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSANList(t *testing.T) {
	got, err := issuer.ParseSANList("DNS:localhost,IP:127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, []string{"localhost", "127.0.0.1"}, got)

	_, err = issuer.ParseSANList("")
	assert.ErrorIs(t, err, fault.ErrInvalidInput)
}
