// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package gc_test

import (
	"strings"
	"testing"

	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/helper/gc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPool_GetPut(t *testing.T) {
	buf := gc.Default.Get()
	require.NotNil(t, buf)

	n, err := buf.WriteString("-----BEGIN CERTIFICATE-----")
	require.NoError(t, err)
	assert.Equal(t, 27, n)

	require.NoError(t, buf.WriteByte('\n'))
	assert.Equal(t, "-----BEGIN CERTIFICATE-----\n", string(buf.Bytes()))

	buf.Reset()
	assert.Empty(t, buf.Bytes())

	gc.Default.Put(buf)
}

func TestDefaultPool_ReadFrom(t *testing.T) {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	n, err := buf.ReadFrom(strings.NewReader("key material"))
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
	assert.Equal(t, "key material", string(buf.Bytes()))
}

func TestDefaultPool_Reuse(t *testing.T) {
	// A buffer returned to the pool must come back clean for the next user.
	buf := gc.Default.Get()
	buf.WriteString("stale private key bytes")
	buf.Reset()
	gc.Default.Put(buf)

	next := gc.Default.Get()
	defer gc.Default.Put(next)
	assert.Empty(t, next.Bytes())
}
