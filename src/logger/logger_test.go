// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/H0llyW00dzZ/tunnel-pki/src/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLILogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewCLILogger()
	log.SetOutput(&buf)

	log.Printf("issued %d bundle(s)", 3)
	log.Println("done")

	out := buf.String()
	assert.Contains(t, out, "issued 3 bundle(s)")
	assert.Contains(t, out, "done")
}

func TestMCPLogger_Silent(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewMCPLogger(&buf, true)

	log.Printf("should not appear")
	log.Println("should not appear either")
	log.Errorf("nor this")

	assert.Empty(t, buf.String(), "silent MCP logger must not write")
}

func TestMCPLogger_StructuredOutput(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewMCPLogger(&buf, false)

	log.Printf("issuing client %s", "node1.example.com")
	log.Errorf("store unreadable")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "issuing client node1.example.com", entry["message"])

	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	assert.Equal(t, "error", entry["level"])
}

func TestMCPLogger_NilWriter(t *testing.T) {
	log := logger.NewMCPLogger(nil, false)

	// Must not panic when the writer is nil (falls back to io.Discard).
	log.Println("discarded")
	log.SetOutput(nil)
	log.Println("still discarded")
}

func TestMCPLogger_ConcurrentUse(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewMCPLogger(&buf, false)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Printf("entry")
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 16)
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
	}
}
