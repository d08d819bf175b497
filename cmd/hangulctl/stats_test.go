package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Z4rru/hangulmastery/internal/testutil"
)

func TestRenderStats(t *testing.T) {
	_, repo, _ := testutil.SetupSeededDB(t)

	stats, err := repo.GetStatistics()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderStats(&buf, stats))

	out := buf.String()
	assert.Contains(t, out, "=== Content ===")
	assert.Contains(t, out, "120")
	assert.Contains(t, out, "greetings")
	assert.Contains(t, out, "0%")
}
