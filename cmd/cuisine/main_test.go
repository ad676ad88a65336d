package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteOutput(t *testing.T) {
	data := []byte{0x05, 0x00, 0x00, 0x00, 0x00}

	for _, path := range []string{"", "-"} {
		var stdout bytes.Buffer
		require.NoError(t, writeOutput(path, data, &stdout))
		assert.Equal(t, data, stdout.Bytes(), "path %q", path)
	}

	var stdout bytes.Buffer
	file := filepath.Join(t.TempDir(), "dish.bson")
	require.NoError(t, writeOutput(file, data, &stdout))
	assert.Empty(t, stdout.Bytes())

	got, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestSplitArgs(t *testing.T) {
	assert.Equal(t, []string{"beef:diced", "carrot"}, splitArgs(" beef:diced, ,carrot,"))
	assert.Nil(t, splitArgs(""))
}
