package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemo_Stdin(t *testing.T) {
	cmd := demoCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader("start Mexico | Canada\nscore #1 0 5\nsummary\n"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "#1 started\n1. Mexico 0 - Canada 5\n", out.String())
}

func TestDemo_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "day1.txt")
	require.NoError(t, os.WriteFile(path, []byte("start Spain | Brazil\nstart Germany | France\nsummary\n"), 0o600))

	cmd := demoCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "#1 started\n#2 started\n1. Germany 0 - France 0\n2. Spain 0 - Brazil 0\n", out.String())
}

func TestDemo_ScriptError(t *testing.T) {
	cmd := demoCmd()
	cmd.SetIn(strings.NewReader("start Mexico | Mexico\n"))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}
