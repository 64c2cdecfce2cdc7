package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurgeDryRun(t *testing.T) {
	t.Setenv("SQLITE_PATH", t.TempDir()+"/worker.db")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"purge", "--dry-run", "--retention", "48h"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "would purge rows deleted before")
}

func TestMigrateThenPurge(t *testing.T) {
	t.Setenv("SQLITE_PATH", t.TempDir()+"/worker.db")

	root := newRootCmd()
	root.SetArgs([]string{"migrate"})
	require.NoError(t, root.Execute())

	var out bytes.Buffer
	root = newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"purge"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "purged 0 tasks and 0 projects\n", out.String())
}

func TestUnknownCommand(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"analyze"})
	root.SetErr(&bytes.Buffer{})
	assert.Error(t, root.Execute())
}
