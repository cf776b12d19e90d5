package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootWithoutSubcommandPrintsHelp(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Available Commands")
	assert.Contains(t, out.String(), "serve")
}

func TestAddrFlagBelongsToServe(t *testing.T) {
	root := newRootCmd()
	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)

	assert.NotNil(t, serve.Flags().Lookup("addr"))
	assert.Nil(t, root.Flags().Lookup("addr"))
	assert.NotNil(t, root.PersistentFlags().Lookup("database-url"))
	assert.NotNil(t, root.PersistentFlags().Lookup("upload-dir"))
}

func TestRootRejectsServeOnlyFlag(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--addr", ":9090"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag")
}
