package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fatal errors must reach main so it can log them before exiting; with
// SilenceErrors set, Cobra prints nothing on its own.
func TestExecuteReturnsErrorForUnknownCommand(t *testing.T) {
	rootCmd.SetArgs([]string{"no-such-command"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-command")
}
