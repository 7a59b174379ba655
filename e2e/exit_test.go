//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApplicationExit(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	err := tf.StartApp()
	require.NoError(t, err, "Failed to start app")

	// Wait for TUI to initialize and render
	require.True(t, tf.Ready(), "Should show the title")
	require.True(t, tf.SeePlain("Tip: paste a full URL"), "Should show the hint")

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	// The omnibox has focus, so leave it before pressing 'q'
	require.NoError(t, tf.SendKeys(KeyTab))
	t.Logf("Sending 'q' to quit application...")
	require.NoError(t, tf.Quit())

	select {
	case exitErr := <-done:
		require.NoError(t, exitErr, "Process should exit cleanly")
	case <-time.After(2 * time.Second):
		tf.DumpTailOnFail(t, "exit-failure", 4096)
		t.Fatal("app did not exit after quit")
	}
}

func TestApplicationExitWithCtrlC(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	err := tf.StartApp()
	require.NoError(t, err, "Failed to start app")
	require.True(t, tf.Ready(), "Should show the title")

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	// ctrl+c quits from any mode, including the focused omnibox
	require.NoError(t, tf.SendCtrlC())

	select {
	case <-done:
		t.Logf("Process exited with Ctrl+C")
	case <-time.After(2 * time.Second):
		tf.DumpTailOnFail(t, "ctrlc-failure", 4096)
		t.Fatal("app did not exit after ctrl+c")
	}
}
