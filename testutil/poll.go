// Package testutil provides helpers shared by the package tests.
package testutil

import (
	"testing"
	"time"
)

// PollUntil retries condition every 10ms and fails the test if it does not
// hold within 5 seconds. Used to wait for records written by the server
// goroutine to land in the log sink.
func PollUntil(t *testing.T, msg string, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", msg)
}
