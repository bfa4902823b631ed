package main

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"
)

// captureOutput runs fn with os.Stdout redirected into a pipe and returns
// everything it wrote. The pipe is drained concurrently so commands whose
// output exceeds the pipe buffer do not block.
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	done := make(chan string)
	go func() {
		var sb strings.Builder
		io.Copy(&sb, r)
		done <- sb.String()
	}()

	fnErr := fn()
	w.Close()

	return <-done, fnErr
}

// assertJSON fails the test if output is not a single valid JSON document.
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(output), &v); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains fails the test for each expected string missing from output.
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains fails the test for each unwanted string present in output.
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}
