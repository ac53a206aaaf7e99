// Package testsupport holds fixtures shared by the package tests: a recording
// carrier, golden file helpers and template capture.
package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-workflow-view/pkg/view"
)

// Carrier is a minimal handler.Carrier recording every SetResult call.
type Carrier struct {
	mu      sync.Mutex
	vm      *view.ViewModel
	results []*view.ViewModel
}

// NewCarrier returns a Carrier whose outbound view model is vm, or a fresh
// empty one when vm is nil.
func NewCarrier(vm *view.ViewModel) *Carrier {
	if vm == nil {
		vm = view.New(nil, nil)
	}
	return &Carrier{vm: vm}
}

// ViewModel returns the outbound view model.
func (c *Carrier) ViewModel() *view.ViewModel { return c.vm }

// SetResult records the published result.
func (c *Carrier) SetResult(result *view.ViewModel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, result)
}

// Results returns the published results in call order.
func (c *Carrier) Results() []*view.ViewModel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*view.ViewModel(nil), c.results...)
}

// MustLoadVariables reads a JSON object fixture into a variable bag.
func MustLoadVariables(t *testing.T, path string) map[string]any {
	t.Helper()

	vars, err := LoadVariables(path)
	if err != nil {
		t.Fatalf("load variables: %v", err)
	}
	return vars
}

// LoadVariables is MustLoadVariables for callers without a *testing.T.
func LoadVariables(path string) (map[string]any, error) {
	if path == "" {
		return nil, errors.New("testsupport: variables path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read variables: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("testsupport: unmarshal variables: %w", err)
	}
	return out, nil
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput runs a render function that also writes to an
// io.Writer and returns both the result and what was written.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
