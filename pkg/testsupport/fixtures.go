package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-zwavegen/pkg/registry"
)

// LoadRecord reads a registry record fixture. Testing helpers fail the test
// on error to keep table tests concise.
func LoadRecord(t *testing.T, path string) registry.Record {
	t.Helper()

	record, err := LoadRecordFromPath(path)
	if err != nil {
		t.Fatalf("load record: %v", err)
	}
	return record
}

// LoadRecordFromPath returns a Record without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadRecordFromPath(path string) (registry.Record, error) {
	if path == "" {
		return registry.Record{}, errors.New("testsupport: record path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return registry.Record{}, fmt.Errorf("testsupport: read record: %w", err)
	}
	var record registry.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return registry.Record{}, fmt.Errorf("testsupport: unmarshal record: %w", err)
	}
	return record, nil
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// CompareJSON marshals got and compares it structurally against the JSON in
// want, so formatting and key order never cause a diff.
func CompareJSON(t *testing.T, want []byte, got any) string {
	t.Helper()

	payload, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal value: %v", err)
	}
	return cmp.Diff(MustDecodeJSON(t, want), MustDecodeJSON(t, payload))
}

// MustDecodeJSON decodes data into generic JSON values, keeping numbers as
// json.Number.
func MustDecodeJSON(t *testing.T, data []byte) any {
	t.Helper()

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	return out
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

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
