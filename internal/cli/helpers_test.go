package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

const sampleDocument = "1. Capital of France?\na) London\n*b) Paris\nc) Berlin\n2. Explain gravity.\nAnswer: A force that attracts masses.\n"

const sampleConfig = `version: 1
mcq:
  time: 10
  marks: 2
subjective:
  time: 20
  marks: 5
`

// writeFile creates name under dir with body and returns its path.
func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// isolateEnv hides process environment overrides from config loading.
func isolateEnv(t *testing.T, values map[string]string) {
	t.Helper()
	original := envLookup
	envLookup = func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
	t.Cleanup(func() { envLookup = original })
}

// chdir switches the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

// syncBuffer is a bytes.Buffer safe to read while a command writes to it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
