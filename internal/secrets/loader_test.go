package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	keyFile := filepath.Join(dir, "key")
	if err := os.WriteFile(keyFile, []byte(" from-file \n"), 0o600); err != nil {
		t.Fatalf("write key: %v", err)
	}
	emptyFile := filepath.Join(dir, "empty")
	if err := os.WriteFile(emptyFile, []byte("\n"), 0o600); err != nil {
		t.Fatalf("write key: %v", err)
	}

	tests := []struct {
		name   string
		src    Source
		expect string
		err    string
	}{
		{name: "inline value", src: Source{Value: " inline "}, expect: "inline"},
		{name: "file wins over value", src: Source{Value: "inline", File: keyFile}, expect: "from-file"},
		{name: "missing", src: Source{Name: "gemini api key"}, err: "gemini api key is not configured"},
		{name: "empty file", src: Source{File: emptyFile}, err: "is empty"},
		{name: "unreadable file", src: Source{File: filepath.Join(dir, "nope")}, err: "reading secret from file"},
		{name: "value wins over env", src: Source{Value: "inline", Env: "ATS_TEST_SECRET_UNSET"}, expect: "inline"},
		{name: "unset env", src: Source{Name: "openai api key", Env: "ATS_TEST_SECRET_UNSET"}, err: "set ATS_TEST_SECRET_UNSET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Load(tt.src)
			if tt.err != "" {
				if err == nil || !strings.Contains(err.Error(), tt.err) {
					t.Fatalf("expected error containing %q, got %v", tt.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ATS_TEST_SECRET", " from-env ")

	got, err := Load(Source{Env: "ATS_TEST_SECRET"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "from-env" {
		t.Fatalf("expected from-env, got %q", got)
	}
}
