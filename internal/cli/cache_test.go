package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDirConfigured(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	content := fmt.Sprintf("[cache]\ndir = %q\n", dir)
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c := New(io.Discard, LogInfo)
	c.ConfigPath = cfgPath

	got, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if got != dir {
		t.Errorf("cacheDir() = %q, want configured %q", got, dir)
	}
}

func TestCacheDirDefault(t *testing.T) {
	c := New(io.Discard, LogInfo)
	// Point at a config file that does not exist so the defaults apply.
	c.ConfigPath = filepath.Join(t.TempDir(), "missing.toml")

	got, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if got == "" {
		t.Fatal("cacheDir() returned empty string")
	}
	if !strings.HasSuffix(got, appName) {
		t.Errorf("cacheDir() = %q, should end with %q", got, appName)
	}
}
