package cache

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileCache_SetGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	value := []byte(`{"nodes": []}`)
	if err := c.Set(ctx, "layout:v1:abc", value, time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	got, hit, err := c.Get(ctx, "layout:v1:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("Get should hit after Set")
	}
	if !bytes.Equal(got, value) {
		t.Errorf("Get = %q, want %q", got, value)
	}
}

func TestFileCache_MissOnUnknownKey(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	_, hit, err := c.Get(ctx, "never-set")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("Get should miss for a key that was never set")
	}
}

func TestFileCache_ExpiredEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("Get should miss after the TTL expired")
	}
}

func TestFileCache_ZeroTTLStoresForever(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Error("zero TTL entries should not expire")
	}
}

func TestFileCache_Delete(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	_, hit, _ := c.Get(ctx, "key")
	if hit {
		t.Error("Get should miss after Delete")
	}

	// Deleting a missing key is not an error
	if err := c.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete of missing key should be nil, got %v", err)
	}
}

func TestFileCache_CorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	// Corrupt every entry file on disk
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		return os.WriteFile(path, []byte("not json"), 0644)
	})
	if err != nil {
		t.Fatalf("corrupting entries: %v", err)
	}

	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("corrupt entries should be treated as misses")
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	for _, key := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, key, []byte("value"), time.Hour); err != nil {
			t.Fatalf("Set error: %v", err)
		}
	}

	if err := Clear(dir); err != nil {
		t.Fatalf("Clear error: %v", err)
	}

	for _, key := range []string{"a", "b", "c"} {
		if _, hit, _ := c.Get(ctx, key); hit {
			t.Errorf("Get(%q) should miss after Clear", key)
		}
	}

	// Directory survives so the cache keeps working
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache dir should survive Clear: %v", err)
	}
	if err := c.Set(ctx, "a", []byte("again"), time.Hour); err != nil {
		t.Errorf("Set after Clear error: %v", err)
	}
}

func TestClear_MissingDirIsFine(t *testing.T) {
	if err := Clear(filepath.Join(t.TempDir(), "absent")); err != nil {
		t.Errorf("Clear of missing dir should be nil, got %v", err)
	}
}
