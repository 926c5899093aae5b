package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/flowdag/flowdag/pkg/errors"
	"github.com/flowdag/flowdag/pkg/layout"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
[layout]
slot_width = 240.0
rank_spacing = 160.0
node_width = 180.0
node_height = 56.0

[cache]
backend = "redis"
redis_addr = "cache.internal:6379"

[server]
addr = ":9090"
cache_prefix = "staging:"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Layout.SlotWidth != 240 || cfg.Layout.RankSpacing != 160 {
		t.Errorf("Layout = %+v, want slot_width 240 rank_spacing 160", cfg.Layout)
	}
	if cfg.Cache.Backend != BackendRedis {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, BackendRedis)
	}
	if cfg.Cache.RedisAddr != "cache.internal:6379" {
		t.Errorf("Cache.RedisAddr = %q, want %q", cfg.Cache.RedisAddr, "cache.internal:6379")
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":9090")
	}
	if cfg.Server.CachePrefix != "staging:" {
		t.Errorf("Server.CachePrefix = %q, want %q", cfg.Server.CachePrefix, "staging:")
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "none"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Cache.Backend != BackendNone {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, BackendNone)
	}

	want := Default()
	if cfg.Layout != want.Layout {
		t.Errorf("Layout = %+v, want defaults %+v", cfg.Layout, want.Layout)
	}
	if cfg.Server.Addr != want.Server.Addr {
		t.Errorf("Server.Addr = %q, want default %q", cfg.Server.Addr, want.Server.Addr)
	}
}

func TestLoad_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "malformed toml",
			content: `[layout` + "\n",
		},
		{
			name:    "unknown backend",
			content: "[cache]\nbackend = \"memcached\"\n",
		},
		{
			name:    "negative slot width",
			content: "[layout]\nslot_width = -10.0\n",
		},
		{
			name:    "zero rank spacing",
			content: "[layout]\nrank_spacing = 0.0\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			if code := errors.GetCode(err); code != errors.ErrCodeConfig {
				t.Errorf("GetCode(err) = %q, want %q", code, errors.ErrCodeConfig)
			}
		})
	}
}

func TestDefault_MatchesLayoutDefaults(t *testing.T) {
	cfg := Default()
	want := layout.Options{
		SlotWidth:   layout.DefaultSlotWidth,
		RankSpacing: layout.DefaultRankSpacing,
		NodeWidth:   layout.DefaultNodeWidth,
		NodeHeight:  layout.DefaultNodeHeight,
	}
	if cfg.Layout.Options() != want {
		t.Errorf("Default().Layout.Options() = %+v, want %+v", cfg.Layout.Options(), want)
	}
}

func TestLayout_OptionsConversion(t *testing.T) {
	l := Layout{SlotWidth: 1, RankSpacing: 2, NodeWidth: 3, NodeHeight: 4}
	got := l.Options()
	want := layout.Options{SlotWidth: 1, RankSpacing: 2, NodeWidth: 3, NodeHeight: 4}
	if got != want {
		t.Errorf("Options() = %+v, want %+v", got, want)
	}
}
