package cache

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit=%v err=%v, want miss", hit, err)
	}

	want := []byte(`{"nodes":[]}`)
	if err := c.Set(ctx, "layout:abc", want, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, hit, err := c.Get(ctx, "layout:abc")
	if err != nil || !hit {
		t.Fatalf("Get = hit=%v err=%v, want hit", hit, err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get = %q, want %q", got, want)
	}
}

func TestFileCacheTTL(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "ephemeral", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, hit, err := c.Get(ctx, "ephemeral"); err != nil || hit {
		t.Errorf("expired entry still hit (hit=%v err=%v)", hit, err)
	}
}

func TestFileCacheDelete(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted entry still hit")
	}

	// Deleting a missing key is not an error.
	if err := c.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("Delete(missing) = %v, want nil", err)
	}
}

func TestFileCachePrune(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "fresh", []byte("keep"), 0); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "stale", []byte("drop"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	// An entry that does not decode is pruned too.
	if err := os.WriteFile(filepath.Join(dir, "garbage.json"), []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)

	removed, err := c.(*FileCache).Prune()
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 2 {
		t.Errorf("Prune removed %d entries, want 2", removed)
	}

	if _, hit, _ := c.Get(ctx, "fresh"); !hit {
		t.Error("fresh entry pruned")
	}
	if _, hit, _ := c.Get(ctx, "stale"); hit {
		t.Error("stale entry survived pruning")
	}
}

func TestNullCacheNeverStores(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); err != nil || hit {
		t.Errorf("NullCache hit (hit=%v err=%v)", hit, err)
	}
}

func TestLayoutKeyStability(t *testing.T) {
	k := NewDefaultKeyer()
	opts := LayoutKeyOpts{Radius: 300, Ticks: 500, EdgeLen: 60, ChargeStr: -30}

	a := k.LayoutKey("hash1", opts)
	b := k.LayoutKey("hash1", opts)
	if a != b {
		t.Errorf("same inputs produced different keys: %q vs %q", a, b)
	}

	tests := []struct {
		name string
		hash string
		opts LayoutKeyOpts
	}{
		{"different graph", "hash2", opts},
		{"different radius", "hash1", LayoutKeyOpts{Radius: 400, Ticks: 500, EdgeLen: 60, ChargeStr: -30}},
		{"different ticks", "hash1", LayoutKeyOpts{Radius: 300, Ticks: 100, EdgeLen: 60, ChargeStr: -30}},
		{"different levels", "hash1", LayoutKeyOpts{Radius: 300, Ticks: 500, Levels: 2, EdgeLen: 60, ChargeStr: -30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := k.LayoutKey(tt.hash, tt.opts); got == a {
				t.Error("changed input did not change the key")
			}
		})
	}
}

func TestHash(t *testing.T) {
	a := Hash([]byte("payload"))
	b := Hash([]byte("payload"))
	if a != b {
		t.Error("hash not deterministic")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
	if Hash([]byte("other")) == a {
		t.Error("different payloads share a hash")
	}
}
