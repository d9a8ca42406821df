// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pdiddy/wikifacts/pkg/types"
)

func openTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	s, err := Open(types.CacheConfig{
		Path: filepath.Join(t.TempDir(), "wikifacts.db"),
		TTL:  ttl,
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGet(t *testing.T) {
	s := openTestStore(t, time.Hour)
	ctx := context.Background()

	if err := s.Put(ctx, "ada lovelace", "Ada Lovelace", "Born\n1815-12-10\n"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	text, ok, err := s.Get(ctx, "ada lovelace")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() ok = false, want hit")
	}
	if text != "Born\n1815-12-10\n" {
		t.Errorf("Get() = %q, want stored text", text)
	}
}

func TestGetMiss(t *testing.T) {
	s := openTestStore(t, time.Hour)

	_, ok, err := s.Get(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() ok = true, want miss")
	}
}

func TestGetExpired(t *testing.T) {
	s := openTestStore(t, time.Nanosecond)
	ctx := context.Background()

	if err := s.Put(ctx, "mars", "Mars", "Polar radius 3376.2 km\n"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	time.Sleep(time.Millisecond)

	_, ok, err := s.Get(ctx, "mars")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() ok = true, want expired miss")
	}
}

func TestPutReplaces(t *testing.T) {
	s := openTestStore(t, time.Hour)
	ctx := context.Background()

	if err := s.Put(ctx, "mars", "Mars", "old"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := s.Put(ctx, "mars", "Mars", "new"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	text, ok, err := s.Get(ctx, "mars")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v, want hit", ok, err)
	}
	if text != "new" {
		t.Errorf("Get() = %q, want %q", text, "new")
	}
}

func TestKeyNormalizesTopic(t *testing.T) {
	s := openTestStore(t, time.Hour)
	ctx := context.Background()

	if err := s.Put(ctx, "Ada  Lovelace", "Ada Lovelace", "text"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	_, ok, err := s.Get(ctx, "ada lovelace")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Error("Get() ok = false, want hit via normalized key")
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(types.CacheConfig{}); err == nil {
		t.Error("Open() error = nil, want error for empty path")
	}
}
