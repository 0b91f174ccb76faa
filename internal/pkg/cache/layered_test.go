package cache

import (
	"context"
	"testing"
	"time"
)

func TestSimpleCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := New(time.Minute)
	if err := c.SetEX(ctx, "k", "v", 10*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if v, _ := c.Get(ctx, "k"); v != "v" {
		t.Fatalf("want v, got %q", v)
	}
	time.Sleep(20 * time.Millisecond)
	if v, _ := c.Get(ctx, "k"); v != "" {
		t.Fatalf("expired key should be empty, got %q", v)
	}
}

func TestLayeredReadPath(t *testing.T) {
	ctx := context.Background()
	l1 := New(time.Minute)
	l2 := New(time.Minute)
	lc := NewLayered(l1, l2)

	// only in L2: hit + backfill
	_ = l2.SetEX(ctx, "k", "v", time.Minute)
	if v, _ := lc.Get(ctx, "k"); v != "v" {
		t.Fatalf("want v from L2, got %q", v)
	}
	if v, _ := l1.Get(ctx, "k"); v != "v" {
		t.Fatalf("L2 hit should backfill L1, got %q", v)
	}
	// second read served by L1
	if v, _ := lc.Get(ctx, "k"); v != "v" {
		t.Fatalf("want v from L1, got %q", v)
	}

	m := lc.SnapshotMetrics()
	if m.HitsL1 != 1 || m.HitsL2 != 1 || m.BackfillL1 != 1 {
		t.Fatalf("unexpected metrics: %+v", m)
	}
	if m.HitRate != 1.0 {
		t.Fatalf("want hit rate 1.0, got %v", m.HitRate)
	}
}

func TestLayeredMissAndDel(t *testing.T) {
	ctx := context.Background()
	lc := NewLayered(New(time.Minute), New(time.Minute))

	if v, _ := lc.Get(ctx, "absent"); v != "" {
		t.Fatalf("want miss, got %q", v)
	}
	_ = lc.SetEX(ctx, "k", "v", time.Minute)
	_ = lc.Del(ctx, "k")
	if v, _ := lc.Get(ctx, "k"); v != "" {
		t.Fatalf("deleted key should miss, got %q", v)
	}

	m := lc.SnapshotMetrics()
	if m.Miss != 2 || m.SetOps != 1 || m.DelOps != 1 {
		t.Fatalf("unexpected metrics: %+v", m)
	}
	lc.ResetMetrics()
	if lc.SnapshotMetrics().ReqTotal != 0 {
		t.Fatal("reset should zero counters")
	}
}
