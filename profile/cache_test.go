package profile

import (
	"context"
	"testing"

	"github.com/vinolab/sommkit/core"
	"github.com/vinolab/sommkit/store"
)

func TestStoreRatingAdapter_RoundTrip(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()
	defer memStore.Close()

	adapter := NewStoreRatingAdapter(memStore, "")

	// 未知用户返回空列表而非错误
	got, err := adapter.GetUserRatings(ctx, "nobody")
	if err != nil {
		t.Fatalf("GetUserRatings(nobody): %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ratings = %v, want empty", got)
	}

	r1 := core.Rating{WineID: "w-1", WineType: "red", Score: 5, RatedAt: ratedAt(1)}
	r2 := core.Rating{WineID: "w-2", WineType: "white", Score: 3, RatedAt: ratedAt(2)}
	if err := adapter.AppendRating(ctx, "alice", r1); err != nil {
		t.Fatalf("AppendRating: %v", err)
	}
	if err := adapter.AppendRating(ctx, "alice", r2); err != nil {
		t.Fatalf("AppendRating: %v", err)
	}

	got, err = adapter.GetUserRatings(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserRatings: %v", err)
	}
	if len(got) != 2 || got[0].WineID != "w-1" || got[1].WineID != "w-2" {
		t.Errorf("ratings = %+v, want [w-1 w-2] in append order", got)
	}
}

func TestCache_GetOrBuildAndInvalidate(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()
	defer memStore.Close()

	adapter := NewStoreRatingAdapter(memStore, "")
	cache := NewCache(memStore, "", 300)

	if err := adapter.AppendRating(ctx, "alice", core.Rating{
		WineID: "w-1", WineType: "red", Score: 5, RatedAt: ratedAt(1),
	}); err != nil {
		t.Fatalf("AppendRating: %v", err)
	}

	// 首次构建并写入缓存
	p, err := cache.GetOrBuild(ctx, "alice", adapter)
	if err != nil {
		t.Fatalf("GetOrBuild: %v", err)
	}
	if p.TotalRatings != 1 {
		t.Fatalf("TotalRatings = %d, want 1", p.TotalRatings)
	}

	cached, err := cache.Get(ctx, "alice")
	if err != nil || cached == nil {
		t.Fatalf("Get after build = %v, %v, want cached profile", cached, err)
	}

	// 新评分写入后缓存必须显式失效，下一次 GetOrBuild 才看得到
	if err := adapter.AppendRating(ctx, "alice", core.Rating{
		WineID: "w-2", WineType: "white", Score: 4, RatedAt: ratedAt(2),
	}); err != nil {
		t.Fatalf("AppendRating: %v", err)
	}

	stale, err := cache.GetOrBuild(ctx, "alice", adapter)
	if err != nil {
		t.Fatalf("GetOrBuild: %v", err)
	}
	if stale.TotalRatings != 1 {
		t.Errorf("before invalidation TotalRatings = %d, want stale 1", stale.TotalRatings)
	}

	if err := cache.Invalidate(ctx, "alice"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	fresh, err := cache.GetOrBuild(ctx, "alice", adapter)
	if err != nil {
		t.Fatalf("GetOrBuild after invalidate: %v", err)
	}
	if fresh.TotalRatings != 2 {
		t.Errorf("after invalidation TotalRatings = %d, want 2", fresh.TotalRatings)
	}
}

func TestCache_CorruptEntryTreatedAsMiss(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()
	defer memStore.Close()

	cache := NewCache(memStore, "", 0)
	if err := memStore.Set(ctx, "profile:taste:alice", []byte("not json")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	p, err := cache.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p != nil {
		t.Errorf("corrupt entry should read as miss, got %+v", p)
	}
}

func TestCache_MissReturnsNil(t *testing.T) {
	memStore := store.NewMemoryStore()
	defer memStore.Close()

	cache := NewCache(memStore, "", 0)
	p, err := cache.Get(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p != nil {
		t.Errorf("miss should return nil, got %+v", p)
	}
}
