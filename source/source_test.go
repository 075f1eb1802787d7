package source

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/vinolab/sommkit/core"
	"github.com/vinolab/sommkit/pkg/utils"
	"github.com/vinolab/sommkit/store"
)

func seedWine(t *testing.T, s core.Store, id, wineType, region string) {
	t.Helper()
	doc := map[string]any{
		"wine_id":   id,
		"wine_type": wineType,
		"region":    region,
	}
	data, _ := json.Marshal(doc)
	if err := s.Set(context.Background(), "wine:"+id, data); err != nil {
		t.Fatalf("seed wine %s: %v", id, err)
	}
}

func TestEventWines_FromStore(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()
	defer memStore.Close()

	seedWine(t, memStore, "w-1", "red", "Bordeaux")
	seedWine(t, memStore, "w-2", "white", "Loire")
	ids, _ := json.Marshal([]string{"w-1", "w-2", "w-missing"})
	if err := memStore.Set(ctx, "event:wines:tasting-1", ids); err != nil {
		t.Fatalf("seed event list: %v", err)
	}

	src := &EventWines{Store: memStore}
	got, err := src.Candidates(ctx, &core.RecommendContext{EventID: "tasting-1"})
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}

	// 缺文档的 ID 跳过，顺序保持酒单顺序
	if len(got) != 2 || got[0].ID != "w-1" || got[1].ID != "w-2" {
		t.Fatalf("candidates = %v, want [w-1 w-2]", got)
	}
	if got[0].WineType != "red" || got[0].Region != "Bordeaux" {
		t.Errorf("w-1 = %+v, want red Bordeaux", got[0])
	}
	if lbl, ok := got[0].Labels["source_name"]; !ok || lbl.Value != "event" {
		t.Errorf("source_name label = %+v, want event", lbl)
	}
}

func TestEventWines_FallbackToMemory(t *testing.T) {
	w := core.NewCandidate("w-9")
	src := &EventWines{Wines: []*core.Candidate{w}}

	got, err := src.Candidates(context.Background(), &core.RecommendContext{EventID: "unknown"})
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(got) != 1 || got[0].ID != "w-9" {
		t.Errorf("candidates = %v, want fallback w-9", got)
	}
}

func TestCatalog_FromZSet(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()
	defer memStore.Close()

	seedWine(t, memStore, "w-1", "red", "Bordeaux")
	seedWine(t, memStore, "w-2", "white", "Loire")
	seedWine(t, memStore, "w-3", "rose", "Provence")

	// 热度榜按分数降序
	memStore.ZAdd(ctx, "catalog:rank", 50, "w-2")
	memStore.ZAdd(ctx, "catalog:rank", 90, "w-1")
	memStore.ZAdd(ctx, "catalog:rank", 10, "w-3")

	src := &Catalog{Store: memStore, TopK: 2}
	got, err := src.Candidates(ctx, nil)
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}

	if len(got) != 2 || got[0].ID != "w-1" || got[1].ID != "w-2" {
		t.Fatalf("candidates = %v, want top-2 [w-1 w-2]", got)
	}
	if lbl, ok := got[0].Labels["source_name"]; !ok || lbl.Value != "catalog" {
		t.Errorf("source_name label = %+v, want catalog", lbl)
	}
}

func TestEventWines_FallbackReturnsCopies(t *testing.T) {
	w := core.NewCandidate("w-9")
	w.StyleTags = []string{"dry"}
	src := &EventWines{Wines: []*core.Candidate{w}}
	rctx := &core.RecommendContext{EventID: "tasting-1"}

	first, err := src.Candidates(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	// 模拟下游节点写入
	first[0].Score = 62
	first[0].Reasons = []string{"Matches your favorite wine type"}
	first[0].StyleTags[0] = "mutated"

	second, err := src.Candidates(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}

	if first[0] == second[0] {
		t.Fatalf("fallback handed out the same pointer across requests")
	}
	if second[0].Score != 0 || second[0].Reasons != nil {
		t.Errorf("score/reasons leaked across requests: %+v", second[0])
	}
	if got := second[0].Labels["source_name"].Value; got != "event" {
		t.Errorf("source_name = %q, want event (no accumulation across requests)", got)
	}
	if second[0].StyleTags[0] != "dry" {
		t.Errorf("StyleTags shared with pool: %v", second[0].StyleTags)
	}
	if w.Score != 0 || len(w.Labels) != 0 {
		t.Errorf("pool candidate mutated: %+v", w)
	}
}

func TestCatalog_FallbackReturnsCopies(t *testing.T) {
	w := core.NewCandidate("w-1")
	src := &Catalog{Wines: []*core.Candidate{w}, TopK: 5}

	first, err := src.Candidates(context.Background(), nil)
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	first[0].Score = 40

	second, err := src.Candidates(context.Background(), nil)
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if first[0] == second[0] || second[0].Score != 0 {
		t.Errorf("pool candidate shared across requests: %+v", second[0])
	}
	if got := second[0].Labels["source_name"].Value; got != "catalog" {
		t.Errorf("source_name = %q, want catalog", got)
	}
}

func TestEventWines_FallbackConcurrentRequests(t *testing.T) {
	wines := []*core.Candidate{
		core.NewCandidate("w-1"),
		core.NewCandidate("w-2"),
	}
	src := &EventWines{Wines: wines}
	rctx := &core.RecommendContext{EventID: "tasting-1"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			out, err := src.Candidates(context.Background(), rctx)
			if err != nil {
				t.Errorf("Candidates: %v", err)
				return
			}
			// 并发请求各自写各自的拷贝
			for _, c := range out {
				c.Score = n
				c.PutLabel("filtered", utils.Label{Value: "true", Source: "filter.rated"})
			}
		}(i)
	}
	wg.Wait()

	for _, w := range wines {
		if w.Score != 0 || len(w.Labels) != 0 {
			t.Errorf("pool candidate written by request: %+v", w)
		}
	}
}

func TestCatalog_FallbackTruncatesToTopK(t *testing.T) {
	wines := []*core.Candidate{
		core.NewCandidate("w-1"),
		core.NewCandidate("w-2"),
		core.NewCandidate("w-3"),
	}
	src := &Catalog{Wines: wines, TopK: 2}

	got, err := src.Candidates(context.Background(), nil)
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}
