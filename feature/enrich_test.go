package feature

import (
	"context"
	"errors"
	"testing"

	"github.com/vinolab/sommkit/core"
	"github.com/vinolab/sommkit/store"
)

func TestStoreService_GetWineFeatures(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()
	defer memStore.Close()

	memStore.HSet(ctx, "wine:stats:w-1", "avg_rating", []byte("4.2"))
	memStore.HSet(ctx, "wine:stats:w-1", "rating_count", []byte("128"))
	memStore.HSet(ctx, "wine:stats:w-1", "bad_value", []byte("n/a"))

	svc := NewStoreService(memStore, "")

	got, err := svc.GetWineFeatures(ctx, "w-1")
	if err != nil {
		t.Fatalf("GetWineFeatures: %v", err)
	}
	if got["avg_rating"] != 4.2 || got["rating_count"] != 128 {
		t.Errorf("features = %v", got)
	}
	// 非数值字段静默跳过
	if _, ok := got["bad_value"]; ok {
		t.Errorf("non-numeric field should be dropped, got %v", got)
	}

	empty, err := svc.GetWineFeatures(ctx, "w-unknown")
	if err != nil {
		t.Fatalf("GetWineFeatures(unknown): %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("unknown wine features = %v, want empty", empty)
	}
}

func TestEnrichNode_AnnotatesWithoutTouchingScore(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()
	defer memStore.Close()

	memStore.HSet(ctx, "wine:stats:w-1", "avg_rating", []byte("4.5"))

	c := core.NewCandidate("w-1")
	c.Score = 62
	c.Reasons = []string{"Matches your favorite wine type"}

	node := &EnrichNode{Service: NewStoreService(memStore, "")}
	out, err := node.Process(ctx, nil, []*core.Candidate{c})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if out[0].Features["stat_avg_rating"] != 4.5 {
		t.Errorf("Features = %v, want stat_avg_rating=4.5", out[0].Features)
	}
	if out[0].Score != 62 || len(out[0].Reasons) != 1 {
		t.Errorf("enrich must not touch score/reasons, got score=%d reasons=%v", out[0].Score, out[0].Reasons)
	}
	if lbl, ok := out[0].Labels["enriched"]; !ok || lbl.Value != "1" {
		t.Errorf("enriched label = %+v, want count 1", lbl)
	}
}

type failingService struct{}

func (f *failingService) Name() string { return "failing" }

func (f *failingService) GetWineFeatures(_ context.Context, _ string) (map[string]float64, error) {
	return nil, errors.New("unavailable")
}

func (f *failingService) BatchGetWineFeatures(_ context.Context, _ []string) (map[string]map[string]float64, error) {
	return nil, errors.New("unavailable")
}

func (f *failingService) Close(_ context.Context) error { return nil }

func TestEnrichNode_ServiceFailurePassesThrough(t *testing.T) {
	c := core.NewCandidate("w-1")
	c.Score = 40

	node := &EnrichNode{Service: &failingService{}}
	out, err := node.Process(context.Background(), nil, []*core.Candidate{c})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 1 || out[0].Score != 40 || len(out[0].Features) != 0 {
		t.Errorf("failure should pass candidates through untouched, got %+v", out[0])
	}
}
