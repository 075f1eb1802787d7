package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vinolab/sommkit/core"
	"github.com/vinolab/sommkit/pipeline"
	"github.com/vinolab/sommkit/pkg/utils"
)

// stubSource 是测试用候选来源。
type stubSource struct {
	name  string
	wines []string
	err   error
	delay time.Duration
}

func (s *stubSource) Name() string        { return s.name }
func (s *stubSource) Kind() pipeline.Kind { return pipeline.KindSource }

func (s *stubSource) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Candidate,
) ([]*core.Candidate, error) {
	return s.Candidates(ctx, rctx)
}

func (s *stubSource) Candidates(ctx context.Context, _ *core.RecommendContext) ([]*core.Candidate, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*core.Candidate, 0, len(s.wines))
	for _, id := range s.wines {
		out = append(out, core.NewCandidate(id))
	}
	return out, nil
}

func TestFanout_MergeKeepsPriorityOrder(t *testing.T) {
	fanout := &Fanout{
		Sources: []Source{
			&stubSource{name: "event", wines: []string{"w-1", "w-2"}},
			&stubSource{name: "catalog", wines: []string{"w-2", "w-3"}},
		},
	}

	got, err := fanout.Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	// 默认 first 合并：w-2 去重保留 event 来源的那份
	want := []string{"w-1", "w-2", "w-3"}
	if len(got) != len(want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("result[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
	if lbl := got[1].Labels["source_name"]; lbl.Value != "event|catalog" && lbl.Value != "event" {
		t.Errorf("w-2 source_name = %q, want event-first", lbl.Value)
	}
}

func TestFanout_SourceErrorDoesNotAbort(t *testing.T) {
	fanout := &Fanout{
		Sources: []Source{
			&stubSource{name: "broken", err: errors.New("boom")},
			&stubSource{name: "catalog", wines: []string{"w-1"}},
		},
	}

	got, err := fanout.Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(got) != 1 || got[0].ID != "w-1" {
		t.Errorf("candidates = %v, want [w-1] from healthy source", got)
	}
}

func TestFanout_TimeoutSkipsSlowSource(t *testing.T) {
	fanout := &Fanout{
		Timeout: 20 * time.Millisecond,
		Sources: []Source{
			&stubSource{name: "slow", wines: []string{"w-slow"}, delay: 500 * time.Millisecond},
			&stubSource{name: "fast", wines: []string{"w-fast"}},
		},
	}

	got, err := fanout.Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(got) != 1 || got[0].ID != "w-fast" {
		t.Errorf("candidates = %v, want [w-fast]", got)
	}
}

func TestFanout_UnionKeepsDuplicates(t *testing.T) {
	fanout := &Fanout{
		Merge: &UnionMergeStrategy{},
		Sources: []Source{
			&stubSource{name: "a", wines: []string{"w-1"}},
			&stubSource{name: "b", wines: []string{"w-1"}},
		},
	}

	got, err := fanout.Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2 (union keeps duplicates)", len(got))
	}
}

func TestFanout_NoSources(t *testing.T) {
	got, err := (&Fanout{}).Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestPriorityMergeStrategy(t *testing.T) {
	low := core.NewCandidate("w-1")
	low.PutLabel("source_priority", utils.Label{Value: "1", Source: "source"})
	high := core.NewCandidate("w-1")
	high.PutLabel("source_priority", utils.Label{Value: "0", Source: "source"})

	merged := (&PriorityMergeStrategy{}).Merge([]*core.Candidate{low, high})

	if len(merged) != 1 {
		t.Fatalf("len = %d, want 1", len(merged))
	}
	if merged[0] != high {
		t.Errorf("kept low-priority candidate, want high-priority one")
	}
}
