package rerank

import (
	"context"
	"testing"

	"github.com/vinolab/sommkit/core"
)

func wines(ids ...string) []*core.Candidate {
	out := make([]*core.Candidate, 0, len(ids))
	for _, id := range ids {
		out = append(out, core.NewCandidate(id))
	}
	return out
}

func ids(candidates []*core.Candidate) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.ID)
	}
	return out
}

func TestTopN_Process(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		input []*core.Candidate
		want  []string
	}{
		{"truncate", 2, wines("a", "b", "c", "d"), []string{"a", "b"}},
		{"fewer than n", 5, wines("a", "b"), []string{"a", "b"}},
		{"zero returns empty", 0, wines("a", "b"), []string{}},
		{"negative returns empty", -3, wines("a"), []string{}},
		{"empty input", 3, nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &TopN{N: tt.n}
			got, err := node.Process(context.Background(), nil, tt.input)
			if err != nil {
				t.Fatalf("Process: %v", err)
			}
			if got == nil {
				got = []*core.Candidate{}
			}
			gotIDs := ids(got)
			if len(gotIDs) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(gotIDs), len(tt.want))
			}
			for i := range tt.want {
				if gotIDs[i] != tt.want[i] {
					t.Errorf("result[%d] = %s, want %s", i, gotIDs[i], tt.want[i])
				}
			}
		})
	}
}

func TestDiversity_Process(t *testing.T) {
	reds := wines("r1", "r2", "r3")
	for _, c := range reds {
		c.WineType = "red"
	}
	white := core.NewCandidate("w1")
	white.WineType = "white"
	input := []*core.Candidate{reds[0], reds[1], reds[2], white}

	node := &Diversity{MaxPerType: 2}
	got, err := node.Process(context.Background(), nil, input)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	want := []string{"r1", "r2", "w1"}
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("ids = %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Errorf("result[%d] = %s, want %s", i, gotIDs[i], want[i])
		}
	}
}

func TestDiversity_NoLimit(t *testing.T) {
	input := wines("a", "b", "c")
	node := &Diversity{}
	got, err := node.Process(context.Background(), nil, input)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("len = %d, want 3 (MaxPerType<=0 means unlimited)", len(got))
	}
}
