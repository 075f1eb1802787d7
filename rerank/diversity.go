package rerank

import (
	"context"

	"github.com/vinolab/sommkit/core"
	"github.com/vinolab/sommkit/pipeline"
)

// Diversity 是多样性重排节点：限制同一酒类型的连续霸榜。
// 每个类型最多保留 MaxPerType 款（保留排序靠前的），
// 避免"红酒爱好者"拿到一整页红酒而看不到别的可能。
type Diversity struct {
	// MaxPerType 每个酒类型最多保留的候选数，<= 0 表示不限制
	MaxPerType int
}

func (n *Diversity) Name() string {
	return "rerank.diversity"
}

func (n *Diversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *Diversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	candidates []*core.Candidate,
) ([]*core.Candidate, error) {
	if n.MaxPerType <= 0 || len(candidates) == 0 {
		return candidates, nil
	}

	seen := make(map[string]int, 8)
	out := make([]*core.Candidate, 0, len(candidates))

	for _, c := range candidates {
		if c == nil {
			continue
		}
		if c.WineType == "" {
			out = append(out, c)
			continue
		}
		if seen[c.WineType] >= n.MaxPerType {
			continue
		}
		seen[c.WineType]++
		out = append(out, c)
	}

	return out, nil
}
