package score

import (
	"context"
	"sort"

	"github.com/vinolab/sommkit/core"
	"github.com/vinolab/sommkit/pipeline"
	"github.com/vinolab/sommkit/pkg/utils"
)

// Node 是打分 Node：对每个候选酒调用 Scorer，写入匹配分与匹配原因，
// 并按分数降序稳定排序——同分候选保持来源顺序，重复请求结果可复现。
//
// 画像为空时每个候选只拿冷启动信号，排序退化为候选来源的原始顺序，
// 这是有意保留的行为："还没数据"永远不该返回乱序或报错。
type Node struct {
	Scorer *Scorer
}

func (n *Node) Name() string        { return "score.profile" }
func (n *Node) Kind() pipeline.Kind { return pipeline.KindScore }

func (n *Node) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	candidates []*core.Candidate,
) ([]*core.Candidate, error) {
	if len(candidates) == 0 {
		return candidates, nil
	}

	scorer := n.Scorer
	if scorer == nil {
		scorer = &Scorer{}
	}

	var profile *core.TasteProfile
	if rctx != nil {
		profile = rctx.Profile
	}
	if profile == nil {
		profile = core.NewTasteProfile()
	}

	for _, c := range candidates {
		if c == nil {
			continue
		}
		s, reasons := scorer.Score(c, profile)
		c.Score = s
		c.Reasons = reasons
		c.PutLabel("score_model", utils.Label{Value: "taste_profile", Source: "score"})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i] == nil {
			return false
		}
		if candidates[j] == nil {
			return true
		}
		return candidates[i].Score > candidates[j].Score
	})
	return candidates, nil
}
