package feature

import (
	"context"
	"strconv"

	"github.com/vinolab/sommkit/core"
	"github.com/vinolab/sommkit/pipeline"
	"github.com/vinolab/sommkit/pkg/utils"
)

// EnrichNode 是后处理节点：给已排序的推荐结果批量挂上酒款统计特征
// （社区均分、评分人数等），写入 Candidate.Features 与 Labels。
//
// 只做注解，绝不改 Score 和 Reasons——匹配分只反映口味匹配，
// 社区热度属于展示层信息。
type EnrichNode struct {
	Service core.FeatureService

	// Prefix 写入 Features 时的 key 前缀，默认 "stat_"
	Prefix string
}

func (n *EnrichNode) Name() string        { return "feature.enrich" }
func (n *EnrichNode) Kind() pipeline.Kind { return pipeline.KindPostProcess }

func (n *EnrichNode) Process(
	ctx context.Context,
	_ *core.RecommendContext,
	candidates []*core.Candidate,
) ([]*core.Candidate, error) {
	if n.Service == nil || len(candidates) == 0 {
		return candidates, nil
	}

	prefix := n.Prefix
	if prefix == "" {
		prefix = "stat_"
	}

	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c != nil {
			ids = append(ids, c.ID)
		}
	}

	all, err := n.Service.BatchGetWineFeatures(ctx, ids)
	if err != nil {
		// 特征服务故障只丢注解，不影响推荐结果本身
		return candidates, nil
	}

	for _, c := range candidates {
		if c == nil {
			continue
		}
		features, ok := all[c.ID]
		if !ok || len(features) == 0 {
			continue
		}
		if c.Features == nil {
			c.Features = make(map[string]float64, len(features))
		}
		for name, v := range features {
			c.Features[prefix+name] = v
		}
		c.PutLabel("enriched", utils.Label{
			Value:  strconv.Itoa(len(features)),
			Source: "postprocess",
		})
	}

	return candidates, nil
}
