package rerank

import (
	"context"

	"github.com/vinolab/sommkit/core"
	"github.com/vinolab/sommkit/pipeline"
)

// TopN 是截断节点，在打分排序之后截取前 N 个候选。
//
// N 必须为正数：N <= 0 时返回空列表而不是报错，也不是"不截断"——
// 推荐条数是调用方请求的一部分，非法请求得到空结果。
//
// 示例：
//
//	pipeline := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &score.Node{...},     // 打分排序
//	        &rerank.TopN{N: 10},  // 取 Top 10
//	    },
//	}
type TopN struct {
	// N 要保留的候选数量
	N int
}

func (n *TopN) Name() string {
	return "rerank.topn"
}

func (n *TopN) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopN) Process(
	_ context.Context,
	_ *core.RecommendContext,
	candidates []*core.Candidate,
) ([]*core.Candidate, error) {
	if n.N <= 0 {
		return []*core.Candidate{}, nil
	}

	if len(candidates) <= n.N {
		return candidates, nil
	}

	return candidates[:n.N], nil
}
