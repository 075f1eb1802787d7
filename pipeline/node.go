package pipeline

import (
	"context"

	"github.com/vinolab/sommkit/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindSource      Kind = "source"      // 候选来源阶段：生成候选酒集合
	KindFilter      Kind = "filter"      // 过滤阶段：剔除不符合约束的候选（如已评过的酒）
	KindScore       Kind = "score"       // 打分阶段：按口味画像逐信号打分并排序
	KindReRank      Kind = "rerank"      // 重排阶段：截断/多样性等业务调优
	KindPostProcess Kind = "postprocess" // 后处理阶段：补充特征或最终结果修饰
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用"输入 candidates -> 输出 candidates"的形态，
// 方便 Source 生成、Filter 剔除、ReRank 截断等操作。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		candidates []*core.Candidate,
	) ([]*core.Candidate, error)
}
