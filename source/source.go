package source

import (
	"context"

	"github.com/vinolab/sommkit/core"
)

// Source 表示一个可复用的候选来源（品鉴会酒单 / 全局酒库 / ...）。
// 可以理解为"可并发 fan-out 的策略单元"。
type Source interface {
	Name() string
	Candidates(ctx context.Context, rctx *core.RecommendContext) ([]*core.Candidate, error)
}
