package filter

import (
	"context"

	"github.com/vinolab/sommkit/core"
)

// Filter 是过滤器的抽象接口，用于判断一个候选酒是否应该被剔除。
// 返回 true 表示剔除，false 表示保留。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断候选是否应该被剔除
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, c *core.Candidate) (bool, error)
}
