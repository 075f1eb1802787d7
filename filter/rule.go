package filter

import (
	"context"

	"github.com/vinolab/sommkit/core"
	"github.com/vinolab/sommkit/pkg/dsl"
)

// RuleFilter 是基于 CEL 表达式的规则过滤器。
// 表达式描述"保留条件"：求值为 false 的候选被剔除。
//
// 示例：
//   - `candidate.vintage >= 2015` → 只保留 2015 及之后的年份
//   - `candidate.wine_type != "sparkling"` → 场景不供起泡酒
//   - `rctx.scope == "event" || candidate.country == "France"`
type RuleFilter struct {
	// Expr 是 CEL 表达式（见 pkg/dsl）。空表达式不过滤任何候选。
	Expr string
}

// NewRuleFilter 创建一个规则过滤器。
func NewRuleFilter(expr string) *RuleFilter {
	return &RuleFilter{Expr: expr}
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	c *core.Candidate,
) (bool, error) {
	if f.Expr == "" || c == nil {
		return false, nil
	}

	keep, err := dsl.NewEval(c, rctx).Evaluate(f.Expr)
	if err != nil {
		// 不过滤但把错误往上抛：Node 会跳过出错的过滤器（候选得以保留），
		// 独立调用方则自行决定如何处理
		return false, err
	}
	return !keep, nil
}
