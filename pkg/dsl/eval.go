// Package dsl 提供基于 CEL (Common Expression Language) 的规则表达式求值，
// 用于配置驱动的候选过滤与策略判断。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/vinolab/sommkit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("candidate", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Eval 对单个候选酒求值规则表达式。
//
// 表达式语法（CEL 标准语法）：
//   - 属性：candidate.vintage >= 2015 / candidate.wine_type == "red"
//   - 标签：label.source_name == "event" （取 Label.Value）
//   - 上下文：rctx.scope == "catalog"
//   - 逻辑：candidate.country == "France" && candidate.vintage > 2010
//
// 注意：CEL 访问不存在的 key 会报错，存在性判断用 label.key != null。
type Eval struct {
	candidate *core.Candidate
	rctx      *core.RecommendContext
	env       *cel.Env
}

// NewEval 创建一个新的规则求值器。
func NewEval(candidate *core.Candidate, rctx *core.RecommendContext) *Eval {
	env, _ := getCELEnv()
	return &Eval{
		candidate: candidate,
		rctx:      rctx,
		env:       env,
	}
}

// Evaluate 编译并执行表达式，返回布尔结果。空表达式恒为 true。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}
	if e.env == nil {
		return false, fmt.Errorf("cel env init failed")
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %v", err)
	}

	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}

	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据。
func (e *Eval) buildInput() map[string]any {
	labels := make(map[string]any)
	if e.candidate != nil {
		for k, v := range e.candidate.Labels {
			labels[k] = v.Value
		}
	}

	candidate := map[string]any{}
	if e.candidate != nil {
		styleTags := make([]any, 0, len(e.candidate.StyleTags))
		for _, t := range e.candidate.StyleTags {
			styleTags = append(styleTags, t)
		}
		candidate = map[string]any{
			"id":            e.candidate.ID,
			"wine_type":     e.candidate.WineType,
			"region":        e.candidate.Region,
			"country":       e.candidate.Country,
			"style_tags":    styleTags,
			"producer":      e.candidate.Producer,
			"vintage":       e.candidate.Vintage,
			"already_rated": e.candidate.AlreadyRated,
			"score":         e.candidate.Score,
			"features":      e.candidate.Features,
		}
	}

	rctx := map[string]any{}
	if e.rctx != nil {
		rctx = map[string]any{
			"user_id":  e.rctx.UserID,
			"event_id": e.rctx.EventID,
			"scope":    e.rctx.Scope,
			"params":   e.rctx.Params,
		}
	}

	return map[string]any{
		"candidate": candidate,
		"label":     labels,
		"rctx":      rctx,
	}
}
