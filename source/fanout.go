package source

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vinolab/sommkit/core"
	"github.com/vinolab/sommkit/pipeline"
	"github.com/vinolab/sommkit/pkg/utils"
)

// Fanout 是一个 Source Node：并发执行多个候选来源并合并结果。
// 典型用法：品鉴会酒单为主、全局酒库兜底（priority 合并）。
// 支持超时、并发上限、可插拔合并策略。
type Fanout struct {
	Sources       []Source
	Timeout       time.Duration // 每个来源的超时时间，0 表示不限制
	MaxConcurrent int           // 最大并发数，0 表示不限制
	Merge         MergeStrategy // 默认 FirstMergeStrategy
}

func (n *Fanout) Name() string        { return "source.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindSource }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Candidate,
) ([]*core.Candidate, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	var (
		mu      sync.Mutex
		results = make([][]*core.Candidate, len(n.Sources))
		eg, _   = errgroup.WithContext(ctx)
	)
	if n.MaxConcurrent > 0 {
		eg.SetLimit(n.MaxConcurrent)
	}

	for i, src := range n.Sources {
		s := src
		priority := i // 索引越小优先级越高

		eg.Go(func() error {
			srcCtx := ctx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				srcCtx, cancel = context.WithTimeout(ctx, n.Timeout)
				defer cancel()
			}

			candidates, err := s.Candidates(srcCtx, rctx)
			if err != nil {
				// 单个来源超时/出错时返回空结果，不拖垮其他来源
				return nil
			}

			// 记录来源与优先级 label，供合并策略与 explain 使用
			for _, c := range candidates {
				c.PutLabel("source_name", utils.Label{Value: s.Name(), Source: "source"})
				c.PutLabel("source_priority", utils.Label{Value: strconv.Itoa(priority), Source: "source"})
			}

			mu.Lock()
			results[priority] = candidates
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// 按来源优先级顺序拼接，保证合并前的顺序确定
	var all []*core.Candidate
	for _, r := range results {
		all = append(all, r...)
	}

	merge := n.Merge
	if merge == nil {
		merge = &FirstMergeStrategy{}
	}
	return merge.Merge(all), nil
}
