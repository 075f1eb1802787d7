// Package engine 暴露口味推荐的两个核心操作：
//
//	BuildTasteProfile(ratings)                      → 口味画像
//	GetRecommendations(profile, candidates, limit)  → 排好序的推荐列表
//
// 两者都是纯计算：不做 I/O，不持有状态，多请求并发调用无须任何协调。
// 评分与候选的获取（feed A / feed B）属于外部协作方，取不到数据的错误
// 由它们上报；引擎本身对空输入只会返回空结果。
//
// 需要完整编排（取评分 → 建画像 → 取候选 → 过滤 → 打分 → 截断）时
// 使用 Engine.RecommendForUser。
package engine

import (
	"context"
	"sort"

	"github.com/vinolab/sommkit/core"
	"github.com/vinolab/sommkit/pipeline"
	"github.com/vinolab/sommkit/profile"
	"github.com/vinolab/sommkit/score"
)

// BuildTasteProfile 把一个用户的历史评分聚合成口味画像（纯函数）。
func BuildTasteProfile(ratings []core.Rating) *core.TasteProfile {
	return profile.Build(ratings)
}

// Option 调整单次 GetRecommendations 的行为。
type Option func(*options)

type options struct {
	excludeRated bool
	bonus        *score.BonusTable
}

// WithExcludeRated 在打分前剔除已评过的候选（直通过滤，不参与打分）。
func WithExcludeRated() Option {
	return func(o *options) { o.excludeRated = true }
}

// WithBonusTable 使用自定义加分表替换默认衰减曲线。
func WithBonusTable(b *score.BonusTable) Option {
	return func(o *options) { o.bonus = b }
}

// GetRecommendations 对候选池打分、排序、截断，返回推荐列表（纯函数）。
//
//   - 每个候选独立打分（见 score.Scorer），结果按匹配分降序稳定排序：
//     同分候选保持输入顺序，同样的输入永远得到同样的输出
//   - limit 非正数时返回空列表，不报错
//   - 画像为空时只有冷启动信号，排序退化为候选输入顺序——有意保留
func GetRecommendations(p *core.TasteProfile, candidates []*core.Candidate, limit int, opts ...Option) []core.Recommendation {
	if limit <= 0 || len(candidates) == 0 {
		return []core.Recommendation{}
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if p == nil {
		p = core.NewTasteProfile()
	}
	scorer := &score.Scorer{Bonus: o.bonus}

	scored := make([]*core.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c == nil {
			continue
		}
		if o.excludeRated && c.AlreadyRated {
			continue
		}
		s, reasons := scorer.Score(c, p)
		c.Score = s
		c.Reasons = reasons
		scored = append(scored, c)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	out := make([]core.Recommendation, 0, len(scored))
	for _, c := range scored {
		out = append(out, core.NewRecommendation(c))
	}
	return out
}

// Engine 是完整编排器：组合评分来源、画像缓存与候选 Pipeline。
// Pipeline 应以 Source Node 开头（见 source 包），通常以 rerank.TopN 收尾。
type Engine struct {
	// Ratings 是评分来源（feed A），必填
	Ratings profile.RatingStore

	// Profiles 是画像缓存，可选；为 nil 时每次请求重建画像
	Profiles *profile.Cache

	// Pipeline 是候选处理链（feed B + 过滤 + 打分 + 重排），必填
	Pipeline *pipeline.Pipeline
}

// RecommendForUser 为单个用户产出推荐。
//
// rctx.Profile 为空时先从评分来源构建（或走缓存）；随后运行 Pipeline，
// 最后按 limit 截断。limit 非正数返回空列表。
func (e *Engine) RecommendForUser(ctx context.Context, rctx *core.RecommendContext, limit int) ([]core.Recommendation, error) {
	if limit <= 0 {
		return []core.Recommendation{}, nil
	}

	if rctx.Profile == nil {
		p, err := e.loadProfile(ctx, rctx.UserID)
		if err != nil {
			return nil, err
		}
		rctx.Profile = p
	}

	candidates, err := e.Pipeline.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	out := make([]core.Recommendation, 0, len(candidates))
	for _, c := range candidates {
		if c == nil {
			continue
		}
		out = append(out, core.NewRecommendation(c))
	}
	return out, nil
}

func (e *Engine) loadProfile(ctx context.Context, userID string) (*core.TasteProfile, error) {
	if e.Profiles != nil {
		return e.Profiles.GetOrBuild(ctx, userID, e.Ratings)
	}
	ratings, err := e.Ratings.GetUserRatings(ctx, userID)
	if err != nil {
		return nil, err
	}
	return profile.Build(ratings), nil
}
