package filter

import (
	"context"
	"encoding/json"

	"github.com/vinolab/sommkit/core"
)

// RatedFilter 剔除用户已经评过分的酒。
// 默认仅在 rctx.ExcludeRated 为 true 时生效——排除与否是调用方的
// 请求参数，不是打分逻辑的一部分；Always 为 true 时无条件生效
// （配置驱动的 pipeline 在 YAML 里声明 exclude_rated 即全局排除）。
//
// 两个判断来源：
//  1. 候选自带的 AlreadyRated 标记（候选提供方已知时）
//  2. Store 里的用户已评酒 ID 列表（标记缺失时兜底）
type RatedFilter struct {
	// Store 用于读取用户已评酒 ID 列表（可选）
	Store core.Store

	// KeyPrefix 是 Store 中的 key 前缀，实际 key 为 {KeyPrefix}:{UserID}，
	// 值为 JSON 数组的酒 ID。默认 "rating:wines"
	KeyPrefix string

	// Always 为 true 时不再检查 rctx.ExcludeRated，过滤器常开
	Always bool
}

// NewRatedFilter 创建一个已评分过滤器。store 可以为 nil，
// 此时只依赖候选自带的 AlreadyRated 标记。
func NewRatedFilter(store core.Store, keyPrefix string) *RatedFilter {
	if keyPrefix == "" {
		keyPrefix = "rating:wines"
	}
	return &RatedFilter{
		Store:     store,
		KeyPrefix: keyPrefix,
	}
}

func (f *RatedFilter) Name() string {
	return "filter.rated"
}

func (f *RatedFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	c *core.Candidate,
) (bool, error) {
	if c == nil {
		return true, nil
	}
	if !f.Always && (rctx == nil || !rctx.ExcludeRated) {
		return false, nil
	}

	if c.AlreadyRated {
		return true, nil
	}

	if f.Store == nil || rctx == nil || rctx.UserID == "" {
		return false, nil
	}

	data, err := f.Store.Get(ctx, f.KeyPrefix+":"+rctx.UserID)
	if err != nil {
		// 列表拉不到时不误杀候选
		return false, nil
	}

	var ratedIDs []string
	if err := json.Unmarshal(data, &ratedIDs); err != nil {
		return false, nil
	}

	for _, id := range ratedIDs {
		if c.ID == id {
			return true, nil
		}
	}

	return false, nil
}
