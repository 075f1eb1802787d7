package core

import "github.com/vinolab/sommkit/pkg/utils"

// 候选来源范围（feed B 的 scope selector）。
const (
	ScopeEvent   = "event"   // 某场品鉴会的酒单
	ScopeCatalog = "catalog" // 全局酒库
)

// RecommendContext 承载用户/场景信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID  string
	EventID string // Scope 为 event 时生效
	Scope   string // event / catalog

	// ExcludeRated 要求在打分前剔除用户已评过的酒（直通过滤，非打分逻辑）。
	ExcludeRated bool

	// Profile 是用户口味画像，通常在进入 Pipeline 前构建或从缓存取出。
	Profile *TasteProfile

	// Labels 是用户级标签（新用户、重度用户等），可驱动 Pipeline 行为。
	Labels map[string]utils.Label

	// Params 请求级上下文参数（如品鉴会主题、价格区间等）。
	Params map[string]any
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
