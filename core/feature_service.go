package core

import "context"

// FeatureService 是酒款统计特征服务的领域接口。
//
// 用于候选补充节点给酒挂社区统计特征（社区均分、评分人数等），
// 这些特征只做展示/观测注解，不参与口味匹配打分。
//
// 实现：
//   - feature.FeastService（Feast 在线特征库）
//   - feature.StoreService（core.Store 里的特征 Hash）
type FeatureService interface {
	// Name 返回特征服务名称（用于日志/监控）
	Name() string

	// GetWineFeatures 获取单款酒的统计特征
	GetWineFeatures(ctx context.Context, wineID string) (map[string]float64, error)

	// BatchGetWineFeatures 批量获取（推荐使用，减少网络往返）
	BatchGetWineFeatures(ctx context.Context, wineIDs []string) (map[string]map[string]float64, error)

	// Close 关闭特征服务，释放资源
	Close(ctx context.Context) error
}
