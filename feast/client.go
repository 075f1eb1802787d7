// Package feast 封装 Feast Feature Store 客户端，为酒款统计特征
// （社区均分、评分人数、回购率等）提供在线读取入口。
//
// Feast 侧约定：实体为 wine_id，特征视图为 wine_stats，
// 特征名形如 "wine_stats:avg_rating"。
package feast

import (
	"context"
	"time"
)

// Client 是 Feast 客户端的领域接口（接口在此，gRPC 实现见 grpc_client.go）。
type Client interface {
	// GetOnlineFeatures 获取在线特征（用于实时打分链路的注解）
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求。
type GetOnlineFeaturesRequest struct {
	// Features 特征名称列表，例如 ["wine_stats:avg_rating", "wine_stats:rating_count"]
	Features []string

	// EntityRows 实体行，例如 [{"wine_id": "w1"}, {"wine_id": "w2"}]
	EntityRows []map[string]any

	// Project 项目名称（可选，缺省用客户端配置）
	Project string
}

// GetOnlineFeaturesResponse 获取在线特征响应。
type GetOnlineFeaturesResponse struct {
	// FeatureVectors 特征向量列表，顺序与 EntityRows 对应
	FeatureVectors []FeatureVector
}

// FeatureVector 是单个实体的特征向量。
type FeatureVector struct {
	// Values 特征值，key 为特征名称
	Values map[string]any

	// EntityRow 对应的实体行
	EntityRow map[string]any
}

// ClientOption 客户端配置选项。
type ClientOption func(*ClientConfig)

// ClientConfig 客户端配置。
type ClientConfig struct {
	Project string
	Timeout time.Duration
}

// WithTimeout 设置请求超时。
func WithTimeout(d time.Duration) ClientOption {
	return func(c *ClientConfig) { c.Timeout = d }
}
