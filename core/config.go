package core

import "time"

// EngineConfig 是推荐引擎相关的配置接口，用于提供默认值。
type EngineConfig interface {
	// DefaultLimit 返回推荐条数的默认上限
	DefaultLimit() int

	// DefaultCatalogTopK 返回全局酒库召回的默认 TopK
	DefaultCatalogTopK() int

	// DefaultProfileTTL 返回画像缓存的默认 TTL（秒）
	DefaultProfileTTL() int

	// DefaultTimeout 返回默认的候选来源超时时间
	DefaultTimeout() time.Duration
}

// DefaultEngineConfig 是默认的引擎配置实现。
type DefaultEngineConfig struct{}

func (c *DefaultEngineConfig) DefaultLimit() int {
	return 10
}

func (c *DefaultEngineConfig) DefaultCatalogTopK() int {
	return 100
}

func (c *DefaultEngineConfig) DefaultProfileTTL() int {
	return 300
}

func (c *DefaultEngineConfig) DefaultTimeout() time.Duration {
	return 2 * time.Second
}
