package feature

import (
	"context"
	"strconv"

	"github.com/vinolab/sommkit/core"
)

// StoreService 是基于 core.KeyValueStore 的 FeatureService 实现，
// 适合没有 Feast 的部署：酒款统计特征以 Hash 形式离线写入。
//
// key 布局：{KeyPrefix}:{wineID}，field 为特征名，value 为数值字符串。
type StoreService struct {
	Store core.KeyValueStore

	// KeyPrefix 默认 "wine:stats"
	KeyPrefix string
}

// NewStoreService 创建一个基于 Store 的特征服务。
func NewStoreService(store core.KeyValueStore, keyPrefix string) *StoreService {
	if keyPrefix == "" {
		keyPrefix = "wine:stats"
	}
	return &StoreService{
		Store:     store,
		KeyPrefix: keyPrefix,
	}
}

func (s *StoreService) Name() string { return "feature.store" }

func (s *StoreService) GetWineFeatures(ctx context.Context, wineID string) (map[string]float64, error) {
	if s.Store == nil {
		return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeUnavailable, "feature: store not configured")
	}

	fields, err := s.Store.HGetAll(ctx, s.KeyPrefix+":"+wineID)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return map[string]float64{}, nil
		}
		return nil, err
	}

	features := make(map[string]float64, len(fields))
	for name, raw := range fields {
		if f, err := strconv.ParseFloat(string(raw), 64); err == nil {
			features[name] = f
		}
	}
	return features, nil
}

func (s *StoreService) BatchGetWineFeatures(ctx context.Context, wineIDs []string) (map[string]map[string]float64, error) {
	result := make(map[string]map[string]float64, len(wineIDs))
	for _, id := range wineIDs {
		features, err := s.GetWineFeatures(ctx, id)
		if err != nil {
			return nil, err
		}
		result[id] = features
	}
	return result, nil
}

func (s *StoreService) Close(_ context.Context) error {
	return nil
}

var _ core.FeatureService = (*StoreService)(nil)
