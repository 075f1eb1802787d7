package feature

import (
	"context"
	"fmt"

	"github.com/vinolab/sommkit/core"
	"github.com/vinolab/sommkit/feast"
	"github.com/vinolab/sommkit/pkg/conv"
)

// FeastService 是基于 Feast 在线特征库的 core.FeatureService 实现。
// 实体为 wine_id，Features 形如 "wine_stats:avg_rating"。
type FeastService struct {
	Client feast.Client

	// Features 要拉取的特征名称列表
	Features []string

	// EntityKey 实体键名，默认 "wine_id"
	EntityKey string
}

// NewFeastService 创建一个 Feast 特征服务。
func NewFeastService(client feast.Client, features []string) *FeastService {
	return &FeastService{
		Client:    client,
		Features:  features,
		EntityKey: "wine_id",
	}
}

func (s *FeastService) Name() string { return "feature.feast" }

func (s *FeastService) GetWineFeatures(ctx context.Context, wineID string) (map[string]float64, error) {
	all, err := s.BatchGetWineFeatures(ctx, []string{wineID})
	if err != nil {
		return nil, err
	}
	return all[wineID], nil
}

func (s *FeastService) BatchGetWineFeatures(ctx context.Context, wineIDs []string) (map[string]map[string]float64, error) {
	if s.Client == nil {
		return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeUnavailable, "feature: feast client not configured")
	}
	if len(wineIDs) == 0 {
		return map[string]map[string]float64{}, nil
	}

	entityKey := s.EntityKey
	if entityKey == "" {
		entityKey = "wine_id"
	}

	entityRows := make([]map[string]any, 0, len(wineIDs))
	for _, id := range wineIDs {
		entityRows = append(entityRows, map[string]any{entityKey: id})
	}

	resp, err := s.Client.GetOnlineFeatures(ctx, &feast.GetOnlineFeaturesRequest{
		Features:   s.Features,
		EntityRows: entityRows,
	})
	if err != nil {
		return nil, fmt.Errorf("feast features for wines: %w", err)
	}

	result := make(map[string]map[string]float64, len(wineIDs))
	for i, vec := range resp.FeatureVectors {
		if i >= len(wineIDs) {
			break
		}
		result[wineIDs[i]] = conv.MapToFloat64(vec.Values)
	}
	return result, nil
}

func (s *FeastService) Close(_ context.Context) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Close()
}

var _ core.FeatureService = (*FeastService)(nil)
