package source

import (
	"context"
	"encoding/json"

	"github.com/vinolab/sommkit/core"
	"github.com/vinolab/sommkit/pipeline"
	"github.com/vinolab/sommkit/pkg/utils"
)

// Catalog 是全局酒库来源，按热度榜取 TopK 款酒作为候选池。
//   - Store 实现 KeyValueStore 时优先走 ZRange（热度有序集合，降序）
//   - 否则从普通 key 读取酒 ID 的 JSON 数组
//   - Store 为空时使用内存 Wines 作为 fallback
//
// key 布局：
//   - 热度榜（zset，score 为热度）：{RankKey}
//   - 酒文档：{WineKeyPrefix}:{wineID}
type Catalog struct {
	Store core.Store

	// RankKey 默认 "catalog:rank"
	RankKey string

	// WineKeyPrefix 默认 "wine"
	WineKeyPrefix string

	// TopK 候选池大小，<= 0 时取默认值
	TopK int

	// Wines 是内存 fallback 酒库（测试/演示）
	Wines []*core.Candidate
}

func (s *Catalog) Name() string        { return "source.catalog" }
func (s *Catalog) Kind() pipeline.Kind { return pipeline.KindSource }

// Process 实现 Node 接口，直接调用 Candidates。
func (s *Catalog) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Candidate,
) ([]*core.Candidate, error) {
	return s.Candidates(ctx, rctx)
}

// Candidates 实现 Source 接口。
func (s *Catalog) Candidates(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Candidate, error) {
	topK := s.TopK
	if topK <= 0 {
		topK = (&core.DefaultEngineConfig{}).DefaultCatalogTopK()
	}

	var out []*core.Candidate

	if s.Store != nil {
		rankKey := s.RankKey
		if rankKey == "" {
			rankKey = "catalog:rank"
		}
		wineKeyPrefix := s.WineKeyPrefix
		if wineKeyPrefix == "" {
			wineKeyPrefix = "wine"
		}

		var ids []string
		if kvStore, ok := s.Store.(core.KeyValueStore); ok {
			members, err := kvStore.ZRange(ctx, rankKey, 0, int64(topK)-1)
			if err == nil {
				ids = members
			}
		} else {
			data, err := s.Store.Get(ctx, rankKey)
			if err == nil {
				var parsed []string
				if json.Unmarshal(data, &parsed) == nil {
					ids = parsed
				}
			}
		}

		if len(ids) > topK {
			ids = ids[:topK]
		}
		if len(ids) > 0 {
			var err error
			out, err = loadWines(ctx, s.Store, wineKeyPrefix, ids)
			if err != nil {
				return nil, err
			}
		}
	}

	// Fallback：内存酒库。发放深拷贝，理由同 EventWines：
	// 常驻池对象不能被请求内的打分/标签写入污染。
	if len(out) == 0 && len(s.Wines) > 0 {
		n := len(s.Wines)
		if n > topK {
			n = topK
		}
		out = make([]*core.Candidate, 0, n)
		for _, w := range s.Wines[:n] {
			if w == nil {
				continue
			}
			out = append(out, w.Clone())
		}
	}

	for _, c := range out {
		c.PutLabel("source_name", utils.Label{Value: "catalog", Source: "source"})
	}
	return out, nil
}
