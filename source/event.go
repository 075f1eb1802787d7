package source

import (
	"context"
	"encoding/json"

	"github.com/vinolab/sommkit/core"
	"github.com/vinolab/sommkit/pipeline"
	"github.com/vinolab/sommkit/pkg/utils"
)

// EventWines 是品鉴会酒单来源：按 rctx.EventID 读取该场活动的候选酒。
// 同时实现 Source 和 Node 接口，可以直接在 Pipeline 中使用。
//
// key 布局：
//   - 酒单（酒 ID 的 JSON 数组）：{KeyPrefix}:{eventID}
//   - 酒文档：{WineKeyPrefix}:{wineID}
type EventWines struct {
	Store core.Store

	// KeyPrefix 默认 "event:wines"
	KeyPrefix string

	// WineKeyPrefix 默认 "wine"
	WineKeyPrefix string

	// Wines 是内存 fallback：Store 为空或酒单缺失时直接使用（测试/演示）
	Wines []*core.Candidate
}

func (s *EventWines) Name() string        { return "source.event" }
func (s *EventWines) Kind() pipeline.Kind { return pipeline.KindSource }

// Process 实现 Node 接口，直接调用 Candidates。
func (s *EventWines) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Candidate,
) ([]*core.Candidate, error) {
	return s.Candidates(ctx, rctx)
}

// Candidates 实现 Source 接口。
func (s *EventWines) Candidates(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Candidate, error) {
	var out []*core.Candidate

	if s.Store != nil && rctx != nil && rctx.EventID != "" {
		keyPrefix := s.KeyPrefix
		if keyPrefix == "" {
			keyPrefix = "event:wines"
		}
		wineKeyPrefix := s.WineKeyPrefix
		if wineKeyPrefix == "" {
			wineKeyPrefix = "wine"
		}

		data, err := s.Store.Get(ctx, keyPrefix+":"+rctx.EventID)
		if err != nil && !core.IsStoreNotFound(err) {
			return nil, err
		}
		if err == nil {
			var ids []string
			if json.Unmarshal(data, &ids) == nil && len(ids) > 0 {
				out, err = loadWines(ctx, s.Store, wineKeyPrefix, ids)
				if err != nil {
					return nil, err
				}
			}
		}
	}

	// Fallback：内存酒单。发放深拷贝——Wines 是常驻池，
	// 下游节点会写 Score/Reasons/Labels，不能让请求之间共享对象。
	if len(out) == 0 && len(s.Wines) > 0 {
		out = make([]*core.Candidate, 0, len(s.Wines))
		for _, w := range s.Wines {
			if w == nil {
				continue
			}
			out = append(out, w.Clone())
		}
	}

	for _, c := range out {
		c.PutLabel("source_name", utils.Label{Value: "event", Source: "source"})
	}
	return out, nil
}
