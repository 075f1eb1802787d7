// Package builders 注册内置 Node 的配置构建器。
// 业务侧以匿名 import 引入即可启用配置驱动：
//
//	import _ "github.com/vinolab/sommkit/config/builders"
//
// 依赖外部客户端的 Node（如 feature.enrich 需要特征服务实例）
// 不在此注册，需在代码中构建后追加到 Pipeline。
package builders

import (
	"fmt"
	"time"

	"github.com/vinolab/sommkit/config"
	"github.com/vinolab/sommkit/core"
	"github.com/vinolab/sommkit/filter"
	"github.com/vinolab/sommkit/pipeline"
	"github.com/vinolab/sommkit/pkg/conv"
	"github.com/vinolab/sommkit/rerank"
	"github.com/vinolab/sommkit/score"
	"github.com/vinolab/sommkit/source"
)

func init() {
	config.Register("source.event", buildEventSource)
	config.Register("source.catalog", buildCatalogSource)
	config.Register("source.fanout", buildFanoutSource)
	config.Register("filter", buildFilterNode)
	config.Register("score.profile", buildScoreNode)
	config.Register("rerank.topn", buildTopNNode)
	config.Register("rerank.diversity", buildDiversityNode)
}

// candidatesFromConfig 解析配置中内联的酒款列表（测试/演示用的内存 fallback）。
// 每项为 map：{id, wine_type, region, country, style_tags, producer, vintage, image_url}。
func candidatesFromConfig(cfg map[string]any, key string) []*core.Candidate {
	raw, ok := cfg[key].([]any)
	if !ok {
		return nil
	}

	wines := make([]*core.Candidate, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		id, _ := conv.ToString(m["id"])
		if id == "" {
			continue
		}
		c := core.NewCandidate(id)
		c.WineType = conv.ConfigGet(m, "wine_type", "")
		c.Region = conv.ConfigGet(m, "region", "")
		c.Country = conv.ConfigGet(m, "country", "")
		c.StyleTags = conv.SliceAnyToString(m["style_tags"])
		c.Producer = conv.ConfigGet(m, "producer", "")
		c.Vintage = conv.ConfigGetInt(m, "vintage", 0)
		c.ImageURL = conv.ConfigGet(m, "image_url", "")
		wines = append(wines, c)
	}
	return wines
}

func buildEventSource(cfg map[string]any) (pipeline.Node, error) {
	return &source.EventWines{
		KeyPrefix:     conv.ConfigGet(cfg, "key_prefix", ""),
		WineKeyPrefix: conv.ConfigGet(cfg, "wine_key_prefix", ""),
		Wines:         candidatesFromConfig(cfg, "wines"),
	}, nil
}

func buildCatalogSource(cfg map[string]any) (pipeline.Node, error) {
	return &source.Catalog{
		RankKey:       conv.ConfigGet(cfg, "rank_key", ""),
		WineKeyPrefix: conv.ConfigGet(cfg, "wine_key_prefix", ""),
		TopK:          conv.ConfigGetInt(cfg, "top_k", 0),
		Wines:         candidatesFromConfig(cfg, "wines"),
	}, nil
}

// buildFanoutSource 递归构建子来源，子来源沿用统一的 node 配置格式：
//
//	type: source.fanout
//	config:
//	  timeout_ms: 200
//	  sources:
//	    - type: source.event
//	      config: {...}
//	    - type: source.catalog
//	      config: {...}
func buildFanoutSource(cfg map[string]any) (pipeline.Node, error) {
	rawSources, ok := cfg["sources"].([]any)
	if !ok || len(rawSources) == 0 {
		return nil, fmt.Errorf("source.fanout requires a sources list")
	}

	factory := config.DefaultFactory()
	sources := make([]source.Source, 0, len(rawSources))
	for i, rs := range rawSources {
		m, ok := rs.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("source.fanout: sources[%d] is not a map", i)
		}
		typeName, _ := conv.ToString(m["type"])
		childCfg, _ := m["config"].(map[string]any)

		node, err := factory.Build(typeName, childCfg)
		if err != nil {
			return nil, fmt.Errorf("source.fanout: build sources[%d]: %w", i, err)
		}
		src, ok := node.(source.Source)
		if !ok {
			return nil, fmt.Errorf("source.fanout: node type %q is not a source", typeName)
		}
		sources = append(sources, src)
	}

	fanout := &source.Fanout{
		Sources:       sources,
		MaxConcurrent: conv.ConfigGetInt(cfg, "max_concurrent", 0),
	}
	if ms := conv.ConfigGetInt(cfg, "timeout_ms", 0); ms > 0 {
		fanout.Timeout = time.Duration(ms) * time.Millisecond
	}
	switch conv.ConfigGet(cfg, "merge", "") {
	case "union":
		fanout.Merge = &source.UnionMergeStrategy{}
	case "priority":
		fanout.Merge = &source.PriorityMergeStrategy{}
	case "", "first":
		fanout.Merge = &source.FirstMergeStrategy{}
	default:
		return nil, fmt.Errorf("source.fanout: unknown merge strategy %q", cfg["merge"])
	}
	return fanout, nil
}

// buildFilterNode 组合多个过滤器：
//
//	type: filter
//	config:
//	  exclude_rated: true          # 常开的已评分过滤，不依赖 rctx.ExcludeRated
//	  rules:                       # CEL 保留表达式，逐条叠加
//	    - 'candidate.vintage >= 2015'
func buildFilterNode(cfg map[string]any) (pipeline.Node, error) {
	var filters []filter.Filter
	if conv.ConfigGet(cfg, "exclude_rated", false) {
		f := filter.NewRatedFilter(nil, conv.ConfigGet(cfg, "rated_key_prefix", ""))
		// YAML 里声明了排除就应当生效，不再等请求侧开关
		f.Always = true
		filters = append(filters, f)
	}
	for _, expr := range conv.SliceAnyToString(cfg["rules"]) {
		if expr == "" {
			continue
		}
		filters = append(filters, filter.NewRuleFilter(expr))
	}
	return &filter.Node{Filters: filters}, nil
}

// buildScoreNode 支持覆盖加分表，缺省项沿用默认值：
//
//	type: score.profile
//	config:
//	  type_rank_bonus: [30, 20, 12, 6]
//	  style_tag_bonus: 7
func buildScoreNode(cfg map[string]any) (pipeline.Node, error) {
	bonus := score.DefaultBonusTable()
	if v := conv.SliceAnyToInt(cfg["type_rank_bonus"]); len(v) > 0 {
		bonus.TypeRankBonus = v
	}
	if v := conv.SliceAnyToInt(cfg["region_rank_bonus"]); len(v) > 0 {
		bonus.RegionRankBonus = v
	}
	bonus.CountryBonus = conv.ConfigGetInt(cfg, "country_bonus", bonus.CountryBonus)
	bonus.StyleTagBonus = conv.ConfigGetInt(cfg, "style_tag_bonus", bonus.StyleTagBonus)
	bonus.ColdStartBonus = conv.ConfigGetInt(cfg, "cold_start_bonus", bonus.ColdStartBonus)
	bonus.ColdStartThreshold = conv.ConfigGetInt(cfg, "cold_start_threshold", bonus.ColdStartThreshold)

	return &score.Node{Scorer: &score.Scorer{Bonus: bonus}}, nil
}

func buildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.TopN{N: conv.ConfigGetInt(cfg, "n", 0)}, nil
}

func buildDiversityNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.Diversity{MaxPerType: conv.ConfigGetInt(cfg, "max_per_type", 0)}, nil
}
