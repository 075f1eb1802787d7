package profile

import (
	"sort"
	"time"

	"github.com/vinolab/sommkit/core"
)

// Build 把一个用户的全部历史评分聚合成口味画像（TasteProfile）。
//
// 聚合规则（三个维度共用）：
//   - 按维度 key 分组（酒类型 / 产区 / 风格标签）
//   - weight = 组内评分值之和：一款 5 星酒比两款 2 星酒贡献更大（5 > 4），
//     高评分 + 重复出现会复利式放大偏好
//   - count = 组内评分条数，average = 组内评分均值
//   - 一条评分带几个风格标签就计入几个风格分组
//
// 排序：weight 降序；相同 weight 按 count 降序；再相同按该组最早出现的
// 评分时间（rated_at）升序，最后按 key 字典序兜底。tie-break 只依赖
// 记录内容，不依赖切片顺序——同一批评分无论怎么打乱，输出完全一致。
//
// 空输入返回零值画像；缺 region/country/style 的记录只是不参与对应维度，
// 绝不报错。单独一条高评分就足以形成偏好信号——不设最小样本数门槛，
// 这是沿用下来的产品决策而非缺陷。
func Build(ratings []core.Rating) *core.TasteProfile {
	p := core.NewTasteProfile()
	if len(ratings) == 0 {
		return p
	}

	type group struct {
		key        string
		country    string
		weight     int
		count      int
		earliestAt time.Time // 组内最早的评分时间，用于稳定 tie-break
	}
	var (
		types      []*group
		typeIdx    = make(map[string]*group)
		regions    []*group
		regionIdx  = make(map[string]*group)
		styles     []*group
		styleIdx   = make(map[string]*group)
		totalScore int
	)

	add := func(list *[]*group, idx map[string]*group, key, country string, r core.Rating) {
		g, ok := idx[key]
		if !ok {
			g = &group{key: key, country: country, earliestAt: r.RatedAt}
			idx[key] = g
			*list = append(*list, g)
		}
		g.weight += r.Score
		g.count++
		if g.country == "" && country != "" {
			g.country = country
		}
		if r.RatedAt.Before(g.earliestAt) {
			g.earliestAt = r.RatedAt
		}
	}

	for _, r := range ratings {
		totalScore += r.Score

		if r.WineType != "" {
			add(&types, typeIdx, r.WineType, "", r)
		}
		if r.Region != "" {
			add(&regions, regionIdx, r.Region, r.Country, r)
		}
		for _, tag := range r.StyleTags {
			if tag == "" {
				continue
			}
			add(&styles, styleIdx, tag, "", r)
		}
	}

	p.TotalRatings = len(ratings)
	p.AverageRating = float64(totalScore) / float64(len(ratings))

	sortGroups := func(groups []*group) {
		sort.SliceStable(groups, func(i, j int) bool {
			a, b := groups[i], groups[j]
			if a.weight != b.weight {
				return a.weight > b.weight
			}
			if a.count != b.count {
				return a.count > b.count
			}
			if !a.earliestAt.Equal(b.earliestAt) {
				return a.earliestAt.Before(b.earliestAt)
			}
			return a.key < b.key
		})
	}
	sortGroups(types)
	sortGroups(regions)
	sortGroups(styles)

	for _, g := range types {
		p.PreferredTypes = append(p.PreferredTypes, core.TypePreference{
			WineType:      g.key,
			Weight:        g.weight,
			AverageRating: float64(g.weight) / float64(g.count),
			Count:         g.count,
		})
	}
	for _, g := range regions {
		p.PreferredRegions = append(p.PreferredRegions, core.RegionPreference{
			Region:        g.key,
			Country:       g.country,
			Weight:        g.weight,
			AverageRating: float64(g.weight) / float64(g.count),
			Count:         g.count,
		})
	}
	for _, g := range styles {
		p.PreferredStyles = append(p.PreferredStyles, core.StylePreference{
			Style:  g.key,
			Weight: g.weight,
			Count:  g.count,
		})
	}

	return p
}
