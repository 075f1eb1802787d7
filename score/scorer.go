package score

import (
	"sort"
	"strings"

	"github.com/vinolab/sommkit/core"
)

// 各信号的匹配原因文案。
const (
	reasonFavoriteType   = "Matches your favorite wine type"
	reasonLikedType      = "Matches a wine type you rate highly"
	reasonFavoriteRegion = "From your favorite wine region"
	reasonLikedRegion    = "From a region you love"
	reasonLikedCountry   = "From a country whose wines you enjoy"
	reasonStylePrefix    = "Matches your preferred style"
	reasonColdStart      = "Something new to explore"
)

// Scorer 按口味画像给候选酒逐信号打分（纯函数，无副作用，可并发调用）。
type Scorer struct {
	// Bonus 加分表；nil 时使用 DefaultBonusTable
	Bonus *BonusTable
}

// signal 是一次命中的信号：加分值 + 对应的匹配原因。
type signal struct {
	points int
	reason string
}

// Score 计算候选酒对画像的匹配分（0..100）与匹配原因。
//
// 打分是各独立信号的加和，最后截断到 [0, 100]：
//   - 类型命中：按画像名次查 TypeRankBonus（名次越靠前加分越多）
//   - 产区命中：同样按名次衰减；产区未命中但国家命中给 CountryBonus
//   - 风格重合：每个重合标签加 StyleTagBonus，多标签叠加
//   - 冷启动兜底：画像稀疏且类型从未评过时给 ColdStartBonus
//
// 原因按信号加分值降序排列；没命中的维度保持沉默。
func (s *Scorer) Score(c *core.Candidate, p *core.TasteProfile) (int, []string) {
	bonus := s.Bonus
	if bonus == nil {
		bonus = DefaultBonusTable()
	}

	signals := make([]signal, 0, 4)

	// 类型命中
	typeRank := p.TypeRank(c.WineType)
	if typeRank >= 0 && typeRank < len(bonus.TypeRankBonus) {
		reason := reasonLikedType
		if typeRank == 0 {
			reason = reasonFavoriteType
		}
		signals = append(signals, signal{points: bonus.TypeRankBonus[typeRank], reason: reason})
	}

	// 产区命中；未命中时退而检查国家
	regionRank := p.RegionRank(c.Region)
	switch {
	case regionRank >= 0 && regionRank < len(bonus.RegionRankBonus):
		reason := reasonLikedRegion
		if regionRank == 0 {
			reason = reasonFavoriteRegion
		}
		signals = append(signals, signal{points: bonus.RegionRankBonus[regionRank], reason: reason})
	case p.HasCountry(c.Country):
		signals = append(signals, signal{points: bonus.CountryBonus, reason: reasonLikedCountry})
	}

	// 风格重合：多个标签同时命中应当叠加
	var matched []string
	for _, tag := range c.StyleTags {
		if p.HasStyle(tag) {
			matched = append(matched, tag)
		}
	}
	if len(matched) > 0 {
		reason := reasonStylePrefix + ": " + strings.Join(matched, ", ")
		if len(matched) > 1 {
			reason = reasonStylePrefix + "s: " + strings.Join(matched, ", ")
		}
		signals = append(signals, signal{points: bonus.StyleTagBonus * len(matched), reason: reason})
	}

	// 冷启动兜底：只在画像稀疏且该类型从未被评过时触发，
	// 画像数据足够后由真实偏好接管
	if p.IsEmpty() || p.TotalRatings < bonus.ColdStartThreshold {
		if typeRank < 0 {
			signals = append(signals, signal{points: bonus.ColdStartBonus, reason: reasonColdStart})
		}
	}

	total := 0
	for _, sig := range signals {
		total += sig.points
	}
	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}

	sort.SliceStable(signals, func(i, j int) bool {
		return signals[i].points > signals[j].points
	})
	reasons := make([]string, 0, len(signals))
	for _, sig := range signals {
		reasons = append(reasons, sig.reason)
	}

	return total, reasons
}
