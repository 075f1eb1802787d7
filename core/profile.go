package core

// TasteProfile 是用户口味画像：由历史评分聚合出的加权偏好摘要。
//
// 一句话定义：口味画像 = 推荐 Pipeline 的"评分信号 → 偏好排序"压缩结果
//
// 它不是某一个 Node，而是：
//   - 由 profile.Builder 按需重建（本引擎不落库）
//   - 被 Scorer 用于逐信号打分
//   - 可以由调用方按用户缓存（见 profile.Cache，新评分写入即失效）
//
// 权重语义：weight = 该分组内评分值之和。一款 5 星酒对其类型的贡献
// 大于两款 2 星酒之和（5 > 4），体现偏好强度而非单纯出现次数。
//
// 不变式：weight 非负；三个偏好列表均按 weight 降序，权重相同时
// count 高者在前，再相同时按首次出现顺序——相同输入必得相同输出。
type TasteProfile struct {
	TotalRatings  int     `json:"total_ratings"`
	AverageRating float64 `json:"average_rating"` // 全部评分的无权平均；无评分时为 0

	PreferredTypes   []TypePreference   `json:"preferred_types"`
	PreferredRegions []RegionPreference `json:"preferred_regions"`
	PreferredStyles  []StylePreference  `json:"preferred_styles"`
}

// TypePreference 是单个酒类型的偏好条目。
type TypePreference struct {
	WineType      string  `json:"wine_type"`
	Weight        int     `json:"weight"` // 该类型下所有评分值之和
	AverageRating float64 `json:"average_rating"`
	Count         int     `json:"count"`
}

// RegionPreference 是单个产区的偏好条目。Country 随产区一起记录，
// 用于"产区未命中但国家命中"的部分加分。
type RegionPreference struct {
	Region        string  `json:"region"`
	Country       string  `json:"country"`
	Weight        int     `json:"weight"`
	AverageRating float64 `json:"average_rating"`
	Count         int     `json:"count"`
}

// StylePreference 是单个风格标签的偏好条目。
// 一条评分可以同时计入多个风格分组（一款酒带几个标签就计几个）。
type StylePreference struct {
	Style  string `json:"style"`
	Weight int    `json:"weight"`
	Count  int    `json:"count"`
}

// NewTasteProfile 返回零值画像（无任何评分时的合法结果）。
func NewTasteProfile() *TasteProfile {
	return &TasteProfile{
		PreferredTypes:   make([]TypePreference, 0),
		PreferredRegions: make([]RegionPreference, 0),
		PreferredStyles:  make([]StylePreference, 0),
	}
}

// TypeRank 返回 wineType 在偏好列表中的名次（0 为最偏好），未出现返回 -1。
func (p *TasteProfile) TypeRank(wineType string) int {
	if p == nil || wineType == "" {
		return -1
	}
	for i, t := range p.PreferredTypes {
		if t.WineType == wineType {
			return i
		}
	}
	return -1
}

// RegionRank 返回 region 在偏好列表中的名次（0 为最偏好），未出现返回 -1。
func (p *TasteProfile) RegionRank(region string) int {
	if p == nil || region == "" {
		return -1
	}
	for i, r := range p.PreferredRegions {
		if r.Region == region {
			return i
		}
	}
	return -1
}

// HasCountry 检查某个国家是否出现在产区偏好中（用于国家级部分加分）。
func (p *TasteProfile) HasCountry(country string) bool {
	if p == nil || country == "" {
		return false
	}
	for _, r := range p.PreferredRegions {
		if r.Country == country {
			return true
		}
	}
	return false
}

// HasStyle 检查某个风格标签是否出现在风格偏好中。
func (p *TasteProfile) HasStyle(style string) bool {
	if p == nil || style == "" {
		return false
	}
	for _, s := range p.PreferredStyles {
		if s.Style == style {
			return true
		}
	}
	return false
}

// IsEmpty 返回画像是否没有任何评分支撑（冷启动状态）。
func (p *TasteProfile) IsEmpty() bool {
	return p == nil || p.TotalRatings == 0
}
