package core

// Recommendation 是最终返回给调用方的推荐条目：候选酒属性 + 匹配分 + 匹配原因。
// 每次请求重新计算，引擎不持久化。
type Recommendation struct {
	WineID       string   `json:"wine_id"`
	WineType     string   `json:"wine_type"`
	Region       string   `json:"region"`
	Country      string   `json:"country"`
	StyleTags    []string `json:"style_tags"`
	Producer     string   `json:"producer"`
	Vintage      int      `json:"vintage"`
	ImageURL     string   `json:"image_url"`
	MatchScore   int      `json:"match_score"`   // 0..100
	MatchReasons []string `json:"match_reasons"` // 按信号贡献降序
}

// NewRecommendation 由打分后的候选酒组装推荐条目。
func NewRecommendation(c *Candidate) Recommendation {
	return Recommendation{
		WineID:       c.ID,
		WineType:     c.WineType,
		Region:       c.Region,
		Country:      c.Country,
		StyleTags:    c.StyleTags,
		Producer:     c.Producer,
		Vintage:      c.Vintage,
		ImageURL:     c.ImageURL,
		MatchScore:   c.Score,
		MatchReasons: c.Reasons,
	}
}
