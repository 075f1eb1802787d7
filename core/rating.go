package core

import "time"

// Rating 是一条用户对某款酒的历史评分记录，由外部评分存储提供（feed A）。
// 引擎只读不写：画像构建的唯一输入就是这些记录。
//
// 可选字段（Region / Country / StyleTags）允许为空——缺失时该记录
// 不参与对应维度的聚合，而不是报错。
type Rating struct {
	WineID    string    `json:"wine_id"`
	WineType  string    `json:"wine_type"` // red / white / rose / sparkling ...
	Region    string    `json:"region"`
	Country   string    `json:"country"`
	StyleTags []string  `json:"style_tags"` // full-bodied / dry / oaky ...
	Score     int       `json:"rating"`     // 1..5
	WouldBuy  bool      `json:"would_buy"`
	RatedAt   time.Time `json:"rated_at"`
}
