package core

import "github.com/vinolab/sommkit/pkg/utils"

// Candidate 是推荐链路中的统一承载结构：一款待打分的候选酒。
// 类型化的酒属性用于打分决策；Labels 用于解释与策略驱动；
// Features 供特征补充节点写入（如社区均分），不参与匹配打分。
type Candidate struct {
	ID           string
	WineType     string
	Region       string
	Country      string
	StyleTags    []string
	Producer     string
	Vintage      int
	ImageURL     string
	AlreadyRated bool

	Score    int      // 匹配分，0..100，由 ScoreNode 写入
	Reasons  []string // 匹配原因，按信号贡献降序，由 ScoreNode 写入
	Features map[string]float64
	Labels   map[string]utils.Label
}

func NewCandidate(id string) *Candidate {
	return &Candidate{
		ID:       id,
		Features: make(map[string]float64),
		Labels:   make(map[string]utils.Label),
	}
}

// Clone 返回候选的深拷贝（切片与 map 均复制）。
// 常驻内存的候选池（如来源的 fallback 酒单）每次请求必须发放拷贝，
// 否则 Score/Reasons/Labels 会跨请求泄漏，并发请求还会竞争写同一对象。
func (c *Candidate) Clone() *Candidate {
	if c == nil {
		return nil
	}

	dup := *c
	if c.StyleTags != nil {
		dup.StyleTags = make([]string, len(c.StyleTags))
		copy(dup.StyleTags, c.StyleTags)
	}
	if c.Reasons != nil {
		dup.Reasons = make([]string, len(c.Reasons))
		copy(dup.Reasons, c.Reasons)
	}
	dup.Features = make(map[string]float64, len(c.Features))
	for k, v := range c.Features {
		dup.Features[k] = v
	}
	dup.Labels = make(map[string]utils.Label, len(c.Labels))
	for k, v := range c.Labels {
		dup.Labels[k] = v
	}
	return &dup
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (c *Candidate) PutLabel(key string, lbl utils.Label) {
	if c.Labels == nil {
		c.Labels = make(map[string]utils.Label)
	}
	if old, ok := c.Labels[key]; ok {
		c.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	c.Labels[key] = lbl
}
