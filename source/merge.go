package source

import (
	"strconv"

	"github.com/vinolab/sommkit/core"
)

// MergeStrategy 定义多来源结果的合并规则。
type MergeStrategy interface {
	Name() string
	Merge(all []*core.Candidate) []*core.Candidate
}

// UnionMergeStrategy 合并所有结果，不去重（需要保留所有来源时使用）。
type UnionMergeStrategy struct{}

func (s *UnionMergeStrategy) Name() string { return "union" }

func (s *UnionMergeStrategy) Merge(all []*core.Candidate) []*core.Candidate {
	return all
}

// FirstMergeStrategy 按 ID 去重，保留第一个出现的（默认策略）。
// 被去掉的候选的 Labels 合并进保留者，解释信息不丢。
type FirstMergeStrategy struct{}

func (s *FirstMergeStrategy) Name() string { return "first" }

func (s *FirstMergeStrategy) Merge(all []*core.Candidate) []*core.Candidate {
	seen := make(map[string]*core.Candidate, len(all))
	out := make([]*core.Candidate, 0, len(all))
	for _, c := range all {
		if c == nil {
			continue
		}
		if old, ok := seen[c.ID]; ok {
			for k, v := range c.Labels {
				old.PutLabel(k, v)
			}
			continue
		}
		seen[c.ID] = c
		out = append(out, c)
	}
	return out
}

// PriorityMergeStrategy 按来源优先级去重：相同 ID 保留优先级更高的
// （Fanout 中 Sources 的索引越小优先级越高）。
type PriorityMergeStrategy struct{}

func (s *PriorityMergeStrategy) Name() string { return "priority" }

func (s *PriorityMergeStrategy) Merge(all []*core.Candidate) []*core.Candidate {
	seen := make(map[string]*core.Candidate, len(all))
	order := make([]string, 0, len(all))
	for _, c := range all {
		if c == nil {
			continue
		}
		old, exists := seen[c.ID]
		if !exists {
			seen[c.ID] = c
			order = append(order, c.ID)
			continue
		}
		if sourcePriority(c) < sourcePriority(old) {
			// 新候选优先级更高，继承旧候选的 labels 后替换
			for k, v := range old.Labels {
				c.PutLabel(k, v)
			}
			seen[c.ID] = c
		} else {
			for k, v := range c.Labels {
				old.PutLabel(k, v)
			}
		}
	}
	out := make([]*core.Candidate, 0, len(order))
	for _, id := range order {
		out = append(out, seen[id])
	}
	return out
}

func sourcePriority(c *core.Candidate) int {
	lbl, ok := c.Labels["source_priority"]
	if !ok {
		return 1 << 30
	}
	// 合并过的 Label 可能是 "0|1" 形式，取第一段
	v := lbl.Value
	for i := 0; i < len(v); i++ {
		if v[i] == '|' {
			v = v[:i]
			break
		}
	}
	p, err := strconv.Atoi(v)
	if err != nil {
		return 1 << 30
	}
	return p
}
