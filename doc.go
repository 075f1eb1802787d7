// Package sommkit 是一个品酒口味画像与推荐引擎工具包（Sommelier Kit）。
//
// 设计要点：
// - Profile-first: 口味画像由用户评分直接构建（类型 / 产区 / 风格标签三个维度）
// - Pipeline-first: 推荐逻辑通过 Node 串联（Source → Filter → Score → ReRank → PostProcess）
// - Reasons-first: 每个匹配分都附带人话原因，推荐结果可以向用户解释
// - Node 可扩展: 自定义 Node 即可插拔扩展（内存、Redis 或远端特征服务均可）
package sommkit

import "github.com/vinolab/sommkit/pipeline"

// 轻量 facade：便于用户直接 import "sommkit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindSource      = pipeline.KindSource
	KindFilter      = pipeline.KindFilter
	KindScore       = pipeline.KindScore
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
