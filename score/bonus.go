package score

// BonusTable 集中定义各匹配信号的加分值。
//
// 逐名次加分表（TypeRankBonus / RegionRankBonus）是显式的有序切片：
// 下标即画像偏好名次（0 为最偏好），名次越靠后加分越少，超出表长不加分。
// 衰减曲线因此是一个可调参数，而不是散落在打分逻辑里的字面量。
type BonusTable struct {
	// TypeRankBonus 酒类型命中加分，按画像中该类型的名次取值
	TypeRankBonus []int

	// RegionRankBonus 产区命中加分，按画像中该产区的名次取值
	RegionRankBonus []int

	// CountryBonus 产区未命中但国家命中时的部分加分
	CountryBonus int

	// StyleTagBonus 每个重合风格标签的固定加分（多标签叠加，不按名次衰减）
	StyleTagBonus int

	// ColdStartBonus 冷启动兜底加分：画像稀疏且候选类型从未被评过时给出，
	// 避免"还没数据"的用户拿到一串零分结果
	ColdStartBonus int

	// ColdStartThreshold 画像评分数低于此值视为稀疏
	ColdStartThreshold int
}

// DefaultBonusTable 返回默认加分表。
func DefaultBonusTable() *BonusTable {
	return &BonusTable{
		TypeRankBonus:      []int{30, 20, 12, 6},
		RegionRankBonus:    []int{25, 16, 10, 5},
		CountryBonus:       8,
		StyleTagBonus:      7,
		ColdStartBonus:     15,
		ColdStartThreshold: 3,
	}
}
