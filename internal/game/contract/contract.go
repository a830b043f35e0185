package contract

// Special 定义终局特殊合约类型
type Special string

const (
	SpecialNone     Special = ""
	SpecialRoyalRun Special = "escala_real"  // 皇家顺，13 张同花全顺
	SpecialFalseRun Special = "escala_falsa" // 伪顺，13 张异花全顺
)

// Requirement 合约要求：普通合约按三条/顺子数量计，
// 特殊合约由 Special 标识（目前始终判不满足，见 rule.SatisfiesContract）。
type Requirement struct {
	Trios   int
	Runs    int
	Special Special
}

// IsSpecial 是否为特殊合约
func (r Requirement) IsSpecial() bool {
	return r.Special != SpecialNone
}

// Contract 一轮游戏的合约
type Contract struct {
	ID          int
	Name        string
	Requirement Requirement
}

// 普通合约发 12 张，特殊合约发 13 张
const (
	normalHandSize  = 12
	specialHandSize = 13
)

// HandSize 返回该合约的起手牌数
func (c Contract) HandSize() int {
	if c.Requirement.IsSpecial() {
		return specialHandSize
	}
	return normalHandSize
}

// Default 返回按顺序进行的默认合约表
func Default() []Contract {
	return []Contract{
		{ID: 1, Name: "2 个三条", Requirement: Requirement{Trios: 2}},
		{ID: 2, Name: "1 三条 + 1 顺子", Requirement: Requirement{Trios: 1, Runs: 1}},
		{ID: 3, Name: "2 个顺子", Requirement: Requirement{Runs: 2}},
		{ID: 4, Name: "3 个三条", Requirement: Requirement{Trios: 3}},
		{ID: 5, Name: "2 三条 + 1 顺子", Requirement: Requirement{Trios: 2, Runs: 1}},
		{ID: 6, Name: "1 三条 + 2 顺子", Requirement: Requirement{Trios: 1, Runs: 2}},
		{ID: 7, Name: "3 个顺子", Requirement: Requirement{Runs: 3}},
		{ID: 8, Name: "皇家顺", Requirement: Requirement{Special: SpecialRoyalRun}},
		{ID: 9, Name: "伪顺", Requirement: Requirement{Special: SpecialFalseRun}},
	}
}
