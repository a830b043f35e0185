package rule

import (
	"github.com/palemoky/carioca-online/internal/game/contract"
)

// SatisfiesContract 判断分解结果的数量是否满足合约要求。
// 特殊合约（皇家顺/伪顺）尚未实现校验逻辑，统一判不满足，
// 由调用方提示玩家无法下牌，而不是静默地部分生效。
func SatisfiesContract(req contract.Requirement, counts Counts) bool {
	if req.IsSpecial() {
		return false
	}
	return counts.Trios >= req.Trios && counts.Runs >= req.Runs
}
