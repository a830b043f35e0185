package convert

import (
	"github.com/palemoky/carioca-online/internal/game/contract"
	"github.com/palemoky/carioca-online/internal/game/rule"
	"github.com/palemoky/carioca-online/internal/protocol"
)

// 组合类型的线上标识，与展示用的 String() 区分开
const (
	kindTrio = "trio"
	kindRun  = "run"
)

// KindToWire 将组合类型转换为线上标识
func KindToWire(k rule.Kind) string {
	if k == rule.KindRun {
		return kindRun
	}
	return kindTrio
}

// ComboToInfo 将桌面组合转换为 protocol.ComboInfo
func ComboToInfo(ownerID string, combo *rule.Combination) protocol.ComboInfo {
	return protocol.ComboInfo{
		Kind:    KindToWire(combo.Kind),
		OwnerID: ownerID,
		Cards:   CardsToInfos(combo.Cards),
	}
}

// ContractToInfo 将合约转换为 protocol.ContractInfo
func ContractToInfo(c contract.Contract) protocol.ContractInfo {
	return protocol.ContractInfo{
		ID:       c.ID,
		Name:     c.Name,
		Trios:    c.Requirement.Trios,
		Runs:     c.Requirement.Runs,
		Special:  string(c.Requirement.Special),
		HandSize: c.HandSize(),
	}
}

// ContractsToInfos 将合约表转换为 []protocol.ContractInfo
func ContractsToInfos(contracts []contract.Contract) []protocol.ContractInfo {
	infos := make([]protocol.ContractInfo, len(contracts))
	for i, c := range contracts {
		infos[i] = ContractToInfo(c)
	}
	return infos
}
