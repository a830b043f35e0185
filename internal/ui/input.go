package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/palemoky/carioca-online/internal/game/card"
	"github.com/palemoky/carioca-online/internal/protocol"
	"github.com/palemoky/carioca-online/internal/protocol/convert"
)

// executeCommand 解析并发送回合内指令。手牌通过 1 开始的序号引用，
// 序号对应当前排序后的手牌位置。
//
//	d / draw      从牌堆摸牌
//	p / pick      捡弃牌堆顶
//	m 1 2 3 ...   放牌（首次须满足合约）
//	a 4 5 [t2]    把牌接到桌面组合，t 指定目标编号
//	x 7           弃掉第 7 张牌，结束回合
func (m *OnlineModel) executeCommand(input string) error {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "d", "draw":
		return m.client.Draw(protocol.DrawSourceDeck)

	case "p", "pick":
		return m.client.Draw(protocol.DrawSourceDiscard)

	case "m", "meld":
		cards, err := m.cardsAt(fields[1:])
		if err != nil {
			return err
		}
		return m.client.LayDown(convert.CardsToInfos(cards))

	case "a", "add":
		indices, target, err := splitExtendArgs(fields[1:])
		if err != nil {
			return err
		}
		cards, err := m.cardsAt(indices)
		if err != nil {
			return err
		}
		return m.client.Extend(convert.CardsToInfos(cards), target)

	case "x", "discard":
		if len(fields) != 2 {
			return errors.New("用法: x <序号>")
		}
		cards, err := m.cardsAt(fields[1:])
		if err != nil {
			return err
		}
		return m.client.Discard(convert.CardToInfo(cards[0]))
	}

	return fmt.Errorf("未知指令: %s（H 查看帮助）", fields[0])
}

// cardsAt 把 1 开始的序号列表换成手牌里的牌
func (m *OnlineModel) cardsAt(args []string) ([]card.Card, error) {
	if len(args) == 0 {
		return nil, errors.New("请给出手牌序号")
	}

	hand := m.state.Hand
	seen := make(map[int]bool, len(args))
	cards := make([]card.Card, 0, len(args))
	for _, arg := range args {
		idx, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("无效序号: %s", arg)
		}
		if idx < 1 || idx > len(hand) {
			return nil, fmt.Errorf("序号超出范围: %d", idx)
		}
		if seen[idx] {
			return nil, fmt.Errorf("序号重复: %d", idx)
		}
		seen[idx] = true
		cards = append(cards, hand[idx-1])
	}
	return cards, nil
}

// splitExtendArgs 拆出接牌序号和可选的 t<N> 目标。
// 目标同样从 1 开始编号，未指定时交给服务端判定。
func splitExtendArgs(args []string) (indices []string, target int, err error) {
	target = -1
	for _, arg := range args {
		if strings.HasPrefix(arg, "t") && len(arg) > 1 {
			n, convErr := strconv.Atoi(arg[1:])
			if convErr != nil || n < 1 {
				return nil, 0, fmt.Errorf("无效目标: %s", arg)
			}
			target = n - 1
			continue
		}
		indices = append(indices, arg)
	}
	if len(indices) == 0 {
		return nil, 0, errors.New("请给出手牌序号")
	}
	return indices, target, nil
}
