package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/carioca-online/internal/game/card"
	"github.com/palemoky/carioca-online/internal/protocol/convert"
)

// --- 视图渲染 ---

func (m *OnlineModel) center(s string) string {
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
}

func (m *OnlineModel) connectingView() string {
	msg := "🔌 正在连接服务器..."
	if m.error != "" {
		msg = errorStyle.Render(m.error)
	}
	return lipgloss.NewStyle().
		Width(m.width).
		Align(lipgloss.Center).
		Render(msg)
}

func (m *OnlineModel) lobbyView() string {
	var sb strings.Builder

	sb.WriteString(m.center(titleStyle("🎴 Carioca Online")))
	sb.WriteString("\n\n")

	if m.playerName != "" {
		welcome := fmt.Sprintf("欢迎, %s!", m.playerName)
		if m.onlineCount > 0 {
			welcome += dimStyle.Render(fmt.Sprintf("  (在线 %d 人)", m.onlineCount))
		}
		sb.WriteString(m.center(welcome))
		sb.WriteString("\n\n")
	}

	menu := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		"请选择:",
		"",
		"  1. 快速匹配",
		"  2. 创建房间",
		"  3. 加入房间",
		"  4. 排行榜",
		"  5. 我的战绩",
		"  6. 游戏规则",
	))
	sb.WriteString(m.center(menu))
	sb.WriteString("\n\n")
	sb.WriteString(m.center(m.input.View()))

	if m.reconnectMessage != "" {
		sb.WriteString("\n" + m.center(m.reconnectMessage))
	}
	if m.error != "" {
		sb.WriteString("\n" + m.center(errorStyle.Render(m.error)))
	}

	return sb.String()
}

func (m *OnlineModel) roomListView() string {
	var sb strings.Builder

	sb.WriteString(m.center(titleStyle("📋 可加入的房间")))
	sb.WriteString("\n\n")

	if len(m.availableRooms) == 0 {
		sb.WriteString(m.center("暂无可加入的房间\n\n按 ESC 返回大厅"))
	} else {
		var roomList strings.Builder
		roomList.WriteString("房间列表:\n\n")
		for i, room := range m.availableRooms {
			prefix := "  "
			if i == m.selectedRoomIdx {
				prefix = "▶ "
			}
			roomList.WriteString(fmt.Sprintf("%s房间 %s  (%d/%d)\n",
				prefix, room.RoomCode, room.PlayerCount, room.MaxPlayers))
		}
		roomList.WriteString("\n↑↓ 选择  回车加入  ESC 返回")
		sb.WriteString(m.center(boxStyle.Render(roomList.String())))
		sb.WriteString("\n\n")
	}

	sb.WriteString(m.center(m.input.View()))

	if m.error != "" {
		sb.WriteString("\n" + m.center(errorStyle.Render(m.error)))
	}

	return sb.String()
}

func (m *OnlineModel) matchingView() string {
	elapsed := ""
	if !m.matchingStartTime.IsZero() {
		seconds := int(time.Since(m.matchingStartTime).Seconds())
		elapsed = fmt.Sprintf("\n已等待: %d 秒", seconds)
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("🔍 正在匹配中...%s\n\n按 ESC 取消", elapsed))
}

func (m *OnlineModel) waitingView() string {
	var sb strings.Builder

	sb.WriteString(m.center(titleStyle(fmt.Sprintf("🏠 房间: %s", m.state.RoomCode))))
	sb.WriteString("\n\n")

	var playerList strings.Builder
	playerList.WriteString("玩家列表:\n")
	for _, p := range m.state.Players {
		readyStr := "❌"
		if p.Ready {
			readyStr = "✅"
		}
		meStr := ""
		if p.ID == m.playerID {
			meStr = " (你)"
		}
		botStr := ""
		if p.IsBot {
			botStr = " 🤖"
		}
		playerList.WriteString(fmt.Sprintf("  %s %s%s%s\n", readyStr, p.Name, botStr, meStr))
	}
	playerList.WriteString(fmt.Sprintf("\n等待玩家: %d/4", len(m.state.Players)))

	sb.WriteString(m.center(boxStyle.Render(playerList.String())))
	sb.WriteString("\n\n")
	sb.WriteString(m.center(m.input.View()))

	if m.error != "" {
		sb.WriteString("\n" + m.center(errorStyle.Render(m.error)))
	}

	return sb.String()
}

func (m *OnlineModel) gameView() string {
	var sb strings.Builder

	// 顶部：合约与牌堆信息
	sb.WriteString(m.center(m.renderRoundHeader()))
	sb.WriteString("\n")

	// 记牌器（如果启用）
	if m.counterEnabled {
		sb.WriteString(m.center(m.renderCardCounter()))
		sb.WriteString("\n")
	}

	// 中部：其他玩家和桌面组合
	sb.WriteString(m.center(m.renderOpponents()))
	sb.WriteString("\n")
	sb.WriteString(m.center(m.renderTable()))
	sb.WriteString("\n")

	// 底部：手牌和输入
	sb.WriteString(m.center(m.renderHand()))
	sb.WriteString("\n")
	sb.WriteString(m.renderPrompt())

	if m.error != "" {
		sb.WriteString("\n" + errorStyle.Render(m.error))
	}

	return sb.String()
}

// renderRoundHeader 渲染合约、牌堆和弃牌堆顶
func (m *OnlineModel) renderRoundHeader() string {
	contract := m.state.Contract
	discard := "（空）"
	if m.state.DiscardTop != nil {
		discard = m.renderCard(convert.InfoToCard(*m.state.DiscardTop))
	}
	content := fmt.Sprintf("第 %d 关: %s   🂠 牌堆 %d   弃牌堆顶 %s",
		contract.ID, contract.Name, m.state.DeckLeft, discard)
	if m.latency > 0 {
		content += dimStyle.Render(fmt.Sprintf("   📶 %dms", m.latency))
	}
	return boxStyle.Render(content)
}

// renderOpponents 渲染其他玩家的状态
func (m *OnlineModel) renderOpponents() string {
	var parts []string
	for _, p := range m.state.Players {
		if p.ID == m.playerID {
			continue
		}

		nameStyle := lipgloss.NewStyle()
		if m.state.CurrentTurn == p.ID {
			nameStyle = turnStyle
		}

		status := ""
		if p.LaidDown {
			status = " ✅"
		}
		if !p.Online && !p.IsBot {
			status += " 📴"
		}

		info := fmt.Sprintf("%s%s\n🃏 %d张  罚分 %d", nameStyle.Render(p.Name), status, p.CardsCount, p.Score)
		parts = append(parts, boxStyle.Width(20).Render(info))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderTable 渲染桌面已放下的组合
func (m *OnlineModel) renderTable() string {
	if len(m.state.Table) == 0 {
		return boxStyle.Render("桌面: （还没有人放牌）")
	}

	var sb strings.Builder
	sb.WriteString("桌面:\n")
	for i, combo := range m.state.Table {
		owner := combo.OwnerID
		for _, p := range m.state.Players {
			if p.ID == combo.OwnerID {
				owner = p.Name
				break
			}
		}
		var cardStrs []string
		for _, info := range combo.Cards {
			cardStrs = append(cardStrs, m.renderCard(convert.InfoToCard(info)))
		}
		kind := "组"
		switch combo.Kind {
		case "trio":
			kind = "刻子"
		case "run":
			kind = "顺子"
		}
		sb.WriteString(fmt.Sprintf(" t%d %s(%s): %s\n", i+1, kind, owner, strings.Join(cardStrs, " ")))
	}
	return boxStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

// renderHand 渲染自己的手牌，序号用于输入指令
func (m *OnlineModel) renderHand() string {
	hand := m.state.Hand
	if len(hand) == 0 {
		return boxStyle.Render("(无手牌)")
	}

	var idxStr, cardStr strings.Builder
	for i, c := range hand {
		idxStr.WriteString(dimStyle.Align(lipgloss.Center).Margin(0, 1).Render(fmt.Sprintf("%-3d", i+1)))
		cardStr.WriteString(lipgloss.NewStyle().Margin(0, 1).Render(m.renderCardPadded(c)))
	}

	status := ""
	if m.state.LaidDown {
		status = " ✅ 已完成合约"
	}
	title := fmt.Sprintf("我的手牌 (%d张)%s", len(hand), status)
	content := lipgloss.JoinVertical(lipgloss.Left, title, idxStr.String(), cardStr.String())
	return boxStyle.Render(content)
}

// renderCard 渲染单张牌
func (m *OnlineModel) renderCard(c card.Card) string {
	if c.IsJoker() {
		return jokerStyle.Render("JK")
	}
	style := blackStyle
	if c.Suit == card.Heart || c.Suit == card.Diamond {
		style = redStyle
	}
	return style.Render(c.String())
}

// renderCardPadded 定宽渲染，保证与序号对齐
func (m *OnlineModel) renderCardPadded(c card.Card) string {
	if c.IsJoker() {
		return jokerStyle.Render("JK ")
	}
	style := blackStyle
	if c.Suit == card.Heart || c.Suit == card.Diamond {
		style = redStyle
	}
	return style.Render(fmt.Sprintf("%-3s", c.String()))
}

func (m *OnlineModel) renderCardCounter() string {
	var sb strings.Builder
	sb.WriteString("记牌器 (C)\n")
	sb.WriteString(strings.Repeat("─", 46) + "\n")

	ranks := []card.Rank{
		card.RankA, card.Rank2, card.Rank3, card.Rank4, card.Rank5,
		card.Rank6, card.Rank7, card.Rank8, card.Rank9, card.Rank10,
		card.RankJ, card.RankQ, card.RankK, card.RankJoker,
	}

	remaining := m.state.CardCounter.GetRemaining()

	var names, counts []string
	for _, rank := range ranks {
		name := rank.String()
		if rank == card.RankJoker {
			name = "JK"
		}
		names = append(names, fmt.Sprintf("%-2s", name))
		counts = append(counts, fmt.Sprintf("%-2d", remaining[rank]))
	}
	sb.WriteString(strings.Join(names, "│") + "\n")
	sb.WriteString(strings.Repeat("─", 46) + "\n")
	sb.WriteString(strings.Join(counts, "│"))

	return boxStyle.Render(sb.String())
}

func (m *OnlineModel) renderPrompt() string {
	var sb strings.Builder

	if m.state.CurrentTurn == m.playerID {
		sb.WriteString(fmt.Sprintf("⏳ %s | 轮到你了! (H 查看指令)\n", m.timer.View()))
	} else {
		for _, p := range m.state.Players {
			if p.ID == m.state.CurrentTurn {
				sb.WriteString(fmt.Sprintf("等待 %s 行动...\n", p.Name))
				break
			}
		}
	}

	sb.WriteString(m.input.View())

	return promptStyle.Render(sb.String())
}

func (m *OnlineModel) roundEndView() string {
	result := m.state.LastResult
	if result == nil {
		return m.center("等待结算...")
	}

	var sb strings.Builder
	sb.WriteString(m.center(titleStyle(fmt.Sprintf("🏁 第 %d 关结束: %s", result.Contract.ID, result.Contract.Name))))
	sb.WriteString("\n\n")

	var body strings.Builder
	if result.WinnerID != "" {
		body.WriteString(fmt.Sprintf("🎉 %s 脱手获胜!\n\n", result.WinnerName))
	} else {
		body.WriteString("牌堆耗尽，本轮流局\n\n")
	}

	body.WriteString(fmt.Sprintf("%-14s %8s %8s\n", "玩家", "本轮罚分", "累计"))
	body.WriteString(strings.Repeat("─", 34) + "\n")
	for _, s := range result.Scores {
		marker := ""
		if s.PlayerID == m.playerID {
			marker = " (你)"
		}
		body.WriteString(fmt.Sprintf("%-14s %8d %8d\n", s.PlayerName+marker, s.RoundPoints, s.TotalScore))
	}

	if result.NextContract != nil {
		body.WriteString(fmt.Sprintf("\n下一关: %s", result.NextContract.Name))
	}

	sb.WriteString(m.center(boxStyle.Render(body.String())))
	return sb.String()
}

func (m *OnlineModel) gameOverView() string {
	var sb strings.Builder
	sb.WriteString(m.center(titleStyle("🎴 全部合约打完!")))
	sb.WriteString("\n\n")

	var body strings.Builder
	body.WriteString(fmt.Sprintf("🏆 %s 以最低罚分获胜!\n\n", m.state.WinnerName))
	body.WriteString(fmt.Sprintf("%-4s %-14s %8s\n", "名次", "玩家", "总罚分"))
	body.WriteString(strings.Repeat("─", 30) + "\n")
	for i, s := range m.state.Standings {
		marker := ""
		if s.PlayerID == m.playerID {
			marker = " (你)"
		}
		body.WriteString(fmt.Sprintf("%-4d %-14s %8d\n", i+1, s.PlayerName+marker, s.TotalScore))
	}
	body.WriteString("\n按回车返回大厅")

	sb.WriteString(m.center(boxStyle.Render(body.String())))
	return sb.String()
}

func (m *OnlineModel) leaderboardView() string {
	var sb strings.Builder

	sb.WriteString(m.center(titleStyle("🏆 排行榜")))
	sb.WriteString("\n\n")

	if len(m.leaderboard) > 0 {
		var board strings.Builder
		board.WriteString("🏆 排行榜 TOP 10（罚分越低越强）\n")
		board.WriteString(strings.Repeat("─", 50) + "\n")
		board.WriteString(fmt.Sprintf("%-4s %-14s %8s %6s %8s\n", "排名", "玩家", "罚分", "胜场", "胜率"))
		board.WriteString(strings.Repeat("─", 50) + "\n")

		for _, e := range m.leaderboard {
			rankIcon := ""
			switch e.Rank {
			case 1:
				rankIcon = "🥇"
			case 2:
				rankIcon = "🥈"
			case 3:
				rankIcon = "🥉"
			default:
				rankIcon = fmt.Sprintf("%2d.", e.Rank)
			}
			board.WriteString(fmt.Sprintf("%-4s %-14s %8d %6d %7.1f%%\n",
				rankIcon, truncateName(e.PlayerName, 12), e.Score, e.GamesWon, e.WinRate))
		}
		sb.WriteString(m.center(boxStyle.Render(board.String())))
	} else {
		sb.WriteString(m.center("正在加载排行榜..."))
	}

	sb.WriteString("\n\n")
	sb.WriteString(m.center("按 ESC 返回大厅"))

	return sb.String()
}

func (m *OnlineModel) statsView() string {
	var sb strings.Builder

	sb.WriteString(m.center(titleStyle("📊 我的战绩")))
	sb.WriteString("\n\n")

	if m.myStats != nil && m.myStats.Games > 0 {
		s := m.myStats
		var body strings.Builder
		body.WriteString("📊 我的战绩\n")
		body.WriteString(strings.Repeat("─", 40) + "\n")
		body.WriteString(fmt.Sprintf("总场次: %d  胜: %d  胜率: %.1f%%\n", s.Games, s.GamesWon, s.WinRate))
		body.WriteString(fmt.Sprintf("累计罚分: %d\n", s.Score))
		sb.WriteString(m.center(boxStyle.Render(body.String())))
	} else {
		sb.WriteString(m.center("暂无战绩数据"))
	}

	sb.WriteString("\n\n")
	sb.WriteString(m.center("按 ESC 返回大厅"))

	return sb.String()
}

func (m *OnlineModel) rulesView() string {
	rules := `🎴 卡里奥卡规则

每一关都有一个合约（若干刻子/顺子），用两副牌加八张鬼牌对局。
回合内先摸一张（牌堆或弃牌堆顶），再弃一张结束回合。
凑齐合约后可以放牌，之后可把单张接到任何人的组合上。
谁先出完手牌谁赢下本关，其他人按留牌计罚分。
罚分: 鬼牌=25, A=15, J/Q/K=10, 数字牌按面值。
全部合约打完后总罚分最低者获胜。

指令（回合内）:
  d         从牌堆摸牌
  p         捡弃牌堆顶
  m 1 2 3   放牌（输入手牌序号）
  a 4 t2    把第4张接到桌面 t2 组合
  x 7       弃掉第7张，结束回合

快捷键: C 记牌器  H 帮助  ESC 返回`

	return lipgloss.NewStyle().
		Width(m.width).
		Align(lipgloss.Center).
		Render(rules)
}

// truncateName 截断过长的玩家名
func truncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) <= maxLen {
		return name
	}
	return string(runes[:maxLen-1]) + "…"
}
