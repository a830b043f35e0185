package session

import (
	"slices"

	"github.com/palemoky/carioca-online/internal/game/card"
)

// endRound 结算本轮：留在手里的牌计罚分，随后推进合约表。
// winner 为 nil 表示流局，所有人都计分。调用方须持有锁
func (s *Session) endRound(winner *Player) {
	s.stopTimer()

	result := RoundResult{Contract: s.currentContract()}
	if winner != nil {
		result.WinnerID = winner.ID
	}

	for _, p := range s.players {
		points := card.HandPoints(p.Hand)
		p.Score += points

		hand := make([]card.Card, len(p.Hand))
		copy(hand, p.Hand)
		result.Scores = append(result.Scores, PlayerScore{
			PlayerID:    p.ID,
			PlayerName:  p.Name,
			RoundPoints: points,
			TotalScore:  p.Score,
			Hand:        hand,
		})
	}

	s.events.OnRoundEnd(result)

	s.dealerIdx = (s.dealerIdx + 1) % len(s.players)
	s.contractIdx++

	if s.contractIdx >= len(s.cfg.Contracts) {
		s.contractIdx = len(s.cfg.Contracts) - 1
		s.phase = PhaseFinished
		s.events.OnGameEnd(s.standings())
		return
	}
	s.phase = PhaseRoundEnded
}

// standings 按累计罚分升序排列的最终名次，调用方须持有锁
func (s *Session) standings() []PlayerScore {
	standings := make([]PlayerScore, len(s.players))
	for i, p := range s.players {
		standings[i] = PlayerScore{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			TotalScore: p.Score,
		}
	}
	slices.SortStableFunc(standings, func(a, b PlayerScore) int {
		return a.TotalScore - b.TotalScore
	})
	return standings
}

// Standings 当前累计罚分名次
func (s *Session) Standings() []PlayerScore {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.standings()
}
