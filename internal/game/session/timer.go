package session

import (
	"log"
	"time"

	"github.com/palemoky/carioca-online/internal/apperrors"
	"github.com/palemoky/carioca-online/internal/game/card"
)

// 玩家离线等待时间
const offlineWaitTimeout = 30 * time.Second

// --- 超时控制 ---

// startTurnTimer 启动当前回合计时，调用方须持有 s.mu
func (s *Session) startTurnTimer() {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()

	s.timerStartTime = time.Now()
	s.remainingTime = s.cfg.TurnTimeout
	s.turnTimer = time.AfterFunc(s.cfg.TurnTimeout, func() {
		s.handleTurnTimeout()
	})
}

// handleTurnTimeout 超时自动操作：没摸牌就从牌堆摸一张，再弃掉罚分最高的牌
func (s *Session) handleTurnTimeout() {
	s.mu.Lock()

	if s.phase != PhasePlaying {
		s.mu.Unlock()
		return
	}

	p := s.players[s.current]
	playerID := p.ID
	needDraw := !s.drew
	s.mu.Unlock()

	if needDraw {
		if err := s.Draw(playerID, DrawFromDeck); err != nil && err != apperrors.ErrAlreadyDrew {
			return
		}
	}

	hand := s.PlayerHand(playerID)
	if len(hand) == 0 {
		return
	}
	worst := hand[0]
	for _, c := range hand[1:] {
		if card.Points(c) > card.Points(worst) {
			worst = c
		}
	}

	_ = s.Discard(playerID, worst)
}

func (s *Session) stopTimer() {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()

	if s.turnTimer != nil {
		s.turnTimer.Stop()
		s.turnTimer = nil
	}
	if s.offlineWaitTimer != nil {
		s.offlineWaitTimer.Stop()
		s.offlineWaitTimer = nil
	}
}

// --- 离线处理 ---

// PlayerOffline 玩家离线：若正轮到该玩家，暂停计时等待重连
func (s *Session) PlayerOffline(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, p := s.findPlayer(playerID)
	if p == nil {
		return
	}
	p.IsOffline = true

	if s.phase != PhasePlaying || s.current != idx {
		return // 不是当前回合，无需暂停
	}

	s.timerMu.Lock()
	defer s.timerMu.Unlock()

	// 暂停计时器，计算剩余时间
	if s.turnTimer != nil {
		s.turnTimer.Stop()
		s.remainingTime = time.Until(s.timerStartTime.Add(s.remainingTime))
		if s.remainingTime < 0 {
			s.remainingTime = 0
		}
		s.turnTimer = nil
	}

	// 启动离线等待计时器
	s.offlineWaitTimer = time.AfterFunc(offlineWaitTimeout, func() {
		s.handleTurnTimeout()
	})

	log.Printf("⏸️ 玩家 %s 离线，暂停计时等待重连 (%v)", p.Name, offlineWaitTimeout)
}

// PlayerOnline 玩家重连：若正轮到该玩家，恢复剩余计时
func (s *Session) PlayerOnline(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, p := s.findPlayer(playerID)
	if p == nil {
		return
	}
	p.IsOffline = false

	s.timerMu.Lock()
	defer s.timerMu.Unlock()

	if s.offlineWaitTimer != nil {
		s.offlineWaitTimer.Stop()
		s.offlineWaitTimer = nil
	}

	if s.phase != PhasePlaying || s.current != idx {
		return
	}

	if s.remainingTime > 0 {
		s.timerStartTime = time.Now()
		s.turnTimer = time.AfterFunc(s.remainingTime, func() {
			s.handleTurnTimeout()
		})
		log.Printf("▶️ 玩家 %s 重连，恢复计时 (剩余 %v)", p.Name, s.remainingTime)
	}
}
