package session

import (
	"github.com/palemoky/carioca-online/internal/apperrors"
	"github.com/palemoky/carioca-online/internal/game/card"
	"github.com/palemoky/carioca-online/internal/game/rule"
)

// Draw 当前玩家摸牌：从牌堆摸一张，或捡走弃牌堆顶
func (s *Session) Draw(playerID string, source DrawSource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhasePlaying {
		return apperrors.ErrGameNotStart
	}
	p := s.players[s.current]
	if p.ID != playerID {
		return apperrors.ErrNotYourTurn
	}
	if s.drew {
		return apperrors.ErrAlreadyDrew
	}

	var drawn card.Card
	switch source {
	case DrawFromDiscard:
		if len(s.discard) == 0 {
			return apperrors.ErrEmptyDeck
		}
		drawn = s.discard[len(s.discard)-1]
		s.discard = s.discard[:len(s.discard)-1]
	default:
		if len(s.deck) == 0 {
			// 弃牌堆只剩堆顶一张时无牌可回收，流局结算
			if len(s.discard) <= 1 {
				s.endRound(nil)
				return nil
			}
			s.recycleDiscard()
		}
		drawn = s.drawFromDeck()
	}

	p.Hand = append(p.Hand, drawn)
	card.SortHand(p.Hand)
	s.drew = true

	s.events.OnDraw(playerID, source, drawn)
	return nil
}

// recycleDiscard 把弃牌堆（保留堆顶）洗回牌堆，调用方须持有锁
func (s *Session) recycleDiscard() {
	top := s.discard[len(s.discard)-1]
	s.deck = append(s.deck, s.discard[:len(s.discard)-1]...)
	s.deck.Shuffle()
	s.discard = []card.Card{top}
}

// LayDown 放牌。未完成合约的玩家须一次放下满足本轮合约的组合；
// 已完成合约的玩家可继续放下新组合，或把整批牌分散接到桌面上
func (s *Session) LayDown(playerID string, selected []card.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhasePlaying {
		return apperrors.ErrGameNotStart
	}
	p := s.players[s.current]
	if p.ID != playerID {
		return apperrors.ErrNotYourTurn
	}
	if !s.drew {
		return apperrors.ErrMustDrawFirst
	}
	if len(selected) == 0 {
		return apperrors.ErrInvalidCombo
	}
	if !card.ContainsAll(p.Hand, selected) {
		return apperrors.ErrCardsNotInHand
	}

	if !p.LaidDown {
		return s.layDownContract(p, selected)
	}
	return s.layDownExtra(p, selected)
}

// layDownContract 首次放牌：分解选牌并检查本轮合约，调用方须持有锁
func (s *Session) layDownContract(p *Player, selected []card.Card) error {
	req := s.currentContract().Requirement
	if req.IsSpecial() {
		return apperrors.ErrSpecialContract
	}

	d := rule.Decompose(selected)
	if !d.Valid {
		return apperrors.ErrInvalidCombo
	}
	if !rule.SatisfiesContract(req, d.Counts) {
		return apperrors.ErrContractNotMet
	}

	combos := make([]*rule.Combination, len(d.Combinations))
	for i := range d.Combinations {
		combo := d.Combinations[i]
		combos[i] = &combo
		s.table = append(s.table, &TableCombo{OwnerID: p.ID, Combo: combos[i]})
	}
	p.Hand = card.RemoveCards(p.Hand, selected)
	p.LaidDown = true

	s.events.OnLayDown(p.ID, combos)

	if len(p.Hand) == 0 {
		s.endRound(p)
	}
	return nil
}

// layDownExtra 完成合约后的追加放牌：优先作为新组合放下，
// 否则尝试整批分散接到桌面上，调用方须持有锁
func (s *Session) layDownExtra(p *Player, selected []card.Card) error {
	d := rule.Decompose(selected)
	if d.Valid && len(d.Combinations) > 0 {
		combos := make([]*rule.Combination, len(d.Combinations))
		for i := range d.Combinations {
			combo := d.Combinations[i]
			combos[i] = &combo
			s.table = append(s.table, &TableCombo{OwnerID: p.ID, Combo: combos[i]})
		}
		p.Hand = card.RemoveCards(p.Hand, selected)
		s.events.OnLayDown(p.ID, combos)
	} else {
		combos := make([]*rule.Combination, len(s.table))
		for i, tc := range s.table {
			combos[i] = tc.Combo
		}
		if _, ok := rule.TryExtend(combos, selected); !ok {
			return apperrors.ErrInvalidCombo
		}
		p.Hand = card.RemoveCards(p.Hand, selected)
		s.events.OnExtend(p.ID, selected, -1)
	}

	if len(p.Hand) == 0 {
		s.endRound(p)
	}
	return nil
}

// Extend 把整批牌接到桌面上的一个组合。target 为 -1 时要求
// 只有唯一组合能接，否则返回歧义错误
func (s *Session) Extend(playerID string, cards []card.Card, target int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhasePlaying {
		return apperrors.ErrGameNotStart
	}
	p := s.players[s.current]
	if p.ID != playerID {
		return apperrors.ErrNotYourTurn
	}
	if !s.drew {
		return apperrors.ErrMustDrawFirst
	}
	if !p.LaidDown {
		return apperrors.ErrNotLaidDown
	}
	if len(cards) == 0 {
		return apperrors.ErrNoExtension
	}
	if !card.ContainsAll(p.Hand, cards) {
		return apperrors.ErrCardsNotInHand
	}

	combos := make([]*rule.Combination, len(s.table))
	for i, tc := range s.table {
		combos[i] = tc.Combo
	}

	if target < 0 {
		idx, verdict := rule.FindSingleTarget(combos, cards)
		switch verdict {
		case rule.TargetNone:
			return apperrors.ErrNoExtension
		case rule.TargetAmbiguous:
			return apperrors.ErrAmbiguousTarget
		}
		target = idx
	} else if target >= len(combos) {
		return apperrors.ErrNoExtension
	}

	// 逐张追加，顺子可以一次接上连续多张；失败就整批回滚
	combo := combos[target]
	placed := 0
	for _, c := range cards {
		if !rule.CanExtend(combo, c) {
			combo.Cards = combo.Cards[:len(combo.Cards)-placed]
			return apperrors.ErrNoExtension
		}
		combo.Cards = append(combo.Cards, c)
		placed++
	}
	p.Hand = card.RemoveCards(p.Hand, cards)

	s.events.OnExtend(p.ID, cards, target)

	if len(p.Hand) == 0 {
		s.endRound(p)
	}
	return nil
}

// Discard 弃一张牌结束回合
func (s *Session) Discard(playerID string, c card.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhasePlaying {
		return apperrors.ErrGameNotStart
	}
	p := s.players[s.current]
	if p.ID != playerID {
		return apperrors.ErrNotYourTurn
	}
	if !s.drew {
		return apperrors.ErrMustDrawFirst
	}
	if !card.ContainsAll(p.Hand, []card.Card{c}) {
		return apperrors.ErrCardsNotInHand
	}

	p.Hand = card.RemoveCards(p.Hand, []card.Card{c})
	s.discard = append(s.discard, c)

	s.events.OnDiscard(p.ID, c)

	if len(p.Hand) == 0 {
		s.endRound(p)
		return nil
	}

	s.advanceTurn()
	return nil
}

// advanceTurn 轮到下一位玩家，调用方须持有锁
func (s *Session) advanceTurn() {
	s.stopTimer()
	s.current = (s.current + 1) % len(s.players)
	s.drew = false

	s.events.OnTurn(s.players[s.current].ID, s.cfg.TurnTimeout)
	s.startTurnTimer()
}
