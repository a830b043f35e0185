package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/carioca-online/internal/apperrors"
	"github.com/palemoky/carioca-online/internal/game/card"
	"github.com/palemoky/carioca-online/internal/game/contract"
	"github.com/palemoky/carioca-online/internal/game/rule"
)

// recordedEvents collects callbacks for assertions
type recordedEvents struct {
	mu           sync.Mutex
	roundStarts  []int
	turns        []string
	draws        []string
	layDowns     []string
	extends      []string
	discards     []string
	roundResults []RoundResult
	gameEnds     [][]PlayerScore
}

func (e *recordedEvents) OnRoundStart(c contract.Contract) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.roundStarts = append(e.roundStarts, c.ID)
}

func (e *recordedEvents) OnTurn(playerID string, _ time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.turns = append(e.turns, playerID)
}

func (e *recordedEvents) OnDraw(playerID string, _ DrawSource, _ card.Card) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draws = append(e.draws, playerID)
}

func (e *recordedEvents) OnLayDown(playerID string, _ []*rule.Combination) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.layDowns = append(e.layDowns, playerID)
}

func (e *recordedEvents) OnExtend(playerID string, _ []card.Card, _ int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.extends = append(e.extends, playerID)
}

func (e *recordedEvents) OnDiscard(playerID string, _ card.Card) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.discards = append(e.discards, playerID)
}

func (e *recordedEvents) OnRoundEnd(result RoundResult) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.roundResults = append(e.roundResults, result)
}

func (e *recordedEvents) OnGameEnd(standings []PlayerScore) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gameEnds = append(e.gameEnds, standings)
}

// Helper to create a session with n players and a timeout long
// enough that timers never fire during a test
func newTestSession(n int) (*Session, *recordedEvents) {
	players := make([]*Player, n)
	names := []string{"Player1", "Player2", "Player3", "Player4"}
	ids := []string{"p1", "p2", "p3", "p4"}
	for i := range n {
		players[i] = &Player{ID: ids[i], Name: names[i]}
	}
	ev := &recordedEvents{}
	return New(players, ev, Config{TurnTimeout: time.Hour}), ev
}

func cd(r card.Rank, s card.Suit) card.Card {
	return card.Card{Suit: s, Rank: r, Deck: 1}
}

func cd2(r card.Rank, s card.Suit) card.Card {
	return card.Card{Suit: s, Rank: r, Deck: 2}
}

func jk(seq int) card.Card {
	return card.Card{Suit: card.Joker, Rank: card.RankJoker, Deck: 1, Seq: seq}
}

func TestStartRound(t *testing.T) {
	s, ev := newTestSession(3)
	s.StartRound()
	defer s.stopTimer()

	assert.Equal(t, PhasePlaying, s.Phase())

	// Contract 1: 12 cards each, one card flipped to the discard pile
	for _, p := range s.Players() {
		assert.Len(t, p.Hand, 12)
		assert.False(t, p.LaidDown)
	}
	_, ok := s.DiscardTop()
	assert.True(t, ok)
	assert.Equal(t, 112-3*12-1, s.DeckLeft())

	// First turn goes to the player left of the dealer
	assert.Equal(t, "p2", s.CurrentPlayerID())
	assert.Equal(t, []string{"p2"}, ev.turns)
}

func TestDraw(t *testing.T) {
	s, ev := newTestSession(3)
	s.StartRound()
	defer s.stopTimer()

	current := s.CurrentPlayerID()
	deckBefore := s.DeckLeft()

	// Out of turn
	err := s.Draw("p1", DrawFromDeck)
	assert.ErrorIs(t, err, apperrors.ErrNotYourTurn)

	require.NoError(t, s.Draw(current, DrawFromDeck))
	assert.Len(t, s.PlayerHand(current), 13)
	assert.Equal(t, deckBefore-1, s.DeckLeft())
	assert.Equal(t, []string{current}, ev.draws)

	// Only one draw per turn
	err = s.Draw(current, DrawFromDeck)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyDrew)
}

func TestDrawFromDiscard(t *testing.T) {
	s, _ := newTestSession(3)
	s.StartRound()
	defer s.stopTimer()

	top, ok := s.DiscardTop()
	require.True(t, ok)

	current := s.CurrentPlayerID()
	require.NoError(t, s.Draw(current, DrawFromDiscard))

	assert.Contains(t, s.PlayerHand(current), top)
	_, ok = s.DiscardTop()
	assert.False(t, ok, "the flipped card was the only discard")
}

func TestLayDownContract(t *testing.T) {
	s, ev := newTestSession(3)
	s.StartRound()
	defer s.stopTimer()

	trios := []card.Card{
		cd(card.Rank7, card.Spade), cd(card.Rank7, card.Heart), cd(card.Rank7, card.Club),
		cd(card.Rank9, card.Spade), cd(card.Rank9, card.Heart), cd(card.Rank9, card.Club),
	}
	keep := cd(card.RankK, card.Diamond)

	p := s.players[s.current]
	p.Hand = append(append([]card.Card{}, trios...), keep)
	s.drew = true

	// One trio is not enough for contract 1
	err := s.LayDown(p.ID, trios[:3])
	assert.ErrorIs(t, err, apperrors.ErrContractNotMet)
	assert.False(t, p.LaidDown)

	require.NoError(t, s.LayDown(p.ID, trios))
	assert.True(t, p.LaidDown)
	assert.Equal(t, []card.Card{keep}, p.Hand)
	assert.Len(t, s.Table(), 2)
	assert.Equal(t, []string{p.ID}, ev.layDowns)
}

func TestLayDownRequiresDraw(t *testing.T) {
	s, _ := newTestSession(3)
	s.StartRound()
	defer s.stopTimer()

	p := s.players[s.current]
	err := s.LayDown(p.ID, p.Hand[:3])
	assert.ErrorIs(t, err, apperrors.ErrMustDrawFirst)
}

func TestLayDownRejectsForeignCards(t *testing.T) {
	s, _ := newTestSession(3)
	s.StartRound()
	defer s.stopTimer()

	p := s.players[s.current]
	p.Hand = []card.Card{cd(card.Rank2, card.Spade)}
	s.drew = true

	err := s.LayDown(p.ID, []card.Card{
		cd(card.Rank7, card.Spade), cd(card.Rank7, card.Heart), cd(card.Rank7, card.Club),
	})
	assert.ErrorIs(t, err, apperrors.ErrCardsNotInHand)
}

func TestLayDownRejectsDuplicateReferences(t *testing.T) {
	s, _ := newTestSession(3)
	s.StartRound()
	defer s.stopTimer()

	spade7 := cd(card.Rank7, card.Spade)
	heart7 := cd(card.Rank7, card.Heart)

	p := s.players[s.current]
	p.Hand = []card.Card{spade7, heart7, cd(card.Rank9, card.Diamond)}
	s.drew = true

	// 同一张 7♠ 被引用两次凑不出三条
	err := s.LayDown(p.ID, []card.Card{spade7, spade7, heart7})
	assert.ErrorIs(t, err, apperrors.ErrCardsNotInHand)
	assert.Empty(t, s.Table())
	assert.Len(t, p.Hand, 3)
	assert.False(t, p.LaidDown)
}

func TestExtendRejectsDuplicateReferences(t *testing.T) {
	s, _ := newTestSession(3)
	s.StartRound()
	defer s.stopTimer()

	trio := &rule.Combination{Kind: rule.KindTrio, Cards: []card.Card{
		cd(card.Rank7, card.Spade), cd(card.Rank7, card.Heart), cd(card.Rank7, card.Club),
	}}
	s.table = []*TableCombo{{OwnerID: "p1", Combo: trio}}

	p := s.players[s.current]
	seventh := cd2(card.Rank7, card.Diamond)
	p.Hand = []card.Card{seventh, cd(card.Rank2, card.Spade)}
	p.LaidDown = true
	s.drew = true

	err := s.Extend(p.ID, []card.Card{seventh, seventh}, 0)
	assert.ErrorIs(t, err, apperrors.ErrCardsNotInHand)
	assert.Len(t, trio.Cards, 3)
	assert.Len(t, p.Hand, 2)
}

func TestTableSnapshotIsStable(t *testing.T) {
	s, _ := newTestSession(3)
	s.StartRound()
	defer s.stopTimer()

	run := &rule.Combination{Kind: rule.KindRun, Cards: []card.Card{
		cd(card.Rank5, card.Diamond), cd(card.Rank6, card.Diamond),
		cd(card.Rank7, card.Diamond), cd(card.Rank8, card.Diamond),
	}}
	s.table = []*TableCombo{{OwnerID: "p1", Combo: run}}

	snap := s.Table()
	require.Len(t, snap, 1)
	require.Len(t, snap[0].Combo.Cards, 4)

	p := s.players[s.current]
	nine := cd(card.Rank9, card.Diamond)
	p.Hand = []card.Card{nine, cd(card.Rank2, card.Spade)}
	p.LaidDown = true
	s.drew = true
	require.NoError(t, s.Extend(p.ID, []card.Card{nine}, 0))

	// 已返回的快照不随后续扩展变化
	assert.Len(t, snap[0].Combo.Cards, 4)
	assert.Len(t, s.Table()[0].Combo.Cards, 5)
}

func TestSpecialContractCannotBeLaidDown(t *testing.T) {
	s, _ := newTestSession(3)
	s.contractIdx = 7 // 皇家顺
	s.StartRound()
	defer s.stopTimer()

	for _, p := range s.Players() {
		assert.Len(t, p.Hand, 13)
	}

	p := s.players[s.current]
	p.Hand = []card.Card{
		cd(card.Rank7, card.Spade), cd(card.Rank7, card.Heart), cd(card.Rank7, card.Club),
		cd(card.Rank9, card.Spade), cd(card.Rank9, card.Heart), cd(card.Rank9, card.Club),
	}
	s.drew = true

	err := s.LayDown(p.ID, p.Hand)
	assert.ErrorIs(t, err, apperrors.ErrSpecialContract)
	assert.Empty(t, s.Table())
}

func TestExtendRequiresLayDown(t *testing.T) {
	s, _ := newTestSession(3)
	s.StartRound()
	defer s.stopTimer()

	p := s.players[s.current]
	s.drew = true

	err := s.Extend(p.ID, p.Hand[:1], -1)
	assert.ErrorIs(t, err, apperrors.ErrNotLaidDown)
}

func TestExtendSingleTarget(t *testing.T) {
	s, ev := newTestSession(3)
	s.StartRound()
	defer s.stopTimer()

	run := &rule.Combination{Kind: rule.KindRun, Cards: []card.Card{
		cd(card.Rank5, card.Diamond), cd(card.Rank6, card.Diamond),
		cd(card.Rank7, card.Diamond), cd(card.Rank8, card.Diamond),
	}}
	s.table = []*TableCombo{{OwnerID: "p1", Combo: run}}

	p := s.players[s.current]
	nine := cd(card.Rank9, card.Diamond)
	ten := cd(card.Rank10, card.Diamond)
	keep := cd(card.Rank2, card.Spade)
	p.Hand = []card.Card{nine, ten, keep}
	p.LaidDown = true
	s.drew = true

	// Consecutive cards extend the run in one go
	require.NoError(t, s.Extend(p.ID, []card.Card{nine, ten}, 0))
	assert.Len(t, run.Cards, 6)
	assert.Equal(t, []card.Card{keep}, p.Hand)
	assert.Equal(t, []string{p.ID}, ev.extends)

	// Nothing on the table takes a two
	err := s.Extend(p.ID, []card.Card{keep}, -1)
	assert.ErrorIs(t, err, apperrors.ErrNoExtension)
}

func TestExtendAmbiguousTarget(t *testing.T) {
	s, _ := newTestSession(3)
	s.StartRound()
	defer s.stopTimer()

	trio := &rule.Combination{Kind: rule.KindTrio, Cards: []card.Card{
		cd(card.Rank7, card.Spade), cd(card.Rank7, card.Heart), cd(card.Rank7, card.Club),
	}}
	run := &rule.Combination{Kind: rule.KindRun, Cards: []card.Card{
		cd(card.Rank5, card.Diamond), cd(card.Rank6, card.Diamond),
		cd(card.Rank7, card.Diamond), cd(card.Rank8, card.Diamond),
	}}
	s.table = []*TableCombo{
		{OwnerID: "p1", Combo: trio},
		{OwnerID: "p2", Combo: run},
	}

	p := s.players[s.current]
	wild := jk(1)
	p.Hand = []card.Card{wild, cd(card.Rank2, card.Spade)}
	p.LaidDown = true
	s.drew = true

	// A lone joker fits both combinations
	err := s.Extend(p.ID, []card.Card{wild}, -1)
	assert.ErrorIs(t, err, apperrors.ErrAmbiguousTarget)

	// Explicit target resolves the ambiguity
	require.NoError(t, s.Extend(p.ID, []card.Card{wild}, 0))
	assert.Len(t, trio.Cards, 4)
}

func TestDiscardAdvancesTurn(t *testing.T) {
	s, ev := newTestSession(3)
	s.StartRound()
	defer s.stopTimer()

	first := s.CurrentPlayerID()

	// Discard before drawing is rejected
	p := s.players[s.current]
	err := s.Discard(first, p.Hand[0])
	assert.ErrorIs(t, err, apperrors.ErrMustDrawFirst)

	require.NoError(t, s.Draw(first, DrawFromDeck))
	thrown := s.players[s.current].Hand[0]
	require.NoError(t, s.Discard(first, thrown))

	top, _ := s.DiscardTop()
	assert.Equal(t, thrown, top)
	assert.NotEqual(t, first, s.CurrentPlayerID())
	assert.False(t, s.HasDrawn())
	assert.Equal(t, []string{first}, ev.discards)
	assert.Len(t, ev.turns, 2)
}

func TestGoingOutEndsRound(t *testing.T) {
	s, ev := newTestSession(3)
	s.StartRound()
	defer s.stopTimer()

	p := s.players[s.current]
	trios := []card.Card{
		cd(card.Rank7, card.Spade), cd(card.Rank7, card.Heart), cd(card.Rank7, card.Club),
		cd(card.Rank9, card.Spade), cd(card.Rank9, card.Heart), cd(card.Rank9, card.Club),
	}
	last := cd(card.Rank4, card.Diamond)
	p.Hand = append(append([]card.Card{}, trios...), last)
	s.drew = true

	// Everyone else keeps an expensive hand: joker + ace = 40 points
	for _, other := range s.players {
		if other.ID != p.ID {
			other.Hand = []card.Card{jk(1), cd(card.RankA, card.Spade)}
		}
	}

	require.NoError(t, s.LayDown(p.ID, trios))
	require.NoError(t, s.Discard(p.ID, last))

	require.Len(t, ev.roundResults, 1)
	result := ev.roundResults[0]
	assert.Equal(t, p.ID, result.WinnerID)
	assert.Equal(t, 1, result.Contract.ID)

	for _, score := range result.Scores {
		if score.PlayerID == p.ID {
			assert.Zero(t, score.RoundPoints)
		} else {
			assert.Equal(t, 40, score.RoundPoints)
		}
	}

	// Next contract is queued up
	assert.Equal(t, PhaseRoundEnded, s.Phase())
	assert.Equal(t, 2, s.CurrentContract().ID)
}

func TestEmptyHandViaLayDownEndsRound(t *testing.T) {
	s, ev := newTestSession(3)
	s.StartRound()
	defer s.stopTimer()

	p := s.players[s.current]
	p.Hand = []card.Card{
		cd(card.Rank7, card.Spade), cd(card.Rank7, card.Heart), cd(card.Rank7, card.Club),
		cd(card.Rank9, card.Spade), cd(card.Rank9, card.Heart), cd(card.Rank9, card.Club),
	}
	s.drew = true

	require.NoError(t, s.LayDown(p.ID, p.Hand))
	require.Len(t, ev.roundResults, 1)
	assert.Equal(t, p.ID, ev.roundResults[0].WinnerID)
	assert.Equal(t, PhaseRoundEnded, s.Phase())
}

func TestStalemateWhenShoeRunsDry(t *testing.T) {
	s, ev := newTestSession(3)
	s.StartRound()
	defer s.stopTimer()

	s.mu.Lock()
	s.deck = nil
	s.discard = s.discard[:1]
	s.mu.Unlock()

	current := s.CurrentPlayerID()
	require.NoError(t, s.Draw(current, DrawFromDeck))

	require.Len(t, ev.roundResults, 1)
	assert.Empty(t, ev.roundResults[0].WinnerID)
	assert.Equal(t, PhaseRoundEnded, s.Phase())
}

func TestDrawRecyclesDiscard(t *testing.T) {
	s, _ := newTestSession(3)
	s.StartRound()
	defer s.stopTimer()

	s.mu.Lock()
	s.deck = nil
	s.discard = []card.Card{
		cd(card.Rank2, card.Spade), cd(card.Rank3, card.Spade), cd(card.Rank4, card.Spade),
	}
	s.mu.Unlock()

	current := s.CurrentPlayerID()
	require.NoError(t, s.Draw(current, DrawFromDeck))

	// The old top stays as the discard pile, the rest became the deck
	top, ok := s.DiscardTop()
	require.True(t, ok)
	assert.Equal(t, cd(card.Rank4, card.Spade), top)
	assert.Equal(t, 1, s.DeckLeft())
}

func TestLastContractEndsGame(t *testing.T) {
	s, ev := newTestSession(3)
	s.contractIdx = len(s.cfg.Contracts) - 1
	s.players[0].Score = 80
	s.players[1].Score = 30
	s.players[2].Score = 120
	s.StartRound()
	defer s.stopTimer()

	s.mu.Lock()
	s.deck = nil
	s.discard = s.discard[:1]
	for _, p := range s.players {
		p.Hand = nil // keep the final standings deterministic
	}
	s.mu.Unlock()

	require.NoError(t, s.Draw(s.CurrentPlayerID(), DrawFromDeck))

	assert.Equal(t, PhaseFinished, s.Phase())
	require.Len(t, ev.gameEnds, 1)

	// Lowest accumulated penalty wins
	standings := ev.gameEnds[0]
	require.Len(t, standings, 3)
	assert.Equal(t, "p2", standings[0].PlayerID)
	assert.LessOrEqual(t, standings[0].TotalScore, standings[1].TotalScore)
	assert.LessOrEqual(t, standings[1].TotalScore, standings[2].TotalScore)
}

func TestLayDownExtraAfterContract(t *testing.T) {
	s, ev := newTestSession(3)
	s.StartRound()
	defer s.stopTimer()

	trio := &rule.Combination{Kind: rule.KindTrio, Cards: []card.Card{
		cd(card.Rank7, card.Spade), cd(card.Rank7, card.Heart), cd(card.Rank7, card.Club),
	}}
	s.table = []*TableCombo{{OwnerID: "p2", Combo: trio}}

	p := s.players[s.current]
	newTrio := []card.Card{
		cd(card.RankQ, card.Spade), cd(card.RankQ, card.Heart), cd(card.RankQ, card.Club),
	}
	seventh := cd2(card.Rank7, card.Diamond)
	keep := cd(card.Rank3, card.Heart)
	p.Hand = append(append([]card.Card{}, newTrio...), seventh, keep)
	p.LaidDown = true
	s.drew = true

	// A fresh combination goes down as its own meld
	require.NoError(t, s.LayDown(p.ID, newTrio))
	assert.Len(t, s.Table(), 2)
	assert.Equal(t, []string{p.ID}, ev.layDowns)

	// A card that forms no combination is spread onto the table instead
	require.NoError(t, s.LayDown(p.ID, []card.Card{seventh}))
	assert.Len(t, trio.Cards, 4)
	assert.Equal(t, []string{p.ID}, ev.extends)

	// Leftover junk is rejected outright
	err := s.LayDown(p.ID, []card.Card{keep})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCombo)
}
