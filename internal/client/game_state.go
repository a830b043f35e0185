package client

import (
	"github.com/palemoky/carioca-online/internal/game/card"
	"github.com/palemoky/carioca-online/internal/protocol"
	"github.com/palemoky/carioca-online/internal/protocol/convert"
)

// GameState manages client-side game state, mirrored from server broadcasts
type GameState struct {
	// Player data
	Hand     []card.Card
	LaidDown bool

	// Other players
	Players []protocol.PlayerInfo

	// Round progress
	RoomCode    string
	Contract    protocol.ContractInfo
	Contracts   []protocol.ContractInfo
	Table       []protocol.ComboInfo
	DiscardTop  *protocol.CardInfo
	DeckLeft    int
	CurrentTurn string
	Drew        bool

	// Round result
	LastResult *protocol.RoundResultPayload

	// Game result
	Winner     string
	WinnerName string
	Standings  []protocol.PlayerScore

	// Features
	CardCounter *CardCounter
}

// NewGameState creates a new game state
func NewGameState() *GameState {
	return &GameState{
		CardCounter: NewCardCounter(),
	}
}

// SortHand sorts the player's hand for display
func (gs *GameState) SortHand() {
	card.SortHand(gs.Hand)
}

// ApplyDeal resets per-round state from a deal broadcast
func (gs *GameState) ApplyDeal(p *protocol.DealCardsPayload) {
	gs.Contract = p.Contract
	gs.Hand = convert.InfosToCards(p.Cards)
	gs.DiscardTop = p.DiscardTop
	gs.DeckLeft = p.DeckLeft
	gs.Table = nil
	gs.LaidDown = false
	gs.Drew = false
	gs.LastResult = nil

	gs.CardCounter = NewCardCounter()
	gs.CardCounter.DeductCards(gs.Hand)
	if p.DiscardTop != nil {
		gs.CardCounter.DeductCards([]card.Card{convert.InfoToCard(*p.DiscardTop)})
	}
	gs.SortHand()
}

// ApplyDraw updates state after a draw broadcast
func (gs *GameState) ApplyDraw(selfID string, p *protocol.CardDrawnPayload) {
	gs.DeckLeft = p.DeckLeft
	gs.DiscardTop = p.DiscardTop

	if p.PlayerID == selfID {
		gs.Drew = true
		if p.Card != nil {
			gs.Hand = append(gs.Hand, convert.InfoToCard(*p.Card))
			gs.SortHand()
			// Discard pickups were counted when the card hit the pile
			if p.Source == protocol.DrawSourceDeck {
				gs.CardCounter.DeductCards([]card.Card{convert.InfoToCard(*p.Card)})
			}
		}
	}
	gs.updateCardsCount(p.PlayerID, p.CardsCount)
}

// ApplyLayDown updates table and hand after a lay-down broadcast
func (gs *GameState) ApplyLayDown(selfID string, p *protocol.PlayerDownPayload) {
	gs.Table = p.Table
	if p.PlayerID == selfID {
		gs.LaidDown = true
		for _, combo := range p.Combos {
			gs.removeFromHand(convert.InfosToCards(combo.Cards))
		}
	} else {
		for _, combo := range p.Combos {
			gs.CardCounter.DeductCards(convert.InfosToCards(combo.Cards))
		}
	}
	gs.updateCardsCount(p.PlayerID, p.CardsCount)
}

// ApplyExtend updates table after an extend broadcast
func (gs *GameState) ApplyExtend(selfID string, p *protocol.TableExtendedPayload) {
	gs.Table = p.Table
	if p.PlayerID == selfID {
		gs.removeFromHand(convert.InfosToCards(p.Cards))
	} else {
		gs.CardCounter.DeductCards(convert.InfosToCards(p.Cards))
	}
	gs.updateCardsCount(p.PlayerID, p.CardsCount)
}

// ApplyDiscard updates state after a discard broadcast
func (gs *GameState) ApplyDiscard(selfID string, p *protocol.CardDiscardedPayload) {
	discarded := p.Card
	gs.DiscardTop = &discarded
	if p.PlayerID == selfID {
		gs.Drew = false
		gs.removeFromHand([]card.Card{convert.InfoToCard(p.Card)})
	} else {
		gs.CardCounter.DeductCards([]card.Card{convert.InfoToCard(p.Card)})
	}
	gs.updateCardsCount(p.PlayerID, p.CardsCount)
}

// removeFromHand deletes the given physical cards from the hand
func (gs *GameState) removeFromHand(cards []card.Card) {
	for _, target := range cards {
		for i, c := range gs.Hand {
			if c == target {
				gs.Hand = append(gs.Hand[:i], gs.Hand[i+1:]...)
				break
			}
		}
	}
}

// updateCardsCount refreshes the public hand size of a player
func (gs *GameState) updateCardsCount(playerID string, count int) {
	for i := range gs.Players {
		if gs.Players[i].ID == playerID {
			gs.Players[i].CardsCount = count
			return
		}
	}
}

// Reset clears all game state
func (gs *GameState) Reset() {
	gs.Hand = nil
	gs.LaidDown = false
	gs.Players = nil
	gs.RoomCode = ""
	gs.Contract = protocol.ContractInfo{}
	gs.Contracts = nil
	gs.Table = nil
	gs.DiscardTop = nil
	gs.DeckLeft = 0
	gs.CurrentTurn = ""
	gs.Drew = false
	gs.LastResult = nil
	gs.Winner = ""
	gs.WinnerName = ""
	gs.Standings = nil
	gs.CardCounter = NewCardCounter()
}
