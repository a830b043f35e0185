package client

import "github.com/palemoky/carioca-online/internal/game/card"

// CardCounter tracks cards not yet seen by the player. The shoe has
// two standard decks plus eight jokers, so each rank starts at 8.
type CardCounter struct {
	remaining map[card.Rank]int
	decks     int
	jokers    int
}

// NewCardCounter creates a counter for the standard two-deck shoe
func NewCardCounter() *CardCounter {
	cc := &CardCounter{decks: 2, jokers: 8}
	cc.Reset()
	return cc
}

// Reset initializes the counter with a full shoe
func (cc *CardCounter) Reset() {
	cc.remaining = make(map[card.Rank]int)
	// A-K: four suits per deck
	for rank := card.RankA; rank <= card.RankK; rank++ {
		cc.remaining[rank] = 4 * cc.decks
	}
	cc.remaining[card.RankJoker] = cc.jokers
}

// DeductCards removes seen cards (own hand, table combos, discards)
func (cc *CardCounter) DeductCards(cards []card.Card) {
	for _, c := range cards {
		if cc.remaining[c.Rank] > 0 {
			cc.remaining[c.Rank]--
		}
	}
}

// GetRemaining returns the unseen card counts by rank
func (cc *CardCounter) GetRemaining() map[card.Rank]int {
	return cc.remaining
}

// Unseen returns the total number of unseen cards
func (cc *CardCounter) Unseen() int {
	total := 0
	for _, n := range cc.remaining {
		total += n
	}
	return total
}
