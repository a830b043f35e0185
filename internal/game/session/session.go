package session

import (
	"sync"
	"time"

	"github.com/palemoky/carioca-online/internal/game/card"
	"github.com/palemoky/carioca-online/internal/game/contract"
	"github.com/palemoky/carioca-online/internal/game/rule"
)

// Config 对局参数
type Config struct {
	Decks         int           // 标准牌副数
	JokersPerDeck int           // 每副附带的鬼牌数
	TurnTimeout   time.Duration // 回合超时
	Contracts     []contract.Contract
}

// DefaultConfig 卡里奥卡标准配置：两副牌各带四张鬼牌
func DefaultConfig() Config {
	return Config{
		Decks:         2,
		JokersPerDeck: 4,
		TurnTimeout:   30 * time.Second,
		Contracts:     contract.Default(),
	}
}

// Session 一局完整对局：按合约表逐轮进行，直到全部合约打完
type Session struct {
	cfg    Config
	events Events

	players []*Player // 按座位顺序

	phase       Phase
	contractIdx int // 当前合约索引
	dealerIdx   int // 本轮庄家，逐轮轮转

	deck    card.Deck   // 切片末尾为牌堆顶
	discard []card.Card // 切片末尾为弃牌堆顶
	table   []*TableCombo

	// 回合状态
	current int  // 当前回合玩家索引
	drew    bool // 当前玩家本回合是否已摸牌

	// 超时控制
	turnTimer        *time.Timer
	offlineWaitTimer *time.Timer
	remainingTime    time.Duration
	timerStartTime   time.Time
	timerMu          sync.Mutex

	mu sync.RWMutex
}

// New 创建对局。players 须按座位顺序给出，events 为 nil 时使用空实现
func New(players []*Player, events Events, cfg Config) *Session {
	if events == nil {
		events = NopEvents{}
	}
	if cfg.Decks <= 0 {
		cfg.Decks = 2
	}
	if cfg.JokersPerDeck < 0 {
		cfg.JokersPerDeck = 0
	}
	if cfg.TurnTimeout <= 0 {
		cfg.TurnTimeout = 30 * time.Second
	}
	if len(cfg.Contracts) == 0 {
		cfg.Contracts = contract.Default()
	}

	for i, p := range players {
		p.Seat = i
	}

	return &Session{
		cfg:     cfg,
		events:  events,
		players: players,
		phase:   PhaseDealing,
	}
}

// StartRound 开始当前合约的一轮：洗牌、发牌、翻首张弃牌
func (s *Session) StartRound() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseDealing && s.phase != PhaseRoundEnded {
		return
	}

	s.deck = card.NewShoe(s.cfg.Decks, s.cfg.JokersPerDeck)
	s.deck.Shuffle()
	s.discard = nil
	s.table = nil

	handSize := s.currentContract().HandSize()
	for _, p := range s.players {
		p.Hand = nil
		p.LaidDown = false
	}
	for range handSize {
		for _, p := range s.players {
			p.Hand = append(p.Hand, s.drawFromDeck())
		}
	}
	for _, p := range s.players {
		card.SortHand(p.Hand)
	}

	// 翻开首张弃牌，给第一位玩家捡牌的机会
	s.discard = append(s.discard, s.drawFromDeck())

	s.phase = PhasePlaying
	s.current = (s.dealerIdx + 1) % len(s.players)
	s.drew = false

	s.events.OnRoundStart(s.currentContract())
	s.events.OnTurn(s.players[s.current].ID, s.cfg.TurnTimeout)
	s.startTurnTimer()
}

// currentContract 当前合约，调用方须持有锁
func (s *Session) currentContract() contract.Contract {
	return s.cfg.Contracts[s.contractIdx]
}

// drawFromDeck 从牌堆顶取一张，调用方须持有锁并保证牌堆非空
func (s *Session) drawFromDeck() card.Card {
	c := s.deck[len(s.deck)-1]
	s.deck = s.deck[:len(s.deck)-1]
	return c
}

// --- 只读访问 ---

// Phase 当前阶段
func (s *Session) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// CurrentContract 当前合约
func (s *Session) CurrentContract() contract.Contract {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentContract()
}

// Contracts 全部合约表
func (s *Session) Contracts() []contract.Contract {
	return s.cfg.Contracts
}

// CurrentPlayerID 当前回合玩家 ID
func (s *Session) CurrentPlayerID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.players[s.current].ID
}

// HasDrawn 当前玩家本回合是否已摸牌
func (s *Session) HasDrawn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drew
}

// Players 玩家列表（座位顺序）
func (s *Session) Players() []*Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.players
}

// PlayerHand 返回某玩家手牌的副本
func (s *Session) PlayerHand(playerID string) []card.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.players {
		if p.ID == playerID {
			hand := make([]card.Card, len(p.Hand))
			copy(hand, p.Hand)
			return hand
		}
	}
	return nil
}

// HasLaidDown 某玩家本轮是否已完成合约
func (s *Session) HasLaidDown(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.players {
		if p.ID == playerID {
			return p.LaidDown
		}
	}
	return false
}

// Table 桌面组合快照。组合的牌也会被拷贝，
// 后续的扩展操作不会改动已返回的快照
func (s *Session) Table() []TableCombo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	table := make([]TableCombo, len(s.table))
	for i, tc := range s.table {
		cards := make([]card.Card, len(tc.Combo.Cards))
		copy(cards, tc.Combo.Cards)
		table[i] = TableCombo{
			OwnerID: tc.OwnerID,
			Combo:   &rule.Combination{Kind: tc.Combo.Kind, Cards: cards},
		}
	}
	return table
}

// DiscardTop 弃牌堆顶
func (s *Session) DiscardTop() (card.Card, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.discard) == 0 {
		return card.Card{}, false
	}
	return s.discard[len(s.discard)-1], true
}

// DeckLeft 牌堆剩余张数
func (s *Session) DeckLeft() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.deck)
}

// findPlayer 按 ID 查找玩家，调用方须持有锁
func (s *Session) findPlayer(playerID string) (int, *Player) {
	for i, p := range s.players {
		if p.ID == playerID {
			return i, p
		}
	}
	return -1, nil
}
