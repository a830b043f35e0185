package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/carioca-online/internal/client"
	"github.com/palemoky/carioca-online/internal/protocol"
	"github.com/palemoky/carioca-online/internal/sound"
)

// 游戏阶段
type GamePhase int

const (
	PhaseConnecting GamePhase = iota
	PhaseLobby
	PhaseRoomList
	PhaseMatching
	PhaseWaiting
	PhasePlaying
	PhaseRoundEnd
	PhaseGameOver
	PhaseLeaderboard
	PhaseStats
	PhaseRules
)

// ServerMessage 服务器消息（用于 tea.Msg）
type ServerMessage struct {
	Msg *protocol.Message
}

// ConnectedMsg 连接成功消息
type ConnectedMsg struct{}

// ConnectionErrorMsg 连接错误消息
type ConnectionErrorMsg struct {
	Err error
}

// ReconnectingMsg 正在重连消息
type ReconnectingMsg struct {
	Attempt  int
	MaxTries int
}

// ReconnectSuccessMsg 重连成功消息
type ReconnectSuccessMsg struct{}

// ClearReconnectMsg 清除重连提示
type ClearReconnectMsg struct{}

// ClearErrorMsg 清除错误提示
type ClearErrorMsg struct{}

const lobbyPlaceholder = "输入选项 (1-6) 或房间号"

// OnlineModel 联网对局的 bubbletea model
type OnlineModel struct {
	client *client.Client
	state  *client.GameState
	phase  GamePhase
	error  string

	playerID   string
	playerName string

	matchingStartTime time.Time

	// 网络状态
	latency int64

	// 重连状态
	reconnecting     bool
	reconnectMessage string
	reconnectChan    chan tea.Msg

	// 大厅数据
	onlineCount     int
	availableRooms  []protocol.RoomListItem
	selectedRoomIdx int
	leaderboard     []protocol.LeaderboardEntry
	myStats         *protocol.StatsResultPayload

	// 对局内开关
	counterEnabled bool
	showingHelp    bool

	soundManager *sound.SoundManager

	input  *textinput.Model
	timer  timer.Model
	width  int
	height int
}

// NewOnlineModel 创建联网模式 model
func NewOnlineModel(serverURL string) *OnlineModel {
	ti := textinput.New()
	ti.Placeholder = lobbyPlaceholder
	ti.CharLimit = 64
	ti.Width = 36
	ti.Focus()

	c := client.NewClient(serverURL)
	reconnectChan := make(chan tea.Msg, 10)

	m := &OnlineModel{
		client:        c,
		state:         client.NewGameState(),
		phase:         PhaseConnecting,
		input:         &ti,
		reconnectChan: reconnectChan,
		soundManager:  sound.NewSoundManager(),
	}

	// 重连进度通过 channel 转成 Bubble Tea 消息
	c.OnReconnecting = func(attempt, maxTries int) {
		select {
		case reconnectChan <- ReconnectingMsg{Attempt: attempt, MaxTries: maxTries}:
		default:
		}
	}
	c.OnReconnect = func() {
		select {
		case reconnectChan <- ReconnectSuccessMsg{}:
		default:
		}
	}

	return m
}

func (m *OnlineModel) Init() tea.Cmd {
	go func() {
		_ = m.soundManager.Init()
	}()

	return tea.Batch(
		m.connectToServer(),
		textinput.Blink,
		m.listenForReconnect(),
	)
}

// listenForReconnect 监听重连消息
func (m *OnlineModel) listenForReconnect() tea.Cmd {
	return func() tea.Msg {
		return <-m.reconnectChan
	}
}

// connectToServer 连接服务器
func (m *OnlineModel) connectToServer() tea.Cmd {
	return func() tea.Msg {
		if err := m.client.Connect(); err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ConnectedMsg{}
	}
}

// listenForMessages 监听服务器消息
func (m *OnlineModel) listenForMessages() tea.Cmd {
	return func() tea.Msg {
		msg, err := m.client.Receive()
		if err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ServerMessage{Msg: msg}
	}
}

func (m *OnlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		handled, returnCmd := m.handleKeyPress(msg)
		if handled {
			return m, returnCmd
		}

	case ConnectedMsg:
		m.phase = PhaseLobby
		m.playerID = m.client.PlayerID
		m.playerName = m.client.PlayerName
		m.client.StartHeartbeat()
		cmds = append(cmds, m.listenForMessages())

	case ConnectionErrorMsg:
		m.error = fmt.Sprintf("无法连接到服务器: %v\n\n按 ESC 退出", msg.Err)
		m.phase = PhaseConnecting

	case ReconnectingMsg:
		m.reconnecting = true
		m.reconnectMessage = fmt.Sprintf("🔄 正在重连 (%d/%d)...", msg.Attempt, msg.MaxTries)
		cmds = append(cmds, m.listenForReconnect())

	case ReconnectSuccessMsg:
		m.reconnecting = false
		m.reconnectMessage = "✅ 重连成功！"
		cmds = append(cmds, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return ClearReconnectMsg{}
		}))
		cmds = append(cmds, m.listenForReconnect())
		// 重连后 receive channel 被重置，需要重新监听
		if m.client.IsConnected() {
			cmds = append(cmds, m.listenForMessages())
		}

	case ClearReconnectMsg:
		m.reconnectMessage = ""

	case ClearErrorMsg:
		m.error = ""

	case ServerMessage:
		cmd = m.handleServerMessage(msg.Msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if m.client.IsConnected() {
			cmds = append(cmds, m.listenForMessages())
		}
	}

	m.timer, cmd = m.timer.Update(msg)
	cmds = append(cmds, cmd)

	newInput, cmd := m.input.Update(msg)
	*m.input = newInput
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress 处理按键消息，返回是否已处理和命令
func (m *OnlineModel) handleKeyPress(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m.handleEscKey()
	case tea.KeyUp:
		if m.phase == PhaseRoomList && m.selectedRoomIdx > 0 {
			m.selectedRoomIdx--
		}
		return false, nil
	case tea.KeyDown:
		if m.phase == PhaseRoomList && m.selectedRoomIdx < len(m.availableRooms)-1 {
			m.selectedRoomIdx++
		}
		return false, nil
	case tea.KeyRunes:
		return m.handleRuneKey(msg)
	case tea.KeyEnter:
		cmd := m.handleEnter()
		return false, cmd
	}
	return false, nil
}

// handleEscKey 处理 ESC 键
func (m *OnlineModel) handleEscKey() (bool, tea.Cmd) {
	if m.showingHelp {
		m.showingHelp = false
		return true, nil
	}
	// 从查询页面返回大厅
	if m.phase == PhaseRoomList || m.phase == PhaseMatching || m.phase == PhaseLeaderboard || m.phase == PhaseStats || m.phase == PhaseRules {
		m.phase = PhaseLobby
		m.error = ""
		m.input.Reset()
		m.input.Placeholder = lobbyPlaceholder
		m.input.Focus()
		return true, nil
	}
	// 对局中 ESC 不退出，避免误操作
	if m.phase == PhaseWaiting || m.phase == PhasePlaying || m.phase == PhaseRoundEnd {
		m.error = "对局进行中，无法退出！"
		return true, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return ClearErrorMsg{}
		})
	}
	m.client.Close()
	return true, tea.Quit
}

// handleRuneKey 处理快捷键（C 记牌器 / H 帮助）
func (m *OnlineModel) handleRuneKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if len(msg.Runes) == 0 || m.phase != PhasePlaying {
		return false, nil
	}
	// 输入框有内容时按键是在打命令，不拦截
	if m.input.Value() != "" {
		return false, nil
	}

	switch msg.Runes[0] {
	case 'c', 'C':
		m.counterEnabled = !m.counterEnabled
		return true, nil
	case 'h', 'H':
		m.showingHelp = !m.showingHelp
		return true, nil
	}

	return false, nil
}

// handleEnter 处理回车键
func (m *OnlineModel) handleEnter() tea.Cmd {
	input := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	m.error = ""

	switch m.phase {
	case PhaseLobby:
		// 1=快速匹配, 2=创建房间, 3=加入房间, 4=排行榜, 5=我的战绩, 6=游戏规则
		switch input {
		case "1":
			m.phase = PhaseMatching
			m.matchingStartTime = time.Now()
			_ = m.client.QuickMatch()
		case "2":
			_ = m.client.CreateRoom()
		case "3":
			m.phase = PhaseRoomList
			m.selectedRoomIdx = 0
			m.input.Placeholder = "或直接输入房间号..."
			m.input.Focus()
			_ = m.client.GetRoomList()
		case "4":
			m.phase = PhaseLeaderboard
			_ = m.client.GetLeaderboard("total", 0, 10)
		case "5":
			m.phase = PhaseStats
			_ = m.client.GetStats()
		case "6":
			m.phase = PhaseRules
		default:
			if len(input) > 0 {
				_ = m.client.JoinRoom(strings.ToUpper(input))
			}
		}

	case PhaseRoomList:
		if input == "" {
			if len(m.availableRooms) > 0 && m.selectedRoomIdx < len(m.availableRooms) {
				_ = m.client.JoinRoom(m.availableRooms[m.selectedRoomIdx].RoomCode)
			}
		} else {
			_ = m.client.JoinRoom(strings.ToUpper(input))
		}

	case PhaseWaiting:
		if strings.EqualFold(input, "r") || strings.EqualFold(input, "ready") {
			_ = m.client.Ready()
		}

	case PhasePlaying:
		if m.state.CurrentTurn == m.playerID && input != "" {
			if err := m.executeCommand(input); err != nil {
				m.error = err.Error()
			}
		}

	case PhaseRoundEnd:
		// 等待服务器发下一轮，回车无动作
		return nil

	case PhaseGameOver:
		m.phase = PhaseLobby
		m.input.Placeholder = lobbyPlaceholder
		m.input.Focus()
		m.state.Reset()
	}

	return nil
}

func (m *OnlineModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string

	switch m.phase {
	case PhaseConnecting:
		content = m.connectingView()
	case PhaseLobby:
		content = m.lobbyView()
	case PhaseRoomList:
		content = m.roomListView()
	case PhaseMatching:
		content = m.matchingView()
	case PhaseWaiting:
		content = m.waitingView()
	case PhasePlaying:
		if m.showingHelp {
			content = m.rulesView()
		} else {
			content = m.gameView()
		}
	case PhaseRoundEnd:
		content = m.roundEndView()
	case PhaseGameOver:
		content = m.gameOverView()
	case PhaseLeaderboard:
		content = m.leaderboardView()
	case PhaseStats:
		content = m.statsView()
	case PhaseRules:
		content = m.rulesView()
	}

	return docStyle.Render(content)
}
