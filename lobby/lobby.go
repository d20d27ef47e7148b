// Package lobby holds the shared game session and the round state machine
// driving it.
package lobby

import (
	"encoding/json"
	"sync"

	"github.com/warithr621/game-theory/deck"
	"github.com/warithr621/game-theory/logger"
	"github.com/warithr621/game-theory/timer"
)

// Player is one roster entry. SessionID is the opaque connection id, stable
// for the connection lifetime.
type Player struct {
	SessionID string
	Name      string
	Hand      []deck.Card
}

// Lobby is one shared game session: roster plus round state. Every mutation
// runs under mu, so concurrent actions apply as a strict sequence, and every
// broadcast payload is built before the lock is released.
//
// A player who disconnects mid-round takes their unplaced cards with them;
// the round keeps running and can no longer be completed, only retried or
// continued. Known protocol gap, kept for client compatibility.
type Lobby struct {
	ID string

	mu             sync.Mutex
	players        []*Player
	phase          Phase
	round          int
	countdown      int
	countdownTicks int
	minPlayers     int
	lastPlaced     *deck.Card
	expected       []deck.Card
	expectedIndex  int
	failureMsg     string

	// generation invalidates countdown ticks scheduled for a superseded
	// round; every action that resets the round bumps it.
	generation uint64
	timerID    int64

	broadcaster Broadcaster
	recorder    Recorder
	timers      *timer.Manager

	outbox chan []outMsg
	done   chan struct{}
}

type outMsg struct {
	sessionID string
	msgID     uint16
	data      []byte
}

func NewLobby(id string, b Broadcaster, rec Recorder, timers *timer.Manager, countdownTicks, minPlayers int) *Lobby {
	l := &Lobby{
		ID:             id,
		phase:          PhaseIdle,
		round:          1,
		countdownTicks: countdownTicks,
		minPlayers:     minPlayers,
		broadcaster:    b,
		recorder:       rec,
		timers:         timers,
		outbox:         make(chan []outMsg, 256),
		done:           make(chan struct{}),
	}
	go l.pump()
	return l
}

// Close stops the outbound pump. Pending batches are dropped.
func (l *Lobby) Close() {
	close(l.done)
}

// pump delivers queued batches in the order they were enqueued, off the
// lobby's critical path. A single goroutine per lobby keeps every client's
// event stream in mutation order.
func (l *Lobby) pump() {
	for {
		select {
		case batch := <-l.outbox:
			for _, m := range batch {
				if err := l.broadcaster.SendTo(m.sessionID, m.msgID, m.data); err != nil {
					logger.Log.Warnf("lobby %s: send to session %s failed: %v", l.ID, m.sessionID, err)
				}
			}
		case <-l.done:
			return
		}
	}
}

// queueLocked enqueues a batch built under mu. Payloads are marshaled before
// the lock is released, so each event carries a consistent snapshot.
func (l *Lobby) queueLocked(batch []outMsg) {
	if len(batch) == 0 {
		return
	}
	select {
	case l.outbox <- batch:
	default:
		logger.Log.Errorf("lobby %s: outbox full, dropping %d messages", l.ID, len(batch))
	}
}

// stateEventLocked builds one snapshot event per connected player, each with
// their own hand visible and everyone else's hidden.
func (l *Lobby) stateEventLocked(msgID uint16) []outMsg {
	batch := make([]outMsg, 0, len(l.players))
	for _, p := range l.players {
		data, _ := json.Marshal(l.viewForLocked(p.SessionID))
		batch = append(batch, outMsg{sessionID: p.SessionID, msgID: msgID, data: data})
	}
	return batch
}

type noticePayload struct {
	Message string    `json:"message"`
	State   StateView `json:"state"`
}

type cardPlacedPayload struct {
	Player string    `json:"player"`
	Card   deck.Card `json:"card"`
	State  StateView `json:"state"`
}

type countdownPayload struct {
	Countdown int `json:"countdown"`
}

func (l *Lobby) noticeEventLocked(msgID uint16, message string) []outMsg {
	batch := make([]outMsg, 0, len(l.players))
	for _, p := range l.players {
		data, _ := json.Marshal(noticePayload{Message: message, State: l.viewForLocked(p.SessionID)})
		batch = append(batch, outMsg{sessionID: p.SessionID, msgID: msgID, data: data})
	}
	return batch
}

func (l *Lobby) cardPlacedEventLocked(msgID uint16, playerName string, card deck.Card) []outMsg {
	batch := make([]outMsg, 0, len(l.players))
	for _, p := range l.players {
		data, _ := json.Marshal(cardPlacedPayload{Player: playerName, Card: card, State: l.viewForLocked(p.SessionID)})
		batch = append(batch, outMsg{sessionID: p.SessionID, msgID: msgID, data: data})
	}
	return batch
}

func (l *Lobby) countdownEventLocked(msgID uint16) []outMsg {
	data, _ := json.Marshal(countdownPayload{Countdown: l.countdown})
	batch := make([]outMsg, 0, len(l.players))
	for _, p := range l.players {
		batch = append(batch, outMsg{sessionID: p.SessionID, msgID: msgID, data: data})
	}
	return batch
}

func (l *Lobby) setPhaseLocked(next Phase) {
	if l.phase == next {
		return
	}
	if !l.phase.canAdvanceTo(next) {
		logger.Log.Errorf("lobby %s: illegal phase change %s -> %s", l.ID, l.phase, next)
	}
	l.phase = next
}

func (l *Lobby) playerLocked(sessionID string) *Player {
	for _, p := range l.players {
		if p.SessionID == sessionID {
			return p
		}
	}
	return nil
}

// Phase returns the current round phase.
func (l *Lobby) Phase() Phase {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.phase
}

// Round returns the current round number.
func (l *Lobby) Round() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.round
}

// PlayerCount returns the roster size.
func (l *Lobby) PlayerCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.players)
}

// Snapshot returns the fully hidden session view (no hands revealed). Used
// by the ops RPC endpoint.
func (l *Lobby) Snapshot() StateView {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.viewForLocked("")
}

// Manager keys lobbies by id. This deployment uses a single key, but the
// state machine never assumes that.
type Manager struct {
	lobbies map[string]*Lobby
	mutex   sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		lobbies: make(map[string]*Lobby),
	}
}

// GetOrCreate returns the lobby for id, creating it on first use.
func (m *Manager) GetOrCreate(id string, b Broadcaster, rec Recorder, timers *timer.Manager, countdownTicks, minPlayers int) *Lobby {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if l, exists := m.lobbies[id]; exists {
		return l
	}
	l := NewLobby(id, b, rec, timers, countdownTicks, minPlayers)
	m.lobbies[id] = l
	return l
}

func (m *Manager) Get(id string) (*Lobby, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	l, exists := m.lobbies[id]
	return l, exists
}

// Remove closes and drops a lobby.
func (m *Manager) Remove(id string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if l, exists := m.lobbies[id]; exists {
		l.Close()
		delete(m.lobbies, id)
	}
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.lobbies)
}
