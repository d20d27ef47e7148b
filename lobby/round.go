package lobby

import (
	"errors"
	"strings"
	"time"

	"github.com/warithr621/game-theory/deck"
	"github.com/warithr621/game-theory/logger"
	"github.com/warithr621/game-theory/network"
)

// Transient validation errors. The text is shown to the player verbatim.
var (
	ErrNameRequired     = errors.New("Please enter your name")
	ErrNotEnoughPlayers = errors.New("Need at least 2 players to start")
	ErrAlreadyStarted   = errors.New("Game already started")
)

const (
	roundCompleteMessage = "Round completed successfully!"
	gameCompleteMessage  = "Congratulations! You've successfully played through the entire deck!"

	outcomeSuccess  = "success"
	outcomeFailure  = "failure"
	outcomeComplete = "complete"
)

// Join adds a new player or renames an existing one, then resets the round
// sub-state to idle. Round number and roster order survive the reset.
func (l *Lobby) Join(sessionID, name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if p := l.playerLocked(sessionID); p != nil {
		p.Name = name
	} else {
		l.players = append(l.players, &Player{SessionID: sessionID, Name: name})
	}

	l.resetRoundLocked()
	l.setPhaseLocked(PhaseIdle)
	l.queueLocked(l.stateEventLocked(network.MsgTypeLobbyUpdate))
	logger.Log.Infof("player %q joined lobby %s", name, l.ID)
	return nil
}

// Start begins round one. Allowed from idle or any finished round; rejected
// while a countdown or round is in flight.
func (l *Lobby) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.players) < l.minPlayers {
		return ErrNotEnoughPlayers
	}
	if l.phase == PhaseStarting || l.phase == PhasePlaying {
		return ErrAlreadyStarted
	}

	l.round = 1
	if err := l.dealLocked(); err != nil {
		return err
	}
	l.beginCountdownLocked()
	return nil
}

// PlaceCard applies one placement attempt. Outside an active round, during
// the countdown, or for a card the player does not hold, it is a silent
// no-op: no state change, no broadcast.
//
// A wrongly placed card is consumed, not returned to the hand, and the
// expected card in the failure message is read by index from the round's
// order.
func (l *Lobby) PlaceCard(sessionID string, card deck.Card) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.phase != PhasePlaying {
		return
	}
	player := l.playerLocked(sessionID)
	if player == nil {
		return
	}
	if !removeCard(&player.Hand, card) {
		return
	}

	placed := card
	l.lastPlaced = &placed

	verdict := judgePlacement(l.expected, l.expectedIndex, card)
	if verdict.Match {
		l.expectedIndex++
		l.queueLocked(l.cardPlacedEventLocked(network.MsgTypeCardPlaced, player.Name, card))
		if l.allHandsEmptyLocked() {
			l.setPhaseLocked(PhaseRoundSucceeded)
			l.queueLocked(l.noticeEventLocked(network.MsgTypeRoundComplete, roundCompleteMessage))
			l.recordLocked(outcomeSuccess, roundCompleteMessage)
		}
		return
	}

	l.failureMsg = failureMessage(player.Name, card, verdict.Expected)
	l.setPhaseLocked(PhaseRoundFailed)
	l.queueLocked(l.cardPlacedEventLocked(network.MsgTypeCardPlaced, player.Name, card))
	l.queueLocked(l.noticeEventLocked(network.MsgTypeGameError, l.failureMsg))
	l.recordLocked(outcomeFailure, l.failureMsg)
	logger.Log.Infof("lobby %s: round %d failed: %s", l.ID, l.round, l.failureMsg)
}

// Retry re-deals the failed round. Anything but a failed round ignores it.
func (l *Lobby) Retry() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.phase != PhaseRoundFailed {
		return
	}
	if err := l.dealLocked(); err != nil {
		logger.Log.Errorf("lobby %s: retry deal failed: %v", l.ID, err)
		return
	}
	l.beginCountdownLocked()
}

// Continue moves a cleared round forward. When the next round would need
// more cards than the deck holds, the game is complete.
func (l *Lobby) Continue() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.phase != PhaseRoundSucceeded {
		return
	}

	next := l.round + 1
	needed := deck.CardsPerPlayer(next, len(l.players)) * len(l.players)
	if needed > deck.Size {
		l.setPhaseLocked(PhaseGameComplete)
		l.queueLocked(l.noticeEventLocked(network.MsgTypeRoundComplete, gameCompleteMessage))
		l.recordLocked(outcomeComplete, gameCompleteMessage)
		logger.Log.Infof("lobby %s: deck exhausted after round %d, game complete", l.ID, l.round)
		return
	}

	l.round = next
	if err := l.dealLocked(); err != nil {
		logger.Log.Errorf("lobby %s: continue deal failed: %v", l.ID, err)
		return
	}
	l.beginCountdownLocked()
}

// Disconnect drops the player from the roster whatever the phase. A round in
// flight keeps running without them; see the Lobby doc comment.
func (l *Lobby) Disconnect(sessionID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, p := range l.players {
		if p.SessionID == sessionID {
			l.players = append(l.players[:i], l.players[i+1:]...)
			l.queueLocked(l.stateEventLocked(network.MsgTypeLobbyUpdate))
			logger.Log.Infof("player %q left lobby %s", p.Name, l.ID)
			return
		}
	}
}

// resetRoundLocked clears the round sub-state: hands, expected order,
// countdown, failure message. Round number and roster survive.
func (l *Lobby) resetRoundLocked() {
	l.generation++
	if l.timerID != 0 && l.timers != nil {
		l.timers.Cancel(l.timerID)
		l.timerID = 0
	}
	l.countdown = 0
	l.lastPlaced = nil
	l.expected = nil
	l.expectedIndex = 0
	l.failureMsg = ""
	for _, p := range l.players {
		p.Hand = nil
	}
}

// dealLocked shuffles a fresh deck and deals for the current round number.
func (l *Lobby) dealLocked() error {
	per := deck.CardsPerPlayer(l.round, len(l.players))
	hands, _, err := deck.Deal(deck.Shuffle(deck.New()), len(l.players), per)
	if err != nil {
		return err
	}
	for i, p := range l.players {
		p.Hand = hands[i]
	}
	l.expected = deck.ExpectedOrder(hands)
	l.expectedIndex = 0
	l.lastPlaced = nil
	l.failureMsg = ""
	return nil
}

// beginCountdownLocked arms the pre-round countdown. Each tick re-checks the
// round generation, so a tick armed for a superseded round dies silently.
func (l *Lobby) beginCountdownLocked() {
	l.generation++
	gen := l.generation
	l.countdown = l.countdownTicks
	l.setPhaseLocked(PhaseStarting)
	l.queueLocked(l.stateEventLocked(network.MsgTypeGameStarting))
	if l.timers != nil {
		l.timerID = l.timers.Schedule(time.Second, time.Second, func() {
			l.countdownTick(gen)
		})
	}
}

func (l *Lobby) countdownTick(gen uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.generation || l.phase != PhaseStarting {
		return
	}
	l.countdown--
	l.queueLocked(l.countdownEventLocked(network.MsgTypeCountdownUpdate))
	if l.countdown <= 0 {
		if l.timerID != 0 && l.timers != nil {
			l.timers.Cancel(l.timerID)
			l.timerID = 0
		}
		l.setPhaseLocked(PhasePlaying)
		l.queueLocked(l.stateEventLocked(network.MsgTypeGameStart))
	}
}

func (l *Lobby) allHandsEmptyLocked() bool {
	for _, p := range l.players {
		if len(p.Hand) > 0 {
			return false
		}
	}
	return true
}

func (l *Lobby) recordLocked(outcome, message string) {
	if l.recorder == nil {
		return
	}
	names := make([]string, 0, len(l.players))
	for _, p := range l.players {
		names = append(names, p.Name)
	}
	l.recorder.RoundFinished(l.ID, l.round, outcome, names, message)
}

// removeCard deletes the first card equal to c from the hand, preserving the
// hand's sorted order. Reports whether the card was held.
func removeCard(hand *[]deck.Card, c deck.Card) bool {
	for i, held := range *hand {
		if held == c {
			*hand = append((*hand)[:i], (*hand)[i+1:]...)
			return true
		}
	}
	return false
}
