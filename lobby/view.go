package lobby

import (
	"github.com/warithr621/game-theory/deck"
)

// PlayerView is one roster entry as seen by a particular recipient. Cards is
// populated only on the recipient's own entry; everyone else shows a count.
type PlayerView struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Cards     []deck.Card `json:"cards,omitempty"`
	CardCount int         `json:"cardCount"`
}

// StateView is the session snapshot pushed to clients after every accepted
// mutation. The expected order itself is never included; it is the hidden
// information the game is about.
type StateView struct {
	Players        []PlayerView `json:"players"`
	Phase          Phase        `json:"phase"`
	Round          int          `json:"round"`
	Countdown      int          `json:"countdown"`
	LastPlacedCard *deck.Card   `json:"lastPlacedCard,omitempty"`
	CardsPlaced    int          `json:"cardsPlaced"`
	CardsTotal     int          `json:"cardsTotal"`
	ErrorMessage   string       `json:"errorMessage,omitempty"`
}

// viewForLocked builds the snapshot tailored to one recipient. An empty
// sessionID yields the fully hidden view. Caller holds mu.
func (l *Lobby) viewForLocked(sessionID string) StateView {
	view := StateView{
		Phase:        l.phase,
		Round:        l.round,
		Countdown:    l.countdown,
		CardsPlaced:  l.expectedIndex,
		CardsTotal:   len(l.expected),
		ErrorMessage: l.failureMsg,
	}
	if l.lastPlaced != nil {
		card := *l.lastPlaced
		view.LastPlacedCard = &card
	}
	for _, p := range l.players {
		pv := PlayerView{ID: p.SessionID, Name: p.Name, CardCount: len(p.Hand)}
		if p.SessionID == sessionID {
			pv.Cards = append([]deck.Card(nil), p.Hand...)
		}
		view.Players = append(view.Players, pv)
	}
	return view
}
