package broadcast

import (
	"errors"

	"github.com/warithr621/game-theory/session"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionBroadcaster delivers packets to sessions by id. It satisfies
// lobby.Broadcaster; the lobby builds per-recipient payloads itself because
// hand visibility differs per recipient.
type SessionBroadcaster struct {
	sessions *session.Manager
}

func NewSessionBroadcaster(sessions *session.Manager) *SessionBroadcaster {
	return &SessionBroadcaster{sessions: sessions}
}

func (b *SessionBroadcaster) SendTo(sessionID string, msgID uint16, data []byte) error {
	s, exists := b.sessions.Get(sessionID)
	if !exists {
		return ErrSessionNotFound
	}
	return s.Send(msgID, data)
}
