package lobby

// Broadcaster delivers prepared packets to connected sessions. Defined here,
// not in package broadcast, to break the import cycle between the two.
type Broadcaster interface {
	SendTo(sessionID string, msgID uint16, data []byte) error
}

// Recorder is told about finished rounds. Implementations must return
// quickly; recording happens off the lobby's critical path.
type Recorder interface {
	RoundFinished(lobbyID string, round int, outcome string, players []string, message string)
}
