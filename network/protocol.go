package network

// Message ids. Client requests are 1xx, server events 3xx, transient
// validation errors 4xx.
const (
	MsgTypeHeartbeat = 1

	MsgTypeJoinLobby    = 101
	MsgTypeStartGame    = 102
	MsgTypePlaceCard    = 103
	MsgTypeRetryRound   = 104
	MsgTypeContinueGame = 105

	MsgTypeLobbyUpdate     = 301
	MsgTypeGameStarting    = 302
	MsgTypeCountdownUpdate = 303
	MsgTypeGameStart       = 304
	MsgTypeCardPlaced      = 305
	MsgTypeGameError       = 306
	MsgTypeRoundComplete   = 307

	MsgTypeError = 401
)

var typeNames = map[uint16]string{
	MsgTypeHeartbeat:       "heartbeat",
	MsgTypeJoinLobby:       "joinLobby",
	MsgTypeStartGame:       "startGame",
	MsgTypePlaceCard:       "placeCard",
	MsgTypeRetryRound:      "retryRound",
	MsgTypeContinueGame:    "continueGame",
	MsgTypeLobbyUpdate:     "lobbyUpdate",
	MsgTypeGameStarting:    "gameStarting",
	MsgTypeCountdownUpdate: "countdownUpdate",
	MsgTypeGameStart:       "gameStart",
	MsgTypeCardPlaced:      "cardPlaced",
	MsgTypeGameError:       "gameError",
	MsgTypeRoundComplete:   "roundComplete",
	MsgTypeError:           "error",
}

// TypeName returns the wire name for a message id, or "unknown".
func TypeName(msgID uint16) string {
	if name, ok := typeNames[msgID]; ok {
		return name
	}
	return "unknown"
}
