package models

import (
	"time"
)

// RoundRecord is the persisted outcome of one finished round.
type RoundRecord struct {
	LobbyID   string    `json:"lobby_id"`
	Round     int       `json:"round"`
	Outcome   string    `json:"outcome"` // success/failure/complete
	Players   []string  `json:"players"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// PlayerStats aggregates the recorded rounds a player took part in.
type PlayerStats struct {
	TotalRounds int `json:"total_rounds"`
	Successes   int `json:"successes"`
	Failures    int `json:"failures"`
}
