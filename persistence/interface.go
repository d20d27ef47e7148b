package persistence

import (
	"errors"

	"github.com/warithr621/game-theory/models"
)

var ErrRecordNotFound = errors.New("record not found")

// Store persists finished-round records. Two implementations exist, one on
// GORM and one on database/sql, selected by configuration.
type Store interface {
	SaveRoundRecord(record *models.RoundRecord) error
	GetPlayerStats(name string) (*models.PlayerStats, error)
	RecentRounds(lobbyID string, limit int) ([]models.RoundRecord, error)
	Close() error
}
