package services

import (
	"time"

	"github.com/warithr621/game-theory/logger"
	"github.com/warithr621/game-theory/models"
	"github.com/warithr621/game-theory/monitor"
	"github.com/warithr621/game-theory/persistence"
)

// RecordService keeps round outcomes: metrics always, database when one is
// configured. It implements lobby.Recorder.
type RecordService struct {
	store persistence.Store // nil disables persistence
	mon   *monitor.Monitor  // nil disables metrics
}

func NewRecordService(store persistence.Store, mon *monitor.Monitor) *RecordService {
	return &RecordService{store: store, mon: mon}
}

// RoundFinished persists asynchronously so the lobby's critical section
// never waits on the database.
func (s *RecordService) RoundFinished(lobbyID string, round int, outcome string, players []string, message string) {
	if s.mon != nil {
		s.mon.RoundFinished(outcome)
	}
	if s.store == nil {
		return
	}

	record := &models.RoundRecord{
		LobbyID:   lobbyID,
		Round:     round,
		Outcome:   outcome,
		Players:   players,
		Message:   message,
		CreatedAt: time.Now(),
	}
	go func() {
		if err := s.store.SaveRoundRecord(record); err != nil {
			logger.Log.Errorf("save round record for lobby %s: %v", lobbyID, err)
		}
	}()
}

func (s *RecordService) PlayerStats(name string) (*models.PlayerStats, error) {
	if s.store == nil {
		return nil, persistence.ErrRecordNotFound
	}
	return s.store.GetPlayerStats(name)
}

func (s *RecordService) RecentRounds(lobbyID string, limit int) ([]models.RoundRecord, error) {
	if s.store == nil {
		return nil, persistence.ErrRecordNotFound
	}
	return s.store.RecentRounds(lobbyID, limit)
}
