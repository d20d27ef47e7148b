package persistence

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/warithr621/game-theory/models"
)

// GormStore is the GORM-backed round-record store.
type GormStore struct {
	db *gorm.DB
}

// roundRecordModel is the table shape. Players is a jsonb-encoded array of
// player names.
type roundRecordModel struct {
	ID        uint   `gorm:"primaryKey"`
	LobbyID   string `gorm:"index;not null"`
	Round     int    `gorm:"not null"`
	Outcome   string `gorm:"index;not null"`
	Players   string `gorm:"type:jsonb;not null"`
	Message   string
	CreatedAt time.Time
}

func (roundRecordModel) TableName() string {
	return "round_records"
}

func NewGormStore(host string, port int, user, password, dbname string) (*GormStore, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	dbLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold: time.Second,
			LogLevel:      gormlogger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&roundRecordModel{}); err != nil {
		return nil, err
	}

	return &GormStore{db: db}, nil
}

func (s *GormStore) SaveRoundRecord(record *models.RoundRecord) error {
	players, err := json.Marshal(record.Players)
	if err != nil {
		return err
	}
	row := roundRecordModel{
		LobbyID:   record.LobbyID,
		Round:     record.Round,
		Outcome:   record.Outcome,
		Players:   string(players),
		Message:   record.Message,
		CreatedAt: record.CreatedAt,
	}
	return s.db.Create(&row).Error
}

func (s *GormStore) GetPlayerStats(name string) (*models.PlayerStats, error) {
	var stats models.PlayerStats
	err := s.db.Raw(`
        SELECT
            COUNT(*) AS total_rounds,
            COALESCE(SUM(CASE WHEN outcome = 'failure' THEN 0 ELSE 1 END), 0) AS successes,
            COALESCE(SUM(CASE WHEN outcome = 'failure' THEN 1 ELSE 0 END), 0) AS failures
        FROM round_records
        WHERE players::jsonb @> jsonb_build_array(?::text)`,
		name,
	).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *GormStore) RecentRounds(lobbyID string, limit int) ([]models.RoundRecord, error) {
	var rows []roundRecordModel
	err := s.db.
		Where("lobby_id = ?", lobbyID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]models.RoundRecord, 0, len(rows))
	for _, row := range rows {
		var players []string
		if err := json.Unmarshal([]byte(row.Players), &players); err != nil {
			return nil, err
		}
		records = append(records, models.RoundRecord{
			LobbyID:   row.LobbyID,
			Round:     row.Round,
			Outcome:   row.Outcome,
			Players:   players,
			Message:   row.Message,
			CreatedAt: row.CreatedAt,
		})
	}
	return records, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
