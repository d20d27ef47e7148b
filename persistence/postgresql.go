package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	// PostgreSQL driver
	_ "github.com/lib/pq"

	"github.com/warithr621/game-theory/models"
)

// PostgreSQL is the raw database/sql round-record store, selected by the
// "sql" database driver setting.
type PostgreSQL struct {
	db *sql.DB
}

func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initTables(db); err != nil {
		return nil, err
	}

	return &PostgreSQL{db: db}, nil
}

func initTables(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS round_records (
            id SERIAL PRIMARY KEY,
            lobby_id TEXT NOT NULL,
            round INT NOT NULL,
            outcome TEXT NOT NULL,
            players JSONB NOT NULL,
            message TEXT,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_round_records_lobby ON round_records (lobby_id);
        CREATE INDEX IF NOT EXISTS idx_round_records_outcome ON round_records (outcome);
    `)
	return err
}

func (p *PostgreSQL) SaveRoundRecord(record *models.RoundRecord) error {
	players, err := json.Marshal(record.Players)
	if err != nil {
		return err
	}
	_, err = p.db.Exec(`
        INSERT INTO round_records (lobby_id, round, outcome, players, message, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		record.LobbyID, record.Round, record.Outcome, players, record.Message, record.CreatedAt,
	)
	return err
}

func (p *PostgreSQL) GetPlayerStats(name string) (*models.PlayerStats, error) {
	var stats models.PlayerStats
	err := p.db.QueryRow(`
        SELECT
            COUNT(*),
            COALESCE(SUM(CASE WHEN outcome = 'failure' THEN 0 ELSE 1 END), 0),
            COALESCE(SUM(CASE WHEN outcome = 'failure' THEN 1 ELSE 0 END), 0)
        FROM round_records
        WHERE players @> jsonb_build_array($1::text)`,
		name,
	).Scan(&stats.TotalRounds, &stats.Successes, &stats.Failures)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (p *PostgreSQL) RecentRounds(lobbyID string, limit int) ([]models.RoundRecord, error) {
	rows, err := p.db.Query(`
        SELECT lobby_id, round, outcome, players, message, created_at
        FROM round_records
        WHERE lobby_id = $1
        ORDER BY created_at DESC
        LIMIT $2`,
		lobbyID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.RoundRecord
	for rows.Next() {
		var record models.RoundRecord
		var players []byte
		if err := rows.Scan(&record.LobbyID, &record.Round, &record.Outcome, &players, &record.Message, &record.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(players, &record.Players); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (p *PostgreSQL) Close() error {
	return p.db.Close()
}
