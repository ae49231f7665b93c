package storage

import (
	"database/sql"
	"log"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

var (
	DB   *sql.DB
	Once sync.Once
)

func InitDB(path string) {
	Once.Do(func() {
		var err error
		DB, err = sql.Open("sqlite3", path)
		if err != nil {
			log.Fatalf("Failed to open sqlite db: %v", err)
		}

		createTableSQL := `
		CREATE TABLE IF NOT EXISTS run_history (
			session_id TEXT PRIMARY KEY,
			name TEXT,
			runs INTEGER DEFAULT 0,
			clears INTEGER DEFAULT 0,
			best_depth INTEGER DEFAULT 0,
			best_score REAL DEFAULT 0,
			last_seen TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		`
		_, err = DB.Exec(createTableSQL)
		if err != nil {
			log.Fatalf("Failed to create table: %v", err)
		}
		log.Println("SQLite persistence initialized.")
	})
}

// SaveRunResult upserts one finished run into the session's lifetime stats.
func SaveRunResult(sessionID, name string, cleared bool, depth int, score float64) {
	if DB == nil {
		return
	}

	clearInc := 0
	if cleared {
		clearInc = 1
	}
	query := `
	INSERT INTO run_history (session_id, name, runs, clears, best_depth, best_score, last_seen)
	VALUES (?, ?, 1, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(session_id) DO UPDATE SET
		name = excluded.name,
		runs = runs + 1,
		clears = clears + excluded.clears,
		best_depth = MAX(best_depth, excluded.best_depth),
		best_score = MAX(best_score, excluded.best_score),
		last_seen = CURRENT_TIMESTAMP;
	`
	_, err := DB.Exec(query, sessionID, name, clearInc, depth, score)
	if err != nil {
		log.Printf("Error saving run for %s: %v", sessionID, err)
	}
}

// SessionStats is a session's lifetime record.
type SessionStats struct {
	SessionID string  `json:"session_id"`
	Name      string  `json:"name"`
	Runs      int     `json:"runs"`
	Clears    int     `json:"clears"`
	BestDepth int     `json:"best_depth"`
	BestScore float64 `json:"best_score"`
}

// LoadStats fetches one session's stats; ok is false when the session has no
// recorded runs.
func LoadStats(sessionID string) (SessionStats, bool) {
	stats := SessionStats{SessionID: sessionID}
	if DB == nil {
		return stats, false
	}

	row := DB.QueryRow(
		"SELECT name, runs, clears, best_depth, best_score FROM run_history WHERE session_id = ?",
		sessionID)
	err := row.Scan(&stats.Name, &stats.Runs, &stats.Clears, &stats.BestDepth, &stats.BestScore)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("Error loading stats for %s: %v", sessionID, err)
		}
		return stats, false
	}
	return stats, true
}
