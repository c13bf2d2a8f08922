// store.go - SQLite storage for visitor and download statistics
package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

type statsStore struct {
	db *sql.DB
}

// openStatsStore opens (or creates) the SQLite database at path and makes
// sure the schema exists. ":memory:" works for tests.
func openStatsStore(path string) (*statsStore, error) {
	db, err := sql.Open("sqlite", path+"?_time_format=sqlite")
	if err != nil {
		return nil, fmt.Errorf("open stats db: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across queries.
	db.SetMaxOpenConns(1)

	s := &statsStore{db: db}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *statsStore) init() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS visitors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hashed_ip TEXT NOT NULL,  -- never the raw IP
			user_agent TEXT,
			path TEXT,
			timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp)`,
		`CREATE TABLE IF NOT EXISTS downloads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			asset TEXT NOT NULL,
			found INTEGER NOT NULL,
			timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("init stats schema: %w", err)
		}
	}
	log.Println("Stats store initialized")
	return nil
}

func (s *statsStore) Close() error {
	return s.db.Close()
}

func (s *statsStore) recordVisit(hashedIP, userAgent, path string, at time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, hashedIP, userAgent, path, at.UTC())
	return err
}

func (s *statsStore) recordDownload(asset string, found bool, at time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO downloads (asset, found, timestamp)
		VALUES (?, ?, ?)
	`, asset, found, at.UTC())
	return err
}

// deleteVisitorsBefore removes visitor rows older than cutoff and returns how
// many were removed.
func (s *statsStore) deleteVisitorsBefore(cutoff time.Time) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM visitors WHERE timestamp < ?`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// visitorTotals returns all recorded visits and the number of distinct
// hashed IPs.
func (s *statsStore) visitorTotals() (total, unique int64, err error) {
	err = s.db.QueryRow(`SELECT COUNT(*), COUNT(DISTINCT hashed_ip) FROM visitors`).Scan(&total, &unique)
	return total, unique, err
}

// downloadTotals returns all asset requests and how many of them could not
// be served.
func (s *statsStore) downloadTotals() (total, failed int64, err error) {
	err = s.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN found = 0 THEN 1 ELSE 0 END), 0)
		FROM downloads
	`).Scan(&total, &failed)
	return total, failed, err
}

func (s *statsStore) assetStats() ([]AssetStat, error) {
	rows, err := s.db.Query(`
		SELECT asset,
			SUM(CASE WHEN found = 1 THEN 1 ELSE 0 END) AS served,
			SUM(CASE WHEN found = 0 THEN 1 ELSE 0 END) AS not_found
		FROM downloads
		GROUP BY asset
		ORDER BY served DESC, asset ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AssetStat
	for rows.Next() {
		var a AssetStat
		if err := rows.Scan(&a.Asset, &a.Served, &a.NotFound); err != nil {
			continue
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *statsStore) recentVisitors(limit int) ([]VisitorMetric, error) {
	rows, err := s.db.Query(`
		SELECT id, hashed_ip, user_agent, path, timestamp
		FROM visitors
		ORDER BY timestamp DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visitors []VisitorMetric
	for rows.Next() {
		var v VisitorMetric
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Timestamp); err != nil {
			continue
		}
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}

func (s *statsStore) countVisitorsSince(since time.Time) (int64, error) {
	var n int64
	err := s.db.QueryRow(`SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, since.UTC()).Scan(&n)
	return n, err
}

// dailyVisits returns one count per day for the days ending with today,
// oldest first, with zero for days without visits.
func (s *statsStore) dailyVisits(days int, now time.Time) ([]DailyCount, error) {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -(days - 1))

	rows, err := s.db.Query(`
		SELECT DATE(timestamp) AS day, COUNT(*)
		FROM visitors
		WHERE timestamp >= ?
		GROUP BY day
	`, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var day string
		var n int64
		if err := rows.Scan(&day, &n); err != nil {
			continue
		}
		counts[day] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]DailyCount, days)
	for i := range out {
		d := start.AddDate(0, 0, i)
		out[i] = DailyCount{Day: d, Visits: counts[d.Format("2006-01-02")]}
	}
	return out, nil
}
