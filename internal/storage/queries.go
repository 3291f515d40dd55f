package storage

import (
	"database/sql"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/statsmc/mcstats/internal/model"
)

// InsertRun stores one completed run with its rendered report. The HTML is
// zstd-compressed before storage; a typical report shrinks by an order of
// magnitude. Returns the new run id.
func (db *DB) InsertRun(run model.RunSummary, html string) (int64, error) {
	snapshot, err := compress([]byte(html))
	if err != nil {
		return 0, fmt.Errorf("compress snapshot: %w", err)
	}
	res, err := db.conn.Exec(`
		INSERT INTO runs(generated_at, host, world_path, policy,
			player_count, bot_count,
			total_ticks, total_blocks, total_kills, total_deaths, distance_km,
			snapshot)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.GeneratedAt, run.Host, run.WorldPath, run.Policy,
		run.PlayerCount, run.BotCount,
		run.TotalTicks, run.TotalBlocks, run.TotalKills, run.TotalDeaths, run.DistanceKM,
		snapshot,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return res.LastInsertId()
}

// ListRuns returns all stored runs, newest first.
func (db *DB) ListRuns() ([]model.RunSummary, error) {
	rows, err := db.conn.Query(`
		SELECT id, generated_at, host, world_path, policy,
			player_count, bot_count,
			total_ticks, total_blocks, total_kills, total_deaths, distance_km
		FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []model.RunSummary
	for rows.Next() {
		var r model.RunSummary
		if err := rows.Scan(&r.ID, &r.GeneratedAt, &r.Host, &r.WorldPath, &r.Policy,
			&r.PlayerCount, &r.BotCount,
			&r.TotalTicks, &r.TotalBlocks, &r.TotalKills, &r.TotalDeaths, &r.DistanceKM,
		); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns one run by id, or nil if it does not exist.
func (db *DB) GetRun(id int64) (*model.RunSummary, error) {
	var r model.RunSummary
	err := db.conn.QueryRow(`
		SELECT id, generated_at, host, world_path, policy,
			player_count, bot_count,
			total_ticks, total_blocks, total_kills, total_deaths, distance_km
		FROM runs WHERE id = ?`, id).Scan(
		&r.ID, &r.GeneratedAt, &r.Host, &r.WorldPath, &r.Policy,
		&r.PlayerCount, &r.BotCount,
		&r.TotalTicks, &r.TotalBlocks, &r.TotalKills, &r.TotalDeaths, &r.DistanceKM,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// RunSnapshot returns the decompressed rendered report for a run.
func (db *DB) RunSnapshot(id int64) (string, error) {
	var blob []byte
	err := db.conn.QueryRow(`SELECT snapshot FROM runs WHERE id = ?`, id).Scan(&blob)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("run %d not found", id)
	}
	if err != nil {
		return "", err
	}
	html, err := decompress(blob)
	if err != nil {
		return "", fmt.Errorf("decompress snapshot for run %d: %w", id, err)
	}
	return string(html), nil
}

func compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

func decompress(blob []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(blob, nil)
}
