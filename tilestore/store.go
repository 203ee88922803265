package tilestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/katalvlaran/halo/dataset"
)

// Sentinel errors for tile store operations.
var (
	// ErrEmptyPath indicates Open was called without a database path.
	ErrEmptyPath = errors.New("tilestore: empty db path")
	// ErrZoomRange indicates a zoom level outside [0, MaxZoom].
	ErrZoomRange = errors.New("tilestore: zoom level out of range")
	// ErrOutOfRange indicates a tile coordinate outside its zoom level's matrix.
	ErrOutOfRange = errors.New("tilestore: tile outside zoom matrix")
)

const schema = `
CREATE TABLE IF NOT EXISTS metadata (name TEXT PRIMARY KEY, value TEXT);
CREATE TABLE IF NOT EXISTS tiles (
	zoom_level  INTEGER NOT NULL,
	tile_column INTEGER NOT NULL,
	tile_row    INTEGER NOT NULL,
	tile_data   BLOB,
	PRIMARY KEY (zoom_level, tile_column, tile_row)
);`

// Store is an SQLite-backed tile set.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the tile database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("tilestore: open %s: %w", path, err)
	}
	// One writer at a time keeps SQLite from returning SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("tilestore: init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SetMetadata stores an MBTiles metadata entry.
func (s *Store) SetMetadata(ctx context.Context, name, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO metadata(name, value) VALUES(?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value`, name, value)
	if err != nil {
		return fmt.Errorf("tilestore: set metadata %q: %w", name, err)
	}

	return nil
}

// Metadata returns the value of an MBTiles metadata entry and whether it exists.
func (s *Store) Metadata(ctx context.Context, name string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE name = ?`, name).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("tilestore: metadata %q: %w", name, err)
	}

	return v, true, nil
}

// Put writes tiles in a single transaction, replacing existing ones.
func (s *Store) Put(ctx context.Context, tiles []dataset.Pair[Key, []byte]) error {
	for _, t := range tiles {
		if !t.Key.Valid() {
			return fmt.Errorf("%w: %v", ErrOutOfRange, t.Key)
		}
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("tilestore: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO tiles(zoom_level, tile_column, tile_row, tile_data) VALUES(?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("tilestore: prepare: %w", err)
	}
	defer stmt.Close()

	for _, t := range tiles {
		k := t.Key
		if _, err := stmt.ExecContext(ctx, k.Zoom, k.Col, tmsRow(k.Zoom, k.Row), t.Value); err != nil {
			return fmt.Errorf("tilestore: put %v: %w", k, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tilestore: commit: %w", err)
	}

	return nil
}

// Load returns every tile of the given zoom level ordered by column, then row.
func (s *Store) Load(ctx context.Context, zoom int) ([]dataset.Pair[Key, []byte], error) {
	if zoom < 0 || zoom > MaxZoom {
		return nil, fmt.Errorf("%w: %d", ErrZoomRange, zoom)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT tile_column, tile_row, tile_data FROM tiles
		 WHERE zoom_level = ? ORDER BY tile_column, tile_row DESC`, zoom)
	if err != nil {
		return nil, fmt.Errorf("tilestore: query zoom %d: %w", zoom, err)
	}
	defer rows.Close()

	var out []dataset.Pair[Key, []byte]
	for rows.Next() {
		var col, tms int
		var data []byte
		if err := rows.Scan(&col, &tms, &data); err != nil {
			return nil, fmt.Errorf("tilestore: scan: %w", err)
		}
		k := Key{Zoom: zoom}
		k.Col, k.Row = col, tmsRow(zoom, tms)
		out = append(out, dataset.KV(k, data))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tilestore: rows: %w", err)
	}

	return out, nil
}

// Count returns the number of tiles stored at zoom.
func (s *Store) Count(ctx context.Context, zoom int) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tiles WHERE zoom_level = ?`, zoom).Scan(&n); err != nil {
		return 0, fmt.Errorf("tilestore: count zoom %d: %w", zoom, err)
	}

	return n, nil
}
