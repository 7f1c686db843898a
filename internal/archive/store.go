// ============================================================================
// meinTRANSKRIPTARCHIV (mTA) - Lokales Transkriptionsarchiv
// ============================================================================
// Package: archive
// Description: SQLite-backed transcript archive with a full-text index
//              over segment texts
// Author: Mike Stoffels with Claude
// Created: 2026-08-29
// License: MIT
// ============================================================================

package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/msto63/mTA/pkg/core/version"
)

// File is one archived media file
type File struct {
	ID        int64     `json:"id"`
	Path      string    `json:"path"`
	Parent    string    `json:"parent,omitempty"`
	Duration  *float64  `json:"duration,omitempty"`
	Language  string    `json:"language,omitempty"`
	Preset    string    `json:"preset,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists transcripts in SQLite. Segment texts are mirrored
// into an FTS5 index by triggers, so the index never drifts from the
// segments table.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens (or creates) the archive database at path
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// WAL mode so searches never block a running transcription
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the tables, the FTS index and its sync triggers
func (s *Store) initSchema() error {
	schema := `
	-- Archived media files
	CREATE TABLE IF NOT EXISTS files (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path TEXT NOT NULL UNIQUE,
		parent TEXT NOT NULL DEFAULT '',
		duration REAL,
		language TEXT NOT NULL DEFAULT '',
		preset TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Transcript segments
	CREATE TABLE IF NOT EXISTS segments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		file_id INTEGER NOT NULL,
		start REAL NOT NULL,
		"end" REAL NOT NULL,
		text TEXT NOT NULL,
		sentiment TEXT NOT NULL DEFAULT '',
		tones TEXT NOT NULL DEFAULT '[]',
		FOREIGN KEY (file_id) REFERENCES files(id) ON DELETE CASCADE
	);

	-- Full-text index over segment texts, content-linked to segments
	CREATE VIRTUAL TABLE IF NOT EXISTS seg_fts USING fts5(
		text,
		content='segments',
		content_rowid='id'
	);

	-- Triggers keep seg_fts in lockstep with segments
	CREATE TRIGGER IF NOT EXISTS segments_ai AFTER INSERT ON segments BEGIN
		INSERT INTO seg_fts(rowid, text) VALUES (new.id, new.text);
	END;
	CREATE TRIGGER IF NOT EXISTS segments_ad AFTER DELETE ON segments BEGIN
		INSERT INTO seg_fts(seg_fts, rowid, text) VALUES ('delete', old.id, old.text);
	END;
	CREATE TRIGGER IF NOT EXISTS segments_au AFTER UPDATE ON segments BEGIN
		INSERT INTO seg_fts(seg_fts, rowid, text) VALUES ('delete', old.id, old.text);
		INSERT INTO seg_fts(rowid, text) VALUES (new.id, new.text);
	END;

	-- Indices
	CREATE INDEX IF NOT EXISTS idx_segments_file ON segments(file_id);
	CREATE INDEX IF NOT EXISTS idx_segments_start ON segments(file_id, start);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	_, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %s", version.Schema))
	return err
}

// InsertFile registers a media file and returns its row ID. Inserting
// the same path twice returns the existing ID without touching the row.
func (s *Store) InsertFile(ctx context.Context, file *File) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if file.Path == "" {
		return 0, fmt.Errorf("file path is required")
	}

	var duration sql.NullFloat64
	if file.Duration != nil {
		duration = sql.NullFloat64{Float64: *file.Duration, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO files (path, parent, duration, language, preset)
		VALUES (?, ?, ?, ?, ?)
	`, file.Path, file.Parent, duration, file.Language, file.Preset)
	if err != nil {
		return 0, fmt.Errorf("failed to insert file: %w", err)
	}

	var id int64
	err = s.db.QueryRowContext(ctx, `SELECT id FROM files WHERE path = ?`, file.Path).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to look up file: %w", err)
	}

	file.ID = id
	return id, nil
}

// GetFile retrieves a file record by path. Returns nil when the path
// is not archived.
func (s *Store) GetFile(ctx context.Context, path string) (*File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, path, parent, duration, language, preset, created_at
		FROM files WHERE path = ?
	`, path)

	var f File
	var duration sql.NullFloat64

	err := row.Scan(&f.ID, &f.Path, &f.Parent, &duration, &f.Language, &f.Preset, &f.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get file: %w", err)
	}

	if duration.Valid {
		f.Duration = &duration.Float64
	}

	return &f, nil
}

// StoredSegment is one segment row as persisted
type StoredSegment struct {
	ID        int64    `json:"id"`
	FileID    int64    `json:"file_id"`
	Start     float64  `json:"start"`
	End       float64  `json:"end"`
	Text      string   `json:"text"`
	Sentiment string   `json:"sentiment,omitempty"`
	Tones     []string `json:"tones,omitempty"`
}

// SegmentInput is one segment to persist
type SegmentInput struct {
	Start     float64
	End       float64
	Text      string
	Sentiment string
	Tones     []string
}

// InsertSegments stores all segments of one file in a single
// transaction. Either every segment lands or none does.
func (s *Store) InsertSegments(ctx context.Context, fileID int64, segments []SegmentInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO segments (file_id, start, "end", text, sentiment, tones)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, seg := range segments {
		tones := seg.Tones
		if tones == nil {
			tones = []string{}
		}
		tonesJSON, err := json.Marshal(tones)
		if err != nil {
			return fmt.Errorf("failed to encode tones: %w", err)
		}

		if _, err := stmt.ExecContext(ctx, fileID, seg.Start, seg.End, seg.Text, seg.Sentiment, tonesJSON); err != nil {
			return fmt.Errorf("failed to insert segment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit segments: %w", err)
	}

	return nil
}

// SegmentsForFile returns all segments of one file ordered by start time
func (s *Store) SegmentsForFile(ctx context.Context, fileID int64) ([]StoredSegment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, file_id, start, "end", text, sentiment, tones
		FROM segments WHERE file_id = ? ORDER BY start
	`, fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to query segments: %w", err)
	}
	defer rows.Close()

	var segments []StoredSegment
	for rows.Next() {
		var seg StoredSegment
		var tonesJSON string
		if err := rows.Scan(&seg.ID, &seg.FileID, &seg.Start, &seg.End, &seg.Text, &seg.Sentiment, &tonesJSON); err != nil {
			return nil, fmt.Errorf("failed to scan segment: %w", err)
		}
		if tonesJSON != "" && tonesJSON != "[]" {
			json.Unmarshal([]byte(tonesJSON), &seg.Tones)
		}
		segments = append(segments, seg)
	}

	return segments, rows.Err()
}

// Statistics returns simple archive counters
func (s *Store) Statistics(ctx context.Context) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make(map[string]interface{})

	var files, segments int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM files`).Scan(&files); err != nil {
		return nil, fmt.Errorf("failed to count files: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM segments`).Scan(&segments); err != nil {
		return nil, fmt.Errorf("failed to count segments: %w", err)
	}

	stats["files"] = files
	stats["segments"] = segments
	return stats, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}
