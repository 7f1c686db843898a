package archive

import (
	"context"
	"fmt"
	"strings"
)

// Hit is one full-text search result
type Hit struct {
	SegmentID int64   `json:"segment_id"`
	File      string  `json:"file"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Text      string  `json:"text"`
}

// Search runs an FTS5 match over all archived segment texts. Results
// are ordered by file path, then by segment start time. An empty or
// blank phrase yields no hits; a phrase FTS5 cannot parse is an error.
func (s *Store) Search(ctx context.Context, phrase string) ([]Hit, error) {
	if strings.TrimSpace(phrase) == "" {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, f.path, s.start, s."end", s.text
		FROM seg_fts ft
		JOIN segments s ON s.id = ft.rowid
		JOIN files f ON f.id = s.file_id
		WHERE seg_fts MATCH ?
		ORDER BY f.path, s.start
	`, phrase)
	if err != nil {
		return nil, fmt.Errorf("failed to search %q: %w", phrase, err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.SegmentID, &h.File, &h.Start, &h.End, &h.Text); err != nil {
			return nil, fmt.Errorf("failed to scan hit: %w", err)
		}
		hits = append(hits, h)
	}

	return hits, rows.Err()
}
