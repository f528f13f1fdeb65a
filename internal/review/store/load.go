package store

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"benchreview/internal/review/models"
	"benchreview/pkg/platform/sentinel"
)

// maxLineBytes bounds a single record line. Table tests with long neighbour
// text stay well below this.
const maxLineBytes = 16 << 20

const excerptLen = 120

// LoadStats describes one pass over a record stream.
type LoadStats struct {
	Lines     int
	Records   int
	Malformed int
	Dropped   int
	Digest    [sha256.Size]byte
}

// Load streams newline-delimited records into a new Index.
//
// Blank lines are ignored. A line that does not decode to a JSON object is
// skipped with a warning and the load continues. A record without a pdf name
// is dropped silently. Only a read error on r fails the load.
func Load(ctx context.Context, r io.Reader, logger *slog.Logger) (*Index, LoadStats, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	h := sha256.New()
	scanner := bufio.NewScanner(io.TeeReader(r, h))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	idx := NewIndex()
	var stats LoadStats
	for scanner.Scan() {
		stats.Lines++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		rec, err := decodeLine(line)
		if err != nil {
			stats.Malformed++
			logger.WarnContext(ctx, "skipping malformed record line",
				"line", stats.Lines,
				"error", err.Error(),
				"excerpt", excerpt(line),
			)
			continue
		}
		if !idx.Add(rec) {
			stats.Dropped++
			continue
		}
		stats.Records++
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("reading records at line %d: %w", stats.Lines+1, err)
	}

	copy(stats.Digest[:], h.Sum(nil))
	logger.DebugContext(ctx, "records loaded",
		"documents", idx.Len(),
		"records", stats.Records,
		"malformed", stats.Malformed,
		"dropped", stats.Dropped,
	)
	return idx, stats, nil
}

// decodeLine parses one record line. Failures wrap sentinel.ErrMalformed.
func decodeLine(line []byte) (*models.Record, error) {
	rec := &models.Record{}
	if err := json.Unmarshal(line, rec); err != nil {
		return nil, fmt.Errorf("%w: %w", sentinel.ErrMalformed, err)
	}
	return rec, nil
}

// Digest returns the SHA-256 of content, comparable with LoadStats.Digest.
func Digest(content []byte) [sha256.Size]byte {
	return sha256.Sum256(content)
}

func excerpt(line []byte) string {
	if len(line) <= excerptLen {
		return string(line)
	}
	return string(line[:excerptLen]) + "..."
}
