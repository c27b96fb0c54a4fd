package migrate

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"scribe/internal/app/repository"
)

const defaultBatchSize = 1000

// Options controls a history copy
type Options struct {
	BatchSize int
	// CheckpointFile stores the last copied source id so an interrupted copy can resume; optional
	CheckpointFile string
}

func getLastID(path string) int64 {
	if path == "" {
		return 0
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}

	lastID, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0
	}

	return lastID
}

func saveLastID(path string, lastID int64) error {
	if path == "" {
		return nil
	}
	return os.WriteFile(path, []byte(strconv.FormatInt(lastID, 10)), 0o644)
}

// Copy moves every transcription from src to dst in id order and returns how many rows were copied.
// Rows get new ids in dst.
func Copy(ctx context.Context, src, dst repository.TranscriptionDAO, opts Options, logger *zap.Logger) (int, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	lastID := getLastID(opts.CheckpointFile)
	copied := 0

	for {
		batch, err := src.ListAfter(ctx, lastID, opts.BatchSize)
		if err != nil {
			return copied, fmt.Errorf("read batch after id %d: %w", lastID, err)
		}
		if len(batch) == 0 {
			break
		}

		for i := range batch {
			row := batch[i]
			if _, err := dst.Record(ctx, &row); err != nil {
				// rows before this one are already in dst; resume after them
				if saveErr := saveLastID(opts.CheckpointFile, lastID); saveErr != nil {
					logger.Error("Failed to save checkpoint", zap.Int64("last_id", lastID), zap.Error(saveErr))
				}
				return copied, fmt.Errorf("copy row %d: %w", row.ID, err)
			}
			lastID = row.ID
			copied++
		}

		if err := saveLastID(opts.CheckpointFile, lastID); err != nil {
			return copied, fmt.Errorf("failed to save checkpoint: %w", err)
		}
		logger.Info("Copied batch", zap.Int("rows", len(batch)), zap.Int64("last_id", lastID))

		if len(batch) < opts.BatchSize {
			break
		}
	}

	logger.Info("Data migration completed", zap.Int("rows", copied))
	return copied, nil
}
