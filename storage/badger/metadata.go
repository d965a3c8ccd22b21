package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/voicenote/core"
	"github.com/poiesic/voicenote/storage"
)

// ChunkRowStore implements storage.ChunkRowStore for BadgerDB.
type ChunkRowStore struct {
	backend *Backend
}

var _ storage.ChunkRowStore = (*ChunkRowStore)(nil)

// NewChunkRowStore creates a new ChunkRowStore.
func NewChunkRowStore(backend *Backend) *ChunkRowStore {
	return &ChunkRowStore{backend: backend}
}

// InsertChunkRow inserts a chunk metadata row and its per-recording index
// entry. A second insert for the same chunk ID returns
// storage.ErrDuplicateKey and leaves the stored row untouched.
func (s *ChunkRowStore) InsertChunkRow(ctx context.Context, row *core.ChunkRow) error {
	key := makeChunkRowKey(row.ChunkID)
	return s.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(key)
		if err == nil {
			return fmt.Errorf("%w: chunk %s", storage.ErrDuplicateKey, row.ChunkID)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if row.CreatedAt.IsZero() {
			row.CreatedAt = time.Now().UTC()
		}
		value, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
		}
		if err := tx.Set(key, value); err != nil {
			return err
		}
		if err := tx.Set(makeChunkRowRecKey(row.RecordingID, row.ChunkID), []byte(row.ChunkID)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetChunkRow retrieves a chunk metadata row by chunk ID.
func (s *ChunkRowStore) GetChunkRow(ctx context.Context, chunkID core.ID) (*core.ChunkRow, error) {
	var row core.ChunkRow
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		return readJSON(tx, makeChunkRowKey(chunkID), &row)
	}, false)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: chunk %s", storage.ErrNotFound, chunkID)
		}
		return nil, err
	}
	return &row, nil
}

// ChunkRowsByRecording retrieves all chunk rows for a recording.
func (s *ChunkRowStore) ChunkRowsByRecording(ctx context.Context, recordingID core.ID) ([]*core.ChunkRow, error) {
	var ids []core.ID
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		prefix := makeChunkRowRecScanPrefix(recordingID)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.ValidForPrefix(prefix); iter.Next() {
			if err := iter.Item().Value(func(val []byte) error {
				ids = append(ids, core.ID(val))
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	rows := make([]*core.ChunkRow, 0, len(ids))
	for _, id := range ids {
		row, err := s.GetChunkRow(ctx, id)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Close is a no-op; the underlying backend owns the database handle.
func (s *ChunkRowStore) Close() error {
	return nil
}

// SummaryRowStore implements storage.SummaryRowStore for BadgerDB.
// Rows are keyed by recording ID, so an upsert naturally replaces the
// previous pointer for that recording.
type SummaryRowStore struct {
	backend *Backend
}

var _ storage.SummaryRowStore = (*SummaryRowStore)(nil)

// NewSummaryRowStore creates a new SummaryRowStore.
func NewSummaryRowStore(backend *Backend) *SummaryRowStore {
	return &SummaryRowStore{backend: backend}
}

// UpsertSummaryRow inserts or replaces the summary row for the row's
// recording.
func (s *SummaryRowStore) UpsertSummaryRow(ctx context.Context, row *core.SummaryRow) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if row.CreatedAt.IsZero() {
			row.CreatedAt = time.Now().UTC()
		}
		value, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
		}
		if err := tx.Set(makeSummaryRowKey(row.RecordingID), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// SummaryRowByRecording retrieves the current summary row for a recording.
func (s *SummaryRowStore) SummaryRowByRecording(ctx context.Context, recordingID core.ID) (*core.SummaryRow, error) {
	var row core.SummaryRow
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		return readJSON(tx, makeSummaryRowKey(recordingID), &row)
	}, false)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: no summary for recording %s", storage.ErrNotFound, recordingID)
		}
		return nil, err
	}
	return &row, nil
}

// Close is a no-op; the underlying backend owns the database handle.
func (s *SummaryRowStore) Close() error {
	return nil
}
