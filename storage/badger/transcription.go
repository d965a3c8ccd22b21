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

// TranscriptionStore implements storage.TranscriptionStore for BadgerDB.
type TranscriptionStore struct {
	backend *Backend
}

var _ storage.TranscriptionStore = (*TranscriptionStore)(nil)

// NewTranscriptionStore creates a new TranscriptionStore.
func NewTranscriptionStore(backend *Backend) *TranscriptionStore {
	return &TranscriptionStore{backend: backend}
}

// AddTranscription inserts a transcription row and its per-recording index
// entry. Historical transcriptions accumulate; none are deleted.
func (s *TranscriptionStore) AddTranscription(ctx context.Context, transcription *core.Transcription) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if transcription.CreatedAt.IsZero() {
			transcription.CreatedAt = time.Now().UTC()
		}

		value, err := json.Marshal(transcription)
		if err != nil {
			return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
		}
		if err := tx.Set(makeTranscriptionKey(transcription.ID), value); err != nil {
			return err
		}

		indexKey := makeTranscriptionRecKey(transcription.RecordingID, transcription.CreatedAt, transcription.ID)
		if err := tx.Set(indexKey, []byte(transcription.ID)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// CurrentTranscription retrieves the most recent transcription for a
// recording by walking the creation-ordered index in reverse.
func (s *TranscriptionStore) CurrentTranscription(ctx context.Context, recordingID core.ID) (*core.Transcription, error) {
	var currentID core.ID

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		prefix := makeTranscriptionRecScanPrefix(recordingID)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// In reverse iteration the seek key must be past the end of the
		// prefix range.
		seek := append(append([]byte{}, prefix...), 0xff)
		iter.Seek(seek)
		if !iter.ValidForPrefix(prefix) {
			return fmt.Errorf("%w: no transcription for recording %s", storage.ErrNotFound, recordingID)
		}
		return iter.Item().Value(func(val []byte) error {
			currentID = core.ID(val)
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}

	var transcription core.Transcription
	err = s.backend.WithTx(func(tx *badger.Txn) error {
		return readJSON(tx, makeTranscriptionKey(currentID), &transcription)
	}, false)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: transcription %s", storage.ErrNotFound, currentID)
		}
		return nil, err
	}
	return &transcription, nil
}

// Close is a no-op; the underlying backend owns the database handle.
func (s *TranscriptionStore) Close() error {
	return nil
}
