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

// RecordingStore implements storage.RecordingStore for BadgerDB.
type RecordingStore struct {
	backend *Backend
}

var _ storage.RecordingStore = (*RecordingStore)(nil)

// NewRecordingStore creates a new RecordingStore.
func NewRecordingStore(backend *Backend) *RecordingStore {
	return &RecordingStore{backend: backend}
}

// AddRecording inserts a recording row.
func (s *RecordingStore) AddRecording(ctx context.Context, recording *core.Recording) error {
	if err := core.ValidateRecordingStatus(recording.Status); err != nil {
		return err
	}

	key := makeRecordingKey(recording.ID)
	return s.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(key)
		if err == nil {
			return fmt.Errorf("%w: recording %s", storage.ErrDuplicateKey, recording.ID)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		now := time.Now().UTC()
		if recording.CreatedAt.IsZero() {
			recording.CreatedAt = now
		}
		recording.UpdatedAt = now

		value, err := json.Marshal(recording)
		if err != nil {
			return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
		}
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetRecording retrieves a recording by ID.
func (s *RecordingStore) GetRecording(ctx context.Context, id core.ID) (*core.Recording, error) {
	var recording core.Recording
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		return readJSON(tx, makeRecordingKey(id), &recording)
	}, false)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: recording %s", storage.ErrNotFound, id)
		}
		return nil, err
	}
	return &recording, nil
}

// SetRecordingStatus updates the lifecycle status of a recording.
func (s *RecordingStore) SetRecordingStatus(ctx context.Context, id core.ID, status core.RecordingStatus, message string) error {
	if err := core.ValidateRecordingStatus(status); err != nil {
		return err
	}

	key := makeRecordingKey(id)
	return s.backend.WithTx(func(tx *badger.Txn) error {
		var recording core.Recording
		if err := readJSON(tx, key, &recording); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: recording %s", storage.ErrNotFound, id)
			}
			return err
		}

		recording.Status = status
		recording.StatusMessage = message
		recording.UpdatedAt = time.Now().UTC()

		value, err := json.Marshal(&recording)
		if err != nil {
			return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
		}
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close is a no-op; the underlying backend owns the database handle.
func (s *RecordingStore) Close() error {
	return nil
}

// readJSON reads the value at key and unmarshals it into out.
// Returns badger.ErrKeyNotFound untranslated so callers can map it.
func readJSON(tx *badger.Txn, key []byte, out any) error {
	item, err := tx.Get(key)
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		if err := json.Unmarshal(val, out); err != nil {
			return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
		}
		return nil
	})
}
