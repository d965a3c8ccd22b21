// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/voicenote/storage"
)

// BlobStore implements storage.BlobStore on BadgerDB. Blobs are stored under
// their logical path in a small envelope carrying the content type.
type BlobStore struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.BlobStore = (*BlobStore)(nil)

// blobEnvelope is the stored value for one blob.
type blobEnvelope struct {
	ContentType string `json:"contentType"`
	Data        []byte `json:"data"`
}

// NewBlobStore creates a new BlobStore on the given backend.
func NewBlobStore(backend *Backend) *BlobStore {
	return &BlobStore{
		backend: backend,
		logger:  slog.Default().With("component", "badger-blobstore"),
	}
}

// Put writes a blob at the given path. The write is conditional: if a blob
// already exists at the path it is left untouched and storage.ErrAlreadyExists
// is returned, so callers can classify the duplicate with errors.Is.
func (s *BlobStore) Put(ctx context.Context, path string, data []byte, contentType string) error {
	key := makeBlobKey(path)
	return s.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(key)
		if err == nil {
			return fmt.Errorf("%w: %s", storage.ErrAlreadyExists, path)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		value, err := marshalBlobEnvelope(data, contentType)
		if err != nil {
			return err
		}
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Update writes a blob at the given path, replacing any existing blob.
func (s *BlobStore) Update(ctx context.Context, path string, data []byte, contentType string) error {
	key := makeBlobKey(path)
	return s.backend.WithTx(func(tx *badger.Txn) error {
		value, err := marshalBlobEnvelope(data, contentType)
		if err != nil {
			return err
		}
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Get retrieves the blob stored at the given path.
func (s *BlobStore) Get(ctx context.Context, path string) ([]byte, error) {
	key := makeBlobKey(path)
	var envelope blobEnvelope
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %s", storage.ErrNotFound, path)
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &envelope)
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// Close is a no-op; the underlying backend owns the database handle.
func (s *BlobStore) Close() error {
	return nil
}

func marshalBlobEnvelope(data []byte, contentType string) ([]byte, error) {
	value, err := json.Marshal(blobEnvelope{ContentType: contentType, Data: data})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	return value, nil
}
