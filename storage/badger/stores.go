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

// Stores bundles all store implementations backed by one Backend.
type Stores struct {
	Backend        *Backend
	Blobs          *BlobStore
	Recordings     *RecordingStore
	Transcriptions *TranscriptionStore
	ChunkRows      *ChunkRowStore
	SummaryRows    *SummaryRowStore
}

// OpenStores opens a BadgerDB database and constructs all stores on it.
func OpenStores(filePath string, inMemory bool) (*Stores, error) {
	backend, err := OpenBackend(filePath, inMemory)
	if err != nil {
		return nil, err
	}
	return &Stores{
		Backend:        backend,
		Blobs:          NewBlobStore(backend),
		Recordings:     NewRecordingStore(backend),
		Transcriptions: NewTranscriptionStore(backend),
		ChunkRows:      NewChunkRowStore(backend),
		SummaryRows:    NewSummaryRowStore(backend),
	}, nil
}

// NewMemoryStores creates in-memory stores for testing.
// Caller must close the bundle when done.
func NewMemoryStores() (*Stores, error) {
	return OpenStores("", true)
}

// Close closes the underlying database.
func (s *Stores) Close() error {
	return s.Backend.Close()
}
