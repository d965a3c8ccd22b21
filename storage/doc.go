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


// Package storage provides the storage abstraction layer for voicenote.
//
// The persistence model mirrors the two halves of the durable backend: a
// path-addressable blob store holding the artifact documents (chunk JSON,
// transcript text, unified summary JSON) and a set of metadata row stores
// keyed by entity identifiers. Both halves are specified as interfaces here
// so backends are swappable; storage/badger provides the BadgerDB-backed
// implementation.
//
// # Error Classification
//
// Callers distinguish idempotent duplicates from hard failures with
// errors.Is:
//
//   - BlobStore.Put returns ErrAlreadyExists when the path is taken
//   - ChunkRowStore.InsertChunkRow returns ErrDuplicateKey on a second insert
//
// Any other error from a write is a hard storage failure.
//
// # Blob Layout
//
// The logical blob layout is fixed (see the path builders):
//
//	Chunks/{recordingId}/{transcriptionId}/{chunkId}.json
//	Summaries/{summaryId}.json
//	Transcriptions/{recordingId}/{transcriptionId}.txt
//	Recordings/{recordingId}/{filename}
//
// # Thread Safety
//
// All store implementations must be thread-safe and support concurrent
// access from multiple goroutines.
package storage
