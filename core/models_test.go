package core

import (
	"testing"
	"time"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same ID",
			content: "test content",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "This is a much longer piece of content that should still hash consistently",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %s vs %s", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[ID]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if id == "" {
			t.Fatal("NewID() returned empty ID")
		}
		if seen[id] {
			t.Fatalf("NewID() produced duplicate ID %s", id)
		}
		seen[id] = true
	}
}

func TestChunkIDFor_Deterministic(t *testing.T) {
	id1 := ChunkIDFor("rec-1", "trn-1", 1, "hello world")
	id2 := ChunkIDFor("rec-1", "trn-1", 1, "hello world")
	if id1 != id2 {
		t.Errorf("ChunkIDFor() not deterministic: %s vs %s", id1, id2)
	}

	// Same text at a different position must not collide.
	id3 := ChunkIDFor("rec-1", "trn-1", 2, "hello world")
	if id1 == id3 {
		t.Error("ChunkIDFor() collided across positions")
	}

	// Same text in a different recording must not collide.
	id4 := ChunkIDFor("rec-2", "trn-1", 1, "hello world")
	if id1 == id4 {
		t.Error("ChunkIDFor() collided across recordings")
	}
}

func TestNewChunk(t *testing.T) {
	now := time.Now().UTC()
	chunk := NewChunk("rec-1", "trn-1", 2, 3, "some text", now)

	if chunk.ID == "" {
		t.Fatal("NewChunk() left ID empty")
	}
	if chunk.Position != 2 || chunk.TotalChunks != 3 {
		t.Errorf("NewChunk() position = %d of %d, want 2 of 3", chunk.Position, chunk.TotalChunks)
	}
	if chunk.ID != ChunkIDFor("rec-1", "trn-1", 2, "some text") {
		t.Error("NewChunk() ID does not match ChunkIDFor()")
	}
}

func TestChunkKey(t *testing.T) {
	tests := []struct {
		position int
		want     string
	}{
		{1, "chunk_1"},
		{2, "chunk_2"},
		{10, "chunk_10"},
	}

	for _, tt := range tests {
		if got := ChunkKey(tt.position); got != tt.want {
			t.Errorf("ChunkKey(%d) = %q, want %q", tt.position, got, tt.want)
		}
	}
}
