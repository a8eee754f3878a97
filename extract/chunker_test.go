package extract

import (
	"strings"
	"testing"
)

func TestChunkText_PacksGreedily(t *testing.T) {
	text := "One. Two. Three. Four."
	chunks := ChunkText(text, 12)

	// "One. Two." fits in 12; adding "Three." would exceed it.
	want := []string{"One. Two.", "Three. Four."}
	if len(chunks) != len(want) {
		t.Fatalf("ChunkText() = %v, want %v", chunks, want)
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, chunks[i], want[i])
		}
	}
}

func TestChunkText_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxChars int
	}{
		{
			name:     "plain sentences",
			text:     "The Model X has 300 horsepower. It tows 5000 pounds. The warranty runs ten years.",
			maxChars: 40,
		},
		{
			name:     "trailing fragment without punctuation",
			text:     "First sentence. Then a trailing fragment",
			maxChars: 20,
		},
		{
			name:     "questions and exclamations",
			text:     "Is it fast? Yes! Very fast.",
			maxChars: 15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := ChunkText(tt.text, tt.maxChars)

			// Joining all chunks reproduces the sentences in order.
			joined := strings.Join(chunks, " ")
			wantJoined := strings.Join(SplitSentences(tt.text), " ")
			if joined != wantJoined {
				t.Errorf("round trip mismatch:\n got %q\nwant %q", joined, wantJoined)
			}

			// No chunk exceeds the bound unless it is a single oversized sentence.
			for _, chunk := range chunks {
				if len(chunk) > tt.maxChars && len(SplitSentences(chunk)) > 1 {
					t.Errorf("multi-sentence chunk exceeds bound: %q (%d > %d)", chunk, len(chunk), tt.maxChars)
				}
			}
		})
	}
}

func TestChunkText_OversizedSentence(t *testing.T) {
	long := "This single sentence is far longer than the configured chunk bound and must not be split."
	chunks := ChunkText("Short. "+long+" Tail.", 20)

	found := false
	for _, chunk := range chunks {
		if chunk == long {
			found = true
		}
	}
	if !found {
		t.Errorf("oversized sentence was split across chunks: %v", chunks)
	}
}

func TestChunkText_Deterministic(t *testing.T) {
	text := "Alpha. Beta. Gamma. Delta. Epsilon."
	first := ChunkText(text, 15)
	second := ChunkText(text, 15)

	if len(first) != len(second) {
		t.Fatalf("non-deterministic chunk count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("non-deterministic chunk %d: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestChunkText_Empty(t *testing.T) {
	if chunks := ChunkText("", 100); chunks != nil {
		t.Errorf("ChunkText(empty) = %v, want nil", chunks)
	}
	if chunks := ChunkText("   \n\t  ", 100); chunks != nil {
		t.Errorf("ChunkText(whitespace) = %v, want nil", chunks)
	}
}

func TestSplitSentences_NoTerminator(t *testing.T) {
	sentences := SplitSentences("no punctuation here")
	if len(sentences) != 1 || sentences[0] != "no punctuation here" {
		t.Errorf("SplitSentences() = %v, want single sentence", sentences)
	}
}
