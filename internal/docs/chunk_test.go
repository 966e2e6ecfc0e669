package docs

import (
	"strings"
	"testing"
)

func TestSplitChunksShortText(t *testing.T) {
	chunks := splitChunks("a short note about the project")
	if len(chunks) != 1 {
		t.Fatalf("len = %d", len(chunks))
	}
	if chunks[0] != "a short note about the project" {
		t.Errorf("chunk = %q", chunks[0])
	}
}

func TestSplitChunksEmpty(t *testing.T) {
	if chunks := splitChunks("   \n\t  "); chunks != nil {
		t.Errorf("expected nil, got %v", chunks)
	}
}

func TestSplitChunksOverlap(t *testing.T) {
	words := make([]string, chunkWords+50)
	for i := range words {
		words[i] = "w" + string(rune('a'+i%26))
	}
	chunks := splitChunks(strings.Join(words, " "))

	if len(chunks) != 2 {
		t.Fatalf("len = %d, want 2", len(chunks))
	}

	firstWords := strings.Fields(chunks[0])
	secondWords := strings.Fields(chunks[1])
	if len(firstWords) != chunkWords {
		t.Errorf("first chunk has %d words", len(firstWords))
	}

	// The second chunk starts overlapWords before the end of the first.
	if secondWords[0] != firstWords[chunkWords-overlapWords] {
		t.Errorf("overlap boundary mismatch: %q vs %q",
			secondWords[0], firstWords[chunkWords-overlapWords])
	}
}

func TestSnippet(t *testing.T) {
	if got := snippet("short", 20); got != "short" {
		t.Errorf("snippet = %q", got)
	}

	long := strings.Repeat("word ", 100)
	got := snippet(long, 50)
	if len(got) > 54 {
		t.Errorf("snippet too long: %d chars", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("snippet = %q, want ellipsis", got)
	}
}
