package chunker

import "strings"

// Default chunking parameters for transcript text.
const (
	DefaultChunkSize    = 4000
	DefaultChunkOverlap = 200
)

// Chunk splits text into overlapping windows of roughly size characters.
//
// Cuts prefer sentence boundaries: before cutting at a raw offset, the
// nearest sentence terminator ('.', '!', '?') inside the current window is
// searched backward and, if found past the window start, the cut falls
// immediately after it. Each subsequent window starts overlap characters
// before the previous cut so insights straddling a boundary are not lost.
//
// Text no longer than size is returned as a single chunk. Empty trailing
// fragments are dropped. The function is pure: same input, same chunks.
func Chunk(text string, size, overlap int) []string {
	if len(text) <= size {
		return []string{text}
	}

	var chunks []string
	start := 0

	for start < len(text) {
		end := start + size

		if end < len(text) {
			if cut := lastSentenceEnd(text, start, end); cut > start {
				end = cut + 1
			}
		} else {
			end = len(text)
		}

		if chunk := strings.TrimSpace(text[start:end]); chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end >= len(text) {
			break
		}
		next := end - overlap
		if next <= start {
			// Overlap larger than the window actually consumed; never
			// walk backward or the loop would not terminate.
			next = end
		}
		start = next
	}

	return chunks
}

// lastSentenceEnd returns the index of the last sentence terminator in
// text[start:end], or -1 if the window contains none.
func lastSentenceEnd(text string, start, end int) int {
	window := text[start:end]
	cut := -1
	for _, term := range []string{".", "!", "?"} {
		if i := strings.LastIndex(window, term); i > cut {
			cut = i
		}
	}
	if cut < 0 {
		return -1
	}
	return start + cut
}
