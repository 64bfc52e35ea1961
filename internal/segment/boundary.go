package segment

import "regexp"

// A sentence ends at . ! or ? followed by whitespace and an uppercase letter.
// The uppercase letter starts the next part.
var boundaryPattern = regexp.MustCompile(`[.!?][\s\v\x{1c}-\x{1f}\x{85}\p{Z}]+[A-Z]`)

// BoundarySplitter splits on the punctuation + uppercase heuristic
type BoundarySplitter struct{}

// Split implements Splitter
func (BoundarySplitter) Split(text string) []string {
	return SplitSentences(text)
}

// SplitSentences splits text at sentence boundaries. Parts are not trimmed.
func SplitSentences(text string) []string {
	locs := boundaryPattern.FindAllStringIndex(text, -1)
	parts := make([]string, 0, len(locs)+1)

	start := 0
	for _, loc := range locs {
		parts = append(parts, text[start:loc[0]+1])
		start = loc[1] - 1 // A-Z is a single byte
	}
	parts = append(parts, text[start:])

	return parts
}

// WholeSplitter keeps the text as a single part
type WholeSplitter struct{}

// Split implements Splitter
func (WholeSplitter) Split(text string) []string {
	return []string{text}
}
