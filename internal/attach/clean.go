package attach

import (
	"crypto/sha1"
	"encoding/hex"
	"regexp"
	"strings"
	"unicode"
)

var (
	paragraphSplit   = regexp.MustCompile(`\n{2,}`)
	whitespaceSanity = regexp.MustCompile(`\s+`)
	pageNumber       = regexp.MustCompile(`^(page\s+)?\d+(\s*(/|of)\s*\d+)?$`)
)

// dropPageFurniture removes what PDF text extraction repeats on every page:
// running headers and footers show up as duplicate paragraphs, page numbers
// as bare digits.
func dropPageFurniture(text string) string {
	seen := map[string]bool{}
	var kept []string
	for _, paragraph := range paragraphSplit.Split(text, -1) {
		trimmed := strings.TrimSpace(paragraph)
		if trimmed == "" || isFurniture(trimmed) {
			continue
		}
		hash := hashParagraph(canonicalParagraph(trimmed))
		if seen[hash] {
			continue
		}
		seen[hash] = true
		kept = append(kept, trimmed)
	}
	return strings.Join(kept, "\n\n")
}

func canonicalParagraph(text string) string {
	return strings.ToLower(whitespaceSanity.ReplaceAllString(strings.TrimSpace(text), " "))
}

func isFurniture(paragraph string) bool {
	lower := strings.ToLower(strings.TrimSpace(paragraph))
	if pageNumber.MatchString(lower) {
		return true
	}
	letters := 0
	for _, r := range lower {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	// Rules, dot leaders and similar runs of punctuation.
	return len(lower) >= 4 && letters == 0
}

func hashParagraph(text string) string {
	sum := sha1.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}
