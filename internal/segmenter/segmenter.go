// Package segmenter provides pure text segmentation: sentence splitting,
// sliding sentence windows ("chunks"), word statistics and keyword
// frequencies. It performs no I/O.
package segmenter

import (
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/veridoc-cli/internal/core/domain"
)

var (
	wordPattern    = regexp.MustCompile(`\w+`)
	keywordPattern = regexp.MustCompile(`[A-Za-z]{4,}`)
)

// Sentences splits text on sentence-ending punctuation followed by
// whitespace. Results are trimmed and empty entries dropped. Text after
// the last terminator is kept as a final sentence.
func Sentences(text string) []string {
	var sents []string
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		j := i + 1
		if j >= len(text) || !isSpace(text[j]) {
			continue
		}
		if s := strings.TrimSpace(text[start : i+1]); s != "" {
			sents = append(sents, s)
		}
		for j < len(text) && isSpace(text[j]) {
			j++
		}
		start = j
		i = j - 1
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sents = append(sents, s)
	}
	return sents
}

// Chunks produces sliding windows of window consecutive sentences with
// stride 1, each joined by single spaces. The final window-1 sentences
// never start a chunk; texts with fewer than window sentences yield no
// chunks at all.
func Chunks(text string, window int) []string {
	if window <= 0 {
		return nil
	}
	sents := Sentences(text)
	if len(sents) < window {
		return nil
	}
	chunks := make([]string, 0, len(sents)-window+1)
	for i := 0; i+window <= len(sents); i++ {
		chunks = append(chunks, strings.Join(sents[i:i+window], " "))
	}
	return chunks
}

// WordCount returns the number of word tokens in text.
func WordCount(text string) int {
	return len(wordPattern.FindAllString(text, -1))
}

// Stats computes word count, sentence count and average sentence length.
func Stats(text string) domain.Stats {
	words := WordCount(text)
	sents := len(Sentences(text))
	avg := 0.0
	if sents > 0 {
		avg = float64(words) / float64(sents)
	}
	return domain.Stats{
		Words:          words,
		Sentences:      sents,
		AvgSentenceLen: avg,
	}
}

// TopKeywords returns the k most frequent lowercase tokens of four or
// more letters. Ties are broken alphabetically for determinism.
func TopKeywords(text string, k int) []domain.Keyword {
	counts := make(map[string]int)
	for _, tok := range keywordPattern.FindAllString(text, -1) {
		counts[strings.ToLower(tok)]++
	}
	keywords := make([]domain.Keyword, 0, len(counts))
	for w, c := range counts {
		keywords = append(keywords, domain.Keyword{Word: w, Count: c})
	}
	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Count != keywords[j].Count {
			return keywords[i].Count > keywords[j].Count
		}
		return keywords[i].Word < keywords[j].Word
	})
	if k > 0 && len(keywords) > k {
		keywords = keywords[:k]
	}
	return keywords
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
