package domain

import (
	"fmt"
	"strings"
)

// PageHit is one retrieved web result, keyed by URL within a search run.
type PageHit struct {
	// URL is the unique key for the hit.
	URL string

	// Title is the result title reported by the search provider.
	Title string

	// Snippet is the short excerpt reported by the search provider.
	Snippet string

	// Text is the fetched plain-text body. Empty when the fetch failed;
	// hits with empty text are discarded before scanning.
	Text string
}

// Overlap is one matched chunk pair between the document and a web page.
type Overlap struct {
	// Snippet is the page chunk, truncated and ellipsized.
	Snippet string

	// LexicalScore is the token-set fuzzy ratio (0-100) of the page
	// chunk against the whole document text.
	LexicalScore int

	// SemanticScore is the maximum cosine similarity of the page chunk
	// embedding against the document chunk embeddings, rounded to two
	// decimal places.
	SemanticScore float64

	// URL is the source page.
	URL string
}

// AnalysisResult is the complete output of one analysis invocation.
// It is created once and not mutated afterwards; the caller owns the
// lifecycle of the report artifact at ReportPath.
type AnalysisResult struct {
	// Document is the analysed document.
	Document Document

	// Stats holds the document's derived text statistics.
	Stats Stats

	// Keywords is the document's top keyword-frequency table.
	Keywords []Keyword

	// Queries is the ordered query set used for web retrieval.
	Queries []string

	// Hits is the retrieved page set, in insertion order.
	Hits []PageHit

	// Overlaps is ordered by lexical score descending, semantic score
	// descending, capped per source URL.
	Overlaps []Overlap

	// Originality is 100 minus the overlapped-word ratio, in [0, 100].
	Originality float64

	// AIProbability is the estimated likelihood (0-100) that the
	// document was machine-generated.
	AIProbability float64

	// AIReason is the model's one-line rationale for AIProbability.
	AIReason string

	// Retrieval records the per-item outcome of every external search
	// and fetch attempted during retrieval.
	Retrieval FetchReport

	// ReportPath is the location of the rendered report artifact.
	// Empty when report rendering was skipped or failed.
	ReportPath string
}

// NoOverlaps is the citation block emitted when no overlaps were found.
const NoOverlaps = "No overlaps."

// Citations renders the overlap list as one line per overlap in the
// form "[F<fuzz>/C<cosine>] <url>", or NoOverlaps when empty.
func (r *AnalysisResult) Citations() string {
	if len(r.Overlaps) == 0 {
		return NoOverlaps
	}
	lines := make([]string, len(r.Overlaps))
	for i, o := range r.Overlaps {
		lines[i] = fmt.Sprintf("[F%d/C%.2f] %s", o.LexicalScore, o.SemanticScore, o.URL)
	}
	return strings.Join(lines, "\n")
}
