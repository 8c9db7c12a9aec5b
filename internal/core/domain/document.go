package domain

import "time"

// Document is the text under analysis, the canonical representation
// after normalisation. It is immutable once extracted from its input.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// URI is the original location (file path, URL, etc).
	URI string

	// Title is the human-readable title.
	Title string

	// Content is the full text content after normalisation.
	Content string

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]any

	// CreatedAt is when the document was extracted.
	CreatedAt time.Time
}

// Stats holds derived attributes of a document's text.
type Stats struct {
	// Words is the total word count.
	Words int

	// Sentences is the total sentence count.
	Sentences int

	// AvgSentenceLen is the mean number of words per sentence.
	AvgSentenceLen float64
}

// Keyword is one entry of a document's keyword-frequency table.
type Keyword struct {
	// Word is the lowercase token.
	Word string

	// Count is the number of occurrences.
	Count int
}
