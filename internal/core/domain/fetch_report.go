package domain

// FetchKind distinguishes the external calls made during retrieval.
type FetchKind int

const (
	// FetchSearch is one search-provider query.
	FetchSearch FetchKind = iota

	// FetchPage is one page fetch.
	FetchPage
)

// FetchStatus is the outcome of one retrieval call.
type FetchStatus int

const (
	// FetchOK indicates the call succeeded and contributed content.
	FetchOK FetchStatus = iota

	// FetchFailed indicates the call errored; the batch continued.
	FetchFailed

	// FetchEmpty indicates a page fetch succeeded but yielded no text,
	// so the candidate was discarded.
	FetchEmpty
)

// FetchRecord is the per-item result of one search or fetch attempt.
type FetchRecord struct {
	// Kind is the call type.
	Kind FetchKind

	// Target is the query string or the page URL.
	Target string

	// Status is the outcome.
	Status FetchStatus

	// Err is the error message for FetchFailed records.
	Err string
}

// FetchReport accumulates per-item retrieval outcomes so partial
// failures are observable instead of silently logged.
type FetchReport struct {
	// Records holds one entry per attempted search and fetch, in order.
	Records []FetchRecord
}

// Add appends a record.
func (r *FetchReport) Add(rec FetchRecord) {
	r.Records = append(r.Records, rec)
}

// Failures returns the number of failed calls.
func (r *FetchReport) Failures() int {
	n := 0
	for _, rec := range r.Records {
		if rec.Status == FetchFailed {
			n++
		}
	}
	return n
}

// Pages returns the number of successfully fetched, non-empty pages.
func (r *FetchReport) Pages() int {
	n := 0
	for _, rec := range r.Records {
		if rec.Kind == FetchPage && rec.Status == FetchOK {
			n++
		}
	}
	return n
}
