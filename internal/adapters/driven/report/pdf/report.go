// Package pdf renders an analysis result into a PDF report artifact.
package pdf

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/custodia-labs/veridoc-cli/internal/core/domain"
	"github.com/custodia-labs/veridoc-cli/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.ReportWriter = (*Writer)(nil)

// Layout constants, in millimetres unless noted.
const (
	marginMM    = 15
	lineHeight  = 5.5
	maxHits     = 12
	maxKeywords = 10
)

// Writer renders PDF reports. When Dir is empty the artifact goes to
// the system temp directory.
type Writer struct {
	// Dir is the output directory.
	Dir string
}

// New creates a PDF report writer.
func New(dir string) *Writer {
	return &Writer{Dir: dir}
}

// Write renders the result and returns the artifact path.
func (w *Writer) Write(ctx context.Context, result *domain.AnalysisResult) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(marginMM, marginMM, marginMM)
	doc.SetAutoPageBreak(true, marginMM)
	doc.AddPage()

	// Core fonts are cp1252; overlap snippets carry en-dashes and
	// ellipses, so everything goes through the translator.
	tr := doc.UnicodeTranslatorFromDescriptor("")

	w.header(doc, tr, result)
	w.summary(doc, tr, result)
	w.keywords(doc, tr, result)
	w.queries(doc, tr, result)
	w.hits(doc, tr, result)
	w.overlaps(doc, tr, result)
	w.methodology(doc, tr)

	path, err := w.outputPath()
	if err != nil {
		return "", err
	}
	if err := doc.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return path, nil
}

func (w *Writer) header(doc *gofpdf.Fpdf, tr func(string) string, result *domain.AnalysisResult) {
	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 10, tr("Originality Report"), "", 1, "L", false, 0, "")

	title := result.Document.Title
	if title == "" {
		title = result.Document.URI
	}
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 6, tr(title), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "I", 9)
	doc.CellFormat(0, 5, time.Now().Format("2 January 2006 15:04"), "", 1, "L", false, 0, "")
	doc.Ln(4)
}

func (w *Writer) summary(doc *gofpdf.Fpdf, tr func(string) string, result *domain.AnalysisResult) {
	w.sectionTitle(doc, "Executive Summary")

	doc.SetFont("Helvetica", "", 10)
	rows := [][2]string{
		{"Originality", fmt.Sprintf("%.1f%%", result.Originality)},
		{"AI-generation estimate", fmt.Sprintf("%.1f%% (%s)", result.AIProbability, result.AIReason)},
		{"Words", fmt.Sprintf("%d", result.Stats.Words)},
		{"Sentences", fmt.Sprintf("%d", result.Stats.Sentences)},
		{"Avg. sentence length", fmt.Sprintf("%.1f words", result.Stats.AvgSentenceLen)},
		{"Pages examined", fmt.Sprintf("%d", result.Retrieval.Pages())},
		{"Retrieval failures", fmt.Sprintf("%d", result.Retrieval.Failures())},
		{"Overlapping passages", fmt.Sprintf("%d", len(result.Overlaps))},
	}
	for _, row := range rows {
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(55, lineHeight, tr(row[0]), "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.MultiCell(0, lineHeight, tr(row[1]), "", "L", false)
	}
	doc.Ln(3)
}

func (w *Writer) keywords(doc *gofpdf.Fpdf, tr func(string) string, result *domain.AnalysisResult) {
	if len(result.Keywords) == 0 {
		return
	}
	w.sectionTitle(doc, "Top Keywords")

	keywords := result.Keywords
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	doc.SetFont("Helvetica", "", 10)
	for _, kw := range keywords {
		doc.CellFormat(55, lineHeight, tr(kw.Word), "", 0, "L", false, 0, "")
		doc.CellFormat(0, lineHeight, fmt.Sprintf("%d", kw.Count), "", 1, "L", false, 0, "")
	}
	doc.Ln(3)
}

func (w *Writer) queries(doc *gofpdf.Fpdf, tr func(string) string, result *domain.AnalysisResult) {
	if len(result.Queries) == 0 {
		return
	}
	w.sectionTitle(doc, "Search Queries")

	doc.SetFont("Helvetica", "", 10)
	for i, q := range result.Queries {
		doc.MultiCell(0, lineHeight, tr(fmt.Sprintf("%d. %s", i+1, q)), "", "L", false)
	}
	doc.Ln(3)
}

func (w *Writer) hits(doc *gofpdf.Fpdf, tr func(string) string, result *domain.AnalysisResult) {
	if len(result.Hits) == 0 {
		return
	}
	w.sectionTitle(doc, "Examined Sources")

	hits := result.Hits
	if len(hits) > maxHits {
		hits = hits[:maxHits]
	}
	for _, hit := range hits {
		doc.SetFont("Helvetica", "B", 10)
		title := hit.Title
		if title == "" {
			title = hit.URL
		}
		doc.MultiCell(0, lineHeight, tr(title), "", "L", false)
		doc.SetFont("Helvetica", "", 9)
		doc.SetTextColor(0, 0, 180)
		doc.MultiCell(0, lineHeight, tr(hit.URL), "", "L", false)
		doc.SetTextColor(0, 0, 0)
	}
	if extra := len(result.Hits) - len(hits); extra > 0 {
		doc.SetFont("Helvetica", "I", 9)
		doc.CellFormat(0, lineHeight, tr(fmt.Sprintf("... and %d more", extra)), "", 1, "L", false, 0, "")
	}
	doc.Ln(3)
}

func (w *Writer) overlaps(doc *gofpdf.Fpdf, tr func(string) string, result *domain.AnalysisResult) {
	w.sectionTitle(doc, "Detected Overlaps")

	if len(result.Overlaps) == 0 {
		doc.SetFont("Helvetica", "", 10)
		doc.CellFormat(0, lineHeight, tr(domain.NoOverlaps), "", 1, "L", false, 0, "")
		doc.Ln(3)
		return
	}

	for _, o := range result.Overlaps {
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(0, lineHeight,
			tr(fmt.Sprintf("[F%d/C%.2f] %s", o.LexicalScore, o.SemanticScore, o.URL)),
			"", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "I", 9)
		doc.MultiCell(0, lineHeight, tr(o.Snippet), "", "L", false)
		doc.Ln(2)
	}
	doc.Ln(1)
}

func (w *Writer) methodology(doc *gofpdf.Fpdf, tr func(string) string) {
	w.sectionTitle(doc, "Methodology")

	doc.SetFont("Helvetica", "", 9)
	doc.MultiCell(0, lineHeight, tr(
		"The document was segmented into sliding windows of consecutive sentences. "+
			"Search queries derived from the document retrieved candidate web pages, whose "+
			"text was compared against the document in two stages: a token-set lexical ratio, "+
			"then cosine similarity of embeddings. The originality score is 100 minus the "+
			"share of words covered by overlapping windows. The AI-generation estimate is "+
			"advisory and produced by a generative model."),
		"", "L", false)
}

func (w *Writer) sectionTitle(doc *gofpdf.Fpdf, title string) {
	doc.SetFont("Helvetica", "B", 13)
	doc.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	doc.SetDrawColor(120, 120, 120)
	x, y := doc.GetXY()
	doc.Line(x, y, 210-marginMM, y)
	doc.Ln(2)
}

// outputPath decides where the artifact goes: a named file in Dir, or
// a fresh temp file.
func (w *Writer) outputPath() (string, error) {
	if w.Dir != "" {
		if err := os.MkdirAll(w.Dir, 0755); err != nil {
			return "", fmt.Errorf("create report directory: %w", err)
		}
		f, err := os.CreateTemp(w.Dir, "veridoc-*.pdf")
		if err != nil {
			return "", err
		}
		path := f.Name()
		f.Close()
		return path, nil
	}

	f, err := os.CreateTemp("", "veridoc-*.pdf")
	if err != nil {
		return "", err
	}
	path := f.Name()
	f.Close()
	return path, nil
}
