// Package normalisers provides implementations of the Normaliser interface
// for various document formats. Each normaliser knows how to extract text
// content from a specific MIME type.
//
// Normalisers are registered with the Registry at startup.
package normalisers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/veridoc-cli/internal/core/domain"
	"github.com/custodia-labs/veridoc-cli/internal/core/ports/driven"
)

// Registry routes raw documents to the normaliser registered for their
// MIME type, with an optional fallback for unknown types.
type Registry struct {
	byMIME   map[string]driven.Normaliser
	fallback driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byMIME: make(map[string]driven.Normaliser),
	}
}

// Register adds a normaliser for each MIME type it supports. Later
// registrations win on conflict.
func (r *Registry) Register(n driven.Normaliser) {
	for _, mime := range n.SupportedMIMETypes() {
		r.byMIME[mime] = n
	}
}

// SetFallback sets the normaliser used when no MIME type matches.
func (r *Registry) SetFallback(n driven.Normaliser) {
	r.fallback = n
}

// SupportedMIMETypes returns the registered MIME types.
func (r *Registry) SupportedMIMETypes() []string {
	types := make([]string, 0, len(r.byMIME))
	for mime := range r.byMIME {
		types = append(types, mime)
	}
	return types
}

// Normalise routes the raw document to the appropriate normaliser.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	mime := baseMIME(raw.MIMEType)
	if n, ok := r.byMIME[mime]; ok {
		return n.Normalise(ctx, raw)
	}
	if r.fallback != nil {
		return r.fallback.Normalise(ctx, raw)
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, mime)
}

// MIMEForPath guesses the MIME type from a file extension. Unknown
// extensions map to text/plain, which matches the fallback normaliser.
func MIMEForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".html", ".htm":
		return "text/html"
	case ".md", ".markdown":
		return "text/markdown"
	case ".csv":
		return "text/csv"
	default:
		return "text/plain"
	}
}

// baseMIME strips parameters such as "; charset=utf-8".
func baseMIME(mime string) string {
	base, _, _ := strings.Cut(mime, ";")
	return strings.TrimSpace(base)
}
