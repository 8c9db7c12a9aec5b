package normalisers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/veridoc-cli/internal/core/domain"
	"github.com/custodia-labs/veridoc-cli/internal/normalisers/html"
	"github.com/custodia-labs/veridoc-cli/internal/normalisers/plaintext"
)

func newTestRegistry() *Registry {
	registry := NewRegistry()
	registry.Register(html.New())
	registry.Register(plaintext.New())
	registry.SetFallback(plaintext.New())
	return registry
}

func TestRegistry_RoutesByMIMEType(t *testing.T) {
	registry := newTestRegistry()

	result, err := registry.Normalise(context.Background(), &domain.RawDocument{
		URI:      "/pages/doc.html",
		MIMEType: "text/html",
		Content:  []byte("<p>rendered text</p>"),
	})
	require.NoError(t, err)
	assert.Equal(t, "rendered text", result.Document.Content)
	assert.Equal(t, "html", result.Document.Metadata["format"])
}

func TestRegistry_StripsMIMEParameters(t *testing.T) {
	registry := newTestRegistry()

	result, err := registry.Normalise(context.Background(), &domain.RawDocument{
		MIMEType: "text/html; charset=utf-8",
		Content:  []byte("<p>with params</p>"),
	})
	require.NoError(t, err)
	assert.Equal(t, "with params", result.Document.Content)
}

func TestRegistry_FallbackForUnknownType(t *testing.T) {
	registry := newTestRegistry()

	result, err := registry.Normalise(context.Background(), &domain.RawDocument{
		MIMEType: "application/x-mystery",
		Content:  []byte("raw bytes as text"),
	})
	require.NoError(t, err)
	assert.Equal(t, "raw bytes as text", result.Document.Content)
}

func TestRegistry_NoFallback(t *testing.T) {
	registry := NewRegistry()
	registry.Register(html.New())

	_, err := registry.Normalise(context.Background(), &domain.RawDocument{
		MIMEType: "application/x-mystery",
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestRegistry_NilInput(t *testing.T) {
	registry := newTestRegistry()
	_, err := registry.Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistry_SupportedMIMETypes(t *testing.T) {
	registry := newTestRegistry()
	types := registry.SupportedMIMETypes()
	assert.Contains(t, types, "text/html")
	assert.Contains(t, types, "text/plain")
}

func TestMIMEForPath(t *testing.T) {
	assert.Equal(t, "application/pdf", MIMEForPath("/papers/thesis.PDF"))
	assert.Equal(t, "text/html", MIMEForPath("page.htm"))
	assert.Equal(t, "text/markdown", MIMEForPath("notes.md"))
	assert.Equal(t, "text/plain", MIMEForPath("README"))
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		MIMEForPath("essay.docx"))
}
