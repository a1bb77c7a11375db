// Package extract converts uploaded statement documents to positional plain
// text.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	appreconciliation "github.com/salesops/backend/internal/application/reconciliation"
	"go.uber.org/zap"
)

// Ensure PdftotextExtractor implements TextExtractor
var _ appreconciliation.TextExtractor = (*PdftotextExtractor)(nil)

// PdftotextExtractor shells out to poppler's pdftotext in layout mode, which
// preserves the column alignment the statement parsers depend on. Plain-text
// uploads pass through untouched.
type PdftotextExtractor struct {
	path    string
	timeout time.Duration
	logger  *zap.Logger
}

// PdftotextOption is a functional option for configuring PdftotextExtractor
type PdftotextOption func(*PdftotextExtractor)

// WithBinaryPath sets the pdftotext binary location
func WithBinaryPath(path string) PdftotextOption {
	return func(e *PdftotextExtractor) {
		e.path = path
	}
}

// WithTimeout sets the per-document conversion timeout
func WithTimeout(d time.Duration) PdftotextOption {
	return func(e *PdftotextExtractor) {
		e.timeout = d
	}
}

// WithLogger sets a custom logger
func WithLogger(logger *zap.Logger) PdftotextOption {
	return func(e *PdftotextExtractor) {
		e.logger = logger
	}
}

// NewPdftotextExtractor creates a new PdftotextExtractor
func NewPdftotextExtractor(opts ...PdftotextOption) *PdftotextExtractor {
	e := &PdftotextExtractor{
		path:    "pdftotext",
		timeout: 30 * time.Second,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract converts the document to text. PDF input runs through
// pdftotext -layout; anything else is assumed to already be text.
func (e *PdftotextExtractor) Extract(ctx context.Context, content []byte, mediaType string) (string, error) {
	if !isPDF(content, mediaType) {
		return string(content), nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	// "-" reads the PDF from stdin and writes text to stdout.
	cmd := exec.CommandContext(ctx, e.path, "-layout", "-enc", "UTF-8", "-", "-")
	cmd.Stdin = bytes.NewReader(content)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("pdftotext timed out after %v", e.timeout)
		}
		return "", fmt.Errorf("pdftotext failed: %w (%s)", err, strings.TrimSpace(stderr.String()))
	}

	e.logger.Debug("document converted",
		zap.Int("input_bytes", len(content)),
		zap.Int("output_bytes", stdout.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)

	return stdout.String(), nil
}

// isPDF detects PDF input by media type, falling back to the file signature
// when the type is missing or generic.
func isPDF(content []byte, mediaType string) bool {
	mt := strings.ToLower(strings.TrimSpace(strings.Split(mediaType, ";")[0]))
	switch mt {
	case "application/pdf":
		return true
	case "text/plain":
		return false
	}
	return bytes.HasPrefix(content, []byte("%PDF-"))
}
