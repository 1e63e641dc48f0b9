package definition

import (
	"context"

	"github.com/goliatone/go-taguchi/pkg/design"
)

// Parser turns a Document into a Definition. Failures are *design.ParseError
// values carrying a kind and, where the format allows it, a line number.
type Parser interface {
	Parse(ctx context.Context, doc Document) (design.Definition, error)
}

// ParserOptions controls format dispatch.
type ParserOptions struct {
	// DefaultFormat applies when a document's format cannot be inferred.
	// Defaults to FormatText.
	DefaultFormat Format
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithDefaultFormat sets the fallback format for undetected documents.
func WithDefaultFormat(format Format) ParserOption {
	return func(opts *ParserOptions) {
		opts.DefaultFormat = format
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{DefaultFormat: FormatText}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.DefaultFormat == FormatUnknown {
		cfg.DefaultFormat = FormatText
	}
	return cfg
}
