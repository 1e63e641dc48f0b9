package taguchi

import (
	internalLoader "github.com/goliatone/go-taguchi/internal/definition/loader"
	internalParser "github.com/goliatone/go-taguchi/internal/definition/parser"
	pkgdefinition "github.com/goliatone/go-taguchi/pkg/definition"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...pkgdefinition.LoaderOption) pkgdefinition.Loader {
	cfg := pkgdefinition.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a parser backed by the internal implementation.
func NewParser(options ...pkgdefinition.ParserOption) pkgdefinition.Parser {
	cfg := pkgdefinition.NewParserOptions(options...)
	return internalParser.New(cfg)
}
