package definition

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Source identifies where a definition document originated so loaders can
// operate on files, fs.FS entries, URLs or in-memory payloads alike.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile   SourceKind = "file"
	SourceKindFS     SourceKind = "fs"
	SourceKindURL    SourceKind = "url"
	SourceKindInline SourceKind = "inline"
)

// Format names the syntax a definition document is written in.
type Format string

const (
	FormatUnknown Format = ""
	FormatText    Format = "tgu"
	FormatYAML    Format = "yaml"
	FormatJSON    Format = "json"
	FormatHCL     Format = "hcl"
)

// ParseFormat maps a user supplied format name to a Format. The empty string
// yields FormatUnknown so callers can fall back to detection.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return FormatUnknown, nil
	case "tgu", "text", "txt":
		return FormatText, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "hcl":
		return FormatHCL, nil
	default:
		return FormatUnknown, fmt.Errorf("definition: unsupported format %q", name)
	}
}

// FormatFromPath infers the format from a file name or URL extension.
func FormatFromPath(location string) Format {
	if u, err := url.Parse(location); err == nil && u.Scheme != "" && u.Path != "" {
		location = u.Path
	}
	switch strings.ToLower(path.Ext(location)) {
	case ".tgu", ".txt":
		return FormatText
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	case ".hcl":
		return FormatHCL
	default:
		return FormatUnknown
	}
}

// Document wraps the raw definition payload, its origin and its format.
type Document struct {
	source Source
	raw    []byte
	format Format
}

// NewDocument constructs a Document, inferring the format from the source
// location. An empty payload is allowed: it parses to an empty definition.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("definition: source is required")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone, format: FormatFromPath(src.Location())}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// TextDocument wraps definition text written in the line format.
func TextDocument(text string) Document {
	return MustNewDocument(SourceFromBytes("inline.tgu", []byte(text)), []byte(text))
}

// WithFormat returns a copy of the document with an explicit format. Passing
// FormatUnknown keeps the detected one.
func (d Document) WithFormat(format Format) Document {
	if format != FormatUnknown {
		d.format = format
	}
	return d
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a defensive copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Format reports the document syntax, FormatUnknown when undetermined.
func (d Document) Format() Format {
	return d.format
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// IsZero reports whether the document was never constructed.
func (d Document) IsZero() bool {
	return d.source == nil
}
