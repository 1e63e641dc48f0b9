package definition

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// fileSource identifies on-disk definition files.
type fileSource struct {
	path string
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Kind() SourceKind {
	return SourceKindFile
}

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

// fsSource references a path within an fs.FS.
type fsSource struct {
	name string
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Kind() SourceKind {
	return SourceKindFS
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

// urlSource references an HTTP/HTTPS endpoint.
type urlSource struct {
	raw string
}

func (s urlSource) Location() string {
	return s.raw
}

func (s urlSource) Kind() SourceKind {
	return SourceKindURL
}

// SourceFromURL parses the supplied URL string and returns a Source. It panics
// if the URL is invalid to surface configuration mistakes early.
func SourceFromURL(raw string) Source {
	if raw == "" {
		panic("definition: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("definition: invalid URL %q: %v", raw, err))
	}
	return urlSource{raw: raw}
}

// inlineSource carries its payload with it, for stdin and request bodies.
type inlineSource struct {
	name string
	data []byte
}

func (s inlineSource) Location() string {
	return s.name
}

func (s inlineSource) Kind() SourceKind {
	return SourceKindInline
}

// Bytes returns a copy of the inline payload.
func (s inlineSource) Bytes() []byte {
	return append([]byte(nil), s.data...)
}

// SourceFromBytes wraps an in-memory payload. The name only serves format
// detection and error messages; "-" or "" fall back to the text format.
func SourceFromBytes(name string, data []byte) Source {
	return inlineSource{name: name, data: append([]byte(nil), data...)}
}

// InlineData returns the payload of a source built by SourceFromBytes.
func InlineData(src Source) ([]byte, bool) {
	inline, ok := src.(inlineSource)
	if !ok {
		return nil, false
	}
	return inline.Bytes(), true
}
