package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"time"

	pkgdefinition "github.com/goliatone/go-taguchi/pkg/definition"
)

// Loader implements pkgdefinition.Loader by delegating to file, fs.FS, HTTP
// or inline strategies.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
	maxBytes  int64
}

// Ensure the implementation satisfies the public interface.
var _ pkgdefinition.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options pkgdefinition.LoaderOptions) pkgdefinition.Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
		maxBytes:  options.MaxBytes,
	}
}

// Load fetches a document from the provided source and wraps it in a Document.
func (l *Loader) Load(ctx context.Context, src pkgdefinition.Source) (pkgdefinition.Document, error) {
	if src == nil {
		return pkgdefinition.Document{}, errors.New("definition loader: source is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case pkgdefinition.SourceKindFile:
		data, err = loadFile(ctx, src.Location(), l.maxBytes)
	case pkgdefinition.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location(), l.maxBytes)
	case pkgdefinition.SourceKindURL:
		if !l.allowHTTP {
			return pkgdefinition.Document{}, errors.New("definition loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout, l.maxBytes)
	case pkgdefinition.SourceKindInline:
		data, err = loadInline(ctx, src)
	default:
		err = errors.New("definition loader: unsupported source kind")
	}
	if err != nil {
		return pkgdefinition.Document{}, err
	}
	if l.maxBytes > 0 && int64(len(data)) > l.maxBytes {
		return pkgdefinition.Document{}, fmt.Errorf("definition loader: %s exceeds %d bytes", src.Location(), l.maxBytes)
	}

	return pkgdefinition.NewDocument(src, data)
}

// readLimited reads at most limit+1 bytes so an oversized payload is
// detected without buffering all of it. A zero limit reads everything.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	return io.ReadAll(r)
}

func loadInline(ctx context.Context, src pkgdefinition.Source) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, ok := pkgdefinition.InlineData(src)
	if !ok {
		return nil, errors.New("definition loader: inline source carries no data")
	}
	return data, nil
}
