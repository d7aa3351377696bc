// Package corpus loads the texts the search engines are benchmarked on.
//
// Texts are decoded into runes once, outside any timed region, and cached by
// name. Cached texts are shared between callers and must not be modified.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// DefaultCacheSize is the number of decoded texts a Loader keeps.
const DefaultCacheSize = 16

// ErrUnknownEncoding is returned for labels outside the WHATWG encoding registry.
var ErrUnknownEncoding = errors.New("corpus: unknown encoding")

// Source opens named texts.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// Dir is a Source backed by a file system tree.
type Dir struct {
	fsys fs.FS
}

// NewDir serves files below root.
func NewDir(root string) Dir {
	return Dir{fsys: os.DirFS(root)}
}

// FS serves files from fsys.
func FS(fsys fs.FS) Dir {
	return Dir{fsys: fsys}
}

func (d Dir) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return d.fsys.Open(name)
}

func lookup(label string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	return enc, nil
}

// Decode reads r in the given encoding ("cp1251", "windows-1251", "utf-8", ...)
// and returns its characters.
func Decode(r io.Reader, label string) ([]rune, error) {
	enc, err := lookup(label)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(transform.NewReader(r, enc.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", label, err)
	}
	return []rune(string(data)), nil
}

// Loader decodes texts from a Source and caches the result.
type Loader struct {
	src      Source
	encoding string
	cache    *lru.Cache[string, []rune]
	log      *zap.Logger
}

// NewLoader checks the encoding label up front so a bad label fails before any
// text is read.
func NewLoader(src Source, label string, cacheSize int) (*Loader, error) {
	if _, err := lookup(label); err != nil {
		return nil, err
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, []rune](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Loader{
		src:      src,
		encoding: label,
		cache:    cache,
		log:      zap.L().Named("corpus"),
	}, nil
}

// Load returns the decoded text called name.
func (l *Loader) Load(ctx context.Context, name string) ([]rune, error) {
	if text, ok := l.cache.Get(name); ok {
		return text, nil
	}
	rc, err := l.src.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close()

	text, err := Decode(rc, l.encoding)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	l.cache.Add(name, text)
	l.log.Debug("loaded", zap.String("name", name), zap.Int("chars", len(text)))
	return text, nil
}
