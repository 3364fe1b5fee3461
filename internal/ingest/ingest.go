// Package ingest reads chat exports into memory before analysis.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/atikulmunna/chatlens/internal/apperr"
	"github.com/atikulmunna/chatlens/internal/model"
)

// DefaultMaxBytes caps how much of an export is buffered.
const DefaultMaxBytes int64 = 32 << 20

// Stdin is the path that selects standard input.
const Stdin = "-"

// Reader loads exports from files or streams, rejecting non-text content.
type Reader struct {
	maxBytes int64
	log      *zap.Logger
}

// New returns a Reader. maxBytes <= 0 uses DefaultMaxBytes.
func New(maxBytes int64, log *zap.Logger) *Reader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Reader{maxBytes: maxBytes, log: log}
}

// LoadFile reads the export at path ("-" for stdin).
func (r *Reader) LoadFile(owner, path string) (model.Upload, error) {
	if path == Stdin {
		return r.Load(owner, "stdin", os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.Upload{}, apperr.New(apperr.KindNotFound, fmt.Sprintf("no such file %s", path), err)
		}
		return model.Upload{}, apperr.Unreadable(fmt.Sprintf("cannot open %s", path), err)
	}
	defer f.Close()

	return r.Load(owner, path, f)
}

// Load buffers src fully and checks that it looks like text.
func (r *Reader) Load(owner, source string, src io.Reader) (model.Upload, error) {
	data, err := io.ReadAll(io.LimitReader(src, r.maxBytes+1))
	if err != nil {
		return model.Upload{}, apperr.Unreadable(fmt.Sprintf("cannot read %s", source), err)
	}
	if int64(len(data)) > r.maxBytes {
		return model.Upload{}, apperr.TooLarge(fmt.Sprintf("%s exceeds %d bytes", source, r.maxBytes))
	}

	if len(data) > 0 {
		mt := mimetype.Detect(data)
		if !isText(mt) {
			r.log.Warn("rejected non-text export",
				zap.String("source", source),
				zap.String("mime", mt.String()))
			return model.Upload{}, apperr.Unreadable(fmt.Sprintf("%s is %s, not a text file", source, mt.String()), nil)
		}
	}

	r.log.Debug("export loaded", zap.String("source", source), zap.Int("bytes", len(data)))
	return model.Upload{Owner: owner, Source: source, Text: string(data)}, nil
}

// isText reports whether m is text/plain or one of its descendants
// (csv, json, html and so on).
func isText(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
