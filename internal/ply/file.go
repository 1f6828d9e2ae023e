package ply

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/tuannm99/novacloud/internal/alias/util"
	"github.com/tuannm99/novacloud/internal/scalar"
	"github.com/tuannm99/novacloud/internal/table"
)

const Ext = ".ply"

// readBufSize is the bufio size used for file reads.
const readBufSize = 256 * 1024

// Cloud is the result of reading a PLY file: the vertex table plus the
// header it was decoded from.
type Cloud struct {
	Points *table.Table
	Header *Header
}

// NormalizePath returns path with a .ply suffix appended when it does not
// already end in one.
func NormalizePath(path string) string {
	if strings.HasSuffix(strings.ToLower(path), Ext) {
		return path
	}
	return path + Ext
}

// Read parses a header and decodes the vertex element from r.
func Read(r io.Reader, sel Selection) (*Cloud, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, readBufSize)
	}
	h, err := ParseHeader(br)
	if err != nil {
		return nil, err
	}
	t, err := Decode(br, h, sel)
	if err != nil {
		return nil, err
	}
	return &Cloud{Points: t, Header: h}, nil
}

func ReadFile(path string, sel Selection) (*Cloud, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer util.CloseQuietly(f, path)

	cloud, err := Read(f, sel)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	attrs := []any{
		"path", path,
		"encoding", cloud.Header.Encoding,
		"rows", cloud.Points.Len(),
		"cols", cloud.Points.NumCols(),
	}
	if info, err := f.Stat(); err == nil {
		attrs = append(attrs, "size", humanize.Bytes(uint64(info.Size())))
	}
	slog.Debug("ply: read file", attrs...)
	return cloud, nil
}

// WriteFile encodes t to NormalizePath(path) and returns the path written.
// An unknown field is reported before the file is opened. Any later failure
// removes the partial file.
func WriteFile(path string, t *table.Table, opts WriteOptions) (string, error) {
	path = NormalizePath(path)
	if opts.Encoding == 0 {
		opts.Encoding = scalar.BinaryLittleEndian
	}

	if _, _, err := HeaderFor(t, opts); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	cw := &countingWriter{w: f}
	err = Encode(cw, t, opts)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if rerr := os.Remove(path); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
			slog.Warn("ply: remove partial file", "path", path, "err", rerr)
		}
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	slog.Debug("ply: wrote file",
		"path", path,
		"encoding", opts.Encoding,
		"rows", t.Len(),
		"size", humanize.Bytes(uint64(cw.n)),
	)
	return path, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
