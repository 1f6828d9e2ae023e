package textcloud

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/tuannm99/novacloud/internal/alias/util"
	"github.com/tuannm99/novacloud/internal/scalar"
	"github.com/tuannm99/novacloud/internal/table"
)

var (
	ErrMissingCoordinates = errors.New("textcloud: names must include x, y and z")
	ErrBadDelimiter       = errors.New("textcloud: invalid delimiter")
	ErrFieldCount         = errors.New("textcloud: wrong number of fields")
)

// MeshPrefix is prepended to the base name of the companion mesh file.
const MeshPrefix = "mesh_"

// ReadBufSize is the size of the buffer used when reading text files.
var ReadBufSize = 256 * 1024

// Options describes the layout of a delimited point file.
type Options struct {
	// Delimiter separates fields. Zero means runs of blanks, as in .xyz
	// files.
	Delimiter rune
	// Header is true when the first line holds column names. On read it
	// is skipped; on write the column names are emitted.
	Header bool
	// Comment marks lines to ignore on read. Zero disables comments.
	Comment rune
	// Types overrides the column type per name on read. Unlisted columns
	// are Float64.
	Types map[string]scalar.Type
}

func DefaultOptions() Options {
	return Options{Delimiter: ','}
}

func (o Options) validate() error {
	if o.Delimiter == 0 {
		return nil
	}
	if o.Delimiter == '\r' || o.Delimiter == '\n' || o.Delimiter == '"' || !utf8.ValidRune(o.Delimiter) || o.Delimiter == utf8.RuneError {
		return fmt.Errorf("%w: %q", ErrBadDelimiter, o.Delimiter)
	}
	if o.Comment != 0 && o.Comment == o.Delimiter {
		return fmt.Errorf("%w: comment and delimiter are both %q", ErrBadDelimiter, o.Delimiter)
	}
	return nil
}

// ReadText loads path into a table with one column per name.
func ReadText(path string, names []string, opts Options) (*table.Table, error) {
	if !hasCoordinates(names) {
		return nil, fmt.Errorf("%w: got %q", ErrMissingCoordinates, names)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer util.CloseQuietly(f, path)

	t, err := Read(f, names, opts)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	slog.Debug("textcloud: read file", "path", path, "rows", t.Len(), "cols", t.NumCols())
	return t, nil
}

// Read parses delimited records from r. See ReadText.
func Read(r io.Reader, names []string, opts Options) (*table.Table, error) {
	if !hasCoordinates(names) {
		return nil, fmt.Errorf("%w: got %q", ErrMissingCoordinates, names)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	br := bufio.NewReaderSize(r, ReadBufSize)
	var records [][]string
	var err error
	if opts.Delimiter == 0 {
		records, err = readBlankSeparated(br, len(names), opts)
	} else {
		records, err = readDelimited(br, len(names), opts)
	}
	if err != nil {
		return nil, err
	}

	t := table.New()
	for j, name := range names {
		typ := scalar.Float64
		if tt, ok := opts.Types[name]; ok {
			typ = tt
		}
		c, err := table.MakeColumn(name, typ, len(records))
		if err != nil {
			return nil, err
		}
		for i, rec := range records {
			if err := c.Parse(i, strings.TrimSpace(rec[j])); err != nil {
				return nil, err
			}
		}
		if err := t.AddColumn(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func readDelimited(r io.Reader, n int, opts Options) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = opts.Delimiter
	cr.Comment = opts.Comment
	// Counted below, after the header row is dropped.
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = opts.Delimiter != ' ' && opts.Delimiter != '\t'

	var records [][]string
	skipHeader := opts.Header
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return records, nil
			}
			return nil, err
		}
		if skipHeader {
			skipHeader = false
			continue
		}
		if len(rec) != n {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d has %d, want %d", ErrFieldCount, line, len(rec), n)
		}
		records = append(records, rec)
	}
}

func readBlankSeparated(r *bufio.Reader, n int, opts Options) ([][]string, error) {
	var records [][]string
	lineNo := 0
	skipHeader := opts.Header
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			lineNo++
			fields := strings.Fields(line)
			switch {
			case len(fields) == 0:
			case opts.Comment != 0 && strings.HasPrefix(strings.TrimSpace(line), string(opts.Comment)):
			case skipHeader:
				skipHeader = false
			case len(fields) != n:
				return nil, fmt.Errorf("%w: line %d has %d, want %d", ErrFieldCount, lineNo, len(fields), n)
			default:
				records = append(records, fields)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return records, nil
			}
			return nil, err
		}
	}
}

func hasCoordinates(names []string) bool {
	seen := map[string]bool{}
	for _, n := range names {
		seen[n] = true
	}
	return seen["x"] && seen["y"] && seen["z"]
}

// MeshPath returns the companion path for a mesh table written next to
// path.
func MeshPath(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, MeshPrefix+base)
}

// WriteText writes points to path and, when mesh is non-nil, mesh to
// MeshPath(path). It returns the paths written.
func WriteText(path string, points, mesh *table.Table, opts Options) ([]string, error) {
	if err := writeFile(path, points, opts); err != nil {
		return nil, err
	}
	written := []string{path}
	if mesh != nil {
		mp := MeshPath(path)
		if err := writeFile(mp, mesh, opts); err != nil {
			return written, err
		}
		written = append(written, mp)
	}
	return written, nil
}

func writeFile(path string, t *table.Table, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = Write(f, t, opts)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	slog.Debug("textcloud: wrote file", "path", path, "rows", t.Len(), "cols", t.NumCols())
	return nil
}

// Write renders every column of t, in table order, one row per line.
func Write(w io.Writer, t *table.Table, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cw.Comma = opts.Delimiter
	if cw.Comma == 0 {
		cw.Comma = ' '
	}

	cols := t.Columns()
	rec := make([]string, len(cols))
	if opts.Header {
		if err := cw.Write(t.Names()); err != nil {
			return err
		}
	}
	for i := 0; i < t.Len(); i++ {
		for j, c := range cols {
			rec[j] = c.Format(i)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
