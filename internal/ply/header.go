package ply

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tuannm99/novacloud/internal/scalar"
)

const (
	magic      = "ply"
	version    = "1.0"
	endHeader  = "end_header"
	VertexName = "vertex"
)

// Property is one declared field of an element. List properties carry
// a per-record count of CountType followed by that many Type items.
type Property struct {
	Name      string
	Type      scalar.Type
	List      bool
	CountType scalar.Type
}

// Element is a named group of records. Property order is the physical
// field order of every record.
type Element struct {
	Name       string
	Count      int
	Properties []Property
}

// Stride returns the byte width of one binary record. Elements with list
// properties have no fixed stride.
func (e *Element) Stride() (int, bool) {
	n := 0
	for _, p := range e.Properties {
		if p.List {
			return 0, false
		}
		n += p.Type.Size()
	}
	return n, true
}

// Lookup returns the last property declared with name.
func (e *Element) Lookup(name string) (Property, bool) {
	for i := len(e.Properties) - 1; i >= 0; i-- {
		if e.Properties[i].Name == name {
			return e.Properties[i], true
		}
	}
	return Property{}, false
}

func (e *Element) Names() []string {
	out := make([]string, len(e.Properties))
	for i, p := range e.Properties {
		out[i] = p.Name
	}
	return out
}

// Header is everything before the payload. Comments and ObjInfo each keep
// their own line order, but the relative order of comment and obj_info
// lines is not recorded.
type Header struct {
	Encoding scalar.Encoding
	Version  string
	Comments []string
	ObjInfo  []string
	Elements []Element

	// PayloadOffset is the number of bytes consumed up to and including
	// the end_header line.
	PayloadOffset int64
}

// Element returns the first element called name.
func (h *Header) Element(name string) (*Element, int, bool) {
	for i := range h.Elements {
		if h.Elements[i].Name == name {
			return &h.Elements[i], i, true
		}
	}
	return nil, -1, false
}

// ParseHeader reads header lines up to end_header. On success r is
// positioned at the first payload byte.
func ParseHeader(r *bufio.Reader) (*Header, error) {
	h := &Header{}
	lineNo := 0
	sawFormat := false

	for {
		raw, err := r.ReadString('\n')
		h.PayloadOffset += int64(len(raw))
		if err != nil && !(errors.Is(err, io.EOF) && raw != "") {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: missing %s after line %d", ErrMalformedHeader, endHeader, lineNo)
			}
			return nil, err
		}
		lineNo++
		line := strings.TrimRight(raw, "\r\n")

		if lineNo == 1 {
			if strings.TrimSpace(line) != magic {
				return nil, fmt.Errorf("%w: expected %q magic, got %q", ErrMalformedHeader, magic, line)
			}
			continue
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			if err != nil {
				return nil, fmt.Errorf("%w: missing %s after line %d", ErrMalformedHeader, endHeader, lineNo)
			}
			continue
		}

		switch fields[0] {
		case "format":
			if sawFormat {
				return nil, fmt.Errorf("%w: line %d: duplicate format line", ErrMalformedHeader, lineNo)
			}
			if len(fields) != 3 {
				return nil, fmt.Errorf("%w: line %d: bad format line %q", ErrMalformedHeader, lineNo, line)
			}
			enc, perr := scalar.ParseEncoding(fields[1])
			if perr != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedHeader, lineNo, perr)
			}
			if fields[2] != version {
				return nil, fmt.Errorf("%w: line %d: unsupported version %q", ErrMalformedHeader, lineNo, fields[2])
			}
			h.Encoding = enc
			h.Version = fields[2]
			sawFormat = true

		case "comment":
			h.Comments = append(h.Comments, restOf(line, "comment"))

		case "obj_info":
			h.ObjInfo = append(h.ObjInfo, restOf(line, "obj_info"))

		case "element":
			if len(fields) != 3 {
				return nil, fmt.Errorf("%w: line %d: bad element line %q", ErrMalformedHeader, lineNo, line)
			}
			n, perr := strconv.Atoi(fields[2])
			if perr != nil || n < 0 {
				return nil, fmt.Errorf("%w: line %d: bad count %q for element %q", ErrMalformedHeader, lineNo, fields[2], fields[1])
			}
			h.Elements = append(h.Elements, Element{Name: fields[1], Count: n})

		case "property":
			if len(h.Elements) == 0 {
				return nil, fmt.Errorf("%w: line %d: property before any element", ErrMalformedHeader, lineNo)
			}
			p, perr := parseProperty(fields)
			if perr != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedHeader, lineNo, perr)
			}
			el := &h.Elements[len(h.Elements)-1]
			if _, dup := el.Lookup(p.Name); dup {
				slog.Warn("ply: duplicate property, later declaration shadows earlier",
					"element", el.Name,
					"property", p.Name,
					"line", lineNo,
				)
			}
			el.Properties = append(el.Properties, p)

		case endHeader:
			if !sawFormat {
				return nil, fmt.Errorf("%w: no format line", ErrMalformedHeader)
			}
			slog.Debug("ply: header parsed",
				"encoding", h.Encoding,
				"elements", len(h.Elements),
				"comments", len(h.Comments),
				"payloadOffset", h.PayloadOffset,
			)
			return h, nil

		default:
			return nil, fmt.Errorf("%w: line %d: unknown keyword %q", ErrMalformedHeader, lineNo, fields[0])
		}

		if err != nil {
			// io.EOF on a line without end_header.
			return nil, fmt.Errorf("%w: missing %s after line %d", ErrMalformedHeader, endHeader, lineNo)
		}
	}
}

func parseProperty(fields []string) (Property, error) {
	if len(fields) >= 2 && fields[1] == "list" {
		if len(fields) != 5 {
			return Property{}, fmt.Errorf("bad list property %q", strings.Join(fields, " "))
		}
		ct, err := scalar.CanonicalOf(fields[2])
		if err != nil {
			return Property{}, err
		}
		if ct.IsFloat() {
			return Property{}, fmt.Errorf("list count type %q for %q is not an integer", fields[2], fields[4])
		}
		it, err := scalar.CanonicalOf(fields[3])
		if err != nil {
			return Property{}, err
		}
		return Property{Name: fields[4], Type: it, List: true, CountType: ct}, nil
	}
	if len(fields) != 3 {
		return Property{}, fmt.Errorf("bad property %q", strings.Join(fields, " "))
	}
	t, err := scalar.CanonicalOf(fields[1])
	if err != nil {
		return Property{}, err
	}
	return Property{Name: fields[2], Type: t}, nil
}

// restOf returns the text after keyword, dropping the single separator.
func restOf(line, keyword string) string {
	s := strings.TrimLeft(line, " \t")
	s = strings.TrimPrefix(s, keyword)
	if len(s) > 0 && (s[0] == ' ' || s[0] == '\t') {
		s = s[1:]
	}
	return s
}

// WriteHeader writes h in canonical form: every comment line, then every
// obj_info line, so interleaved metadata comes back regrouped. Multi-line
// comments become one comment line per line.
func WriteHeader(w io.Writer, h *Header) error {
	var b strings.Builder
	b.WriteString(magic + "\n")
	v := h.Version
	if v == "" {
		v = version
	}
	fmt.Fprintf(&b, "format %s %s\n", h.Encoding, v)
	for _, c := range h.Comments {
		for _, l := range strings.Split(c, "\n") {
			fmt.Fprintf(&b, "comment %s\n", l)
		}
	}
	for _, o := range h.ObjInfo {
		for _, l := range strings.Split(o, "\n") {
			fmt.Fprintf(&b, "obj_info %s\n", l)
		}
	}
	for _, el := range h.Elements {
		fmt.Fprintf(&b, "element %s %d\n", el.Name, el.Count)
		for _, p := range el.Properties {
			name, err := scalar.ExternalNameOf(p.Type, h.Encoding)
			if err != nil {
				return fmt.Errorf("property %q: %w", p.Name, err)
			}
			if p.List {
				cname, err := scalar.ExternalNameOf(p.CountType, h.Encoding)
				if err != nil {
					return fmt.Errorf("property %q: %w", p.Name, err)
				}
				fmt.Fprintf(&b, "property list %s %s %s\n", cname, name, p.Name)
				continue
			}
			fmt.Fprintf(&b, "property %s %s\n", name, p.Name)
		}
	}
	b.WriteString(endHeader + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}
