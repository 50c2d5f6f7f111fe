package boxfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/guiguan/caster"
	"github.com/npillmayer/rtree"
	"github.com/npillmayer/rtree/geom"
)

// ErrSyntax is flagged for malformed lines. The error message carries the
// line number.
var ErrSyntax = errors.New("boxfile: syntax error")

// Record is a box read from a line of input.
type Record struct {
	Line  int // 1-based line number
	Label string
	Box   geom.Box
}

func (r Record) String() string {
	if r.Label == "" {
		return r.Box.String()
	}
	return r.Box.String() + " " + r.Label
}

// Progress is published to a progress caster while reading.
type Progress struct {
	Records int  // records read so far
	Done    bool // set for the final message of a successful read
}

type reader struct {
	dims  int
	cast  *caster.Caster
	every int
}

// Option configures reading.
type Option func(*reader)

// WithDims sets the number of dimensions per box. The default is 2.
func WithDims(d int) Option {
	return func(r *reader) {
		r.dims = d
	}
}

// WithProgress publishes a Progress message to c after every n records, and
// a final one with Done set. The caster is owned by the caller.
func WithProgress(c *caster.Caster, every int) Option {
	return func(r *reader) {
		r.cast = c
		r.every = max(every, 1)
	}
}

// Load reads the records of a file.
func Load(path string, opts ...Option) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	records, err := Read(f, opts...)
	if err != nil {
		return records, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

func (rd *reader) read(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		rec, err := rd.parse(line, text)
		if err != nil {
			tracer().Errorf("boxfile: %v", err)
			return records, err
		}
		records = append(records, rec)
		if rd.cast != nil && len(records)%rd.every == 0 {
			rd.cast.Pub(Progress{Records: len(records)})
		}
	}
	if err := scanner.Err(); err != nil {
		return records, err
	}
	if rd.cast != nil {
		rd.cast.Pub(Progress{Records: len(records), Done: true})
	}
	tracer().Debugf("boxfile: read %d records from %d lines", len(records), line)
	return records, nil
}

// Read reads records from r until EOF. On error, the records read so far are
// returned together with the error.
func Read(r io.Reader, opts ...Option) ([]Record, error) {
	rd := &reader{dims: 2}
	for _, opt := range opts {
		opt(rd)
	}
	if rd.dims < 1 {
		return nil, fmt.Errorf("boxfile: invalid number of dimensions %d", rd.dims)
	}
	return rd.read(r)
}

func (rd *reader) parse(line int, text string) (Record, error) {
	fields := strings.Fields(text)
	if len(fields) < 2*rd.dims {
		return Record{}, fmt.Errorf("%w: line %d: expected %d coordinates, have %d",
			ErrSyntax, line, 2*rd.dims, len(fields))
	}
	coords := make([]float64, 2*rd.dims)
	for i := range coords {
		c, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return Record{}, fmt.Errorf("%w: line %d: coordinate %q is not a number", ErrSyntax, line, fields[i])
		}
		coords[i] = c
	}
	box, err := geom.NewBox(coords[:rd.dims], coords[rd.dims:])
	if err != nil {
		return Record{}, fmt.Errorf("%w: line %d: %w", ErrSyntax, line, err)
	}
	return Record{
		Line:  line,
		Label: strings.Join(fields[2*rd.dims:], " "),
		Box:   box,
	}, nil
}

// Write writes records in the format understood by Read.
func Write(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		for i := range rec.Box.Dim() {
			bw.WriteString(strconv.FormatFloat(rec.Box.Min(i), 'g', -1, 64))
			bw.WriteByte(' ')
		}
		for i := range rec.Box.Dim() {
			if i > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.FormatFloat(rec.Box.Max(i), 'g', -1, 64))
		}
		if rec.Label != "" {
			bw.WriteByte(' ')
			bw.WriteString(rec.Label)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Translator indexes records in an rtree.Tree. Records are equal if they
// have the same label and box.
type Translator struct{}

// Bounds returns the box of rec.
func (Translator) Bounds(rec Record) (geom.Box, error) {
	return rec.Box, nil
}

// Equal compares label and box.
func (Translator) Equal(a, b Record) bool {
	return a.Label == b.Label && a.Box.Equal(b.Box)
}

var _ rtree.Translator[Record] = Translator{}
