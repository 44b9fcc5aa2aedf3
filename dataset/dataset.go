// Package dataset loads Quick, Draw! style NDJSON sketch collections
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/gjson"

	"github.com/lixenwraith/trough/core"
	"github.com/lixenwraith/trough/stroke"
)

// ErrNoDrawings is returned when a source yields no usable sketch
var ErrNoDrawings = errors.New("dataset: no drawings")

// maxLine bounds a single NDJSON record
const maxLine = 4 << 20

// Sketch is one drawing with its dataset metadata
type Sketch struct {
	KeyID       string
	Word        string
	CountryCode string
	Recognized  bool
	Drawing     stroke.Drawing
}

// Collection is a read-only, fully loaded set of sketches
type Collection struct {
	all          []*Sketch
	recognized   []*Sketch
	unrecognized []*Sketch
}

// NewCollection partitions sketches by their recognized flag
func NewCollection(sketches []*Sketch) (*Collection, error) {
	if len(sketches) == 0 {
		return nil, ErrNoDrawings
	}
	c := &Collection{all: sketches}
	for _, s := range sketches {
		if s.Recognized {
			c.recognized = append(c.recognized, s)
		} else {
			c.unrecognized = append(c.unrecognized, s)
		}
	}
	return c, nil
}

func (c *Collection) Len() int                { return len(c.all) }
func (c *Collection) All() []*Sketch          { return c.all }
func (c *Collection) Recognized() []*Sketch   { return c.recognized }
func (c *Collection) Unrecognized() []*Sketch { return c.unrecognized }

// ParseLine decodes one NDJSON record
func ParseLine(line []byte) (*Sketch, error) {
	if !gjson.ValidBytes(line) {
		return nil, errors.New("invalid json")
	}
	res := gjson.ParseBytes(line)
	drawing := res.Get("drawing")
	if !drawing.IsArray() {
		return nil, errors.New("missing drawing")
	}

	s := &Sketch{
		KeyID:       res.Get("key_id").String(),
		Word:        res.Get("word").String(),
		CountryCode: res.Get("countrycode").String(),
		Recognized:  res.Get("recognized").Bool(),
	}

	drawing.ForEach(func(_, st gjson.Result) bool {
		var arrays stroke.Stroke
		st.ForEach(func(_, axis gjson.Result) bool {
			var vals []float64
			axis.ForEach(func(_, v gjson.Result) bool {
				vals = append(vals, v.Float())
				return true
			})
			arrays = append(arrays, vals)
			return true
		})
		s.Drawing.Strokes = append(s.Drawing.Strokes, arrays)
		return true
	})
	return s, nil
}

// Parse reads NDJSON records; malformed or oversized lines and sketches with
// no usable points are logged and skipped
func Parse(r io.Reader) (*Collection, error) {
	log := core.Logger()
	br := bufio.NewReaderSize(r, 64<<10)

	var sketches []*Sketch
	lineNo, skipped := 0, 0
	for {
		line, size, err := readRecord(br, maxLine)
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("dataset: read: %w", err)
		}
		if size > 0 || err == nil {
			lineNo++
		}
		switch {
		case size > maxLine:
			skipped++
			log.Warn("dataset: skipping oversized line", "line", lineNo, "bytes", size, "limit", maxLine)
		case len(line) == 0:
		default:
			if s, ok := parseRecord(line, lineNo); ok {
				sketches = append(sketches, s)
			} else {
				skipped++
			}
		}
		if err == io.EOF {
			break
		}
	}

	c, err := NewCollection(sketches)
	if err != nil {
		return nil, err
	}
	log.Info("dataset loaded",
		"drawings", c.Len(),
		"recognized", len(c.recognized),
		"unrecognized", len(c.unrecognized),
		"skipped", skipped)
	return c, nil
}

// parseRecord decodes one line, logging why it is unusable
func parseRecord(line []byte, lineNo int) (*Sketch, bool) {
	s, err := ParseLine(line)
	if err != nil {
		core.Logger().Warn("dataset: skipping line", "line", lineNo, "error", err)
		return nil, false
	}
	if s.Drawing.PointCount() == 0 {
		core.Logger().Warn("dataset: skipping empty drawing", "line", lineNo, "key_id", s.KeyID)
		return nil, false
	}
	return s, true
}

// readRecord returns the next line without its terminator and the line's
// full length; lines longer than limit are drained and returned empty
// err is io.EOF on the final line
func readRecord(br *bufio.Reader, limit int) ([]byte, int, error) {
	var line []byte
	size := 0
	for {
		chunk, err := br.ReadSlice('\n')
		size += len(chunk)
		if size <= limit+2 {
			line = append(line, chunk...)
		} else {
			line = nil
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		n := len(line)
		if n > 0 && line[n-1] == '\n' {
			n--
			size--
			if n > 0 && line[n-1] == '\r' {
				n--
				size--
			}
		}
		if size > limit {
			return nil, size, err
		}
		return line[:n], size, err
	}
}

// Load parses an NDJSON file
func Load(path string) (*Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
