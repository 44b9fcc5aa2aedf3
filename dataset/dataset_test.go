package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `{"word":"dog","countrycode":"US","timestamp":"2017-03-01 20:40:39.3717 UTC","recognized":true,"key_id":"1","drawing":[[[0,10,20],[5,15,25],[0,16,32]],[[30,40],[35,45]]]}
{"word":"dog","countrycode":"GB","recognized":false,"key_id":"2","drawing":[[[1,2],[3,4]]]}
not json at all
{"word":"dog","recognized":true,"key_id":"3"}

{"word":"dog","recognized":true,"key_id":"4","drawing":[[[1,2]]]}
{"word":"dog","recognized":false,"key_id":"5","drawing":[[[9],[9]]]}
`

func TestParse(t *testing.T) {
	c, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if c.Len() != 3 {
		t.Fatalf("Expected 3 drawings, got %d", c.Len())
	}
	if len(c.Recognized()) != 1 || len(c.Unrecognized()) != 2 {
		t.Errorf("Expected 1 recognized and 2 unrecognized, got %d and %d", len(c.Recognized()), len(c.Unrecognized()))
	}

	first := c.All()[0]
	if first.KeyID != "1" || first.CountryCode != "US" || !first.Recognized {
		t.Errorf("Unexpected metadata %+v", first)
	}
	if len(first.Drawing.Strokes) != 2 {
		t.Fatalf("Expected 2 strokes, got %d", len(first.Drawing.Strokes))
	}
	if got := first.Drawing.Strokes[0]; len(got) != 3 || got[1][2] != 25 {
		t.Errorf("Unexpected first stroke %v", got)
	}
	if first.Drawing.PointCount() != 5 {
		t.Errorf("Expected 5 points, got %d", first.Drawing.PointCount())
	}
}

func TestParseSkipsOversizedLine(t *testing.T) {
	good := `{"word":"dog","recognized":true,"key_id":"%s","drawing":[[[0,255],[0,255]]]}`
	huge := `{"word":"dog","key_id":"big","drawing":[[[` + strings.Repeat("1,", 5<<19) + `1],[1]]]}`
	input := fmt.Sprintf(good, "1") + "\n" + huge + "\n" + fmt.Sprintf(good, "2") + "\r\n"

	c, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Expected 2 drawings around the oversized line, got %d", c.Len())
	}
	if c.All()[0].KeyID != "1" || c.All()[1].KeyID != "2" {
		t.Errorf("Expected key ids 1 and 2, got %q and %q", c.All()[0].KeyID, c.All()[1].KeyID)
	}
}

func TestReadRecord(t *testing.T) {
	br := bufio.NewReaderSize(strings.NewReader("abc\r\n0123456789\n\nxy"), 16)
	tests := []struct {
		line string
		size int
		err  error
	}{
		{"abc", 3, nil},
		{"", 11, nil},
		{"", 0, nil},
		{"xy", 2, io.EOF},
	}
	for i, tt := range tests {
		line, size, err := readRecord(br, 8)
		if string(line) != tt.line || size != tt.size || err != tt.err {
			t.Errorf("Record %d: expected (%q, %d, %v), got (%q, %d, %v)", i, tt.line, tt.size, tt.err, line, size, err)
		}
	}
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse(strings.NewReader("garbage\n{\"drawing\":[]}\n"))
	if !errors.Is(err, ErrNoDrawings) {
		t.Errorf("Expected ErrNoDrawings, got %v", err)
	}
}

func TestParseLineErrors(t *testing.T) {
	if _, err := ParseLine([]byte(`{"word":`)); err == nil {
		t.Error("Expected error for truncated json")
	}
	if _, err := ParseLine([]byte(`{"word":"cat","drawing":{}}`)); err == nil {
		t.Error("Expected error for non-array drawing")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dog.ndjson")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if c.Len() != 3 {
		t.Errorf("Expected 3 drawings, got %d", c.Len())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.ndjson")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestNewCollectionEmpty(t *testing.T) {
	if _, err := NewCollection(nil); !errors.Is(err, ErrNoDrawings) {
		t.Errorf("Expected ErrNoDrawings, got %v", err)
	}
}
