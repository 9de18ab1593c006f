// ABOUTME: CSV ingest with prioritized text-encoding fallback
// ABOUTME: Tries utf-8 then legacy codecs, substituting bad bytes as a last resort
package data

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// LoadError reports a source that could not be read or parsed under any of
// the attempted encodings. No partial aggregate state is published after it.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading sales data from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// loadRows reads the CSV at path into a header map plus raw string rows.
// Decoding is attempted with utf-8 first, then latin-1, iso-8859-1 and
// cp1252; if every attempt fails the bytes are force-decoded with
// undecodable sequences replaced rather than aborting.
func loadRows(path string) (header map[string]int, rows [][]string, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &LoadError{Path: path, Err: err}
	}

	text, encodingName := decodeBytes(raw)
	log.Printf("Decoded %d bytes with %s encoding", len(raw), encodingName)

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, &LoadError{Path: path, Err: err}
	}
	if len(all) == 0 {
		return nil, nil, &LoadError{Path: path, Err: fmt.Errorf("empty file")}
	}

	header = make(map[string]int, len(all[0]))
	for i, name := range all[0] {
		header[strings.ToUpper(strings.TrimSpace(name))] = i
	}
	return header, all[1:], nil
}

func decodeBytes(raw []byte) (string, string) {
	if utf8.Valid(raw) {
		return string(raw), "utf-8"
	}
	attempts := []struct {
		name string
		dec  *encoding.Decoder
	}{
		{"latin-1", charmap.ISO8859_1.NewDecoder()},
		{"iso-8859-1", charmap.ISO8859_1.NewDecoder()},
		{"cp1252", charmap.Windows1252.NewDecoder()},
	}
	for _, a := range attempts {
		if decoded, err := a.dec.Bytes(raw); err == nil {
			return string(decoded), a.name
		}
	}
	// Last resort: substitute undecodable bytes instead of failing the run.
	return strings.ToValidUTF8(string(raw), string(utf8.RuneError)), "utf-8 (substituting errors)"
}
