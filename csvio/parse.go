package csvio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Kind names the entity table a CSV targets.
type Kind string

const (
	KindBookings Kind = "bookings"
	KindStaff    Kind = "staff"
	KindMenu     Kind = "menu"
)

// Table is a parsed, schema-classified CSV: a header-keyed row list plus
// the schema it matched.
type Table struct {
	Kind Kind
	Rows []map[string]string
}

var (
	ErrUndecodable   = errors.New("csv: bytes are not decodable in any supported encoding")
	ErrUnknownSchema = errors.New("csv: header matches no known schema")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// schemas: the full key set per schema plus the marker key that appears in
// exactly one of them, so a header can match at most one.
var schemaKeys = map[Kind]map[string]bool{
	KindBookings: keySet("id", "user_id", "fullname", "phone", "datetime", "source", "notes", "status", "consent"),
	KindStaff:    keySet("user_id", "role", "fullname", "phone", "username", "passport"),
	KindMenu:     keySet("id", "title", "description", "price", "category", "photo_url", "is_active"),
}

var schemaMarker = map[Kind]string{
	KindBookings: "datetime",
	KindStaff:    "role",
	KindMenu:     "title",
}

func keySet(keys ...string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

// Parse decodes raw CSV bytes (UTF-8 with or without BOM, then cp1251),
// sniffs the delimiter from the header line (semicolon wins ties), and
// classifies the header against the known schemas. A header that matches
// none of them fails the whole import.
func Parse(raw []byte) (*Table, error) {
	text, err := decode(raw)
	if err != nil {
		return nil, err
	}

	headerLine := text
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		headerLine = text[:i]
	}
	delim := detectDelimiter(headerLine)

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrUnknownSchema
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	kind, err := classify(header)
	if err != nil {
		return nil, err
	}

	table := &Table{Kind: kind}
	for _, record := range records[1:] {
		rowMap := make(map[string]string, len(header))
		for i, key := range header {
			if i < len(record) {
				rowMap[key] = strings.TrimSpace(record[i])
			} else {
				rowMap[key] = ""
			}
		}
		table.Rows = append(table.Rows, rowMap)
	}
	return table, nil
}

func decode(raw []byte) (string, error) {
	if len(raw) == 0 {
		return "", ErrUndecodable
	}
	if bytes.HasPrefix(raw, utf8BOM) {
		raw = raw[len(utf8BOM):]
	}
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	decoded, err := charmap.Windows1251.NewDecoder().Bytes(raw)
	if err != nil {
		return "", ErrUndecodable
	}
	return string(decoded), nil
}

func detectDelimiter(headerLine string) rune {
	if strings.Count(headerLine, ";") >= strings.Count(headerLine, ",") {
		return ';'
	}
	return ','
}

func classify(header []string) (Kind, error) {
	for kind, keys := range schemaKeys {
		marker := false
		fits := true
		for _, h := range header {
			if !keys[h] {
				fits = false
				break
			}
			if h == schemaMarker[kind] {
				marker = true
			}
		}
		if fits && marker {
			return kind, nil
		}
	}
	return "", ErrUnknownSchema
}
