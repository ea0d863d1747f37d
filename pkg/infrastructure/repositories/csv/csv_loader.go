package csv

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/vsinha/pharmacy/pkg/domain/entities"
)

// Supported input encodings
const (
	EncodingUTF8     = "utf-8"
	EncodingShiftJIS = "shift_jis"
)

var drugsHeader = []string{"name", "category", "expires_in", "benefit", "stock", "reorder_point"}

// Loader handles loading drugs from CSV files
type Loader struct {
	encoding string
	now      func() time.Time
}

// NewLoader creates a CSV loader for the given encoding. An empty encoding means UTF-8.
func NewLoader(encoding string) (*Loader, error) {
	switch strings.ToLower(encoding) {
	case "", EncodingUTF8, "utf8":
		encoding = EncodingUTF8
	case EncodingShiftJIS, "sjis", "shift-jis":
		encoding = EncodingShiftJIS
	default:
		return nil, fmt.Errorf("unsupported encoding %q (expected: %s or %s)", encoding, EncodingUTF8, EncodingShiftJIS)
	}
	return &Loader{encoding: encoding, now: time.Now}, nil
}

// LoadDrugs loads drugs from a CSV file
func (l *Loader) LoadDrugs(filename string) ([]*entities.Drug, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open drugs file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadDrugs(file)
}

// ReadDrugs parses drugs from CSV content. Empty stock and reorder_point
// cells take the defaults.
func (l *Loader) ReadDrugs(r io.Reader) ([]*entities.Drug, error) {
	if l.encoding == EncodingShiftJIS {
		r = transform.NewReader(r, japanese.ShiftJIS.NewDecoder())
	}

	reader := csv.NewReader(skipBOM(r))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read drugs CSV: %w", err)
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("drugs CSV must have a header row")
	}

	header := records[0]
	if !validateHeader(header, drugsHeader) {
		return nil, fmt.Errorf("drugs CSV header mismatch. Expected: %v, Got: %v", drugsHeader, header)
	}

	drugs := make([]*entities.Drug, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(drugsHeader) {
			return nil, fmt.Errorf("drugs CSV row %d: expected %d columns, got %d", i+2, len(drugsHeader), len(record))
		}

		drug, err := l.parseDrug(record)
		if err != nil {
			return nil, fmt.Errorf("drugs CSV row %d: %w", i+2, err)
		}

		drugs = append(drugs, drug)
	}

	return drugs, nil
}

func (l *Loader) parseDrug(record []string) (*entities.Drug, error) {
	opts := []entities.DrugOption{entities.WithClock(l.now)}

	if s := strings.TrimSpace(record[4]); s != "" {
		stock, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid stock: %s", record[4])
		}
		opts = append(opts, entities.WithStock(stock))
	}

	if s := strings.TrimSpace(record[5]); s != "" {
		reorderPoint, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid reorder_point: %s", record[5])
		}
		opts = append(opts, entities.WithReorderPoint(reorderPoint))
	}

	return entities.ParseDrug(
		strings.TrimSpace(record[0]),
		record[2],
		record[3],
		entities.ParseCategory(record[1]),
		opts...,
	)
}

func validateHeader(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, col := range header {
		if strings.TrimSpace(strings.ToLower(col)) != expected[i] {
			return false
		}
	}
	return true
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM drops a leading UTF-8 byte order mark
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}
