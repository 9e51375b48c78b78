package proptest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// ErrMissingColumn is returned when a comparisons file lacks one of the count
// columns.
var ErrMissingColumn = errors.New("comparisons file is missing a required column")

var requiredColumns = []string{"control_size", "control_conversion", "attribute_size", "attribute_conversion"}

// ReadComparisonsFile reads a possibly-compressed comparisons file from disk.
func ReadComparisonsFile(path string) ([]Comparison, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	data, err := MaybeDecompress(raw)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%v (%s)", err, path))
	}

	comparisons, err := ReadComparisons(data)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%v (%s)", err, path))
	}

	return comparisons, nil
}

// ReadComparisons decodes delimited text with a header naming the
// control_size, control_conversion, attribute_size and attribute_conversion
// columns, and optionally a label column. Rows without a label are labeled by
// their 1-based line number in the body.
func ReadComparisons(data []byte) ([]Comparison, error) {
	data = bytes.TrimSpace(data)
	delim := DetermineDelimiter(data)

	if err := checkHeader(data, delim); err != nil {
		return nil, pfx.Err(err)
	}

	records := []*Comparison{}

	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = delim
		r.LazyQuotes = true
		r.TrimLeadingSpace = true
		return r
	})

	if err := gocsv.UnmarshalBytes(data, &records); err != nil {
		return nil, pfx.Err(err)
	}

	out := make([]Comparison, 0, len(records))
	for i, record := range records {
		if record.Label == "" {
			record.Label = fmt.Sprint(i + 1)
		}
		out = append(out, *record)
	}

	return out, nil
}

// checkHeader makes sure every count column is present, so that a misspelled
// header is not silently decoded as zero counts.
func checkHeader(data []byte, delim rune) error {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(header))
	for _, v := range header {
		seen[strings.TrimSpace(v)] = struct{}{}
	}

	for _, col := range requiredColumns {
		if _, exists := seen[col]; !exists {
			return fmt.Errorf("%w: %s (header: %s)", ErrMissingColumn, col, strings.Join(header, ","))
		}
	}

	return nil
}
