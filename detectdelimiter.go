package proptest

import (
	"bytes"

	"github.com/csimplestring/go-csv/detector"
)

// DetermineDelimiter returns the single most likely rune that delimits the
// columns of a comparisons file, falling back to a tab when the header alone
// is inconclusive.
func DetermineDelimiter(data []byte) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(bytes.NewReader(data), '"')

	for _, v := range delimiters {
		switch v {
		case "\t", ",", ";", "|", " ":
			return rune(v[0])
		}
	}

	if len(delimiters) > 0 {
		return rune(delimiters[0][0])
	}

	return '\t'
}
