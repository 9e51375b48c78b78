// Package stattest computes significance statistics for comparing two
// proportions (z-test, Fisher's exact test) and chi-squared tests of
// independence over contingency tables.
package stattest

import "fmt"

// Samples is a flat sequence of group sizes and conversion counts, in the
// pattern (total1, subgroup1, total2, subgroup2, ...).
type Samples []int

// Table is a contingency table. When derived from Samples, each row is
// [failures, successes] for one group.
type Table [][]int

// Validate checks that the samples have an even, non-zero length, contain no
// negative values, and that no subgroup exceeds its total.
func (s Samples) Validate() error {
	if len(s) == 0 || len(s)%2 != 0 {
		return fmt.Errorf("%w: expected an even number of values, got %d", ErrInvalidSampleCounts, len(s))
	}

	for i := 0; i < len(s); i += 2 {
		total, subgroup := s[i], s[i+1]
		if total < 0 || subgroup < 0 {
			return fmt.Errorf("%w: group %d has a negative count (%d, %d)", ErrInvalidSampleCounts, i/2, total, subgroup)
		}
		if subgroup > total {
			return fmt.Errorf("%w: group %d has %d conversions out of %d", ErrInvalidSampleCounts, i/2, subgroup, total)
		}
	}

	return nil
}

// SamplesToContingencyTable turns a samples array into an N x 2 contingency
// table of [failures, successes] rows. Reverses ContingencyTableToSamples.
func SamplesToContingencyTable(samples Samples) (Table, error) {
	if err := samples.Validate(); err != nil {
		return nil, err
	}

	table := make(Table, 0, len(samples)/2)
	for i := 0; i < len(samples); i += 2 {
		table = append(table, []int{samples[i] - samples[i+1], samples[i+1]})
	}

	return table, nil
}

// ContingencyTableToSamples turns an M x 2 contingency table into a samples
// array. Reverses SamplesToContingencyTable.
func ContingencyTableToSamples(table Table) (Samples, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidTable)
	}

	samples := make(Samples, 0, 2*len(table))
	for i, row := range table {
		if len(row) != 2 {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected 2", ErrInvalidTable, i, len(row))
		}
		if row[0] < 0 || row[1] < 0 {
			return nil, fmt.Errorf("%w: row %d has a negative count", ErrInvalidTable, i)
		}
		samples = append(samples, row[0]+row[1], row[1])
	}

	return samples, nil
}

// validate checks that the table is non-empty, rectangular and holds only
// non-negative counts.
func (t Table) validate() error {
	if len(t) == 0 || len(t[0]) == 0 {
		return fmt.Errorf("%w: table is empty", ErrInvalidTable)
	}

	cols := len(t[0])
	for i, row := range t {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d columns, expected %d", ErrInvalidTable, i, len(row), cols)
		}
		for j, v := range row {
			if v < 0 {
				return fmt.Errorf("%w: cell (%d, %d) is negative", ErrInvalidTable, i, j)
			}
		}
	}

	return nil
}
