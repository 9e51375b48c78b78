package stattest

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ContingencyResult is the full output of a chi-squared test of independence.
type ContingencyResult struct {
	Statistic float64
	PValue    float64
	DOF       int

	// Expected holds the expected frequencies under independence, in the
	// shape of the observed table.
	Expected [][]float64
}

// ChiSquaredIndependenceTest answers the question: did the rows of this
// contingency table come from different distributions, or are the differences
// due to chance? It returns the p-value.
//
// On a 2x2 table without the Yates correction the p-value equals the z-test
// p-value of TwoProportionZScore. The Yates correction tends to be overly
// conservative; for small samples prefer FishersExactTest.
func ChiSquaredIndependenceTest(table Table, yatesCorrection bool) (float64, error) {
	res, err := ChiSquaredContingency(table, yatesCorrection)
	if err != nil {
		return math.NaN(), err
	}

	return res.PValue, nil
}

// ChiSquaredIndependenceTestSamples is ChiSquaredIndependenceTest for a
// samples array, e.g. [374, 26, 210, 8] is the table [[348, 26], [202, 8]].
func ChiSquaredIndependenceTestSamples(samples Samples, yatesCorrection bool) (float64, error) {
	table, err := SamplesToContingencyTable(samples)
	if err != nil {
		return math.NaN(), err
	}

	return ChiSquaredIndependenceTest(table, yatesCorrection)
}

// ChiSquaredContingency computes the Pearson chi-squared statistic, its
// degrees of freedom, the expected frequencies and the p-value for an M x K
// table. The Yates correction is only applied when there is exactly one degree
// of freedom.
func ChiSquaredContingency(table Table, yatesCorrection bool) (ContingencyResult, error) {
	if err := table.validate(); err != nil {
		return ContingencyResult{}, err
	}

	rows, cols := len(table), len(table[0])

	rowSums := make([]float64, rows)
	colSums := make([]float64, cols)
	total := 0.0
	for i, row := range table {
		for j, v := range row {
			rowSums[i] += float64(v)
			colSums[j] += float64(v)
			total += float64(v)
		}
	}

	expected := make([][]float64, rows)
	for i := range expected {
		expected[i] = make([]float64, cols)
		for j := range expected[i] {
			expected[i][j] = rowSums[i] * colSums[j] / total
			if expected[i][j] == 0 || math.IsNaN(expected[i][j]) {
				return ContingencyResult{}, fmt.Errorf("%w at (%d, %d)", ErrZeroExpectedFrequency, i, j)
			}
		}
	}

	dof := (rows - 1) * (cols - 1)
	if dof == 0 {
		// Nothing to test: the observed table is its own expectation.
		return ContingencyResult{Statistic: 0, PValue: 1, DOF: 0, Expected: expected}, nil
	}

	statistic := 0.0
	for i, row := range table {
		for j, v := range row {
			observed, exp := float64(v), expected[i][j]
			if yatesCorrection && dof == 1 {
				diff := exp - observed
				observed += math.Copysign(math.Min(0.5, math.Abs(diff)), diff)
			}
			statistic += (observed - exp) * (observed - exp) / exp
		}
	}

	return ContingencyResult{
		Statistic: statistic,
		PValue:    distuv.ChiSquared{K: float64(dof)}.Survival(statistic),
		DOF:       dof,
		Expected:  expected,
	}, nil
}
