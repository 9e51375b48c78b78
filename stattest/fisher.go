package stattest

import (
	"fmt"
	"math"

	"github.com/BenLubar/memoize"
	fet "github.com/glycerine/golang-fisher-exact"
	"gonum.org/v1/gonum/floats"
)

// Alternative is the alternative hypothesis of an exact test.
type Alternative string

const (
	TwoSided Alternative = "two-sided"
	Less     Alternative = "less"
	Greater  Alternative = "greater"
)

// ParseAlternative accepts "two-sided", "less" or "greater".
func ParseAlternative(s string) (Alternative, error) {
	switch a := Alternative(s); a {
	case TwoSided, Less, Greater:
		return a, nil
	}

	return "", fmt.Errorf("%w: got %q", ErrInvalidAlternative, s)
}

// FisherResult holds the sample odds ratio and p-value of an exact test.
type FisherResult struct {
	OddsRatio float64
	PValue    float64
}

// fisherTails holds all three p-values for one 2x2 table, so a single cached
// computation serves every alternative.
type fisherTails struct {
	Left  float64
	Right float64
	Two   float64
}

var memoizedFisherTails = memoize.Memoize(computeFisherTails)

// FishersExactTest returns the p-value of Fisher's exact test for the 2x2
// table built from the two groups. Mostly used instead of the z-test or the
// chi-squared test at low sample sizes.
//
// The hypergeometric distribution is not symmetrical, so the two-sided p-value
// is not twice a one-sided one: it sums the probability of every table that
// is no more likely than the observed one. Less tests whether the odds ratio
// is below 1, Greater whether it is above 1.
func FishersExactTest(controlSize, controlConversion, attributeSize, attributeConversion int, alternative Alternative) (float64, error) {
	res, err := FisherExact(controlSize, controlConversion, attributeSize, attributeConversion, alternative)
	if err != nil {
		return math.NaN(), err
	}

	return res.PValue, nil
}

// FisherExact is FishersExactTest, also returning the sample odds ratio of the
// [failures, successes] table. FisherExact is safe to call from concurrent
// goroutines.
//
// Tail probabilities are memoized for every distinct table for the life of
// the process. Repeated tables are free, but a long-running caller that feeds
// an unbounded stream of distinct tables grows the cache without limit.
func FisherExact(controlSize, controlConversion, attributeSize, attributeConversion int, alternative Alternative) (FisherResult, error) {
	if _, err := ParseAlternative(string(alternative)); err != nil {
		return FisherResult{math.NaN(), math.NaN()}, err
	}

	table, err := SamplesToContingencyTable(Samples{controlSize, controlConversion, attributeSize, attributeConversion})
	if err != nil {
		return FisherResult{math.NaN(), math.NaN()}, err
	}

	a, b := table[0][0], table[0][1]
	c, d := table[1][0], table[1][1]

	// An empty row or column carries no information about association.
	if a+b == 0 || c+d == 0 || a+c == 0 || b+d == 0 {
		return FisherResult{OddsRatio: math.NaN(), PValue: 1}, nil
	}

	out := FisherResult{OddsRatio: math.Inf(1)}
	if b > 0 && c > 0 {
		out.OddsRatio = float64(a) * float64(d) / (float64(b) * float64(c))
	}

	tails := memoizedFisherTails.(func(int, int, int, int) fisherTails)(a, b, c, d)

	switch alternative {
	case Less:
		out.PValue = tails.Left
	case Greater:
		out.PValue = tails.Right
	default:
		out.PValue = tails.Two
	}

	return out, nil
}

// computeFisherTails uses the nomenclature
//
//	n11  n12  | n1_
//	n21  n22  | n2_
//	----------+----
//	n_1  n_2  | n
//
// fet loses all precision once the table probabilities underflow (large n with
// one small cell), so its tails are only used when they are finite and the
// left and right tails add up to 1 plus the probability of the observed table.
// Otherwise the tails are summed in log space.
func computeFisherTails(n11, n12, n21, n22 int) fisherTails {
	q, leftp, rightp, twop := fet.FisherExactTest(n11, n12, n21, n22)

	if fetTailsConsistent(q, leftp, rightp, twop) {
		return fisherTails{
			Left:  clampProbability(leftp),
			Right: clampProbability(rightp),
			Two:   clampProbability(twop),
		}
	}

	return logSpaceFisherTails(n11, n12, n21, n22)
}

func fetTailsConsistent(q, leftp, rightp, twop float64) bool {
	for _, v := range []float64{q, leftp, rightp, twop} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}

	if q <= 0 || twop < q*(1-1e-7) {
		return false
	}

	return math.Abs(leftp+rightp-(1+q)) < 1e-9
}

// twoSidedTolerance is the relative slack for counting a table as no more
// likely than the observed one.
var twoSidedTolerance = math.Log1p(1e-7)

// logSpaceFisherTails sums the hypergeometric probabilities of n11 over its
// support, with log-sum-exp so that tiny tails do not underflow.
func logSpaceFisherTails(n11, n12, n21, n22 int) fisherTails {
	row1 := n11 + n12
	col1 := n11 + n21
	n := n11 + n12 + n21 + n22

	lo := col1 - (n - row1)
	if lo < 0 {
		lo = 0
	}
	hi := row1
	if col1 < hi {
		hi = col1
	}

	logDenom := logChoose(n, col1)
	logProb := func(x int) float64 {
		return logChoose(row1, x) + logChoose(n-row1, col1-x) - logDenom
	}

	observed := logProb(n11)

	var left, right, two []float64
	for x := lo; x <= hi; x++ {
		lp := logProb(x)
		if x <= n11 {
			left = append(left, lp)
		}
		if x >= n11 {
			right = append(right, lp)
		}
		if lp <= observed+twoSidedTolerance {
			two = append(two, lp)
		}
	}

	return fisherTails{
		Left:  clampProbability(sumLogProbabilities(left)),
		Right: clampProbability(sumLogProbabilities(right)),
		Two:   clampProbability(sumLogProbabilities(two)),
	}
}

func sumLogProbabilities(logs []float64) float64 {
	if len(logs) == 0 {
		return 0
	}

	return math.Exp(floats.LogSumExp(logs))
}

func logChoose(n, k int) float64 {
	a, _ := math.Lgamma(float64(n + 1))
	b, _ := math.Lgamma(float64(k + 1))
	c, _ := math.Lgamma(float64(n - k + 1))

	return a - b - c
}

// clampProbability trims the rounding error of summed tail probabilities.
// NaN never leaves this function.
func clampProbability(p float64) float64 {
	if math.IsNaN(p) {
		return 1
	}

	return math.Max(0, math.Min(1, p))
}
