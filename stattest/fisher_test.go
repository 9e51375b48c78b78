package stattest

import (
	"errors"
	"math"
	"testing"
)

type fisherExpectation struct {
	ControlSize         int
	ControlConversion   int
	AttributeSize       int
	AttributeConversion int
	Alternative         Alternative

	P float64
}

// Truth values from exact rational sums over the hypergeometric distribution.
// The first three are Fisher's tea-tasting table [[3, 1], [1, 3]].
var fisherExamples = []fisherExpectation{
	{4, 1, 4, 3, TwoSided, 34.0 / 70.0},
	{4, 1, 4, 3, Greater, 17.0 / 70.0},
	{4, 1, 4, 3, Less, 69.0 / 70.0},
	{10, 1, 10, 6, TwoSided, 0.05727554179566564},
	{10, 1, 10, 6, Greater, 0.02863777089783282},
	{10, 1, 10, 6, Less, 0.9984520123839009},
	{10, 2, 100, 20, TwoSided, 1},
	{100, 30, 60, 5, TwoSided, 0.00135990262681164},
	{100, 30, 60, 5, Less, 0.000817862113},
	{100, 30, 60, 5, Greater, 0.9998440551},
}

// Large groups next to a small cell, where the table probabilities underflow
// in linear space. Truth values from log-space sums over the hypergeometric
// support.
var largeFisherExamples = []fisherExpectation{
	{61270, 200, 5201, 67, TwoSided, 7.731699068e-18},
	{61270, 200, 5201, 67, Less, 1},
	{61270, 200, 5201, 67, Greater, 7.731699068e-18},
	{61270, 200, 5201, 40, TwoSided, 5.373391126e-06},
	{61270, 200, 5201, 40, Less, 0.9999981145},
	{61270, 200, 5201, 40, Greater, 4.660606517e-06},
	{20000, 300, 3000, 10, TwoSided, 4.02885312e-09},
	{20000, 300, 3000, 10, Less, 1.827453309e-09},
	{20000, 300, 3000, 10, Greater, 0.9999999996},
}

// closeProbability compares with an absolute tolerance, and a relative one for
// tiny expected values.
func closeProbability(p, expected float64) bool {
	if expected != 0 && expected < 1e-4 {
		return math.Abs(p-expected)/expected < 1e-6
	}

	return math.Abs(p-expected) < 1e-6
}

func TestFishersExactTest(t *testing.T) {
	for _, v := range fisherExamples {
		p, err := FishersExactTest(v.ControlSize, v.ControlConversion, v.AttributeSize, v.AttributeConversion, v.Alternative)
		if err != nil {
			t.Fatalf("%+v: %v", v, err)
		}
		if math.Abs(p-v.P) > 1e-6 {
			t.Errorf("\nError with input: %+v\nP: %.12f\nExpected: %.12f\nDiff: %.12f\n", v, p, v.P, p-v.P)
		}
	}
}

func TestFishersExactTestLargeGroups(t *testing.T) {
	for _, v := range largeFisherExamples {
		p, err := FishersExactTest(v.ControlSize, v.ControlConversion, v.AttributeSize, v.AttributeConversion, v.Alternative)
		if err != nil {
			t.Fatalf("%+v: %v", v, err)
		}
		if !closeProbability(p, v.P) {
			t.Errorf("\nError with input: %+v\nP: %.12g\nExpected: %.12g\n", v, p, v.P)
		}
	}
}

func TestLogSpaceFisherTailsMatchSmallTables(t *testing.T) {
	for _, v := range append(append([]fisherExpectation{}, fisherExamples...), largeFisherExamples...) {
		table, err := SamplesToContingencyTable(Samples{v.ControlSize, v.ControlConversion, v.AttributeSize, v.AttributeConversion})
		if err != nil {
			t.Fatal(err)
		}

		tails := logSpaceFisherTails(table[0][0], table[0][1], table[1][0], table[1][1])

		p := tails.Two
		switch v.Alternative {
		case Less:
			p = tails.Left
		case Greater:
			p = tails.Right
		}

		if !closeProbability(p, v.P) {
			t.Errorf("\nError with input: %+v\nP: %.12g\nExpected: %.12g\n", v, p, v.P)
		}
	}
}

func TestFishersExactTestNeverNaN(t *testing.T) {
	for _, size := range []int{10, 100, 1000, 10000, 100000} {
		for _, conv := range []int{0, 1, 5, 49} {
			for _, alt := range []Alternative{TwoSided, Less, Greater} {
				p, err := FishersExactTest(size, size/10, 5000, conv, alt)
				if err != nil {
					t.Fatal(err)
				}
				if math.IsNaN(p) || p < 0 || p > 1 {
					t.Errorf("(%d, %d, 5000, %d) %s: P %v", size, size/10, conv, alt, p)
				}
			}
		}
	}
}

func TestFisherExactOddsRatio(t *testing.T) {
	res, err := FisherExact(4, 1, 4, 3, TwoSided)
	if err != nil {
		t.Fatal(err)
	}
	// [[3, 1], [1, 3]]
	if res.OddsRatio != 9 {
		t.Errorf("Odds ratio %v, expected 9", res.OddsRatio)
	}

	res, err = FisherExact(10, 0, 10, 5, TwoSided)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(res.OddsRatio, 1) {
		t.Errorf("Odds ratio %v, expected +Inf", res.OddsRatio)
	}
}

func TestFisherExactEmptyMargin(t *testing.T) {
	for _, v := range [][4]int{
		{0, 0, 10, 3},
		{10, 0, 10, 0},
		{10, 10, 5, 5},
	} {
		p, err := FishersExactTest(v[0], v[1], v[2], v[3], TwoSided)
		if err != nil {
			t.Fatalf("%v: %v", v, err)
		}
		if p != 1 {
			t.Errorf("%v: P %v, expected 1", v, p)
		}
	}
}

func TestFishersExactTestErrors(t *testing.T) {
	if _, err := FishersExactTest(10, 11, 10, 1, TwoSided); !errors.Is(err, ErrInvalidSampleCounts) {
		t.Errorf("expected ErrInvalidSampleCounts, got %v", err)
	}
	if _, err := FishersExactTest(10, 1, 10, 1, Alternative("both")); !errors.Is(err, ErrInvalidAlternative) {
		t.Errorf("expected ErrInvalidAlternative, got %v", err)
	}
}

func TestParseAlternative(t *testing.T) {
	for _, s := range []string{"two-sided", "less", "greater"} {
		a, err := ParseAlternative(s)
		if err != nil || string(a) != s {
			t.Errorf("ParseAlternative(%q) = %q, %v", s, a, err)
		}
	}
	if _, err := ParseAlternative("two_sided"); !errors.Is(err, ErrInvalidAlternative) {
		t.Errorf("expected ErrInvalidAlternative, got %v", err)
	}
}
