package stattest

import (
	"math"
	"testing"
)

func TestTwoProportionPValueUsesExactTestForSmallCounts(t *testing.T) {
	if !UsesExactTest(10, 2, 100, 20) {
		t.Fatal("expected (10, 2, 100, 20) to route to the exact test")
	}

	p, err := TwoProportionPValue(10, 2, 100, 20, true, true)
	if err != nil {
		t.Fatal(err)
	}

	exact, err := FishersExactTest(10, 2, 100, 20, TwoSided)
	if err != nil {
		t.Fatal(err)
	}

	if p != exact {
		t.Errorf("P %v, expected exact test P %v", p, exact)
	}
}

func TestTwoProportionPValueUsesZTestForLargeCounts(t *testing.T) {
	if UsesExactTest(61270, 200, 5201, 67) {
		t.Fatal("expected (61270, 200, 5201, 67) to route to the z-test")
	}

	for _, twoTailed := range []bool{true, false} {
		p, err := TwoProportionPValue(61270, 200, 5201, 67, true, twoTailed)
		if err != nil {
			t.Fatal(err)
		}

		z, err := TwoProportionZScore(61270, 200, 5201, 67, true)
		if err != nil {
			t.Fatal(err)
		}

		if expected := PValueFromZScore(z, twoTailed); p != expected {
			t.Errorf("twoTailed=%v: P %v, expected %v", twoTailed, p, expected)
		}
	}
}

func TestTwoProportionPValueThresholdBoundary(t *testing.T) {
	if UsesExactTest(SampleSizeThreshold, SampleSizeThreshold, 1000, 500) {
		t.Error("counts equal to the threshold should use the z-test")
	}
	if !UsesExactTest(1000, SampleSizeThreshold-1, 1000, 500) {
		t.Error("a count one below the threshold should use the exact test")
	}
}

func TestTwoProportionPValueRange(t *testing.T) {
	for _, v := range [][4]int{
		{10, 2, 100, 20},
		{4, 1, 4, 3},
		{500, 60, 200, 120},
		{1000, 100, 1000, 150},
		{61270, 200, 5201, 67},
		{1000, 500, 1000, 500},
	} {
		p, err := TwoProportionPValue(v[0], v[1], v[2], v[3], true, true)
		if err != nil {
			t.Fatalf("%v: %v", v, err)
		}
		if math.IsNaN(p) || p < 0 || p > 1 {
			t.Errorf("%v: P %v out of range", v, p)
		}
	}
}

func TestTwoProportionPValueLargeGroupsSmallConversion(t *testing.T) {
	if !UsesExactTest(61270, 200, 5201, 40) {
		t.Fatal("expected (61270, 200, 5201, 40) to route to the exact test")
	}

	p, err := TwoProportionPValue(61270, 200, 5201, 40, true, true)
	if err != nil {
		t.Fatal(err)
	}

	if expected := 5.373391126e-06; math.Abs(p-expected)/expected > 1e-6 {
		t.Errorf("P %.12g, expected %.12g", p, expected)
	}
}
