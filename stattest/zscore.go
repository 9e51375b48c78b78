package stattest

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// TwoProportionZScore calculates the z-score between two proportions (often
// used for A/B testing): is the difference in conversion rate between the two
// groups due to chance, or is it significant?
//
// The attribute and control labels are arbitrary; swapping them yields the
// same value with the opposite sign. With pooledSample the standard error is
// computed under the null hypothesis that both groups share one proportion.
//
// Example: 66,471 people were part of a study, 5,201 of whom were shown an ad
// and 67 of those bought the product. Of the 61,270 unexposed people, 200
// bought the product. TwoProportionZScore(61270, 200, 5201, 67, true) is
// 10.528...
//
// The test statistic is only approximately normal; for small samples use
// FishersExactTest.
func TwoProportionZScore(controlSize, controlConversion, attributeSize, attributeConversion int, pooledSample bool) (float64, error) {
	if err := checkGroups(controlSize, controlConversion, attributeSize, attributeConversion); err != nil {
		return math.NaN(), err
	}

	nAttribute, nControl := float64(attributeSize), float64(controlSize)

	attributePct := float64(attributeConversion) / nAttribute
	controlPct := float64(controlConversion) / nControl

	var standardError float64
	if pooledSample {
		totalPct := float64(attributeConversion+controlConversion) / (nAttribute + nControl)
		standardError = math.Sqrt(totalPct * (1 - totalPct) * (1/nAttribute + 1/nControl))
	} else {
		standardError = math.Sqrt(attributePct*(1-attributePct)/nAttribute + controlPct*(1-controlPct)/nControl)
	}

	if standardError == 0 {
		return math.NaN(), fmt.Errorf("%w: proportions %v and %v", ErrZeroStandardError, controlPct, attributePct)
	}

	return (attributePct - controlPct) / standardError, nil
}

// PValueFromZScore returns the probability that a standard normal variable
// exceeds |zscore|, doubled if twoTailed.
func PValueFromZScore(zscore float64, twoTailed bool) float64 {
	pvalue := distuv.UnitNormal.Survival(math.Abs(zscore))
	if twoTailed {
		pvalue *= 2
	}

	return pvalue
}

// checkGroups rejects negative counts and conversions that exceed their group,
// then empty groups.
func checkGroups(controlSize, controlConversion, attributeSize, attributeConversion int) error {
	if err := (Samples{controlSize, controlConversion, attributeSize, attributeConversion}).Validate(); err != nil {
		return err
	}

	if controlSize == 0 || attributeSize == 0 {
		return fmt.Errorf("%w: control has %d, attribute has %d", ErrNonPositiveGroupSize, controlSize, attributeSize)
	}

	return nil
}
