package stattest

// SampleSizeThreshold is the smallest count for which the normal approximation
// is trusted. Comparisons with any count below it use Fisher's exact test.
// Use the same threshold to decide whether a chi-squared test has a "small"
// sample.
const SampleSizeThreshold = 50

// TwoProportionPValue returns the p-value for the difference between two
// proportions. If any of the four counts is below SampleSizeThreshold, the
// two-sided Fisher's exact test is used and pooledSample and twoTailed are
// ignored. Otherwise the p-value comes from the two-proportion z-score.
func TwoProportionPValue(controlSize, controlConversion, attributeSize, attributeConversion int, pooledSample, twoTailed bool) (float64, error) {
	if belowThreshold(controlSize, controlConversion, attributeSize, attributeConversion) {
		return FishersExactTest(controlSize, controlConversion, attributeSize, attributeConversion, TwoSided)
	}

	zscore, err := TwoProportionZScore(controlSize, controlConversion, attributeSize, attributeConversion, pooledSample)
	if err != nil {
		return zscore, err
	}

	return PValueFromZScore(zscore, twoTailed), nil
}

// UsesExactTest reports whether TwoProportionPValue would route these counts
// to Fisher's exact test.
func UsesExactTest(controlSize, controlConversion, attributeSize, attributeConversion int) bool {
	return belowThreshold(controlSize, controlConversion, attributeSize, attributeConversion)
}

func belowThreshold(counts ...int) bool {
	for _, v := range counts {
		if v < SampleSizeThreshold {
			return true
		}
	}

	return false
}
