package stattest

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// DifferenceInterval returns the Wald confidence interval for
// attributePct - controlPct at the given confidence level (e.g. 0.95), using
// the unpooled standard error.
func DifferenceInterval(controlSize, controlConversion, attributeSize, attributeConversion int, confidence float64) (low, high float64, err error) {
	if !(confidence > 0 && confidence < 1) {
		return math.NaN(), math.NaN(), fmt.Errorf("%w: got %v", ErrInvalidConfidence, confidence)
	}

	if err := checkGroups(controlSize, controlConversion, attributeSize, attributeConversion); err != nil {
		return math.NaN(), math.NaN(), err
	}

	nAttribute, nControl := float64(attributeSize), float64(controlSize)
	attributePct := float64(attributeConversion) / nAttribute
	controlPct := float64(controlConversion) / nControl

	standardError := math.Sqrt(attributePct*(1-attributePct)/nAttribute + controlPct*(1-controlPct)/nControl)
	critical := stats.NormPpf(1-(1-confidence)/2, 0, 1)

	diff := attributePct - controlPct

	return diff - critical*standardError, diff + critical*standardError, nil
}
