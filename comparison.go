// Package proptest reads two-group comparisons from delimited files and
// evaluates them with the significance tests in the stattest package.
package proptest

import (
	"errors"
	"fmt"
	"math"

	"github.com/carbocation/proptest/stattest"
)

// Comparison is one control-vs-attribute row of a comparisons file.
type Comparison struct {
	Label               string `csv:"label"`
	ControlSize         int    `csv:"control_size"`
	ControlConversion   int    `csv:"control_conversion"`
	AttributeSize       int    `csv:"attribute_size"`
	AttributeConversion int    `csv:"attribute_conversion"`
}

// Samples returns the comparison as a samples array.
func (c Comparison) Samples() stattest.Samples {
	return stattest.Samples{c.ControlSize, c.ControlConversion, c.AttributeSize, c.AttributeConversion}
}

// Options controls how a Comparison is evaluated.
type Options struct {
	Pooled      bool
	TwoTailed   bool
	Yates       bool
	Alternative stattest.Alternative
	Confidence  float64
}

// Validate checks the alternative hypothesis and the confidence level.
func (o Options) Validate() error {
	if _, err := stattest.ParseAlternative(string(o.Alternative)); err != nil {
		return err
	}

	if !(o.Confidence > 0 && o.Confidence < 1) {
		return fmt.Errorf("%w: got %v", stattest.ErrInvalidConfidence, o.Confidence)
	}

	return nil
}

// DefaultOptions are the conventional settings: pooled standard error,
// two-tailed, no Yates correction, 95% confidence.
var DefaultOptions = Options{
	Pooled:      true,
	TwoTailed:   true,
	Alternative: stattest.TwoSided,
	Confidence:  0.95,
}

// Result holds every statistic computed for a Comparison. Statistics that
// cannot be formed for the input are NaN.
type Result struct {
	Comparison

	// Exact is true when PValue came from Fisher's exact test rather than the
	// z-test.
	Exact bool

	ZScore      float64
	PValue      float64
	FisherP     float64
	ChiSquaredP float64
	Low         float64
	High        float64
}

// Evaluate computes the z-score, the dispatched two-proportion p-value, the
// exact and chi-squared p-values and the confidence interval for c. Invalid
// counts are an error; degenerate inputs that only defeat some statistics
// (e.g., an empty group) leave those statistics as NaN.
func (c Comparison) Evaluate(opts Options) (Result, error) {
	out := Result{
		Comparison:  c,
		Exact:       stattest.UsesExactTest(c.ControlSize, c.ControlConversion, c.AttributeSize, c.AttributeConversion),
		ZScore:      math.NaN(),
		ChiSquaredP: math.NaN(),
		Low:         math.NaN(),
		High:        math.NaN(),
	}

	if err := c.Samples().Validate(); err != nil {
		return out, err
	}

	var err error
	out.PValue, err = stattest.TwoProportionPValue(c.ControlSize, c.ControlConversion, c.AttributeSize, c.AttributeConversion, opts.Pooled, opts.TwoTailed)
	if err != nil {
		out.PValue = math.NaN()
	}

	out.FisherP, err = stattest.FishersExactTest(c.ControlSize, c.ControlConversion, c.AttributeSize, c.AttributeConversion, opts.Alternative)
	if err != nil {
		return out, err
	}

	if z, err := stattest.TwoProportionZScore(c.ControlSize, c.ControlConversion, c.AttributeSize, c.AttributeConversion, opts.Pooled); err == nil {
		out.ZScore = z
	}

	if p, err := stattest.ChiSquaredIndependenceTestSamples(c.Samples(), opts.Yates); err == nil {
		out.ChiSquaredP = p
	}

	if low, high, err := stattest.DifferenceInterval(c.ControlSize, c.ControlConversion, c.AttributeSize, c.AttributeConversion, opts.Confidence); err == nil {
		out.Low, out.High = low, high
	} else if errors.Is(err, stattest.ErrInvalidConfidence) {
		return out, err
	}

	return out, nil
}
