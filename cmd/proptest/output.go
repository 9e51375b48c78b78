package main

import (
	"fmt"
	"io"
	"log"

	"github.com/carbocation/proptest"
)

const header = "Label\tControl_Size\tControl_Conversion\tAttribute_Size\tAttribute_Conversion\tMethod\tZ\tP\tFisher_P\tChiSq_P\tDiff_Low\tDiff_High\n"

// printResults writes one tab-delimited row per comparison. Comparisons with
// invalid counts are logged and skipped.
func printResults(w io.Writer, comparisons []proptest.Comparison, opts proptest.Options) error {
	if _, err := fmt.Fprint(w, header); err != nil {
		return err
	}

	for _, c := range comparisons {
		res, err := c.Evaluate(opts)
		if err != nil {
			log.Printf("Skipping %s: %v\n", c.Label, err)
			continue
		}

		method := "z-test"
		if res.Exact {
			method = "fisher"
		}

		if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\t%.6g\t%.6g\t%.6g\t%.6g\t%.6g\t%.6g\n",
			c.Label, c.ControlSize, c.ControlConversion, c.AttributeSize, c.AttributeConversion,
			method, res.ZScore, res.PValue, res.FisherP, res.ChiSquaredP, res.Low, res.High); err != nil {
			return err
		}
	}

	return nil
}
