package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/carbocation/proptest"
	"github.com/carbocation/proptest/buildinfo"
	"github.com/carbocation/proptest/stattest"
)

// Compute significance statistics for one or more control-vs-attribute
// comparisons.
func main() {
	var samples, file, alternative string
	var pooled, twoTailed, yates, version bool
	var confidence float64

	flag.StringVar(&samples, "samples", "", "Comma-separated control_size,control_conversion,attribute_size,attribute_conversion for a single comparison.")
	flag.StringVar(&file, "file", "", "Delimited file (optionally gzip/zip/xz/bzip2 compressed) with a header containing control_size, control_conversion, attribute_size, attribute_conversion and, optionally, label.")
	flag.StringVar(&alternative, "alternative", string(stattest.TwoSided), "Alternative hypothesis for the Fisher exact test column: two-sided, less, or greater.")
	flag.BoolVar(&pooled, "pooled", true, "Pool the samples when computing the z-test standard error.")
	flag.BoolVar(&twoTailed, "two_tailed", true, "Report a two-tailed z-test p-value.")
	flag.BoolVar(&yates, "yates", false, "Apply the Yates continuity correction to the chi-squared test.")
	flag.Float64Var(&confidence, "confidence", 0.95, "Confidence level of the interval for the difference in proportions.")
	flag.BoolVar(&version, "version", false, "Print build information and exit.")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-samples cs,cc,as,ac | -file comparisons.tsv]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if version {
		fmt.Println(buildinfo.Get())
		return
	}

	if (samples == "") == (file == "") {
		log.Println("Pass exactly one of -samples or -file")
		flag.Usage()
		os.Exit(1)
	}

	alt, err := stattest.ParseAlternative(alternative)
	if err != nil {
		log.Fatalln(err)
	}

	opts := proptest.Options{
		Pooled:      pooled,
		TwoTailed:   twoTailed,
		Yates:       yates,
		Alternative: alt,
		Confidence:  confidence,
	}
	if err := opts.Validate(); err != nil {
		log.Fatalln(err)
	}

	var comparisons []proptest.Comparison
	if samples != "" {
		c, err := parseSamples(samples)
		if err != nil {
			log.Fatalln(err)
		}
		comparisons = append(comparisons, c)
	} else {
		log.Println("Reading comparisons from", file)
		comparisons, err = proptest.ReadComparisonsFile(file)
		if err != nil {
			log.Fatalln(err)
		}
		log.Println("Read", len(comparisons), "comparisons")
	}

	if err := printResults(os.Stdout, comparisons, opts); err != nil {
		log.Fatalln(err)
	}
}

// parseSamples reads "control_size,control_conversion,attribute_size,attribute_conversion".
func parseSamples(s string) (proptest.Comparison, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return proptest.Comparison{}, pfx.Err(fmt.Errorf("expected 4 comma-separated counts, got %d (%s)", len(parts), s))
	}

	counts := make([]int, len(parts))
	for i, v := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return proptest.Comparison{}, pfx.Err(err)
		}
		counts[i] = n
	}

	return proptest.Comparison{
		Label:               "1",
		ControlSize:         counts[0],
		ControlConversion:   counts[1],
		AttributeSize:       counts[2],
		AttributeConversion: counts[3],
	}, nil
}
