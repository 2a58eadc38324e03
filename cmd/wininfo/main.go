// Command wininfo prints spectral properties of the stretch windows.
//
// Usage:
//
//	wininfo [flags] [size ...]
//
// Without arguments it prints the Hann analysis for the 128-point frame.
//
// Examples:
//
//	wininfo
//	wininfo 64 128 256
//	wininfo -periodic 1024
//	wininfo -overlap 128
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/algo-stretch/dsp/core"
	"github.com/cwbudde/algo-stretch/dsp/window"
)

func main() {
	periodic := flag.Bool("periodic", false, "use periodic (FFT) form instead of symmetric")
	overlap := flag.Bool("overlap", false, "print the per-sample overlap gain of analysis, synthesis and correction")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wininfo [flags] [size ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints spectral properties of the Hann stretch window.\n")
		fmt.Fprintf(os.Stderr, "Without arguments, analyzes the %d-point frame.\n\n", core.WindowSize)
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  wininfo 64 128 256\n")
		fmt.Fprintf(os.Stderr, "  wininfo -overlap 128\n")
	}
	flag.Parse()

	sizes, err := parseSizes(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if *overlap {
		for _, size := range sizes {
			if err := printOverlap(size); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
		}
		return
	}

	var opts []window.Option
	if *periodic {
		opts = append(opts, window.WithPeriodic())
	}
	printAnalysis(sizes, opts)
}

func parseSizes(args []string) ([]int, error) {
	if len(args) == 0 {
		return []int{core.WindowSize}, nil
	}
	sizes := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid size %q", a)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

func printAnalysis(sizes []int, opts []window.Option) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Window\tSize\tCoherent Gain\tENBW [bins]\tBW 3dB [bins]\tScallop [dB]\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}
	if _, err := fmt.Fprintf(tw, "------\t----\t-------------\t----------\t-------------\t-----------\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	for _, size := range sizes {
		coeffs, err := window.Hann(size, opts...)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: size %d: %v\n", size, err)
			continue
		}
		a := window.Analyze(coeffs)

		if _, err := fmt.Fprintf(tw, "hann\t%d\t%.6f\t%.4f\t%.4f\t%.4f\n",
			size,
			a.CoherentGain,
			a.ENBW,
			a.Bandwidth3dB,
			a.ScallopLossdB,
		); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func printOverlap(size int) error {
	t, err := window.NewTables(size)
	if err != nil {
		return err
	}

	w := core.Widen(nil, t.Analysis())
	c := core.Widen(nil, t.Correction())
	gain := window.OverlapGain(w, c)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "i\tw[i]\tw[i+%d]\tcorr[i]\tgain\n", t.Half())
	for i, g := range gain {
		fmt.Fprintf(tw, "%d\t%.6f\t%.6f\t%.6f\t%.6f\n", i, w[i], w[i+t.Half()], c[i], g)
	}
	return tw.Flush()
}
