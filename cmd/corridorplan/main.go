package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/trafficlab/corridor/cmd/corridorplan/corridorplan"
)

// flagPairValue parses "a,b" float pairs, with the second part
// optional.
type flagPairValue struct {
	A, B float64
}

func (fp *flagPairValue) String() string {
	return fmt.Sprintf("%.2f,%.2f", fp.A, fp.B)
}

func parsePairPart(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func (fp *flagPairValue) Set(s string) error {
	var err error
	parts := strings.Split(s, ",")
	if len(parts) > 2 {
		return fmt.Errorf("can't parse %q as pair", s)
	}
	if fp.A, err = parsePairPart(parts[0]); err != nil {
		return err
	}
	if len(parts) == 2 {
		if fp.B, err = parsePairPart(parts[1]); err != nil {
			return err
		}
	}
	return nil
}

// flags
var (
	flagIn      string
	flagOut     string
	flagCatalog string

	flagWidth     float64
	flagCycle     flagPairValue
	flagCycleSide string
	flagThin      float64

	flagTable bool
	flagBoQ   bool
)

func init() {
	flag.StringVar(&flagIn, "in", "", "design json or svg input file")
	flag.StringVar(&flagOut, "out", "", "svg output file")
	flag.StringVar(&flagCatalog, "catalog", "", "product catalog json file")
	flag.Float64Var(&flagWidth, "width", 0, "carriageway width in metres (0 uses the document's width)")
	flag.Var(&flagCycle, "cycle", "cycle lane width,gap in metres")
	flag.StringVar(&flagCycleSide, "cycleside", "left", "cycle lane side (left or right)")
	flag.Float64Var(&flagThin, "thin", 0, "thin edge polylines to this tolerance in metres")
	flag.BoolVar(&flagTable, "table", false, "print chainage table of placed elements")
	flag.BoolVar(&flagBoQ, "boq", false, "print bill of quantities (needs -catalog)")
}

func main() {
	fail := func(s string, args ...interface{}) {
		fmt.Fprintf(os.Stderr, s+"\n", args...)
		os.Exit(2)
	}

	flag.Parse()
	if flagIn == "" {
		fail("must specify -in <design file>")
	}

	cfg := &corridorplan.Config{
		In:         flagIn,
		Out:        flagOut,
		Catalog:    flagCatalog,
		Width:      flagWidth,
		CycleWidth: flagCycle.A,
		CycleGap:   flagCycle.B,
		CycleSide:  flagCycleSide,
		Thin:       flagThin,
		Table:      flagTable,
		BoQ:        flagBoQ,
	}
	if err := corridorplan.Run(cfg, os.Stdout); err != nil {
		fail("%v", err)
	}
}
