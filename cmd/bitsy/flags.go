package main

import (
	"github.com/spf13/pflag"

	"github.com/dsalwasser/bitsy"
)

// buildFlags holds the "build" subcommand's flags, replacing
// original_source/apps/ads_programm.cpp's positional <input_file>
// <output_file> pair with named flags in Asphaltt-xdp_acl/flag.go's
// style.
type buildFlags struct {
	Input      string
	Output     string
	Name       string
	ReportJSON string
	HugePages  bool
	Debug      bool
	LogFile    string
	Stride     int
	BinarySearch bool
}

func parseBuildFlags(args []string) *buildFlags {
	fs := pflag.NewFlagSet("build", pflag.ExitOnError)

	var f buildFlags
	fs.StringVarP(&f.Input, "input", "i", "", "query file to read the bit vector and queries from")
	fs.StringVarP(&f.Output, "output", "o", "", "file to write query answers to")
	fs.StringVar(&f.Name, "name", "bitsy", "identifier printed in the RESULT status line")
	fs.StringVar(&f.ReportJSON, "report-json", "", "optional file to also write a JSON report to")
	fs.BoolVar(&f.HugePages, "huge-pages", false, "back the bit vector's storage with huge pages when available")
	fs.BoolVar(&f.Debug, "debug", false, "enable debug-level logging")
	fs.StringVar(&f.LogFile, "log-file", "", "file to write logs to (stderr if empty)")
	fs.IntVar(&f.Stride, "select-stride", bitsy.DefaultStride, "select sampling stride (must be a power of two)")
	fs.BoolVar(&f.BinarySearch, "select-binary-search", true, "use binary search to narrow select queries")

	fs.Parse(args)
	return &f
}

// genFlags holds the "gen" subcommand's flags, replacing
// original_source/apps/input_generator.cpp's positional
// <seed> <length> <fill_ratio> <num_queries> <output_file>.
type genFlags struct {
	Seed       int64
	Length     uint64
	FillRatio  float64
	NumQueries uint64
	Output     string
}

func parseGenFlags(args []string) *genFlags {
	fs := pflag.NewFlagSet("gen", pflag.ExitOnError)

	var f genFlags
	fs.Int64Var(&f.Seed, "seed", 1, "random seed")
	fs.Uint64Var(&f.Length, "length", 1<<20, "number of bits in the generated bit vector")
	fs.Float64Var(&f.FillRatio, "fill-ratio", 0.5, "probability that a generated bit is set")
	fs.Uint64Var(&f.NumQueries, "num-queries", 1<<16, "number of queries to generate")
	fs.StringVarP(&f.Output, "output", "o", "", "file to write the generated bit vector and queries to")

	fs.Parse(args)
	return &f
}
