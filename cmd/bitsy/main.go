// Command bitsy builds and queries succinct rank/select bit vectors
// from text query files, replacing
// original_source/apps/ads_programm.cpp and
// original_source/apps/input_generator.cpp with a single binary offering
// "build" and "gen" subcommands.
package main

import (
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if _, err := maxprocs.Set(); err != nil {
		fmt.Fprintf(os.Stderr, "bitsy: failed to set GOMAXPROCS: %v\n", err)
	}

	if len(args) == 0 {
		usage()
		return 2
	}

	switch args[0] {
	case "build":
		f := parseBuildFlags(args[1:])
		logger := newLogger(f.LogFile, f.Debug)
		defer logger.Sync()
		return runBuild(f, logger)
	case "gen":
		f := parseGenFlags(args[1:])
		logger := newLogger("", false)
		defer logger.Sync()
		return runGen(f, logger)
	case "-h", "--help", "help":
		usage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "bitsy: unknown subcommand %q\n", args[0])
		usage()
		return 2
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: bitsy <build|gen> [flags]")
	fmt.Fprintln(os.Stderr, "  build   answer queries from a query file against a bit vector")
	fmt.Fprintln(os.Stderr, "  gen     generate a random bit vector and query file")
}
