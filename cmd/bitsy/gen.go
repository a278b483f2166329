package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// runGen replaces original_source/apps/input_generator.cpp: it writes a
// random bit vector plus a list of random access/rank/select queries
// against it to a query file in the format internal/query.Parse reads.
func runGen(f *genFlags, logger *zap.Logger) int {
	if f.Output == "" {
		logger.Error("gen requires --output")
		return 2
	}

	out, err := os.Create(f.Output)
	if err != nil {
		logger.Error("failed to create output file", zap.Error(err))
		return 1
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "%d\n", f.NumQueries)

	gen := rand.New(rand.NewSource(f.Seed))

	numOnes := uint64(0)
	bits := lo.Times(int(f.Length), func(_ int) byte {
		if gen.Float64() < f.FillRatio {
			numOnes++
			return '1'
		}
		return '0'
	})
	w.Write(bits)

	numZeros := f.Length - numOnes
	if f.Length > 0 {
		writeQueries(w, gen, f.NumQueries, f.Length, numOnes, numZeros)
	}

	if err := w.Flush(); err != nil {
		logger.Error("failed to write output file", zap.Error(err))
		return 1
	}

	logger.Info("gen finished",
		zap.Uint64("length", f.Length),
		zap.Uint64("num_ones", numOnes),
		zap.Uint64("num_queries", f.NumQueries))
	return 0
}

// queryKind is one of the five query kinds writeQueries can emit.
type queryKind int

const (
	genAccess queryKind = iota
	genRank0
	genRank1
	genSelect0
	genSelect1
)

func writeQueries(w *bufio.Writer, gen *rand.Rand, numQueries, length, numOnes, numZeros uint64) {
	kinds := []queryKind{genAccess, genRank0, genRank1}
	if numZeros > 0 {
		kinds = append(kinds, genSelect0)
	}
	if numOnes > 0 {
		kinds = append(kinds, genSelect1)
	}

	for i := uint64(0); i < numQueries; i++ {
		switch kinds[gen.Intn(len(kinds))] {
		case genAccess:
			fmt.Fprintf(w, "\naccess %d", gen.Int63n(int64(length)))
		case genRank0:
			fmt.Fprintf(w, "\nrank 0 %d", gen.Int63n(int64(length)))
		case genRank1:
			fmt.Fprintf(w, "\nrank 1 %d", gen.Int63n(int64(length)))
		case genSelect0:
			fmt.Fprintf(w, "\nselect 0 %d", 1+gen.Int63n(int64(numZeros)))
		case genSelect1:
			fmt.Fprintf(w, "\nselect 1 %d", 1+gen.Int63n(int64(numOnes)))
		}
	}
}
