package main

import (
	"os"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dsalwasser/bitsy"
	"github.com/dsalwasser/bitsy/internal/query"
	"github.com/dsalwasser/bitsy/internal/report"
)

// runBuild replaces original_source/apps/ads_programm.cpp's main(): it
// reads a bit vector and a list of queries from a query file, builds the
// rank/select structures, answers every query, and writes the answers
// plus a RESULT status line.
func runBuild(f *buildFlags, logger *zap.Logger) int {
	if f.Input == "" || f.Output == "" {
		logger.Error("build requires --input and --output")
		return 2
	}

	file, err := query.Parse(f.Input)
	if err != nil {
		logger.Error("failed to parse query file", zap.Error(err))
		return 1
	}

	length := uint64(len(file.RawBitVector))

	bv, err := bitsy.NewWithOptions(length, bitsy.DefaultConfig(), f.HugePages)
	if err != nil {
		logger.Error("failed to allocate bit vector", zap.Error(err))
		return 1
	}
	defer bv.Close()

	var numOnes uint64
	for pos := uint64(0); pos < length; pos++ {
		if file.RawBitVector[pos] == '1' {
			bv.Set(pos)
			numOnes++
		}
	}

	numQueries := len(file.Queries)
	answers := make([]uint64, numQueries)

	memorySpace := bv.MemorySpaceBits()

	selectCfg := bitsy.SelectConfig{
		Stride:          f.Stride,
		UseBinarySearch: f.BinarySearch,
		WordSelect:      bitsy.WordSelectAuto,
	}

	var runErr error
	elapsed := report.Time(func() {
		bv.Update()

		var sel *bitsy.Select
		sel, runErr = bitsy.NewSelectWithConfig(bv, numOnes, selectCfg)
		if runErr != nil {
			return
		}
		memorySpace += sel.MemorySpaceBits()

		runErr = answerQueries(bv, sel, file.Queries, answers)
	})
	if runErr != nil {
		logger.Error("failed to answer queries", zap.Error(runErr))
		return 1
	}

	result := report.Result{
		Name:       f.Name,
		TimeMillis: elapsed.Milliseconds(),
		SpaceBits:  memorySpace,
	}
	if err := result.WriteStatusLine(os.Stdout); err != nil {
		logger.Error("failed to write status line", zap.Error(err))
		return 1
	}
	if f.ReportJSON != "" {
		if err := result.WriteJSONFile(f.ReportJSON); err != nil {
			logger.Error("failed to write JSON report", zap.Error(err))
			return 1
		}
	}

	if err := query.WriteAnswers(f.Output, answers); err != nil {
		logger.Error("failed to write answers", zap.Error(err))
		return 1
	}

	logger.Info("build finished",
		zap.Uint64("length", length),
		zap.Int("queries", numQueries),
		zap.Int64("time_ms", elapsed.Milliseconds()),
		zap.Uint64("space_bits", memorySpace))
	return 0
}

// answerQueries fans queries out across GOMAXPROCS goroutines with
// errgroup, the concurrent-readers pattern spec.md §5 requires: bv and
// sel are only read here, never mutated, so this is safe.
func answerQueries(bv *bitsy.BitVector, sel *bitsy.Select, queries []query.Query, answers []uint64) error {
	numQueries := len(queries)
	if numQueries == 0 {
		return nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > numQueries {
		workers = numQueries
	}
	chunk := (numQueries + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < numQueries; start += chunk {
		end := start + chunk
		if end > numQueries {
			end = numQueries
		}

		start, end := start, end
		g.Go(func() error {
			for i := start; i < end; i++ {
				q := queries[i]
				switch q.Kind {
				case query.Access:
					if bv.IsSet(q.Value) {
						answers[i] = 1
					}
				case query.Rank0:
					answers[i] = bv.Rank0(q.Value)
				case query.Rank1:
					answers[i] = bv.Rank1(q.Value)
				case query.Select0:
					answers[i] = sel.Select0(q.Value)
				case query.Select1:
					answers[i] = sel.Select1(q.Value)
				}
			}
			return nil
		})
	}

	return g.Wait()
}
