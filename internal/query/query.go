// Package query reads and writes the text query-file format the bitsy
// CLI operates on: a raw bit string followed by a list of access/rank/
// select queries against it.
//
// Grounded on original_source/apps/util/io.{hpp,cpp} and
// original_source/apps/util/query.hpp. The query file is opened through a
// memory mapping and its whole contents copied into memory before parsing,
// reusing AlexWan0-rsdic-mmap/io.go's golang.org/x/exp/mmap import,
// repurposed from mapping the structure's own data to mapping the CLI's
// input file.
package query

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/exp/mmap"
)

// Kind identifies the operation a Query performs.
type Kind int

const (
	// Access returns whether a bit is set.
	Access Kind = iota
	// Rank0 returns the zero-rank of a position.
	Rank0
	// Rank1 returns the one-rank of a position.
	Rank1
	// Select0 returns the position of the k-th zero.
	Select0
	// Select1 returns the position of the k-th one.
	Select1
)

func (k Kind) String() string {
	switch k {
	case Access:
		return "access"
	case Rank0:
		return "rank0"
	case Rank1:
		return "rank1"
	case Select0:
		return "select0"
	case Select1:
		return "select1"
	default:
		return "unknown"
	}
}

// Query is a single operation against the file's bit vector.
type Query struct {
	Kind  Kind
	Value uint64
}

// File is the parsed contents of a query file: the raw bit string (one
// byte per bit, '0' or '1') and the queries to run against it.
type File struct {
	RawBitVector string
	Queries      []Query
}

// Parse reads and parses a query file, matching the format
// read_input() in original_source/apps/util/io.cpp expects:
//
//	<number of queries N>
//	<raw bit vector, e.g. "0100010...">
//	<query_1>
//	...
//	<query_N>
//
// where each query is "access <pos>", "rank <0|1> <pos>", or
// "select <0|1> <rank>".
func Parse(filename string) (*File, error) {
	reader, err := mmap.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("query: open %s: %w", filename, err)
	}
	defer reader.Close()

	buf := make([]byte, reader.Len())
	if _, err := reader.ReadAt(buf, 0); err != nil {
		return nil, fmt.Errorf("query: read %s: %w", filename, err)
	}

	scanner := bufio.NewScanner(bytes.NewReader(buf))
	scanner.Buffer(make([]byte, 0, 64*1024), len(buf)+1)
	scanner.Split(bufio.ScanWords)

	next := func() (string, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", fmt.Errorf("query: %s: unexpected end of input", filename)
		}
		return scanner.Text(), nil
	}
	nextUint := func() (uint64, error) {
		tok, err := next()
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("query: %s: %w", filename, err)
		}
		return v, nil
	}

	numQueries, err := nextUint()
	if err != nil {
		return nil, err
	}

	rawBitVector, err := next()
	if err != nil {
		return nil, err
	}

	queries := make([]Query, 0, numQueries)
	for i := uint64(0); i < numQueries; i++ {
		cmd, err := next()
		if err != nil {
			return nil, err
		}

		switch cmd {
		case "access":
			pos, err := nextUint()
			if err != nil {
				return nil, err
			}
			queries = append(queries, Query{Kind: Access, Value: pos})
		case "rank":
			bit, err := nextUint()
			if err != nil {
				return nil, err
			}
			pos, err := nextUint()
			if err != nil {
				return nil, err
			}
			kind := Rank0
			if bit != 0 {
				kind = Rank1
			}
			queries = append(queries, Query{Kind: kind, Value: pos})
		case "select":
			bit, err := nextUint()
			if err != nil {
				return nil, err
			}
			rank, err := nextUint()
			if err != nil {
				return nil, err
			}
			kind := Select0
			if bit != 0 {
				kind = Select1
			}
			queries = append(queries, Query{Kind: kind, Value: rank})
		default:
			return nil, fmt.Errorf("query: %s: unrecognized query %q", filename, cmd)
		}
	}

	return &File{RawBitVector: rawBitVector, Queries: queries}, nil
}

// WriteAnswers writes one answer per line to filename, matching
// write_answers() in original_source/apps/util/io.cpp. It writes to a
// temporary file and renames it into place so a failed write never
// leaves a partial answers file behind.
func WriteAnswers(filename string, answers []uint64) error {
	tmp, err := os.CreateTemp(".", "bitsy-answers-*.tmp")
	if err != nil {
		return fmt.Errorf("query: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := bufio.NewWriter(tmp)
	for _, answer := range answers {
		if _, err := fmt.Fprintf(w, "%d\n", answer); err != nil {
			tmp.Close()
			return fmt.Errorf("query: write %s: %w", filename, err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("query: flush %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("query: close temp file: %w", err)
	}

	if err := os.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("query: rename into %s: %w", filename, err)
	}
	return nil
}
