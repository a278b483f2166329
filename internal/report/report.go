// Package report formats the CLI's timing/memory summary, either as the
// single status line original_source/apps/ads_programm.cpp prints or, as
// a supplemented option, a machine-readable JSON sibling.
//
// Grounded on original_source/apps/util/timer.hpp's time_function and
// ads_programm.cpp's "RESULT name=... time=... space=..." line.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	json "github.com/goccy/go-json"
)

// Result is the outcome of building and querying a bit vector: how long
// construction plus querying took and how much heap-dependent memory the
// structures used.
type Result struct {
	Name       string `json:"name"`
	TimeMillis int64  `json:"time"`
	SpaceBits  uint64 `json:"space"`
}

// Time runs f and returns how long it took, matching
// original_source/apps/util/timer.hpp's time_function, realized with
// time.Now/time.Since instead of std::chrono.
func Time(f func()) time.Duration {
	start := time.Now()
	f()
	return time.Since(start)
}

// StatusLine formats r the way ads_programm.cpp's main() prints its
// single result line.
func (r Result) StatusLine() string {
	return fmt.Sprintf("RESULT name=%s time=%d space=%d", r.Name, r.TimeMillis, r.SpaceBits)
}

// WriteStatusLine writes StatusLine followed by a newline to w.
func (r Result) WriteStatusLine(w io.Writer) error {
	_, err := fmt.Fprintln(w, r.StatusLine())
	return err
}

// WriteJSON writes r as JSON to w, the supplemented machine-readable
// sibling of the status line (spec.md §6.3's "report" is extended by
// SPEC_FULL.md, not replaced).
func (r Result) WriteJSON(w io.Writer) error {
	return json.NewEncoder(w).Encode(r)
}

// WriteJSONFile writes r as JSON to a new file at path.
func (r Result) WriteJSONFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer f.Close()

	if err := r.WriteJSON(f); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return nil
}
