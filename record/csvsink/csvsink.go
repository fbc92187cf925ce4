// Package csvsink is a record.Sink backed by encoding/csv over a plain
// file — the "columnar output file" spec.md §1 describes as the sampler's
// typical destination.
//
// One row per Record: run_id, seq, log_likelihood, accepted_flag,
// accepted_0..accepted_{D-1}, and (only when the sink was opened with step
// recording) step_0..step_{D-1}.
package csvsink

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/opensample/mhchain/record"
)

// Sink appends Records as CSV rows to an underlying file. Not safe for
// concurrent use — matches the sampler's own single-threaded contract
// (spec.md §5).
type Sink struct {
	f          *os.File
	w          *csv.Writer
	dim        int
	recordStep bool
	header     bool
}

// Open creates (or truncates) the file at path and writes a header row
// sized for dim dimensions. recordStep controls whether a Step column
// group is expected on every Append call; Records without a Step when
// recordStep is true are written with empty step columns rather than
// rejected, since a rejected trial step is still meaningful information.
//
// Stage 1 (Prepare): open the file, wrap it in a buffered csv.Writer.
// Stage 2 (Finalize): write the header row immediately so a reader never
// sees a file with zero rows meaning "unknown schema".
func Open(path string, dim int, recordStep bool) (*Sink, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("csvsink: dim must be > 0, got %d", dim)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csvsink: open %q: %w", path, err)
	}
	s := &Sink{f: f, w: csv.NewWriter(f), dim: dim, recordStep: recordStep}
	if err := s.writeHeader(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return s, nil
}

func (s *Sink) writeHeader() error {
	row := []string{"run_id", "seq", "log_likelihood", "accepted_flag"}
	for i := 0; i < s.dim; i++ {
		row = append(row, fmt.Sprintf("accepted_%d", i))
	}
	if s.recordStep {
		for i := 0; i < s.dim; i++ {
			row = append(row, fmt.Sprintf("step_%d", i))
		}
	}
	if err := s.w.Write(row); err != nil {
		return fmt.Errorf("csvsink: write header: %w", err)
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return fmt.Errorf("csvsink: write header: %w", err)
	}
	s.header = true
	return nil
}

// Append writes r as one CSV row and flushes immediately, so a crash
// mid-run loses at most the in-flight row rather than an OS-buffered
// batch.
func (s *Sink) Append(r record.Record) error {
	row := make([]string, 0, 4+2*s.dim)
	row = append(row,
		r.RunID,
		strconv.Itoa(r.Seq),
		strconv.FormatFloat(r.LogLikelihood, 'g', -1, 64),
		strconv.FormatBool(r.AcceptedFlag),
	)
	for i := 0; i < s.dim; i++ {
		row = append(row, componentOrEmpty(r.Accepted, i))
	}
	if s.recordStep {
		for i := 0; i < s.dim; i++ {
			row = append(row, componentOrEmpty(r.Step, i))
		}
	}
	if err := s.w.Write(row); err != nil {
		return fmt.Errorf("csvsink: write row %d: %w", r.Seq, err)
	}
	s.w.Flush()
	return s.w.Error()
}

func componentOrEmpty(p []float64, i int) string {
	if i >= len(p) {
		return ""
	}
	return strconv.FormatFloat(p[i], 'g', -1, 64)
}

// Close flushes any buffered output and closes the underlying file.
func (s *Sink) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		_ = s.f.Close()
		return fmt.Errorf("csvsink: flush: %w", err)
	}
	return s.f.Close()
}

var _ record.Sink = (*Sink)(nil)
