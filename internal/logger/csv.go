// internal/logger/csv.go
package logger

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// flushEvery bounds how many rows can be lost on a crash without paying
// a flush per row.
const flushEvery = 100

// CSVSink appends rows to a CSV file: timestamp column plus one column
// per register, empty field for a missing value. Append-only; retention
// and rotation belong to whoever owns the file.
type CSVSink struct {
	f       *os.File
	w       *csv.Writer
	pending int
}

// NewCSVSink opens (or creates) the file and writes the header when the
// file is new.
func NewCSVSink(path string, names []string) (*CSVSink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logger: open %s: %w", path, err)
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("logger: stat %s: %w", path, err)
	}

	s := &CSVSink{f: f, w: csv.NewWriter(f)}

	if st.Size() == 0 {
		header := append([]string{"timestamp"}, names...)
		if err := s.w.Write(header); err != nil {
			f.Close()
			return nil, fmt.Errorf("logger: write header: %w", err)
		}
		s.w.Flush()
		if err := s.w.Error(); err != nil {
			f.Close()
			return nil, err
		}
	}

	return s, nil
}

func (s *CSVSink) Write(row Row) error {
	record := make([]string, 0, len(row.Values)+1)
	record = append(record, row.At.Format(time.RFC3339Nano))
	for _, v := range row.Values {
		if v == nil {
			record = append(record, "")
			continue
		}
		record = append(record, strconv.FormatFloat(*v, 'g', -1, 64))
	}

	if err := s.w.Write(record); err != nil {
		return err
	}

	s.pending++
	if s.pending >= flushEvery {
		s.w.Flush()
		s.pending = 0
	}
	return s.w.Error()
}

func (s *CSVSink) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}
