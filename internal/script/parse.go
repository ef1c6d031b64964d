// internal/script/parse.go
package script

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// SyntaxError reports a malformed script line. Parsing is atomic: a
// script with any syntax error executes no steps at all.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("script: line %d: %s", e.Line, e.Msg)
}

// Parse reads a whole script before anything executes. One step per
// line, whitespace-delimited tokens. Blank lines and '#' comment lines
// are skipped.
func Parse(r io.Reader) (Script, error) {
	var sc Script

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		step, err := parseLine(line, text)
		if err != nil {
			return Script{}, err
		}
		sc.Steps = append(sc.Steps, step)
	}
	if err := scanner.Err(); err != nil {
		return Script{}, fmt.Errorf("script: read: %w", err)
	}

	return sc, nil
}

func parseLine(line int, text string) (Step, error) {
	fields := strings.Fields(text)
	verb := strings.ToUpper(fields[0])

	switch verb {
	case "READ":
		if len(fields) != 2 {
			return Step{}, &SyntaxError{Line: line, Msg: "READ takes exactly one register name"}
		}
		return Step{Verb: VerbRead, Line: line, Register: fields[1]}, nil

	case "WRITE":
		if len(fields) != 3 {
			return Step{}, &SyntaxError{Line: line, Msg: "WRITE takes a register name and a value"}
		}
		v, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return Step{}, &SyntaxError{Line: line, Msg: fmt.Sprintf("bad value %q", fields[2])}
		}
		return Step{Verb: VerbWrite, Line: line, Register: fields[1], Value: v}, nil

	case "WAIT":
		if len(fields) != 2 {
			return Step{}, &SyntaxError{Line: line, Msg: "WAIT takes a duration in milliseconds"}
		}
		ms, err := strconv.Atoi(fields[1])
		if err != nil || ms < 0 {
			return Step{}, &SyntaxError{Line: line, Msg: fmt.Sprintf("bad duration %q", fields[1])}
		}
		return Step{Verb: VerbWait, Line: line, Duration: time.Duration(ms) * time.Millisecond}, nil

	case "ASSERT":
		if len(fields) != 4 {
			return Step{}, &SyntaxError{Line: line, Msg: "ASSERT takes a register name, expected value and tolerance"}
		}
		expected, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return Step{}, &SyntaxError{Line: line, Msg: fmt.Sprintf("bad expected value %q", fields[2])}
		}
		tol, err := strconv.ParseFloat(fields[3], 64)
		if err != nil || tol < 0 {
			return Step{}, &SyntaxError{Line: line, Msg: fmt.Sprintf("bad tolerance %q", fields[3])}
		}
		return Step{Verb: VerbAssert, Line: line, Register: fields[1], Value: expected, Tolerance: tol}, nil

	case "LOG":
		// LOG keeps the rest of the line verbatim.
		text := strings.TrimSpace(strings.TrimPrefix(text, fields[0]))
		return Step{Verb: VerbLog, Line: line, Text: text}, nil

	default:
		return Step{}, &SyntaxError{Line: line, Msg: fmt.Sprintf("unrecognized verb %q", fields[0])}
	}
}
