// internal/script/step.go
package script

import "time"

// Verb identifies a step kind.
type Verb uint8

const (
	VerbRead Verb = iota
	VerbWrite
	VerbWait
	VerbAssert
	VerbLog
)

func (v Verb) String() string {
	switch v {
	case VerbRead:
		return "READ"
	case VerbWrite:
		return "WRITE"
	case VerbWait:
		return "WAIT"
	case VerbAssert:
		return "ASSERT"
	case VerbLog:
		return "LOG"
	default:
		return "?"
	}
}

// Step is one parsed script line. Only the fields relevant to the verb
// are set.
type Step struct {
	Verb      Verb
	Line      int // 1-based source line, for reporting
	Register  string
	Value     float64 // WRITE value, ASSERT expected
	Tolerance float64 // ASSERT
	Duration  time.Duration
	Text      string // LOG
}

// Script is an ordered step sequence. Execution is strictly sequential,
// no branching.
type Script struct {
	Steps []Step
}

// Outcome is a step or report verdict. Ordering matters: a report's
// overall outcome is the worst outcome of its steps.
type Outcome uint8

const (
	Pass Outcome = iota
	Fail
	Error
)

func (o Outcome) String() string {
	switch o {
	case Pass:
		return "PASS"
	case Fail:
		return "FAIL"
	case Error:
		return "ERROR"
	default:
		return "?"
	}
}

// StepResult is the recorded verdict for one executed step.
type StepResult struct {
	Index   int
	Verb    Verb
	Outcome Outcome
	Message string
}

// Report accumulates step results for one run.
type Report struct {
	Steps   []StepResult
	Outcome Outcome
	// Aborted is set when the run stopped before the last step, either
	// by cancellation or a faulted session.
	Aborted bool
}

func (r *Report) record(res StepResult) {
	r.Steps = append(r.Steps, res)
	if res.Outcome > r.Outcome {
		r.Outcome = res.Outcome
	}
}
