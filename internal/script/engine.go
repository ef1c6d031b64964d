// internal/script/engine.go
package script

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Kentucky-Fried-Circuits/93-0000020-Remote-Client/internal/protocol"
	"github.com/Kentucky-Fried-Circuits/93-0000020-Remote-Client/internal/session"
)

// Session abstracts the device operations the engine needs.
type Session interface {
	ReadRegister(name string) (protocol.Value, error)
	WriteRegister(name string, value float64) error
}

// Run executes a script sequentially against one session.
//
// Step failures are recorded and execution continues: a technician wants
// the full report even when one register is transiently unavailable. The
// run stops early only when the session faults (the remaining steps
// cannot produce anything useful) or the context is cancelled between
// steps. The partial report is returned either way.
func Run(ctx context.Context, sess Session, sc Script) Report {
	var rep Report

	for i, step := range sc.Steps {
		select {
		case <-ctx.Done():
			rep.Aborted = true
			return rep
		default:
		}

		res := execute(ctx, sess, i, step)
		rep.record(res.StepResult)

		if res.Outcome == Error && sessionFatal(res.err) {
			rep.Aborted = true
			return rep
		}
	}

	return rep
}

// execute runs one step and produces its result.
func execute(ctx context.Context, sess Session, index int, step Step) stepResult {
	res := stepResult{StepResult: StepResult{Index: index, Verb: step.Verb, Outcome: Pass}}

	switch step.Verb {
	case VerbRead:
		v, err := sess.ReadRegister(step.Register)
		if err != nil {
			res.Outcome = Error
			res.Message = fmt.Sprintf("read %s: %v", step.Register, err)
			res.err = err
			break
		}
		res.Message = fmt.Sprintf("read %s = %s", step.Register, formatValue(v))

	case VerbWrite:
		if err := sess.WriteRegister(step.Register, step.Value); err != nil {
			res.Outcome = Error
			res.Message = fmt.Sprintf("write %g to %s: %v", step.Value, step.Register, err)
			res.err = err
			break
		}
		res.Message = fmt.Sprintf("write %g to %s: OK", step.Value, step.Register)

	case VerbWait:
		// Suspends only this workflow; the session stays available to
		// concurrent callers.
		select {
		case <-ctx.Done():
		case <-time.After(step.Duration):
		}
		res.Message = fmt.Sprintf("wait %s", step.Duration)

	case VerbAssert:
		v, err := sess.ReadRegister(step.Register)
		if err != nil {
			// Could not check is not the same as checked and wrong.
			res.Outcome = Error
			res.Message = fmt.Sprintf("assert %s: read: %v", step.Register, err)
			res.err = err
			break
		}
		diff := math.Abs(v.Decoded - step.Value)
		if diff <= step.Tolerance {
			res.Message = fmt.Sprintf("assert %s: |%g - %g| <= %g: PASS",
				step.Register, v.Decoded, step.Value, step.Tolerance)
		} else {
			res.Outcome = Fail
			res.Message = fmt.Sprintf("assert %s: |%g - %g| > %g: FAIL",
				step.Register, v.Decoded, step.Value, step.Tolerance)
		}

	case VerbLog:
		res.Message = step.Text
	}

	return res
}

// stepResult carries the underlying error alongside the recorded result
// so the run loop can tell session-fatal failures apart.
type stepResult struct {
	StepResult
	err error
}

func sessionFatal(err error) bool {
	return errors.Is(err, session.ErrCommunicationLost) ||
		errors.Is(err, session.ErrFaulted)
}

func formatValue(v protocol.Value) string {
	if v.Descriptor != nil && v.Descriptor.Unit != "" {
		return fmt.Sprintf("%g %s", v.Decoded, v.Descriptor.Unit)
	}
	return fmt.Sprintf("%g", v.Decoded)
}
