// internal/script/engine_test.go
package script

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Kentucky-Fried-Circuits/93-0000020-Remote-Client/internal/protocol"
	"github.com/Kentucky-Fried-Circuits/93-0000020-Remote-Client/internal/session"
	"github.com/Kentucky-Fried-Circuits/93-0000020-Remote-Client/internal/transport"
)

// ---- fake session ----

type call struct {
	op   string
	name string
}

type fakeSession struct {
	values   map[string]float64
	readErr  map[string]error
	writeErr map[string]error
	calls    []call
}

func (f *fakeSession) ReadRegister(name string) (protocol.Value, error) {
	f.calls = append(f.calls, call{op: "read", name: name})
	if err := f.readErr[name]; err != nil {
		return protocol.Value{}, err
	}
	return protocol.Value{Decoded: f.values[name], At: time.Now()}, nil
}

func (f *fakeSession) WriteRegister(name string, value float64) error {
	f.calls = append(f.calls, call{op: "write", name: name})
	if err := f.writeErr[name]; err != nil {
		return err
	}
	if f.values == nil {
		f.values = map[string]float64{}
	}
	f.values[name] = value
	return nil
}

func mustParse(t *testing.T, src string) Script {
	t.Helper()
	sc, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse err=%v", err)
	}
	return sc
}

// ---- tests ----

func TestRun_AllPass(t *testing.T) {
	sess := &fakeSession{values: map[string]float64{"temp": 25.2}}
	sc := mustParse(t, "READ temp\nASSERT temp 25.0 0.5\nLOG done\n")

	rep := Run(context.Background(), sess, sc)

	if rep.Outcome != Pass {
		t.Fatalf("outcome=%s, want PASS", rep.Outcome)
	}
	if len(rep.Steps) != 3 {
		t.Fatalf("%d step results, want 3", len(rep.Steps))
	}
	if rep.Aborted {
		t.Fatal("run marked aborted")
	}
}

func TestRun_ReadErrorIsErrorNotFail_AndRunContinues(t *testing.T) {
	sess := &fakeSession{
		values:  map[string]float64{"setpoint": 0},
		readErr: map[string]error{"temp": fmt.Errorf("read: %w", transport.ErrTimeout)},
	}
	sc := mustParse(t, "READ temp\nASSERT temp 25.0 0.5\nWRITE setpoint 30.0\n")

	rep := Run(context.Background(), sess, sc)

	if rep.Steps[0].Outcome != Error {
		t.Fatalf("read step outcome=%s, want ERROR", rep.Steps[0].Outcome)
	}
	// Could not check, so the assert is an Error, not a Fail.
	if rep.Steps[1].Outcome != Error {
		t.Fatalf("assert step outcome=%s, want ERROR", rep.Steps[1].Outcome)
	}
	// The write still executes.
	if rep.Steps[2].Outcome != Pass {
		t.Fatalf("write step outcome=%s, want PASS", rep.Steps[2].Outcome)
	}
	if sess.values["setpoint"] != 30.0 {
		t.Fatal("write step did not reach the session")
	}
	if rep.Outcome != Error {
		t.Fatalf("overall=%s, want ERROR", rep.Outcome)
	}
}

func TestRun_AssertToleranceBoundary(t *testing.T) {
	sess := &fakeSession{values: map[string]float64{"temp": 25.5}}
	sc := mustParse(t, "ASSERT temp 25.0 0.5\nASSERT temp 25.0 0.4\n")

	rep := Run(context.Background(), sess, sc)

	if rep.Steps[0].Outcome != Pass {
		t.Fatalf("|25.5-25.0| <= 0.5 should PASS, got %s", rep.Steps[0].Outcome)
	}
	if rep.Steps[1].Outcome != Fail {
		t.Fatalf("|25.5-25.0| > 0.4 should FAIL, got %s", rep.Steps[1].Outcome)
	}
	if rep.Outcome != Fail {
		t.Fatalf("overall=%s, want FAIL", rep.Outcome)
	}
}

func TestRun_FailDoesNotMaskLaterError(t *testing.T) {
	sess := &fakeSession{
		values:   map[string]float64{"temp": 30},
		writeErr: map[string]error{"setpoint": fmt.Errorf("boom")},
	}
	sc := mustParse(t, "ASSERT temp 25.0 0.5\nWRITE setpoint 30.0\n")

	rep := Run(context.Background(), sess, sc)
	if rep.Outcome != Error {
		t.Fatalf("overall=%s, want ERROR (worst of FAIL, ERROR)", rep.Outcome)
	}
}

func TestRun_SessionFaultTerminatesRun(t *testing.T) {
	sess := &fakeSession{
		readErr: map[string]error{"temp": fmt.Errorf("gone: %w", session.ErrCommunicationLost)},
	}
	sc := mustParse(t, "READ temp\nLOG never reached\nREAD temp\n")

	rep := Run(context.Background(), sess, sc)

	if len(rep.Steps) != 1 {
		t.Fatalf("%d steps executed after session fault, want 1", len(rep.Steps))
	}
	if !rep.Aborted {
		t.Fatal("run not marked aborted")
	}
	if rep.Outcome != Error {
		t.Fatalf("overall=%s, want ERROR", rep.Outcome)
	}
}

func TestRun_CancelBetweenStepsReturnsPartialReport(t *testing.T) {
	sess := &fakeSession{values: map[string]float64{"temp": 25}}
	sc := mustParse(t, "READ temp\nWAIT 10000\nREAD temp\n")

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan Report, 1)
	go func() { done <- Run(ctx, sess, sc) }()

	time.Sleep(20 * time.Millisecond) // let the run reach the wait
	cancel()

	var rep Report
	select {
	case rep = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop after cancellation")
	}

	if !rep.Aborted {
		t.Fatal("run not marked aborted")
	}
	if len(rep.Steps) >= len(sc.Steps) {
		t.Fatalf("expected a partial report, got all %d steps", len(rep.Steps))
	}
	if rep.Steps[0].Outcome != Pass {
		t.Fatalf("completed step outcome=%s, want PASS", rep.Steps[0].Outcome)
	}
}

func TestRun_WaitSuspendsOnlyThisRun(t *testing.T) {
	sess := &fakeSession{values: map[string]float64{"temp": 25}}
	sc := mustParse(t, "WAIT 30\nREAD temp\n")

	start := time.Now()
	rep := Run(context.Background(), sess, sc)
	elapsed := time.Since(start)

	if elapsed < 30*time.Millisecond {
		t.Fatalf("wait returned after %s, want >= 30ms", elapsed)
	}
	if rep.Outcome != Pass {
		t.Fatalf("outcome=%s, want PASS", rep.Outcome)
	}
}
