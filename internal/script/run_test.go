package script

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/texhnolyzze/MyCommonUtilsLib/internal/telemetry"
)

func mustParse(t *testing.T, src string) *Script {
	t.Helper()
	s, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return s
}

func TestRunPassingScript(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	r := &Runner{Emitter: telemetry.New(&buf)}

	rep, err := r.Run(context.Background(), mustParse(t, demo))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !rep.Passed() {
		t.Fatalf("Failures = %+v, want none", rep.Failures)
	}
	if rep.Steps != 4 || rep.Elements != 4 || rep.Groups != 2 {
		t.Errorf("report = %+v, want 4 steps, 4 elements, 2 groups", rep)
	}
	want := [][]string{{"a", "b", "c"}, {"d"}}
	if !slices.EqualFunc(rep.Components, want, slices.Equal) {
		t.Errorf("Components = %v, want %v", rep.Components, want)
	}
	if rep.RunID == "" {
		t.Error("RunID is empty")
	}

	events, err := telemetry.ReadEvents(&buf)
	if err != nil {
		t.Fatalf("ReadEvents: %v", err)
	}
	// start + 4 ops + done
	if len(events) != 6 {
		t.Fatalf("got %d events, want 6", len(events))
	}
	if events[0].Kind != telemetry.KindScriptStart || events[5].Kind != telemetry.KindScriptDone {
		t.Errorf("event kinds = %s..%s", events[0].Kind, events[5].Kind)
	}
	for _, evt := range events {
		if evt.RunID != rep.RunID {
			t.Errorf("event %s run = %q, want %q", evt.Kind, evt.RunID, rep.RunID)
		}
	}
}

func TestRunReportsFailedExpectations(t *testing.T) {
	t.Parallel()
	s := mustParse(t, `
[[op]]
kind = "make"
elems = ["x", "y"]

[[op]]
kind = "connected"
elems = ["x", "y"]
expect = true

[[op]]
kind = "contains"
elems = ["z"]
expect = true
groups = 1
`)
	var buf bytes.Buffer
	rep, err := (&Runner{Emitter: telemetry.New(&buf)}).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(rep.Failures) != 3 {
		t.Fatalf("Failures = %+v, want 3", rep.Failures)
	}
	if rep.Failures[0].Step != 2 || rep.Failures[1].Step != 3 || rep.Failures[2].Step != 3 {
		t.Errorf("failure steps = %+v", rep.Failures)
	}

	events, err := telemetry.ReadEvents(&buf)
	if err != nil {
		t.Fatalf("ReadEvents: %v", err)
	}
	failed := 0
	for _, evt := range events {
		if evt.Kind == telemetry.KindExpectFailed {
			failed++
		}
	}
	if failed != 3 {
		t.Errorf("expect_failed events = %d, want 3", failed)
	}
}

func TestRunRemoveAndClear(t *testing.T) {
	t.Parallel()
	s := mustParse(t, `
seed = 1

[[op]]
kind = "make"
elems = ["a", "b", "c"]

[[op]]
kind = "union"
elems = ["a", "b", "c"]

[[op]]
kind = "remove"
elems = ["a"]
groups = 1

[[op]]
kind = "connected"
elems = ["b", "c"]
expect = true

[[op]]
kind = "contains"
elems = ["a"]
expect = false

[[op]]
kind = "clear"
groups = 0
`)
	rep, err := (&Runner{}).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !rep.Passed() {
		t.Errorf("Failures = %+v, want none", rep.Failures)
	}
	if rep.Elements != 0 || len(rep.Components) != 0 {
		t.Errorf("after clear report = %+v", rep)
	}
}

func TestRunSameSeedSameRepresentatives(t *testing.T) {
	t.Parallel()
	src := `
[[op]]
kind = "make"
elems = ["r", "a", "b", "c", "d", "e"]

[[op]]
kind = "union"
elems = ["r", "a", "b", "c", "d", "e"]

[[op]]
kind = "remove"
elems = ["r"]
`
	heir := func(seed uint64) string {
		s := mustParse(t, src)
		s.Ops = append(s.Ops, Op{Kind: KindFind, Elems: []string{"a"}})
		var buf bytes.Buffer
		rep, err := (&Runner{Seed: seed, Emitter: telemetry.New(&buf)}).Run(context.Background(), s)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if rep.Groups != 1 {
			t.Fatalf("Groups = %d, want 1", rep.Groups)
		}
		events, err := telemetry.ReadEvents(&buf)
		if err != nil {
			t.Fatalf("ReadEvents: %v", err)
		}
		// The find op is the last event before script_done.
		data := events[len(events)-2].Data.(map[string]any)
		return data["result"].(string)
	}
	if a, b := heir(42), heir(42); a != b {
		t.Errorf("seed 42 picked %q then %q", a, b)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rep, err := (&Runner{}).Run(ctx, mustParse(t, demo))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if rep.Steps != 0 {
		t.Errorf("Steps = %d, want 0", rep.Steps)
	}
}
