package script

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/texhnolyzze/MyCommonUtilsLib/internal/dsf"
	"github.com/texhnolyzze/MyCommonUtilsLib/internal/telemetry"
)

// Failure describes an expectation that did not hold.
type Failure struct {
	Step    int // 1-based index into Script.Ops
	Kind    string
	Message string
}

// Report summarises a script run.
type Report struct {
	RunID    string
	Steps    int
	Elements int
	Groups   int
	// Components lists each group's members sorted, with groups ordered by
	// their first member.
	Components [][]string
	Failures   []Failure
}

// Passed reports whether every expectation held.
func (r *Report) Passed() bool { return len(r.Failures) == 0 }

// Runner replays scripts on a fresh forest per run.
type Runner struct {
	Seed    uint64
	Emitter *telemetry.Emitter // may be nil
	Logger  *slog.Logger       // may be nil
}

// Run executes s. It stops early, returning the partial report and the
// context error, if ctx is cancelled between steps.
func (r *Runner) Run(ctx context.Context, s *Script) (*Report, error) {
	log := r.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	seed := r.Seed
	if s.Seed != nil {
		seed = *s.Seed
	}

	rep := &Report{RunID: uuid.NewString()}
	log = log.With("run", rep.RunID, "script", s.Name)
	forest := dsf.New[string](dsf.WithSeed(seed))

	r.emit(telemetry.Event{Kind: telemetry.KindScriptStart, RunID: rep.RunID, Data: map[string]any{
		"name": s.Name, "seed": seed, "ops": len(s.Ops),
	}})
	log.Debug("script started", "seed", seed, "ops", len(s.Ops))

	for i, op := range s.Ops {
		if err := ctx.Err(); err != nil {
			r.finish(rep, forest)
			return rep, err
		}
		step := i + 1
		result := apply(forest, op)
		rep.Steps = step
		r.emit(telemetry.Event{Kind: telemetry.KindOp, RunID: rep.RunID, Op: op.Kind, Data: map[string]any{
			"step": step, "elems": op.Elems, "result": result, "groups": forest.NumSets(),
		}})
		log.Debug("op applied", "step", step, "kind", op.Kind, "elems", op.Elems, "result", result)

		for _, msg := range check(forest, op, result) {
			f := Failure{Step: step, Kind: op.Kind, Message: msg}
			rep.Failures = append(rep.Failures, f)
			r.emit(telemetry.Event{Kind: telemetry.KindExpectFailed, RunID: rep.RunID, Op: op.Kind, Data: f})
			log.Warn("expectation failed", "step", step, "kind", op.Kind, "detail", msg)
		}
	}

	r.finish(rep, forest)
	r.emit(telemetry.Event{Kind: telemetry.KindScriptDone, RunID: rep.RunID, Data: map[string]any{
		"groups": rep.Groups, "elements": rep.Elements, "failures": len(rep.Failures),
	}})
	log.Info("script finished", "groups", rep.Groups, "elements", rep.Elements, "failures", len(rep.Failures))
	return rep, nil
}

func (r *Runner) emit(evt telemetry.Event) {
	if err := r.Emitter.Emit(evt); err != nil && r.Logger != nil {
		r.Logger.Warn("telemetry write failed", "err", err)
	}
}

func (r *Runner) finish(rep *Report, forest *dsf.Forest[string]) {
	rep.Elements = forest.Len()
	rep.Groups = forest.NumSets()
	rep.Components = rep.Components[:0]
	for _, members := range forest.Components() {
		slices.Sort(members)
		rep.Components = append(rep.Components, members)
	}
	slices.SortFunc(rep.Components, func(a, b []string) int {
		return slices.Compare(a, b)
	})
}

// apply performs op and returns its observable result: the representative
// for find, a bool for queries and single removals, nil otherwise.
func apply(f *dsf.Forest[string], op Op) any {
	switch op.Kind {
	case KindMake:
		for _, e := range op.Elems {
			f.MakeSet(e)
		}
	case KindUnion:
		merged := 0
		for _, e := range op.Elems[1:] {
			if f.Union(op.Elems[0], e) {
				merged++
			}
		}
		return merged
	case KindFind:
		root, ok := f.Find(op.Elems[0])
		if !ok {
			return nil
		}
		return root
	case KindConnected:
		return f.Connected(op.Elems[0], op.Elems[1])
	case KindContains:
		return f.Contains(op.Elems[0])
	case KindRemove:
		removed := 0
		for _, e := range op.Elems {
			if f.Remove(e) {
				removed++
			}
		}
		return removed
	case KindClear:
		f.Clear()
	}
	return nil
}

func check(f *dsf.Forest[string], op Op, result any) []string {
	var msgs []string
	if op.Expect != nil {
		if got, _ := result.(bool); got != *op.Expect {
			msgs = append(msgs, fmt.Sprintf("%s%v = %v, want %v", op.Kind, op.Elems, got, *op.Expect))
		}
	}
	if op.Want != "" {
		if got, _ := result.(string); got != op.Want {
			msgs = append(msgs, fmt.Sprintf("find(%s) = %q, want %q", op.Elems[0], got, op.Want))
		}
	}
	if op.Groups != nil && f.NumSets() != *op.Groups {
		msgs = append(msgs, fmt.Sprintf("groups = %d, want %d", f.NumSets(), *op.Groups))
	}
	return msgs
}
