// Package bench feeds identical (haystack, pattern) pairs to every search
// engine, times repeated calls and checks that the engines agree.
package bench

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Anish-Chanda/substring-search/internal/search"
)

// ErrDisagreement matches every *DisagreementError.
var ErrDisagreement = errors.New("bench: engines disagree")

// Case is one (haystack, pattern) pair.
type Case struct {
	Name     string
	Haystack []rune
	Pattern  []rune
}

// Result is the outcome of one engine on one case.
type Result struct {
	Engine string
	Case   string
	Index  int
	Trials int
	Total  time.Duration
}

// PerOp returns the mean duration of one call.
func (r Result) PerOp() time.Duration {
	if r.Trials == 0 {
		return 0
	}
	return r.Total / time.Duration(r.Trials)
}

// Report collects the results of one run.
type Report struct {
	RunID   string
	Started time.Time
	Results []Result
}

// Outcome is one engine's answer in a DisagreementError.
type Outcome struct {
	Engine string
	Index  int
}

// DisagreementError reports the answers of every engine on a case where they
// differ. Want is the reference answer when one is known, otherwise NotFound.
type DisagreementError struct {
	Case     string
	Want     int
	Outcomes []Outcome
}

func (e *DisagreementError) Error() string {
	parts := make([]string, len(e.Outcomes))
	for i, o := range e.Outcomes {
		parts[i] = fmt.Sprintf("%s=%d", o.Engine, o.Index)
	}
	return fmt.Sprintf("bench: engines disagree on %s (want %d): %s", e.Case, e.Want, strings.Join(parts, " "))
}

func (e *DisagreementError) Is(target error) bool {
	return target == ErrDisagreement
}

// Runner times every engine on every case.
type Runner struct {
	Engines []search.Engine
	Trials  int
	Logger  *zap.Logger
}

// Run executes the cases in order. Each engine gets one untimed call whose
// answer is checked against the other engines, then Trials timed calls. Timed
// calls run sequentially so measurements do not disturb each other.
func (r *Runner) Run(ctx context.Context, cases []Case) (*Report, error) {
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}
	trials := r.Trials
	if trials < 1 {
		trials = 1
	}
	report := &Report{RunID: uuid.NewString(), Started: time.Now()}
	log = log.With(zap.String("run", report.RunID))

	for _, c := range cases {
		outcomes := make([]Outcome, 0, len(r.Engines))
		for _, e := range r.Engines {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			idx, err := e.Index(c.Haystack, c.Pattern)
			if err != nil {
				return report, fmt.Errorf("%s on %s: %w", e.Name, c.Name, err)
			}
			outcomes = append(outcomes, Outcome{Engine: e.Name, Index: idx})

			start := time.Now()
			for i := 0; i < trials; i++ {
				e.Index(c.Haystack, c.Pattern)
			}
			total := time.Since(start)

			res := Result{Engine: e.Name, Case: c.Name, Index: idx, Trials: trials, Total: total}
			report.Results = append(report.Results, res)
			log.Debug("timed",
				zap.String("engine", e.Name),
				zap.String("case", c.Name),
				zap.Int("index", idx),
				zap.Duration("total", total),
				zap.Duration("per_op", res.PerOp()),
			)
		}
		if !agree(outcomes) {
			err := &DisagreementError{Case: c.Name, Want: search.NotFound, Outcomes: outcomes}
			log.Error("disagreement", zap.Error(err))
			return report, err
		}
	}
	log.Info("run complete", zap.Int("cases", len(cases)), zap.Int("results", len(report.Results)))
	return report, nil
}

func agree(outcomes []Outcome) bool {
	if len(outcomes) < 2 {
		return true
	}
	for _, o := range outcomes[1:] {
		if o.Index != outcomes[0].Index {
			return false
		}
	}
	return true
}

// WriteTo prints the report as an aligned table.
func (rep *Report) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "run %s\n", rep.RunID)
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ENGINE\tCASE\tINDEX\tTRIALS\tTOTAL\tPER OP")
	for _, r := range rep.Results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.6fs\t%s\n",
			r.Engine, r.Case, r.Index, r.Trials, r.Total.Seconds(), r.PerOp())
	}
	if err := tw.Flush(); err != nil {
		return 0, err
	}
	n, err := w.Write(buf.Bytes())
	return int64(n), err
}
