// Package engine orchestrates contrast correction passes over a document.
//
// A pass is a drained work queue of candidate elements processed
// sequentially: eligibility check, background resolution, contrast check,
// advisory gate, correction, application. Processing is single threaded
// and cooperative; between configurable batches the engine yields so a
// host renderer is never starved. A pass may be cancelled between elements
// and leaves already-applied corrections intact. No per-element failure
// ever aborts the pass.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/readwell/readwell/internal/advisory"
	"github.com/readwell/readwell/internal/colour"
	"github.com/readwell/readwell/internal/correct"
	"github.com/readwell/readwell/internal/eligibility"
	"github.com/readwell/readwell/internal/host"
	"github.com/readwell/readwell/internal/resolve"
)

// Status classifies what happened to one element during a pass.
type Status string

const (
	// StatusCorrected means a new foreground colour was applied.
	StatusCorrected Status = "corrected"

	// StatusCompliant means the original pairing already met the target.
	StatusCompliant Status = "compliant"

	// StatusSkipped means the eligibility filter rejected the element;
	// Reason carries the cause.
	StatusSkipped Status = "skipped"

	// StatusUnresolved means the effective background could not be
	// determined; no correction was attempted.
	StatusUnresolved Status = "unresolved"

	// StatusVetoed means the advisory oracle judged the original pairing
	// comfortable and the correction was suppressed.
	StatusVetoed Status = "vetoed"

	// StatusInfeasible means no colour within the search ranges reaches
	// the target against this background. A soft condition, not an error.
	StatusInfeasible Status = "infeasible"

	// StatusError means a host query failed for this element. The pass
	// continues with the next element.
	StatusError Status = "error"
)

// ElementResult is the per-element outcome of a pass.
type ElementResult struct {
	Element   host.ElementID
	Status    Status
	Reason    eligibility.Reason
	Original  colour.RGB
	Corrected colour.RGB
	Before    float64
	Achieved  float64
	Err       error
}

// Report summarises one pass.
type Report struct {
	Results []ElementResult
}

// Count returns how many elements finished with the given status.
func (r Report) Count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// Options configure a pass. Target is the contrast ratio to enforce, in
// [1, 21]; it is fixed for the duration of the pass.
type Options struct {
	Target float64

	// BatchSize is the number of elements processed between yields.
	// Zero disables yielding.
	BatchSize int

	// YieldDelay is how long the engine sleeps between batches.
	YieldDelay time.Duration

	// GateThreshold is the confidence at or above which a comfortable
	// oracle verdict vetoes a correction.
	GateThreshold float64

	// UserScale is the 0..1 comfort setting forwarded to the oracle.
	UserScale float64
}

// DefaultTarget is the WCAG AA ratio for normal text.
const DefaultTarget = 4.5

// ErrPassActive is returned when Reset is called while a pass is running.
var ErrPassActive = errors.New("engine: pass in progress")

// Engine drives correction passes over one host document.
type Engine struct {
	host     host.Host
	resolver *resolve.Resolver
	gate     advisory.Gate
	log      hclog.Logger
	busy     bool
}

// New creates an Engine. A nil gate installs the no-op oracle and a nil
// logger disables logging.
func New(h host.Host, gate advisory.Gate, log hclog.Logger) *Engine {
	if gate == nil {
		gate = advisory.Noop{}
	}
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Engine{
		host:     h,
		resolver: resolve.New(h, log.Named("resolve")),
		gate:     gate,
		log:      log,
	}
}

// Pass runs a full-document correction pass. records is the caller-owned
// side table; elements recorded there are never reprocessed. The returned
// report covers the elements processed before completion or cancellation;
// on cancellation the error is the context's and applied corrections stay
// in place.
func (e *Engine) Pass(ctx context.Context, records *Records, opts Options) (Report, error) {
	ids, err := e.host.TextElements(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("engine: enumerate elements: %w", err)
	}
	return e.Process(ctx, records, opts, ids)
}

// Process runs the correction pipeline over an explicit element queue.
// Incremental passes feed batches of newly visible elements through the
// same path.
func (e *Engine) Process(ctx context.Context, records *Records, opts Options, ids []host.ElementID) (Report, error) {
	if opts.Target <= 0 {
		opts.Target = DefaultTarget
	}

	e.busy = true
	defer func() { e.busy = false }()

	var report Report
	for i, el := range ids {
		// Cancellation is checked once per element; partial progress is
		// valid and never rolled back.
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if opts.BatchSize > 0 && i > 0 && i%opts.BatchSize == 0 {
			if err := yield(ctx, opts.YieldDelay); err != nil {
				return report, err
			}
		}

		report.Results = append(report.Results, e.processElement(ctx, records, opts, el))
	}
	return report, nil
}

// Watch drains batches of newly visible elements from ch through the
// normal pipeline until ch closes or ctx is cancelled.
func (e *Engine) Watch(ctx context.Context, records *Records, opts Options, ch <-chan []host.ElementID) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case batch, ok := <-ch:
			if !ok {
				return nil
			}
			if _, err := e.Process(ctx, records, opts, batch); err != nil {
				return err
			}
		}
	}
}

// Reset restores every corrected element to its original colour and
// clears the side table. It must not run concurrently with a pass over
// the same elements.
func (e *Engine) Reset(ctx context.Context, records *Records) error {
	if e.busy {
		return ErrPassActive
	}

	var firstErr error
	for _, rec := range records.All() {
		if err := e.host.Apply(ctx, rec.Element, rec.Original); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("engine: restore %q: %w", rec.Element, err)
		}
	}
	records.clear()
	return firstErr
}

// processElement runs the full pipeline for one element. It never returns
// an error; failures become StatusError results and the pass moves on.
func (e *Engine) processElement(ctx context.Context, records *Records, opts Options, el host.ElementID) ElementResult {
	result := ElementResult{Element: el}

	style, err := e.host.ComputedStyle(ctx, el)
	if err != nil {
		e.log.Warn("style query failed", "element", el, "error", err)
		result.Status = StatusError
		result.Err = err
		return result
	}

	verdict, err := eligibility.Check(ctx, e.host, el, style, records.Processed(el))
	if err != nil {
		e.log.Warn("eligibility check failed", "element", el, "error", err)
		result.Status = StatusError
		result.Err = err
		return result
	}
	if !verdict.Eligible {
		result.Status = StatusSkipped
		result.Reason = verdict.Reason
		return result
	}

	fgLayer, err := colour.ParseCSS(style.Color)
	if err != nil {
		// An unparsable foreground means no contrast problem is
		// detectable; the element counts as acceptable as-is.
		e.log.Debug("unparsable foreground", "element", el, "value", style.Color)
		result.Status = StatusCompliant
		return result
	}
	fg := fgLayer.Colour

	bg, err := e.resolver.Effective(ctx, el)
	if err != nil {
		switch {
		case errors.Is(err, resolve.ErrRestrictedSurface):
			result.Status = StatusSkipped
			result.Reason = eligibility.ReasonVideoSurface
		case errors.Is(err, resolve.ErrUnresolved):
			result.Status = StatusUnresolved
		default:
			e.log.Warn("background resolution failed", "element", el, "error", err)
			result.Status = StatusError
			result.Err = err
		}
		return result
	}

	result.Original = fg
	result.Before = colour.ContrastRatio(fg, bg)

	vetoed := false
	if result.Before < opts.Target {
		vetoed = e.consultGate(ctx, style, fg, bg, result.Before, opts)
	}

	res, outcome := correct.Correct(fg, bg, opts.Target, vetoed)
	switch outcome {
	case correct.OutcomeCompliant:
		result.Status = StatusCompliant
		result.Achieved = res.Contrast
	case correct.OutcomeVetoed:
		result.Status = StatusVetoed
		result.Achieved = res.Contrast
	case correct.OutcomeInfeasible:
		e.log.Debug("target infeasible", "element", el, "target", opts.Target)
		result.Status = StatusInfeasible
	case correct.OutcomeCorrected:
		if err := e.host.Apply(ctx, el, res.Colour); err != nil {
			e.log.Warn("apply failed", "element", el, "error", err)
			result.Status = StatusError
			result.Err = err
			return result
		}
		// The processed marker is set in the same step as the applied
		// colour; no later pass can observe one without the other.
		records.Add(CorrectionRecord{
			Element:   el,
			Original:  fg,
			Corrected: res.Colour,
			Contrast:  res.Contrast,
			Timestamp: time.Now(),
		})
		result.Status = StatusCorrected
		result.Corrected = res.Colour
		result.Achieved = res.Contrast
		e.log.Debug("corrected",
			"element", el,
			"from", fg.Hex(),
			"to", res.Colour.Hex(),
			"contrast", res.Contrast,
		)
	}
	return result
}

// consultGate asks the advisory oracle about the original pairing. Any
// oracle failure contributes no opinion: the engine falls back to the
// deterministic maths.
func (e *Engine) consultGate(ctx context.Context, style host.Style, fg, bg colour.RGB, ratio float64, opts Options) bool {
	decision, err := e.gate.Judge(ctx, advisory.Request{
		Foreground:  fg,
		Background:  bg,
		Contrast:    ratio,
		ElementType: style.ElementType,
		Role:        style.Role,
		TextLength:  style.TextLength,
		FontSize:    style.FontSize,
		FontWeight:  style.FontWeight,
		UserScale:   opts.UserScale,
	})
	if err != nil {
		e.log.Debug("oracle unavailable, proceeding on WCAG maths", "error", err)
		return false
	}
	return advisory.Veto(decision, opts.GateThreshold)
}

// yield pauses between batches without outliving a cancelled pass.
func yield(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
