package detail

import (
	"context"

	"go.uber.org/zap"
)

// ViewState is the lifecycle of one detail view instance.
type ViewState int

const (
	ViewLoading ViewState = iota
	ViewReady
	// ViewFailed is terminal for the instance: the primary entity could not
	// be loaded and nothing partial is rendered.
	ViewFailed
)

// View owns the fetch lifecycle of a single detail page. Each load carries a
// generation token; a result is applied only while its load is still the
// newest one, so a stale response can never clobber the state after rapid
// navigation. Abandoning a load needs no cancellation signal.
type View struct {
	agg    *Aggregator
	logger *zap.Logger

	gen    int
	state  ViewState
	errMsg string
	result Result
}

// NewView creates a detail view bound to an aggregator.
func NewView(agg *Aggregator) *View {
	return &View{agg: agg, logger: agg.logger, state: ViewLoading}
}

// LoadField loads field id into the view.
func (v *View) LoadField(ctx context.Context, id int64) {
	gen := v.begin()
	v.Apply(gen, v.agg.FetchField(ctx, id))
}

// LoadCropCycle loads crop cycle id into the view.
func (v *View) LoadCropCycle(ctx context.Context, id int64) {
	gen := v.begin()
	v.Apply(gen, v.agg.FetchCropCycle(ctx, id))
}

// begin starts a new load and invalidates every earlier one.
func (v *View) begin() int {
	v.gen++
	v.state = ViewLoading
	return v.gen
}

// Apply installs a completed load's result, unless a newer load has started
// since. Returns whether the result was applied.
func (v *View) Apply(gen int, r Result) bool {
	if gen != v.gen {
		v.logger.Debug("Dropping stale detail result",
			zap.Int("result_generation", gen),
			zap.Int("current_generation", v.gen))
		return false
	}
	if r.Err != nil {
		v.state = ViewFailed
		v.errMsg = r.Err.Error()
		v.result = Result{Err: r.Err}
		return true
	}
	v.state = ViewReady
	v.errMsg = ""
	v.result = r
	return true
}

// State reports the view's lifecycle state.
func (v *View) State() ViewState { return v.state }

// Error is the terminal page-level error message, set only in ViewFailed.
func (v *View) Error() string { return v.errMsg }

// Result is the applied load, meaningful only in ViewReady.
func (v *View) Result() Result { return v.result }
