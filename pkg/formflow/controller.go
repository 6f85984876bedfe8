package formflow

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/farmsight-ag/farmsight/pkg/apperrors"
)

// State is the lifecycle of one form instance.
type State int

const (
	// StateLoadingReferenceData applies while the candidate-parent list is
	// being fetched. Forms without reference data skip straight to Ready.
	StateLoadingReferenceData State = iota
	// StateReady accepts edits and a submit.
	StateReady
	// StateSubmitting blocks further submits until the round-trip finishes.
	StateSubmitting
	// StateSubmitSucceeded is terminal; the caller decides where to go next.
	StateSubmitSucceeded
)

func (s State) String() string {
	switch s {
	case StateLoadingReferenceData:
		return "loading-reference-data"
	case StateReady:
		return "ready"
	case StateSubmitting:
		return "submitting"
	case StateSubmitSucceeded:
		return "submit-succeeded"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// SubmitFunc receives the normalized record. The controller surfaces
// whatever error it returns; navigation after success is the caller's
// business.
type SubmitFunc func(ctx context.Context, record any) error

// Controller drives create and edit for one resource kind. One instance per
// form; instances share nothing. There is no terminal failed state: a failed
// submit returns to Ready with the error attached and every entered value
// preserved.
type Controller struct {
	kind   Kind
	logger *zap.Logger

	state        State
	values       Values
	parentID     int64
	hasParent    bool
	parentLocked bool
	options      []ParentOption
	notice       string
	errMsg       string
	editing      bool
}

// NewCreate builds a controller for a fresh record. The starting state is
// LoadingReferenceData when the kind has a parent selector to populate.
func NewCreate(kind Kind, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		kind:   kind,
		logger: logger,
		values: Values{},
		state:  StateReady,
	}
	if kind.needsReferenceData() {
		c.state = StateLoadingReferenceData
	}
	return c
}

// NewEdit builds a controller seeded from an existing entity. Absent
// optionals seed as empty inputs, and the parent selector is locked: parent
// associations are immutable after creation.
func NewEdit(kind Kind, entity any, logger *zap.Logger) (*Controller, error) {
	if kind.Seed == nil {
		return nil, fmt.Errorf("kind %q does not support editing", kind.Name)
	}
	values, parentID, err := kind.Seed(entity)
	if err != nil {
		return nil, err
	}
	c := NewCreate(kind, logger)
	c.values = values
	c.editing = true
	if kind.ParentField != "" {
		c.parentID = parentID
		c.hasParent = true
		c.parentLocked = true
	}
	return c, nil
}

// PreselectParent applies a resolved parent id before the form renders.
// Ignored on locked (edit-mode) forms.
func (c *Controller) PreselectParent(id int64) {
	if c.parentLocked || c.kind.ParentField == "" {
		return
	}
	c.parentID = id
	c.hasParent = true
}

// LoadReferenceData fetches the unfiltered candidate-parent collection. A
// load failure degrades the selector and leaves a notice, but never blocks
// submission: a parent resolved from navigation context still suffices.
func (c *Controller) LoadReferenceData(ctx context.Context) {
	if !c.kind.needsReferenceData() {
		return
	}
	opts, err := c.kind.LoadParentOptions(ctx)
	if err != nil {
		c.notice = fmt.Sprintf("could not load %s for selection", c.kind.ParentNoun)
		c.logger.Warn("Reference data load failed",
			zap.String("kind", c.kind.Name),
			zap.Error(err))
	} else {
		c.options = opts
	}
	if c.state == StateLoadingReferenceData {
		c.state = StateReady
	}
}

// SetValue records one raw input value.
func (c *Controller) SetValue(name, value string) {
	c.values[name] = value
}

// SetValues records a batch of raw input values.
func (c *Controller) SetValues(v Values) {
	for name, value := range v {
		c.values[name] = value
	}
}

// SelectParent records the operator's parent choice. Rejected on edit forms,
// where the parent association is immutable.
func (c *Controller) SelectParent(id int64) error {
	if c.parentLocked {
		return fmt.Errorf("parent of an existing %s cannot be changed", c.kind.Name)
	}
	if c.kind.ParentField == "" {
		return fmt.Errorf("%s has no parent to select", c.kind.Name)
	}
	c.parentID = id
	c.hasParent = true
	return nil
}

// Submit validates, normalizes, and hands the record to fn. On failure the
// form returns to Ready with the error message attached; entered values are
// never discarded.
func (c *Controller) Submit(ctx context.Context, fn SubmitFunc) error {
	switch c.state {
	case StateSubmitting:
		return fmt.Errorf("a submission is already in flight")
	case StateLoadingReferenceData:
		return fmt.Errorf("reference data is still loading")
	case StateSubmitSucceeded:
		return fmt.Errorf("form already submitted")
	}

	if c.kind.ParentField != "" && !c.hasParent {
		err := &apperrors.ValidationError{Field: c.kind.ParentField, Reason: "missing parent"}
		c.errMsg = err.Error()
		return err
	}
	if c.kind.Validate != nil {
		if err := c.kind.Validate(c.values); err != nil {
			c.errMsg = err.Error()
			return err
		}
	}

	record, err := c.kind.Normalize(c.values, c.parentID)
	if err != nil {
		c.errMsg = err.Error()
		return err
	}

	c.state = StateSubmitting
	c.errMsg = ""
	if err := fn(ctx, record); err != nil {
		c.state = StateReady
		c.errMsg = submitErrorMessage(err)
		return err
	}
	c.state = StateSubmitSucceeded
	return nil
}

// submitErrorMessage renders a submit failure for inline display. Server
// validation failures are flattened field-by-field in server order.
func submitErrorMessage(err error) string {
	var rejection *apperrors.ServerRejection
	if errors.As(err, &rejection) {
		return rejection.Flatten()
	}
	var transport *apperrors.TransportError
	if errors.As(err, &transport) {
		return "the server could not be reached; nothing was saved"
	}
	return err.Error()
}

// State reports the controller's current lifecycle state.
func (c *Controller) State() State { return c.state }

// Values exposes the raw entered values for re-rendering.
func (c *Controller) Values() Values { return c.values }

// Value returns one raw entered value.
func (c *Controller) Value(name string) string { return c.values[name] }

// ParentID reports the selected parent, when one is set.
func (c *Controller) ParentID() (int64, bool) { return c.parentID, c.hasParent }

// ParentLocked reports whether the parent selector is disabled (edit mode).
func (c *Controller) ParentLocked() bool { return c.parentLocked }

// Editing reports whether the controller was seeded from an existing entity.
func (c *Controller) Editing() bool { return c.editing }

// ParentOptions is the candidate-parent list for the selector. Empty when
// the reference-data load failed or the kind has no parent.
func (c *Controller) ParentOptions() []ParentOption { return c.options }

// Notice is the non-fatal degradation message, if any.
func (c *Controller) Notice() string { return c.notice }

// ErrorMessage is the inline validation or submit error, if any.
func (c *Controller) ErrorMessage() string { return c.errMsg }

// Kind exposes the kind configuration driving this instance.
func (c *Controller) Kind() Kind { return c.kind }
