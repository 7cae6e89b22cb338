// Package submit drives one user-initiated submission of a form: validate,
// call exactly one external operation, and report the outcome. Failures can
// be retried by hand with the very same inputs.
//
//	Idle -> Validating -> Invalid
//	                   -> InFlight -> Succeeded
//	                               -> Failed -> (Retry) InFlight
//
// A Submit or Retry issued while a call is in flight is ignored.
package submit

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/favfood/internal/client/form"
	"github.com/dmitrijs2005/favfood/internal/logging"
)

// Action performs the external operation with a snapshot of the form.
type Action func(ctx context.Context, in form.Values) error

// Result describes what a Submit or Retry call did.
type Result struct {
	State State
	// Ignored is set when the call did nothing, e.g. another call is in
	// flight.
	Ignored   bool
	Errors    form.Errors
	Notice    Notice
	Err       error
	Retryable bool
}

type Controller struct {
	name      string
	form      *form.Form
	action    Action
	logger    logging.Logger
	gate      func(*form.Form) bool
	notices   NoticeFunc
	success   Notice
	onSuccess func(form.Values)
	retryable func(error) bool

	mu       sync.Mutex
	state    State
	snapshot form.Values
	lastErr  error
}

type Option func(*Controller)

func WithLogger(l logging.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithGate adds an enable condition checked on top of the in-flight guard.
func WithGate(gate func(*form.Form) bool) Option {
	return func(c *Controller) { c.gate = gate }
}

func WithNotices(fn NoticeFunc) Option {
	return func(c *Controller) { c.notices = fn }
}

func WithSuccess(n Notice) Option {
	return func(c *Controller) { c.success = n }
}

// OnSuccess registers fn to run once after each successful call, with the
// values that were submitted.
func OnSuccess(fn func(form.Values)) Option {
	return func(c *Controller) { c.onSuccess = fn }
}

// WithRetryable decides which failures may be retried. All are by default.
func WithRetryable(fn func(error) bool) Option {
	return func(c *Controller) { c.retryable = fn }
}

// New builds a controller for f. f may be nil for submissions without
// inputs, such as sign-out.
func New(name string, f *form.Form, action Action, opts ...Option) *Controller {
	c := &Controller{
		name:      name,
		form:      f,
		action:    action,
		logger:    logging.Nop{},
		notices:   GenericNotice("Error", "Inténtalo de nuevo."),
		retryable: func(error) bool { return true },
	}
	for _, o := range opts {
		o(c)
	}
	c.logger = c.logger.With("controller", name)
	return c
}

func (c *Controller) Name() string { return c.name }

func (c *Controller) Form() *form.Form { return c.form }

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// CanSubmit reports whether the submit affordance is enabled.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateInFlight {
		return false
	}
	return c.gate == nil || c.gate(c.form)
}

// CanRetry reports whether Retry would call the action.
func (c *Controller) CanRetry() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateFailed && c.snapshot != nil
}

// Submit validates the form and, when it is valid, calls the action with a
// snapshot of its values. The caller's context is passed through untouched.
func (c *Controller) Submit(ctx context.Context) Result {
	c.mu.Lock()
	if c.state == StateInFlight {
		c.mu.Unlock()
		c.logger.Debug(ctx, "submit ignored, call in flight")
		return Result{State: StateInFlight, Ignored: true}
	}

	prev := c.state
	c.state = StateValidating

	var errs form.Errors
	if c.form != nil {
		errs = c.form.ValidateAll()
	}
	if len(errs) > 0 {
		c.state = StateInvalid
		c.mu.Unlock()
		return Result{State: StateInvalid, Errors: errs}
	}

	if c.gate != nil && !c.gate(c.form) {
		c.state = prev
		c.mu.Unlock()
		return Result{State: prev, Ignored: true}
	}

	snap := form.Values{}
	if c.form != nil {
		snap = c.form.Values()
	}
	c.snapshot = snap
	c.state = StateInFlight
	c.mu.Unlock()

	return c.run(ctx, snap)
}

// Retry repeats the last failed call with exactly the same inputs, without
// validating again. It is ignored in any state other than StateFailed.
func (c *Controller) Retry(ctx context.Context) Result {
	c.mu.Lock()
	if c.state != StateFailed || c.snapshot == nil {
		st := c.state
		c.mu.Unlock()
		return Result{State: st, Ignored: true}
	}
	snap := c.snapshot
	c.state = StateInFlight
	c.mu.Unlock()

	c.logger.Info(ctx, "retrying")
	return c.run(ctx, snap)
}

// Reset returns the controller to idle. It does nothing while a call is in
// flight.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateInFlight {
		return
	}
	c.state = StateIdle
	c.snapshot = nil
	c.lastErr = nil
}

func (c *Controller) run(ctx context.Context, snap form.Values) Result {
	err := c.action(ctx, snap)

	c.mu.Lock()
	if err == nil {
		c.state = StateSucceeded
		c.snapshot = nil
		c.lastErr = nil
		c.mu.Unlock()

		c.logger.Info(ctx, "submission succeeded")
		if c.onSuccess != nil {
			c.onSuccess(snap)
		}
		return Result{State: StateSucceeded, Notice: c.success}
	}

	retryable := c.retryable(err)
	c.state = StateFailed
	c.lastErr = err
	if !retryable {
		c.snapshot = nil
	}
	c.mu.Unlock()

	c.logger.Warn(ctx, "submission failed", "error", err, "retryable", retryable)
	return Result{State: StateFailed, Notice: c.notices(err), Err: err, Retryable: retryable}
}
