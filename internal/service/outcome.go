package service

import (
	"sync"

	"terptickets/internal/domain"
	"terptickets/internal/forms"
)

// Stage identifies which external collaborator call a submission was
// attempting when it failed. Listing creation is a two-stage pipeline, so
// a failure at "write" means the uploaded object already exists.
type Stage string

const (
	StageIdentity Stage = "identity"
	StageUpload   Stage = "upload"
	StageWrite    Stage = "write"
)

// State is the submission controller's current position in its lifecycle.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
)

// OutcomeKind tags a submission outcome.
type OutcomeKind string

const (
	OutcomeSucceeded OutcomeKind = "succeeded"
	OutcomeInvalid   OutcomeKind = "invalid"
	OutcomeFailed    OutcomeKind = "failed"
)

// Outcome is the result of one submission attempt, emitted by a
// controller for the presentation layer to render.
type Outcome struct {
	Kind OutcomeKind

	// Invalid: the full field error map from the authoritative pass.
	FieldErrors forms.FieldErrors

	// Failed: the collaborator's message, verbatim, and the stage reached.
	Stage  Stage
	Reason string

	// Succeeded: produced artifacts and the caller-supplied destination.
	Session    *domain.Session
	DocumentID string
	PhotoURL   string
	Redirect   string
}

// submitGuard serializes submission attempts for one form instance. A
// submit event while a submission is in flight is a no-op, not a queued
// retry.
type submitGuard struct {
	mu    sync.Mutex
	state State
}

// begin moves Idle to Validating. It returns false, without blocking,
// when a submission is already in flight.
func (g *submitGuard) begin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateIdle && g.state != "" {
		return false
	}
	g.state = StateValidating
	return true
}

// submitting moves the controller into the Submitting state once the
// authoritative validation pass succeeds.
func (g *submitGuard) submitting() {
	g.mu.Lock()
	g.state = StateSubmitting
	g.mu.Unlock()
}

// end returns the controller to Idle.
func (g *submitGuard) end() {
	g.mu.Lock()
	g.state = StateIdle
	g.mu.Unlock()
}

// State reports the controller's current state.
func (g *submitGuard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == "" {
		return StateIdle
	}
	return g.state
}

func invalidOutcome(errs forms.FieldErrors) *Outcome {
	return &Outcome{Kind: OutcomeInvalid, FieldErrors: errs}
}

func failedOutcome(stage Stage, err error) *Outcome {
	return &Outcome{Kind: OutcomeFailed, Stage: stage, Reason: err.Error()}
}
