package service

import (
	"context"
	"log"

	"terptickets/internal/domain"
	"terptickets/internal/forms"
	"terptickets/internal/port"
)

// LoginSubmission is the submission controller for the login form.
type LoginSubmission struct {
	submitGuard
	draft      *forms.Draft
	identity   port.Identity
	redirectTo string
}

// NewLoginSubmission creates a login controller with an empty draft.
// redirectTo is the destination signalled on success.
func NewLoginSubmission(identity port.Identity, redirectTo string) *LoginSubmission {
	return &LoginSubmission{
		draft:      forms.NewDraft(forms.LoginRules()),
		identity:   identity,
		redirectTo: redirectTo,
	}
}

// Draft exposes the field binding layer for this form instance.
func (s *LoginSubmission) Draft() *forms.Draft { return s.draft }

// Submit runs the authoritative validation pass and, if it succeeds,
// authenticates against the identity provider. A submit while one is
// already in flight returns domain.ErrSubmitInFlight and touches nothing.
func (s *LoginSubmission) Submit(ctx context.Context) (*Outcome, error) {
	if !s.begin() {
		return nil, domain.ErrSubmitInFlight
	}
	defer s.end()

	data, ferrs := forms.ParseLogin(s.draft)
	if ferrs != nil {
		return invalidOutcome(ferrs), nil
	}

	s.submitting()
	session, err := s.identity.Authenticate(ctx, data.Email, data.Password)
	if err != nil {
		// Provider message passes through verbatim; the draft stays
		// populated for retry.
		s.draft.SetFormError(err.Error())
		return failedOutcome(StageIdentity, err), nil
	}

	s.draft.Reset()
	return &Outcome{Kind: OutcomeSucceeded, Session: session, Redirect: s.redirectTo}, nil
}

// SignUpSubmission is the submission controller for the registration form.
type SignUpSubmission struct {
	submitGuard
	draft      *forms.Draft
	identity   port.Identity
	redirectTo string
}

// NewSignUpSubmission creates a sign-up controller with an empty draft.
func NewSignUpSubmission(identity port.Identity, redirectTo string) *SignUpSubmission {
	return &SignUpSubmission{
		draft:      forms.NewDraft(forms.SignUpRules()),
		identity:   identity,
		redirectTo: redirectTo,
	}
}

// Draft exposes the field binding layer for this form instance.
func (s *SignUpSubmission) Draft() *forms.Draft { return s.draft }

// Submit validates the draft and registers a new account.
func (s *SignUpSubmission) Submit(ctx context.Context) (*Outcome, error) {
	if !s.begin() {
		return nil, domain.ErrSubmitInFlight
	}
	defer s.end()

	data, ferrs := forms.ParseSignUp(s.draft)
	if ferrs != nil {
		return invalidOutcome(ferrs), nil
	}

	s.submitting()
	session, err := s.identity.Register(ctx, data.Email, data.Password)
	if err != nil {
		s.draft.SetFormError(err.Error())
		return failedOutcome(StageIdentity, err), nil
	}

	log.Printf("signUpSubmission.Submit: registered %s", data.Email)
	s.draft.Reset()
	return &Outcome{Kind: OutcomeSucceeded, Session: session, Redirect: s.redirectTo}, nil
}
