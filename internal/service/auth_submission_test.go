package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"terptickets/internal/domain"
	"terptickets/internal/forms"
	"terptickets/internal/service"
	"terptickets/mocks"
)

func TestLoginSubmission_Success(t *testing.T) {
	session := &domain.Session{Token: "tok", UserID: uuid.New(), Email: "a@b.edu", ExpiresAt: time.Now().Add(time.Hour)}
	identity := new(mocks.MockIdentity)
	identity.On("Authenticate", mock.Anything, "a@b.edu", "secret1").Return(session, nil)

	sub := service.NewLoginSubmission(identity, "/")
	sub.Draft().Set(forms.FieldEmail, "a@b.edu")
	sub.Draft().Set(forms.FieldPassword, "secret1")

	outcome, err := sub.Submit(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, service.OutcomeSucceeded, outcome.Kind)
	assert.Equal(t, session, outcome.Session)
	assert.Equal(t, "/", outcome.Redirect)

	// The draft is consumed on success.
	assert.False(t, sub.Draft().Dirty())
	assert.Equal(t, "", sub.Draft().Value(forms.FieldEmail))
	identity.AssertExpectations(t)
}

func TestLoginSubmission_InvalidSkipsIdentity(t *testing.T) {
	identity := new(mocks.MockIdentity)

	sub := service.NewLoginSubmission(identity, "/")
	sub.Draft().Set(forms.FieldEmail, "not-an-email")
	sub.Draft().Set(forms.FieldPassword, "secret1")

	outcome, err := sub.Submit(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, service.OutcomeInvalid, outcome.Kind)
	assert.Equal(t, "Invalid email address", outcome.FieldErrors[forms.FieldEmail])
	identity.AssertNotCalled(t, "Authenticate")
}

func TestLoginSubmission_ProviderErrorVerbatim(t *testing.T) {
	identity := new(mocks.MockIdentity)
	identity.On("Authenticate", mock.Anything, "a@b.edu", "secret1").
		Return(nil, errors.New("auth/wrong-password"))

	sub := service.NewLoginSubmission(identity, "/")
	sub.Draft().Set(forms.FieldEmail, "a@b.edu")
	sub.Draft().Set(forms.FieldPassword, "secret1")

	outcome, err := sub.Submit(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, service.OutcomeFailed, outcome.Kind)
	assert.Equal(t, service.StageIdentity, outcome.Stage)
	assert.Equal(t, "auth/wrong-password", outcome.Reason)

	// The provider message lands on the form-level key and the typed
	// values survive for a retry.
	assert.Equal(t, "auth/wrong-password", sub.Draft().FieldError(forms.FormField))
	assert.Equal(t, "a@b.edu", sub.Draft().Value(forms.FieldEmail))
}

func TestSignUpSubmission_Success(t *testing.T) {
	session := &domain.Session{Token: "tok", UserID: uuid.New(), Email: "new@b.edu"}
	identity := new(mocks.MockIdentity)
	identity.On("Register", mock.Anything, "new@b.edu", "secret1").Return(session, nil)

	sub := service.NewSignUpSubmission(identity, "/login")
	sub.Draft().Set(forms.FieldEmail, "new@b.edu")
	sub.Draft().Set(forms.FieldPassword, "secret1")
	sub.Draft().Set(forms.FieldVerifyPassword, "secret1")

	outcome, err := sub.Submit(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, service.OutcomeSucceeded, outcome.Kind)
	assert.Equal(t, "/login", outcome.Redirect)
	identity.AssertExpectations(t)
}

func TestSignUpSubmission_MismatchSkipsIdentity(t *testing.T) {
	identity := new(mocks.MockIdentity)

	sub := service.NewSignUpSubmission(identity, "/login")
	sub.Draft().Set(forms.FieldEmail, "new@b.edu")
	sub.Draft().Set(forms.FieldPassword, "secret1")
	sub.Draft().Set(forms.FieldVerifyPassword, "secret2")

	outcome, err := sub.Submit(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, service.OutcomeInvalid, outcome.Kind)
	assert.Equal(t, "Passwords do not match", outcome.FieldErrors[forms.FieldVerifyPassword])
	identity.AssertNotCalled(t, "Register")
}

func TestLoginSubmission_ResubmitWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	identity := new(mocks.MockIdentity)
	identity.On("Authenticate", mock.Anything, "a@b.edu", "secret1").
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&domain.Session{Token: "tok"}, nil).Once()

	sub := service.NewLoginSubmission(identity, "/")
	sub.Draft().Set(forms.FieldEmail, "a@b.edu")
	sub.Draft().Set(forms.FieldPassword, "secret1")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = sub.Submit(context.Background())
	}()

	<-started
	assert.Equal(t, service.StateSubmitting, sub.State())

	// A second submit while one is in flight is rejected without
	// touching the identity provider again.
	outcome, err := sub.Submit(context.Background())
	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, domain.ErrSubmitInFlight)

	close(release)
	wg.Wait()
	assert.Equal(t, service.StateIdle, sub.State())
	identity.AssertExpectations(t)
}
