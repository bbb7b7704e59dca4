package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"terptickets/internal/domain"
	"terptickets/internal/forms"
	"terptickets/internal/port"
	"terptickets/internal/service"
	"terptickets/mocks"
)

func testUser() *domain.UserRecord {
	return &domain.UserRecord{
		ID:          uuid.New(),
		Email:       "seller@terpmail.umd.edu",
		DisplayName: "Terp Seller",
	}
}

func fillListingDraft(d *forms.Draft) {
	d.Set(forms.FieldEvent, "Football")
	d.Set(forms.FieldDate, "2026-09-12")
	d.Set(forms.FieldDescription, "Section 25, row C")
	d.Set(forms.FieldPrice, "45.00")
	d.SetFiles(forms.FieldTicket, []*forms.FileSelection{{
		Filename:    "ticket.png",
		Size:        2048,
		ContentType: "image/png",
		Body:        strings.NewReader("png-bytes"),
	}})
}

func TestListingSubmission_Success(t *testing.T) {
	user := testUser()
	storage := new(mocks.MockObjectStorage)
	docs := new(mocks.MockDocumentStore)

	var uploadedKey string
	storage.On("Put", mock.Anything, mock.MatchedBy(func(in port.PutInput) bool {
		uploadedKey = in.Key
		return strings.HasPrefix(in.Key, "users/"+user.ID.String()+"/tickets/") &&
			strings.HasSuffix(in.Key, ".png") &&
			in.ContentType == "image/png"
	})).Return(&port.ObjectRef{Bucket: "b", Key: "k"}, nil).Once()
	storage.On("URLFor", mock.Anything, port.ObjectRef{Bucket: "b", Key: "k"}).
		Return("https://cdn.example/k", nil).Once()

	docs.On("Insert", mock.Anything, service.ListingsCollection, mock.MatchedBy(func(rec any) bool {
		l, ok := rec.(*domain.Listing)
		return ok &&
			l.Ticket == "https://cdn.example/k" &&
			l.Event == domain.EventFootball &&
			l.UserID == user.ID.String() &&
			l.UserName != nil && *l.UserName == "Terp Seller" &&
			l.UserGmail != nil && *l.UserGmail == "seller@terpmail.umd.edu" &&
			l.PostDate == nil
	})).Return("doc-1", nil).Once()

	sub := service.NewListingSubmission(storage, docs, user)
	fillListingDraft(sub.Draft())

	outcome, err := sub.Submit(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, service.OutcomeSucceeded, outcome.Kind)
	assert.Equal(t, "doc-1", outcome.DocumentID)
	assert.NotEmpty(t, uploadedKey)
	assert.False(t, sub.Draft().Dirty())

	storage.AssertExpectations(t)
	docs.AssertExpectations(t)
}

func TestListingSubmission_OversizeTicketSkipsCollaborators(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	docs := new(mocks.MockDocumentStore)

	sub := service.NewListingSubmission(storage, docs, testUser())
	fillListingDraft(sub.Draft())
	sub.Draft().SetFiles(forms.FieldTicket, []*forms.FileSelection{{
		Filename:    "huge.png",
		Size:        8 * 1024 * 1024,
		ContentType: "image/png",
		Body:        strings.NewReader("x"),
	}})

	outcome, err := sub.Submit(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, service.OutcomeInvalid, outcome.Kind)
	assert.Equal(t, "Max image size is roughly 5MB.", outcome.FieldErrors[forms.FieldTicket])

	storage.AssertNotCalled(t, "Put")
	docs.AssertNotCalled(t, "Insert")
}

func TestListingSubmission_UploadFailure(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	docs := new(mocks.MockDocumentStore)
	storage.On("Put", mock.Anything, mock.Anything).
		Return(nil, errors.New("storage/unauthorized")).Once()

	sub := service.NewListingSubmission(storage, docs, testUser())
	fillListingDraft(sub.Draft())

	outcome, err := sub.Submit(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, service.OutcomeFailed, outcome.Kind)
	assert.Equal(t, service.StageUpload, outcome.Stage)
	assert.Equal(t, "storage/unauthorized", outcome.Reason)

	// Text fields survive for retry; the consumed file selection does not.
	assert.Equal(t, "Section 25, row C", sub.Draft().Value(forms.FieldDescription))
	assert.Empty(t, sub.Draft().Files(forms.FieldTicket))
	docs.AssertNotCalled(t, "Insert")
}

func TestListingSubmission_WriteFailureAfterUpload(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	docs := new(mocks.MockDocumentStore)
	storage.On("Put", mock.Anything, mock.Anything).
		Return(&port.ObjectRef{Bucket: "b", Key: "k"}, nil).Once()
	storage.On("URLFor", mock.Anything, mock.Anything).
		Return("https://cdn.example/k", nil).Once()
	docs.On("Insert", mock.Anything, service.ListingsCollection, mock.Anything).
		Return("", errors.New("firestore/unavailable")).Once()

	sub := service.NewListingSubmission(storage, docs, testUser())
	fillListingDraft(sub.Draft())

	outcome, err := sub.Submit(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, service.OutcomeFailed, outcome.Kind)
	assert.Equal(t, service.StageWrite, outcome.Stage)
	assert.Equal(t, "firestore/unavailable", outcome.Reason)
	assert.Equal(t, "firestore/unavailable", sub.Draft().FieldError(forms.FormField))

	// The upload is not compensated; only one Put ever happened.
	storage.AssertNumberOfCalls(t, "Put", 1)
}

func TestListingSubmission_DraftReusableAfterFailure(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	docs := new(mocks.MockDocumentStore)
	storage.On("Put", mock.Anything, mock.Anything).
		Return(nil, errors.New("storage/unavailable")).Once()

	sub := service.NewListingSubmission(storage, docs, testUser())
	fillListingDraft(sub.Draft())

	_, err := sub.Submit(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, service.StateIdle, sub.State())

	// Re-attaching a file makes the same draft submittable again.
	storage.On("Put", mock.Anything, mock.Anything).
		Return(&port.ObjectRef{Bucket: "b", Key: "k2"}, nil).Once()
	storage.On("URLFor", mock.Anything, mock.Anything).
		Return("https://cdn.example/k2", nil).Once()
	docs.On("Insert", mock.Anything, service.ListingsCollection, mock.Anything).
		Return("doc-2", nil).Once()

	sub.Draft().SetFiles(forms.FieldTicket, []*forms.FileSelection{{
		Filename:    "ticket.png",
		Size:        2048,
		ContentType: "image/png",
		Body:        strings.NewReader("png-bytes"),
	}})

	outcome, err := sub.Submit(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, service.OutcomeSucceeded, outcome.Kind)
	assert.Equal(t, "doc-2", outcome.DocumentID)
}
