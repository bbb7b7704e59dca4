package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"terptickets/internal/domain"
	"terptickets/internal/forms"
	"terptickets/internal/port"
)

// ListingsCollection is the document-store collection listings are
// written to.
const ListingsCollection = "listings"

// ListingSubmission is the submission controller for the listing-creation
// form: upload the ticket image, then write one listing document carrying
// the returned URL. The sequence is best-effort, not exactly-once; a
// write failure leaves the uploaded image orphaned.
type ListingSubmission struct {
	submitGuard
	draft   *forms.Draft
	storage port.ObjectStorage
	docs    port.DocumentStore
	user    *domain.UserRecord
}

// NewListingSubmission creates a listing controller for one user.
func NewListingSubmission(storage port.ObjectStorage, docs port.DocumentStore, user *domain.UserRecord) *ListingSubmission {
	return &ListingSubmission{
		draft:   forms.NewDraft(forms.ListingRules()),
		storage: storage,
		docs:    docs,
		user:    user,
	}
}

// Draft exposes the field binding layer for this form instance.
func (s *ListingSubmission) Draft() *forms.Draft { return s.draft }

// Submit validates the draft, uploads the ticket image under a freshly
// generated key, and inserts the listing document. The post timestamp is
// assigned by the store.
func (s *ListingSubmission) Submit(ctx context.Context) (*Outcome, error) {
	if !s.begin() {
		return nil, domain.ErrSubmitInFlight
	}
	defer s.end()

	data, ferrs := forms.ParseListing(s.draft)
	if ferrs != nil {
		return invalidOutcome(ferrs), nil
	}

	s.submitting()

	// Collision-free by construction: a fresh UUID per upload.
	key := fmt.Sprintf("users/%s/tickets/%s%s", s.user.ID, uuid.New(), imageExt(data.Ticket))
	ref, err := s.storage.Put(ctx, port.PutInput{
		Key:         key,
		Body:        data.Ticket.Body,
		ContentType: data.Ticket.ContentType,
		Size:        data.Ticket.Size,
	})
	if err != nil {
		s.draft.ClearFiles()
		s.draft.SetFormError(err.Error())
		return failedOutcome(StageUpload, err), nil
	}

	ticketURL, err := s.storage.URLFor(ctx, *ref)
	if err != nil {
		s.draft.ClearFiles()
		s.draft.SetFormError(err.Error())
		return failedOutcome(StageUpload, err), nil
	}

	listing := &domain.Listing{
		Event:       data.Event,
		Description: data.Description,
		Price:       data.Price,
		Date:        data.Date,
		Ticket:      ticketURL,
		UserID:      s.user.ID.String(),
		UserName:    optional(s.user.DisplayName),
		UserGmail:   optional(s.user.Email),
	}

	docID, err := s.docs.Insert(ctx, ListingsCollection, listing)
	if err != nil {
		log.Printf("listingSubmission.Submit: image uploaded to %s but document write failed; object orphaned", key)
		s.draft.ClearFiles()
		s.draft.SetFormError(err.Error())
		return failedOutcome(StageWrite, err), nil
	}

	s.draft.Reset()
	return &Outcome{Kind: OutcomeSucceeded, DocumentID: docID}, nil
}

// optional maps "" to nil for nullable document fields.
func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
