package service

import (
	"context"
	"fmt"
	"log"

	"terptickets/internal/domain"
	"terptickets/internal/forms"
	"terptickets/internal/port"
)

// ProfileSubmission is the submission controller for the profile-update
// form. When an avatar is attached it is uploaded before the profile
// write; the two calls are not atomic, so a write failure can leave the
// uploaded object orphaned. No compensating delete is attempted.
type ProfileSubmission struct {
	submitGuard
	draft    *forms.Draft
	identity port.Identity
	storage  port.ObjectStorage
	user     *domain.UserRecord
}

// NewProfileSubmission creates a profile-update controller for one user.
func NewProfileSubmission(identity port.Identity, storage port.ObjectStorage, user *domain.UserRecord) *ProfileSubmission {
	return &ProfileSubmission{
		draft:    forms.NewDraft(forms.ProfileRules()),
		identity: identity,
		storage:  storage,
		user:     user,
	}
}

// Draft exposes the field binding layer for this form instance.
func (s *ProfileSubmission) Draft() *forms.Draft { return s.draft }

// Submit validates the draft, uploads the avatar if one was attached, and
// sends a partial profile update carrying only the supplied fields.
func (s *ProfileSubmission) Submit(ctx context.Context) (*Outcome, error) {
	if !s.begin() {
		return nil, domain.ErrSubmitInFlight
	}
	defer s.end()

	data, ferrs := forms.ParseProfile(s.draft)
	if ferrs != nil {
		return invalidOutcome(ferrs), nil
	}

	s.submitting()

	var update domain.ProfileUpdate
	if data.Name != "" {
		update.DisplayName = &data.Name
	}

	var photoURL string
	if data.Avatar != nil {
		// Fixed key per user: each update overwrites the previous avatar.
		key := fmt.Sprintf("users/%s/profilePicture%s", s.user.ID, imageExt(data.Avatar))
		ref, err := s.storage.Put(ctx, port.PutInput{
			Key:         key,
			Body:        data.Avatar.Body,
			ContentType: data.Avatar.ContentType,
			Size:        data.Avatar.Size,
		})
		if err != nil {
			s.draft.ClearFiles()
			s.draft.SetFormError(err.Error())
			return failedOutcome(StageUpload, err), nil
		}
		photoURL, err = s.storage.URLFor(ctx, *ref)
		if err != nil {
			s.draft.ClearFiles()
			s.draft.SetFormError(err.Error())
			return failedOutcome(StageUpload, err), nil
		}
		update.PhotoURL = &photoURL
	}

	if err := s.identity.UpdateProfile(ctx, s.user.ID, update); err != nil {
		if update.PhotoURL != nil {
			log.Printf("profileSubmission.Submit: avatar uploaded but profile write failed for %s; object orphaned", s.user.ID)
		}
		s.draft.ClearFiles()
		s.draft.SetFormError(err.Error())
		return failedOutcome(StageWrite, err), nil
	}

	s.draft.Reset()
	return &Outcome{Kind: OutcomeSucceeded, PhotoURL: photoURL}, nil
}

// imageExt resolves the stored object's extension, preferring the
// selected file's own extension and falling back to the MIME type.
func imageExt(f *forms.FileSelection) string {
	if ext := f.Ext(); ext != "" {
		return ext
	}
	if ext, ok := domain.AllowedImageTypes[f.ContentType]; ok {
		return ext
	}
	return ""
}
