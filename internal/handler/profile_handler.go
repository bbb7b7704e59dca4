package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"terptickets/internal/forms"
	"terptickets/internal/middleware"
	"terptickets/internal/port"
	"terptickets/internal/service"
)

// ProfileHandler handles the profile-update form.
type ProfileHandler struct {
	identity port.Identity
	storage  port.ObjectStorage
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(identity port.Identity, storage port.ObjectStorage) *ProfileHandler {
	return &ProfileHandler{identity: identity, storage: storage}
}

// Update handles PUT /api/v1/profile as a multipart form with fields
// name, phoneNumber, and an optional profilePic file part.
func (h *ProfileHandler) Update(c *gin.Context) {
	user, err := middleware.GetUser(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	sub := service.NewProfileSubmission(h.identity, h.storage, user)
	draft := sub.Draft()
	draft.Set(forms.FieldName, c.PostForm(forms.FieldName))
	draft.Set(forms.FieldPhoneNumber, c.PostForm(forms.FieldPhoneNumber))

	avatar, file, err := formFileSelection(c, forms.FieldProfilePic)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if avatar != nil {
		defer file.Close()
		draft.SetFiles(forms.FieldProfilePic, []*forms.FileSelection{avatar})
	}

	outcome, err := sub.Submit(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	switch outcome.Kind {
	case service.OutcomeInvalid:
		RespondInvalid(c, outcome.FieldErrors)
	case service.OutcomeFailed:
		RespondFailed(c, outcome)
	default:
		RespondOK(c, gin.H{"photoURL": outcome.PhotoURL})
	}
}

// formFileSelection reads one multipart file part into a FileSelection.
// A missing part is not an error; it returns nil. The caller owns the
// returned file handle.
func formFileSelection(c *gin.Context, field string) (*forms.FileSelection, multipart.File, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("reading %s part: %w", field, err)
	}

	file, err := header.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s part: %w", field, err)
	}

	return &forms.FileSelection{
		Filename:    header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	}, file, nil
}
