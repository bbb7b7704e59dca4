package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"terptickets/internal/forms"
	"terptickets/internal/middleware"
	"terptickets/internal/port"
	"terptickets/internal/service"
)

// ListingHandler handles the listing-creation form.
type ListingHandler struct {
	storage port.ObjectStorage
	docs    port.DocumentStore
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(storage port.ObjectStorage, docs port.DocumentStore) *ListingHandler {
	return &ListingHandler{storage: storage, docs: docs}
}

// Create handles POST /api/v1/listings as a multipart form with fields
// event, date, description, price, and a mandatory ticket file part.
func (h *ListingHandler) Create(c *gin.Context) {
	user, err := middleware.GetUser(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	sub := service.NewListingSubmission(h.storage, h.docs, user)
	draft := sub.Draft()
	draft.Set(forms.FieldEvent, c.PostForm(forms.FieldEvent))
	draft.Set(forms.FieldDate, c.PostForm(forms.FieldDate))
	draft.Set(forms.FieldDescription, c.PostForm(forms.FieldDescription))
	draft.Set(forms.FieldPrice, c.PostForm(forms.FieldPrice))

	ticket, file, err := formFileSelection(c, forms.FieldTicket)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if ticket != nil {
		defer file.Close()
		draft.SetFiles(forms.FieldTicket, []*forms.FileSelection{ticket})
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
		RespondCreated(c, gin.H{"id": outcome.DocumentID})
	}
}
