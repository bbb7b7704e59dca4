package forms_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"terptickets/internal/forms"
)

func TestDraft_ErrorsHiddenUntilDirty(t *testing.T) {
	d := forms.NewDraft(forms.SignUpRules())

	// Untouched draft reports no per-field errors even though the
	// empty email would fail validation.
	assert.False(t, d.Dirty())
	assert.Equal(t, "", d.FieldError(forms.FieldEmail))

	d.Set(forms.FieldEmail, "")
	assert.True(t, d.Dirty())
	assert.Equal(t, "Email required", d.FieldError(forms.FieldEmail))
}

func TestDraft_SetRevalidates(t *testing.T) {
	d := forms.NewDraft(forms.SignUpRules())

	d.Set(forms.FieldEmail, "not-an-email")
	assert.Equal(t, "Invalid email address", d.FieldError(forms.FieldEmail))

	d.Set(forms.FieldEmail, "student@terpmail.umd.edu")
	assert.Equal(t, "", d.FieldError(forms.FieldEmail))
}

func TestDraft_ValidateIsIdempotent(t *testing.T) {
	d := forms.NewDraft(forms.LoginRules())
	d.Set(forms.FieldEmail, "bad")

	first := d.Validate()
	second := d.Validate()
	assert.Equal(t, first, second)
}

func TestDraft_FormError(t *testing.T) {
	d := forms.NewDraft(forms.LoginRules())

	d.SetFormError("auth/user-not-found")
	assert.True(t, d.Dirty())
	assert.Equal(t, "auth/user-not-found", d.FieldError(forms.FormField))

	d.SetFormError("auth/wrong-password")
	assert.Equal(t, "auth/wrong-password", d.FieldError(forms.FormField))
}

func TestDraft_Reset(t *testing.T) {
	d := forms.NewDraft(forms.ListingRules())
	d.Set(forms.FieldEvent, "Football")
	d.SetFiles(forms.FieldTicket, []*forms.FileSelection{{
		Filename: "ticket.png", Size: 100, ContentType: "image/png",
		Body: strings.NewReader("png"),
	}})
	d.SetFormError("boom")

	d.Reset()

	assert.False(t, d.Dirty())
	assert.Equal(t, "", d.Value(forms.FieldEvent))
	assert.Empty(t, d.Files(forms.FieldTicket))
	assert.True(t, d.Errors().Empty())
}

func TestDraft_ClearFilesKeepsValues(t *testing.T) {
	d := forms.NewDraft(forms.ListingRules())
	d.Set(forms.FieldDescription, "front row")
	d.SetFiles(forms.FieldTicket, []*forms.FileSelection{{
		Filename: "t.jpg", Size: 1, ContentType: "image/jpeg",
		Body: strings.NewReader("x"),
	}})

	d.ClearFiles()

	assert.Empty(t, d.Files(forms.FieldTicket))
	assert.Equal(t, "front row", d.Value(forms.FieldDescription))
}

func TestFileSelection_Ext(t *testing.T) {
	f := &forms.FileSelection{Filename: "Ticket.PNG"}
	assert.Equal(t, ".png", f.Ext())

	f = &forms.FileSelection{Filename: "noext"}
	assert.Equal(t, "", f.Ext())
}
