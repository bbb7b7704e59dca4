package forms

import (
	"io"
	"path/filepath"
	"strings"
)

// FileSelection is one entry from a file-picker selection. Body is a
// consumed-once reader; a selection dropped after a failed submission
// cannot be restored programmatically.
type FileSelection struct {
	Filename    string
	Size        int64
	ContentType string
	Body        io.Reader
}

// Ext returns the file extension (with dot) derived from the filename,
// lower-cased. Empty when the filename has none.
func (f *FileSelection) Ext() string {
	return strings.ToLower(filepath.Ext(f.Filename))
}

// Draft is the mutable, in-memory representation of one form's field
// values: the field binding layer. It owns the latest field error map and
// re-runs validation on every change. It performs no I/O.
type Draft struct {
	rules  *RuleSet
	values map[string]string
	files  map[string][]*FileSelection
	errs   FieldErrors
	dirty  bool
}

// NewDraft creates an empty draft bound to a rule set.
func NewDraft(rules *RuleSet) *Draft {
	return &Draft{
		rules:  rules,
		values: make(map[string]string),
		files:  make(map[string][]*FileSelection),
		errs:   make(FieldErrors),
	}
}

// Set stores a field value, marks the draft dirty, and re-validates.
func (d *Draft) Set(field, value string) {
	d.values[field] = value
	d.dirty = true
	d.errs = d.rules.Validate(d)
}

// SetFiles stores a file-picker selection for a field, marks the draft
// dirty, and re-validates. An empty selection is the canonical "absent".
func (d *Draft) SetFiles(field string, selection []*FileSelection) {
	d.files[field] = selection
	d.dirty = true
	d.errs = d.rules.Validate(d)
}

// Value returns the current raw value of a field.
func (d *Draft) Value(field string) string {
	return d.values[field]
}

// Files returns the current file selection of a field.
func (d *Draft) Files(field string) []*FileSelection {
	return d.files[field]
}

// Dirty reports whether any field has been changed since the last reset.
func (d *Draft) Dirty() bool {
	return d.dirty
}

// Validate runs the authoritative validation pass, replacing the error
// map wholesale, and returns it.
func (d *Draft) Validate() FieldErrors {
	d.errs = d.rules.Validate(d)
	return d.errs
}

// Errors returns the latest error map regardless of dirtiness.
func (d *Draft) Errors() FieldErrors {
	return d.errs
}

// FieldError returns the field's current error message, or "" while the
// form is untouched: errors are not shown before first interaction.
func (d *Draft) FieldError(field string) string {
	if !d.dirty {
		return ""
	}
	return d.errs[field]
}

// SetFormError attaches a collaborator failure message to the form-level
// error key, replacing any previous form-level message.
func (d *Draft) SetFormError(message string) {
	d.errs[FormField] = message
	d.dirty = true
}

// ClearFiles drops all file selections. Their readers are consumed by a
// submission attempt and cannot be replayed.
func (d *Draft) ClearFiles() {
	d.files = make(map[string][]*FileSelection)
}

// Reset discards all values, selections, and errors, returning the draft
// to its untouched state.
func (d *Draft) Reset() {
	d.values = make(map[string]string)
	d.files = make(map[string][]*FileSelection)
	d.errs = make(FieldErrors)
	d.dirty = false
}
