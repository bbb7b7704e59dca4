package forms

// FormField is the reserved key for errors that belong to the form as a
// whole rather than to a single field.
const FormField = "_form"

// FieldErrors maps field names to human-readable messages. An empty map
// means the draft is valid. Each validation pass fully replaces the map.
type FieldErrors map[string]string

// add records a message for a field unless one is already present.
// First-wins: when several rules fail on the same field, the earliest
// registered rule supplies the message.
func (e FieldErrors) add(field, message string) {
	if _, ok := e[field]; !ok {
		e[field] = message
	}
}

// Has reports whether the field currently carries an error.
func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Empty reports whether no field carries an error.
func (e FieldErrors) Empty() bool {
	return len(e) == 0
}
