package forms

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Rule is a single declarative predicate on a draft. Check returns true
// when the draft satisfies the rule; Message is attached to Field when it
// does not.
type Rule struct {
	Field   string
	Message string
	Check   func(d *Draft) bool
}

// RuleSet is the complete, immutable set of validation predicates for one
// form variant: ordered per-field rules plus cross-field rules. A draft is
// submittable iff every predicate holds.
type RuleSet struct {
	rules []Rule
	cross []Rule
}

// NewRuleSet builds a rule set from ordered per-field rules.
func NewRuleSet(rules ...Rule) *RuleSet {
	return &RuleSet{rules: rules}
}

// Cross appends cross-field rules and returns the rule set for chaining.
func (rs *RuleSet) Cross(rules ...Rule) *RuleSet {
	rs.cross = append(rs.cross, rules...)
	return rs
}

// Validate evaluates every rule against the draft and returns a fresh
// error map. All rules run; no early exit per field. When several rules
// fail on one field the first registered rule's message wins.
func (rs *RuleSet) Validate(d *Draft) FieldErrors {
	errs := make(FieldErrors)
	for _, r := range rs.rules {
		if !r.Check(d) {
			errs.add(r.Field, r.Message)
		}
	}
	for _, r := range rs.cross {
		if !r.Check(d) {
			errs.add(r.Field, r.Message)
		}
	}
	return errs
}

// Required fails when the field value is empty.
func Required(field, message string) Rule {
	return Rule{Field: field, Message: message, Check: func(d *Draft) bool {
		return d.Value(field) != ""
	}}
}

// Email fails when the field value is not an RFC-shaped email address.
// An empty value passes; pair with Required to make the field mandatory.
func Email(field, message string) Rule {
	return Rule{Field: field, Message: message, Check: func(d *Draft) bool {
		v := d.Value(field)
		if v == "" {
			return true
		}
		_, err := mail.ParseAddress(v)
		return err == nil
	}}
}

// MinLen fails when the field value is shorter than n characters.
func MinLen(field string, n int, message string) Rule {
	return Rule{Field: field, Message: message, Check: func(d *Draft) bool {
		return len(d.Value(field)) >= n
	}}
}

// Pattern fails when a non-empty field value does not match re. Empty
// values pass, making the field optional.
func Pattern(field string, re *regexp.Regexp, message string) Rule {
	return Rule{Field: field, Message: message, Check: func(d *Draft) bool {
		v := d.Value(field)
		return v == "" || re.MatchString(v)
	}}
}

// OneOf fails when the field value is not in the allowed set.
func OneOf(field string, allowed []string, message string) Rule {
	return Rule{Field: field, Message: message, Check: func(d *Draft) bool {
		v := d.Value(field)
		for _, a := range allowed {
			if v == a {
				return true
			}
		}
		return false
	}}
}

// NonNegativeDecimal fails when a non-empty field value does not parse as
// a decimal, or parses negative. Empty values pass.
func NonNegativeDecimal(field, message string) Rule {
	return Rule{Field: field, Message: message, Check: func(d *Draft) bool {
		v := d.Value(field)
		if v == "" {
			return true
		}
		dec, err := decimal.NewFromString(v)
		return err == nil && !dec.IsNegative()
	}}
}

// FieldsMatch fails when two field values differ. The error is attached
// to the second field.
func FieldsMatch(field, other, message string) Rule {
	return Rule{Field: other, Message: message, Check: func(d *Draft) bool {
		return d.Value(field) == d.Value(other)
	}}
}

// FileRequired fails when the field's file selection is empty.
func FileRequired(field, message string) Rule {
	return Rule{Field: field, Message: message, Check: func(d *Draft) bool {
		return len(d.Files(field)) > 0
	}}
}

// FileMaxSize fails when the first selected file exceeds max bytes. An
// empty selection passes: absence is valid, "present but invalid" is not.
func FileMaxSize(field string, max int64, message string) Rule {
	return Rule{Field: field, Message: message, Check: func(d *Draft) bool {
		files := d.Files(field)
		if len(files) == 0 {
			return true
		}
		return files[0].Size <= max
	}}
}

// FileContentType fails when the first selected file's MIME type is not
// in the allowed set. An empty selection passes.
func FileContentType(field string, allowed map[string]string, message string) Rule {
	return Rule{Field: field, Message: message, Check: func(d *Draft) bool {
		files := d.Files(field)
		if len(files) == 0 {
			return true
		}
		_, ok := allowed[files[0].ContentType]
		return ok
	}}
}

// AnyPresent fails unless at least one of: a field with non-blank trimmed
// text, or a file field with a non-empty selection, is supplied. The
// error is attached to the form-level key.
func AnyPresent(textField, fileField, message string) Rule {
	return Rule{Field: FormField, Message: message, Check: func(d *Draft) bool {
		return strings.TrimSpace(d.Value(textField)) != "" || len(d.Files(fileField)) > 0
	}}
}
