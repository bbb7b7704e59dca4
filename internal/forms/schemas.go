package forms

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"terptickets/internal/domain"
)

// Field names, matching the rendered form inputs.
const (
	FieldEmail          = "email"
	FieldPassword       = "password"
	FieldVerifyPassword = "verifyPassword"
	FieldName           = "name"
	FieldPhoneNumber    = "phoneNumber"
	FieldProfilePic     = "profilePic"
	FieldEvent          = "event"
	FieldDate           = "date"
	FieldDescription    = "description"
	FieldPrice          = "price"
	FieldTicket         = "ticket"
)

// dateLayout is the wire format of the date picker.
const dateLayout = "2006-01-02"

var phonePattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)

const (
	msgImageTooLarge   = "Max image size is roughly 5MB."
	msgImageBadFormat  = "Only .jpg, .jpeg, .png, and .webp formats are supported."
	msgProfileEmpty    = "Provide a name or a profile picture"
	msgInvalidPhone    = "Invalid phone number format"
	msgTicketRequired  = "Picture must be attached"
	msgInvalidEmail    = "Invalid email address"
	msgEmailRequired   = "Email required"
	msgPasswordLen     = "Password must be longer than 6 characters"
	msgPasswordsDiffer = "Passwords do not match"
)

// SignUpRules is the rule set for the registration form.
func SignUpRules() *RuleSet {
	return NewRuleSet(
		Required(FieldEmail, msgEmailRequired),
		Email(FieldEmail, msgInvalidEmail),
		MinLen(FieldPassword, 6, msgPasswordLen),
		MinLen(FieldVerifyPassword, 6, "Verify password must be longer than 6 characters"),
	).Cross(
		FieldsMatch(FieldPassword, FieldVerifyPassword, msgPasswordsDiffer),
	)
}

// LoginRules is the rule set for the login form.
func LoginRules() *RuleSet {
	return NewRuleSet(
		Required(FieldEmail, msgEmailRequired),
		Email(FieldEmail, msgInvalidEmail),
		Required(FieldPassword, "Password required"),
	)
}

// ProfileRules is the rule set for the profile-update form. Name is a
// free string and the avatar is optional, but at least one of the two
// must be supplied.
func ProfileRules() *RuleSet {
	return NewRuleSet(
		Pattern(FieldPhoneNumber, phonePattern, msgInvalidPhone),
		FileMaxSize(FieldProfilePic, domain.MaxImageSize, msgImageTooLarge),
		FileContentType(FieldProfilePic, domain.AllowedImageTypes, msgImageBadFormat),
	).Cross(
		AnyPresent(FieldName, FieldProfilePic, msgProfileEmpty),
	)
}

// ListingRules is the rule set for the listing-creation form. The ticket
// image is mandatory, unlike the avatar.
func ListingRules() *RuleSet {
	return NewRuleSet(
		Required(FieldEvent, "Event type required"),
		OneOf(FieldEvent, domain.EventTypeNames(), "Unknown event type"),
		Required(FieldDate, "Date required"),
		Rule{Field: FieldDate, Message: "Invalid date", Check: func(d *Draft) bool {
			v := d.Value(FieldDate)
			if v == "" {
				return true
			}
			_, err := time.Parse(dateLayout, v)
			return err == nil
		}},
		Required(FieldDescription, "Description required"),
		Required(FieldPrice, "Price required"),
		NonNegativeDecimal(FieldPrice, "Price must be a non-negative number"),
		FileRequired(FieldTicket, msgTicketRequired),
		FileMaxSize(FieldTicket, domain.MaxImageSize, msgImageTooLarge),
		FileContentType(FieldTicket, domain.AllowedImageTypes, msgImageBadFormat),
	)
}

// SignUpData is the normalized sign-up output.
type SignUpData struct {
	Email    string
	Password string
}

// LoginData is the normalized login output.
type LoginData struct {
	Email    string
	Password string
}

// ProfileData is the normalized profile-update output. Avatar is nil when
// no file was selected; Phone is "" when the field was left blank.
type ProfileData struct {
	Name   string
	Phone  string
	Avatar *FileSelection
}

// ListingData is the normalized listing-creation output.
type ListingData struct {
	Event       domain.EventType
	Date        time.Time
	Description string
	Price       decimal.Decimal
	Ticket      *FileSelection
}

// ParseSignUp runs the authoritative validation pass and, on success,
// returns the typed sign-up record.
func ParseSignUp(d *Draft) (*SignUpData, FieldErrors) {
	if errs := d.Validate(); !errs.Empty() {
		return nil, errs
	}
	return &SignUpData{
		Email:    d.Value(FieldEmail),
		Password: d.Value(FieldPassword),
	}, nil
}

// ParseLogin runs the authoritative validation pass and, on success,
// returns the typed login record.
func ParseLogin(d *Draft) (*LoginData, FieldErrors) {
	if errs := d.Validate(); !errs.Empty() {
		return nil, errs
	}
	return &LoginData{
		Email:    d.Value(FieldEmail),
		Password: d.Value(FieldPassword),
	}, nil
}

// ParseProfile runs the authoritative validation pass and, on success,
// returns the typed profile record with the avatar resolved to a single
// file or nil.
func ParseProfile(d *Draft) (*ProfileData, FieldErrors) {
	if errs := d.Validate(); !errs.Empty() {
		return nil, errs
	}
	return &ProfileData{
		Name:   d.Value(FieldName),
		Phone:  d.Value(FieldPhoneNumber),
		Avatar: firstFile(d, FieldProfilePic),
	}, nil
}

// ParseListing runs the authoritative validation pass and, on success,
// returns the typed listing record with price and date normalized.
func ParseListing(d *Draft) (*ListingData, FieldErrors) {
	if errs := d.Validate(); !errs.Empty() {
		return nil, errs
	}
	date, _ := time.Parse(dateLayout, d.Value(FieldDate))
	price, _ := decimal.NewFromString(d.Value(FieldPrice))
	return &ListingData{
		Event:       domain.EventType(d.Value(FieldEvent)),
		Date:        date,
		Description: d.Value(FieldDescription),
		Price:       price,
		Ticket:      firstFile(d, FieldTicket),
	}, nil
}

func firstFile(d *Draft, field string) *FileSelection {
	files := d.Files(field)
	if len(files) == 0 {
		return nil
	}
	return files[0]
}
