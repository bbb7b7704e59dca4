package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRecord is the identity provider's view of an account.
type UserRecord struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	DisplayName  string    `db:"display_name" json:"display_name"`
	PhotoURL     string    `db:"photo_url" json:"photo_url"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Session is an authenticated session issued by the identity provider.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
}

// ProfileUpdate is a partial profile payload. Only non-nil fields are
// applied; absent fields leave the provider-held values untouched.
type ProfileUpdate struct {
	DisplayName *string `json:"displayName,omitempty"`
	PhotoURL    *string `json:"photoURL,omitempty"`
}

// Empty reports whether the update carries no fields at all.
func (u ProfileUpdate) Empty() bool {
	return u.DisplayName == nil && u.PhotoURL == nil
}

// Listing is the persisted ticket-listing record handed to the document
// store. PostDate is server-assigned at write time and left zero here.
type Listing struct {
	Event       EventType       `json:"event"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Date        time.Time       `json:"date"`
	Ticket      string          `json:"ticket"`
	UserID      string          `json:"userID"`
	UserName    *string         `json:"userName"`
	UserGmail   *string         `json:"userGmail"`
	PostDate    *time.Time      `json:"postDate,omitempty"`
}
