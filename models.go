package authapi

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the durable credential record. Emails are unique and always
// stored lowercase; PasswordHash and ResetToken never serialize.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	IsActive      bool       `bun:"is_active,notnull,default:true" json:"isActive"`
	ResetToken    string     `bun:"reset_token,nullzero" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt,omitempty"`
}

// Validate enforces record-level invariants before a write.
func (u *User) Validate() error {
	err := validation.ValidateStruct(u,
		validation.Field(&u.Name, validation.Required),
		validation.Field(&u.Email, validation.Required, is.Email),
		validation.Field(&u.PasswordHash, validation.Required),
	)
	if err == nil {
		return nil
	}

	if errs, ok := err.(validation.Errors); ok {
		if _, bad := errs["email"]; bad && u.Email != "" {
			return ErrInvalidEmail
		}
	}

	return ErrMissingParameters
}

// Sanitized returns a copy safe to hand to the transport layer: the
// hash and any outstanding reset token are cleared on top of the json
// tags already hiding them.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	out := *u
	out.PasswordHash = ""
	out.ResetToken = ""
	return &out
}

// NormalizeEmail lowercases and trims an email before any lookup or
// write. Every store access goes through here.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
