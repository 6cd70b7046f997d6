package domain

import (
	"time"

	"github.com/google/uuid"
)

// Field names as exposed to API clients. Validation failures are keyed by these.
const (
	FieldFullName = "fullName"
	FieldPhone    = "phone"
	FieldEmail    = "email"
	FieldPassword = "password"
)

// Column limits of the users table.
const (
	MaxFullNameLength = 60
	MaxPhoneLength    = 15
	MaxEmailLength    = 60
)

// User represents a persisted user record.
type User struct {
	ID         uuid.UUID
	FullName   string
	Phone      string
	Email      string
	Password   string
	CreateDate time.Time
	UpdateDate time.Time
}

// UserDTO is the credential-free view of a user handed to API clients.
type UserDTO struct {
	ID         uuid.UUID
	FullName   string
	Phone      string
	Email      string
	CreateDate time.Time
	UpdateDate time.Time
}

// DateOf truncates t to its calendar day, expressed as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MarkCreated stamps both dates for a record about to be persisted for the first time.
// Any caller supplied identity is discarded; the store assigns it.
func (u *User) MarkCreated(today time.Time) {
	day := DateOf(today)
	u.ID = uuid.Nil
	u.CreateDate = day
	u.UpdateDate = day
}

// MergeFrom keeps identity and contact fields of the existing record and refreshes
// the update date. Only the password of the receiver survives the merge.
func (u *User) MergeFrom(existing *User, today time.Time) {
	u.ID = existing.ID
	u.Email = existing.Email
	u.FullName = existing.FullName
	u.Phone = existing.Phone
	u.CreateDate = existing.CreateDate
	u.UpdateDate = DateOf(today)
	if u.UpdateDate.Before(u.CreateDate) {
		u.UpdateDate = u.CreateDate
	}
}

// Clone returns a shallow copy safe to hand across adapter boundaries.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}
