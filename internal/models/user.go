package models

import (
	"database/sql"
	"time"
)

// AccountStatus tracks where a client sits in the document-verification
// lifecycle. Reservations are only accepted while the status is
// AccountApproved.
type AccountStatus string

const (
	// AccountPending is the default after registration, before all
	// required documents have been uploaded.
	AccountPending AccountStatus = "pending"

	// AccountSubmitted means every required document type is on file and
	// the account is waiting for an administrator's decision.
	AccountSubmitted AccountStatus = "submitted"

	AccountApproved AccountStatus = "approved"
	AccountRejected AccountStatus = "rejected"
)

func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountPending, AccountSubmitted, AccountApproved, AccountRejected:
		return true
	}
	return false
}

type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

type User struct {
	ID             string         `db:"id"`
	FullName       string         `db:"full_name"`
	PhoneNumber    string         `db:"phone_number"`
	Email          string         `db:"email"`
	Role           Role           `db:"role"`
	Status         AccountStatus  `db:"status"`
	Locked         bool           `db:"locked"`
	Image          sql.NullString `db:"image"`
	CreatedAt      time.Time      `db:"created_at"`
	DeletedAt      sql.NullTime   `db:"deleted_at"`
	ReviewedAt     sql.NullTime   `db:"reviewed_at"`
	HashedPassword string         `db:"hashed_password"`

	// Populated by joined reads only.
	Documents []Document `db:"-"`
}
