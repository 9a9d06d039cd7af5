package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/aussiebroadwan/tripplan/internal/planner/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface implemented by each driver
// (sqlite, mongo). Sub-repositories are exposed as methods so a Tx can hand
// out the same repositories bound to the transaction.
type Store interface {
	Users() Users
	OTPs() OTPs
	History() History

	// ApplyMigrations brings the schema (or indexes) up to date.
	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transaction scoped Store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// FindUserByEmailOrMobile matches either field. An empty mobile only
	// matches on email.
	FindUserByEmailOrMobile(ctx context.Context, email, mobile string) (domain.User, error)

	// CreateUser inserts u. A taken email or mobile yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash replaces the stored hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID, hash string, now time.Time) error
}

type OTPs interface {
	CreateOTP(ctx context.Context, r domain.OTPRecord) error

	// FindActiveOTP returns a record for email whose code fingerprint matches
	// and which was issued strictly after issuedAfter. An empty purpose
	// matches records of any purpose.
	FindActiveOTP(ctx context.Context, email, codeHash string, purpose domain.OTPPurpose, issuedAfter time.Time) (domain.OTPRecord, error)

	// DeleteOTPsByEmail removes every record for email regardless of purpose.
	DeleteOTPsByEmail(ctx context.Context, email string) (int64, error)

	CountOTPsByEmail(ctx context.Context, email string) (int, error)

	// DeleteOTPsIssuedBefore is housekeeping for records past their TTL.
	DeleteOTPsIssuedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// History is owner scoped throughout: a record that exists but belongs to
// another user is reported as ErrNotFound.
type History interface {
	CreateHistory(ctx context.Context, h domain.HistoryEntry) error

	GetHistory(ctx context.Context, userID, id string) (domain.HistoryEntry, error)

	// ListHistory returns the user's entries newest first.
	ListHistory(ctx context.Context, userID string) ([]domain.HistoryEntry, error)

	// UpdateHistoryPlan replaces dates and plan in place.
	UpdateHistoryPlan(ctx context.Context, userID, id, checkIn, checkOut string, plan json.RawMessage, now time.Time) error

	// UpdateHistoryFlags applies the non-nil fields of patch.
	UpdateHistoryFlags(ctx context.Context, userID, id string, patch domain.HistoryPatch, now time.Time) error

	DeleteHistory(ctx context.Context, userID, id string) error

	CountHistory(ctx context.Context, userID string) (int, error)
}
