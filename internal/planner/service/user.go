package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aussiebroadwan/tripplan/internal/planner/domain"
	"github.com/aussiebroadwan/tripplan/internal/planner/store"
	"github.com/aussiebroadwan/tripplan/pkg/cryptox"
	"github.com/aussiebroadwan/tripplan/pkg/idx"
)

// UserService is the credential store: user lookups and password hashes.
type UserService struct {
	Store store.Store
	Now   func() time.Time
}

// FindByEmailOrMobile treats the two identifiers as alternatives.
func (s *UserService) FindByEmailOrMobile(ctx context.Context, email, mobile string) (domain.User, bool, error) {
	return found(s.Store.Users().FindUserByEmailOrMobile(ctx, email, mobile))
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (domain.User, bool, error) {
	return found(s.Store.Users().GetUserByEmail(ctx, email))
}

// NewUser builds a user with a hashed password. It is not persisted.
func (s *UserService) NewUser(name, email, mobile, password string) (domain.User, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}
	now := nowFrom(s.Now)
	return domain.User{
		ID:           idx.NewAt(now).String(),
		Name:         name,
		Email:        email,
		MobileNumber: mobile,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// SetPassword replaces the hash. The caller has already proven identity.
func (s *UserService) SetPassword(ctx context.Context, userID, password string) error {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}
	return s.Store.Users().UpdatePasswordHash(ctx, userID, hash, nowFrom(s.Now))
}

// VerifyPassword compares in constant time. A zero user still pays for a
// full hash so a missing account costs the same as a wrong password.
func (s *UserService) VerifyPassword(u domain.User, password string) bool {
	hash := u.PasswordHash
	if hash == "" {
		hash = dummyHash()
	}
	return cryptox.VerifyPassword(password, hash) == nil && u.PasswordHash != ""
}

var dummyHash = sync.OnceValue(func() string {
	h, _ := cryptox.HashPassword("not-a-real-password")
	return h
})

func found(u domain.User, err error) (domain.User, bool, error) {
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, err
	}
	return u, true, nil
}
