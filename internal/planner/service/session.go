package service

import (
	"time"

	"github.com/aussiebroadwan/tripplan/internal/planner/domain"
	"github.com/aussiebroadwan/tripplan/pkg/jwtx"
)

// SessionService mints bearer tokens. Verification lives in httpx middleware.
type SessionService struct {
	Signer jwtx.Signer
	Issuer string
	TTL    time.Duration
	Now    func() time.Time
}

// Mint returns a signed token for u with an absolute expiry TTL from now.
func (s *SessionService) Mint(u domain.User) (string, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	return s.Signer.Sign(jwtx.NewSessionClaims(u.ID, u.Email, s.Issuer, ttl, nowFrom(s.Now)))
}
