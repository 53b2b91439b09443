// Package cache holds short-lived server-side state: pending WebAuthn
// ceremonies and rate limit counters.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-webauthn/webauthn/webauthn"
)

// DefaultChallengeTTL bounds how long a ceremony may stay open.
const DefaultChallengeTTL = 3 * time.Minute

// CeremonyKind separates registration challenges from authentication ones so
// a challenge issued for one cannot complete the other.
type CeremonyKind string

const (
	CeremonyRegistration   CeremonyKind = "registration"
	CeremonyAuthentication CeremonyKind = "authentication"
)

// PendingCeremony is what the server remembers between the options call and
// the verify call. UserID is zero for discoverable authentication.
type PendingCeremony struct {
	Kind    CeremonyKind
	UserID  uint
	Session webauthn.SessionData
}

// ChallengeStore keeps pending ceremonies keyed by their challenge.
// Consume is one-shot: a second call for the same challenge returns nil.
type ChallengeStore interface {
	Save(ctx context.Context, ceremony *PendingCeremony) error
	Consume(ctx context.Context, challenge string) (*PendingCeremony, error)
}

var errEmptyChallenge = errors.New("challenge cannot be empty")

// ErrChallengeStoreFull is returned when too many ceremonies are open at once.
var ErrChallengeStoreFull = errors.New("too many pending ceremonies")
