package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/protocol/webauthncose"
	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/redis/go-redis/v9"
)

// PasskeyChallengePrefix is the Redis key prefix for pending ceremonies
const PasskeyChallengePrefix = "myphoto:passkey:challenge:"

// RedisChallengeStore keeps pending ceremonies in Redis with a TTL and
// GETDEL one-time semantics.
type RedisChallengeStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisChallengeStore(client *redis.Client, ttl time.Duration) *RedisChallengeStore {
	if ttl <= 0 {
		ttl = DefaultChallengeTTL
	}
	return &RedisChallengeStore{
		client: client,
		prefix: PasskeyChallengePrefix,
		ttl:    ttl,
	}
}

type credentialParameterWrapper struct {
	Type      string `json:"type"`
	Algorithm int64  `json:"alg"`
}

// ceremonyWrapper is the JSON layout stored in Redis.
type ceremonyWrapper struct {
	Kind                 CeremonyKind                 `json:"kind"`
	OwnerID              uint                         `json:"owner_id"`
	Challenge            string                       `json:"challenge"`
	RelyingPartyID       string                       `json:"rp_id"`
	UserID               []byte                       `json:"user_id"`
	AllowedCredentialIDs [][]byte                     `json:"allowed_credential_ids,omitempty"`
	UserVerification     string                       `json:"user_verification"`
	Expires              int64                        `json:"expires"`
	CredParams           []credentialParameterWrapper `json:"cred_params,omitempty"`
	Mediation            string                       `json:"mediation,omitempty"`
}

func encodeCeremony(c *PendingCeremony) ([]byte, error) {
	s := c.Session
	credParams := make([]credentialParameterWrapper, 0, len(s.CredParams))
	for _, cp := range s.CredParams {
		credParams = append(credParams, credentialParameterWrapper{
			Type:      string(cp.Type),
			Algorithm: int64(cp.Algorithm),
		})
	}

	return json.Marshal(ceremonyWrapper{
		Kind:                 c.Kind,
		OwnerID:              c.UserID,
		Challenge:            s.Challenge,
		RelyingPartyID:       s.RelyingPartyID,
		UserID:               s.UserID,
		AllowedCredentialIDs: s.AllowedCredentialIDs,
		UserVerification:     string(s.UserVerification),
		Expires:              s.Expires.UnixMilli(),
		CredParams:           credParams,
		Mediation:            string(s.Mediation),
	})
}

func decodeCeremony(data []byte) (*PendingCeremony, error) {
	var w ceremonyWrapper
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ceremony: %w", err)
	}

	credParams := make([]protocol.CredentialParameter, 0, len(w.CredParams))
	for _, cp := range w.CredParams {
		credParams = append(credParams, protocol.CredentialParameter{
			Type:      protocol.CredentialType(cp.Type),
			Algorithm: webauthncose.COSEAlgorithmIdentifier(cp.Algorithm),
		})
	}

	var expires time.Time
	if w.Expires != 0 {
		expires = time.UnixMilli(w.Expires)
	}

	return &PendingCeremony{
		Kind:   w.Kind,
		UserID: w.OwnerID,
		Session: webauthn.SessionData{
			Challenge:            w.Challenge,
			RelyingPartyID:       w.RelyingPartyID,
			UserID:               w.UserID,
			AllowedCredentialIDs: w.AllowedCredentialIDs,
			UserVerification:     protocol.UserVerificationRequirement(w.UserVerification),
			Expires:              expires,
			CredParams:           credParams,
			Mediation:            protocol.CredentialMediationRequirement(w.Mediation),
		},
	}, nil
}

func (s *RedisChallengeStore) Save(ctx context.Context, ceremony *PendingCeremony) error {
	if ceremony == nil {
		return errors.New("ceremony cannot be nil")
	}
	if ceremony.Session.Challenge == "" {
		return errEmptyChallenge
	}

	data, err := encodeCeremony(ceremony)
	if err != nil {
		return fmt.Errorf("failed to marshal ceremony: %w", err)
	}

	if err := s.client.Set(ctx, s.prefix+ceremony.Session.Challenge, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store ceremony in Redis: %w", err)
	}
	return nil
}

func (s *RedisChallengeStore) Consume(ctx context.Context, challenge string) (*PendingCeremony, error) {
	if challenge == "" {
		return nil, nil
	}

	data, err := s.client.GetDel(ctx, s.prefix+challenge).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve ceremony from Redis: %w", err)
	}
	return decodeCeremony(data)
}
